package nom

import "time"

// StateTimerLoop reschedules FSM.CheckState on the delay CheckState itself
// returns, and can be stopped cleanly on shutdown.
//
// This is the fix for the flagged bug in the original's setStateTimer,
// which takes a seconds argument and then ignores it, always scheduling
// itself 5 seconds out regardless of what the caller asked for. The spec
// requires the Go implementation honor the argument; this loop does so by
// construction -- it has no hardcoded delay of its own, only the one
// CheckState returns.
type StateTimerLoop struct {
	fsm    *FSM
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewStateTimerLoop builds a loop around fsm. It does not start running
// until Start is called.
func NewStateTimerLoop(fsm *FSM) *StateTimerLoop {
	return &StateTimerLoop{fsm: fsm, stopCh: make(chan struct{}), doneCh: make(chan struct{})}
}

// Start runs the loop in its own goroutine, first firing after initial.
func (l *StateTimerLoop) Start(initial time.Duration) {
	go l.run(initial)
}

// Stop cancels the loop and blocks until its goroutine has exited. Safe to
// call once; the in-flight CheckState pass, if any, is allowed to finish.
func (l *StateTimerLoop) Stop() {
	close(l.stopCh)
	<-l.doneCh
}

func (l *StateTimerLoop) run(initial time.Duration) {
	defer close(l.doneCh)

	timer := time.NewTimer(initial)
	defer timer.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-timer.C:
			next := l.fsm.CheckState()
			timer.Reset(next)
		}
	}
}
