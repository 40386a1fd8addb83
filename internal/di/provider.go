package di

import (
	"time"

	"github.com/openledgerd/xrpld/internal/config"
	"github.com/openledgerd/xrpld/internal/core/ledger/master"
	"github.com/openledgerd/xrpld/internal/core/ledger/manager"
	"github.com/openledgerd/xrpld/internal/core/nom"
	"github.com/openledgerd/xrpld/internal/core/txintake"
	"github.com/openledgerd/xrpld/internal/core/txq"
	"github.com/openledgerd/xrpld/internal/storage/nodestore"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	// Register config
	p.container.Register(ServiceConfig, p.config)

	// Register builders for lazy instantiation
	p.registerStorageBuilders()
	p.registerLedgerBuilders()
	p.registerRPCBuilders()

	return nil
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	// NodeStore builder
	p.container.RegisterBuilder(ServiceNodeStore, func(c *Container) (interface{}, error) {
		if p.config.NodeDB.Path == "" {
			return nil, nil // No nodestore configured
		}

		backend, err := nodestore.NewPebbleBackend(&nodestore.Config{
			Backend:         "pebble",
			Path:            p.config.NodeDB.Path,
			CacheSize:       p.config.NodeDB.CacheSize,
			CacheTTL:        time.Duration(p.config.NodeDB.CacheAge) * time.Minute,
			CreateIfMissing: true,
		})
		if err != nil {
			return nil, err
		}

		return nodestore.NewDatabase(backend, p.config.NodeDB.CacheSize, time.Duration(p.config.NodeDB.CacheAge)*time.Minute), nil
	})
}

// registerLedgerBuilders registers ledger service builders.
func (p *Provider) registerLedgerBuilders() {
	// Fee Manager builder: escalation metrics over the transaction queue
	// config, independent of the master ledger.
	p.container.RegisterBuilder(ServiceFeeManager, func(c *Container) (interface{}, error) {
		tq := p.config.TransactionQueue
		return txq.NewFeeMetrics(txq.Config{
			LedgersInQueue:                 uint32(tq.LedgersInQueue),
			QueueSizeMin:                   uint32(tq.MinimumQueueSize),
			RetrySequencePercent:           uint32(tq.RetrySequencePercent),
			MinimumEscalationMultiplier:    uint64(tq.MinimumEscalationMultiplier),
			MinimumTxnInLedger:             uint32(tq.MinimumTxnInLedger),
			MinimumTxnInLedgerStandalone:   uint32(tq.MinimumTxnInLedgerStandalone),
			TargetTxnInLedger:              uint32(tq.TargetTxnInLedger),
			MaximumTxnInLedger:             uint32(tq.MaximumTxnInLedger),
			NormalConsensusIncreasePercent: uint32(tq.NormalConsensusIncreasePercent),
			SlowConsensusDecreasePercent:   uint32(tq.SlowConsensusDecreasePercent),
			MaximumTxnPerAccount:           uint32(tq.MaximumTxnPerAccount),
			MinimumLastLedgerBuffer:        uint32(tq.MinimumLastLedgerBuffer),
		}), nil
	})

	// Ledger master builder: genesis ledger, ledger cache, and the entry
	// set transactions apply against. Closed ledgers are persisted through
	// the node store, when one is configured.
	p.container.RegisterBuilder(ServiceMasterLedger, func(c *Container) (interface{}, error) {
		cache, err := manager.NewLedgerCache(manager.LedgerCacheConfig{})
		if err != nil {
			return nil, err
		}

		genesisLedger, err := master.NewGenesisLedger(time.Now())
		if err != nil {
			return nil, err
		}

		mst, err := master.New(genesisLedger, cache)
		if err != nil {
			return nil, err
		}

		store, err := c.Get(ServiceNodeStore)
		if err != nil {
			return nil, err
		}
		if ns, ok := store.(nodestore.Database); ok {
			mst.SetStore(ns)
		}

		return mst, nil
	})

	// Transaction intake builder.
	p.container.RegisterBuilder(ServiceTxIntake, func(c *Container) (interface{}, error) {
		m, err := c.Get(ServiceMasterLedger)
		if err != nil {
			return nil, err
		}
		mst := m.(*master.Master)

		return txintake.New(mst, master.NewSignatureAdapter(), mst, noopConnectionPool{}), nil
	})

	// NOM builder. The peer set, ledger acquisition and validator wallet
	// are external collaborators (peer connection management and ledger
	// acquisition are out of this spec's scope); stub adapters stand in
	// for them here until those subsystems are wired to the FSM.
	p.container.RegisterBuilder(ServiceNOM, func(c *Container) (interface{}, error) {
		m, err := c.Get(ServiceMasterLedger)
		if err != nil {
			return nil, err
		}
		mst := m.(*master.Master)

		return nom.New(noopPeerPool{}, mst, noopLedgerAcquire{}, noopWallet{}, nom.Config{
			NetworkQuorum: p.config.NetworkQuorum,
		}), nil
	})
}

// registerRPCBuilders registers RPC service builders.
func (p *Provider) registerRPCBuilders() {
	// RPC Server builder - implemented elsewhere
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}

// noopConnectionPool relays to no one. It stands in for the peer overlay,
// an external collaborator outside this spec's scope.
type noopConnectionPool struct{}

func (noopConnectionPool) RelayMessage(source txintake.Peer, frame txintake.RelayFrame) {}

// noopPeerPool reports no peers until wired to the real peer overlay.
type noopPeerPool struct{}

func (noopPeerPool) Peers() []nom.Peer { return nil }

// noopLedgerAcquire never finds an in-flight acquisition until wired to
// the real ledger-acquisition subsystem.
type noopLedgerAcquire struct{}

func (noopLedgerAcquire) FindCreate(hash nom.LedgerHash) (nom.Acquisition, bool) {
	return nil, false
}
func (noopLedgerAcquire) DropLedger(hash nom.LedgerHash) {}

// noopWallet reports the zero validator identity until wired to the
// node's real identity/keystore.
type noopWallet struct{}

func (noopWallet) NodePublic() nom.NodeID { return nom.NodeID{} }
