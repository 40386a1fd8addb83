package main

import (
	"github.com/openledgerd/xrpld/internal/cli"
)

func main() {
	cli.Execute()
}
