package main

import (
	"os"

	"github.com/felixgeelhaar/devstandards/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
