package main

import (
	"os"

	"github.com/nacorid/stellarpay/cmd/stellarpay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
