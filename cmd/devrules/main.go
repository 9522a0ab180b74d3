package main

import (
	"os"

	"github.com/devrules/devrules/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
