package main

import (
	"os"

	"github.com/iktorin-vi/customer-retention-analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
