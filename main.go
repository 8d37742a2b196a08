package main

import (
	"os"

	"github.com/proofscout/proofscout/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
