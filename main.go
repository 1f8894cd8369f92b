// Package main is the entry point for the spacesync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/spacesync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
