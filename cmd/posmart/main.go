// Package main is the entry point for posmart.
package main

import (
	"fmt"
	"os"

	"github.com/beanlake/posmart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
