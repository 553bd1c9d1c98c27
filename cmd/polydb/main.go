// Package main provides the polydb CLI application.
// polydb manages the lifecycle of the local vocabulary-learning
// database: schema creation, versioned content import, spaced
// repetition and adaptive drill difficulty.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
