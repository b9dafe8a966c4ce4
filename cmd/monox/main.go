package main

import "os"

// Overridden via -ldflags for release builds.
var version = "dev"

func main() {
	// Cobra already printed the error; the exit code is all that is left.
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
