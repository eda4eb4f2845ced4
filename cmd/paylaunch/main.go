// Package main provides the entry point for the paylaunch CLI.
package main

import (
	"os"

	"github.com/paydeck/paylaunch/cmd/paylaunch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
