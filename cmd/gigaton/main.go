// Package main is the entrypoint for the gigaton CLI.
package main

import (
	"fmt"
	"os"

	"github.com/gigaton-io/gigaton/cmd"
	"github.com/gigaton-io/gigaton/internal/archive"
	"github.com/gigaton-io/gigaton/internal/contract"
)

// main wires the global archive manager into the command tree, runs it, and
// tears down profiling and archive connections on the way out.
func main() {
	cmd.SetArchiveManager(archive.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}

	archive.CloseArchive()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
