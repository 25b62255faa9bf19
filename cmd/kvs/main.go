// Command kvs sets, gets and removes keys in an in-memory key-value store.
//
// The store lives only for the duration of a single invocation.
package main

import (
	"os"

	"github.com/heysubinoy/kvs/internal/cli"
)

func main() {
	// cobra has already printed the error and usage.
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
