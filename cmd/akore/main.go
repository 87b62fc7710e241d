// Command akore transpiles source text with the built-in grammar and
// exposes token-stream and run-history tooling around it.
package main

import (
	"os"

	"github.com/KodekoStudios/akore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
