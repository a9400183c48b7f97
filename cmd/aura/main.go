// Command aura renders weather auras from the command line.
package main

import (
	"os"

	"github.com/okian/aura/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
