package main

import (
	"os"

	"github.com/willmadison/patreon-sync-tools/cli"
)

func main() {
	env := cli.Environment{
		Args:   os.Args[1:],
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}

	os.Exit(cli.Run(env))
}
