package main

import (
	"os"

	"github.com/kubepulse/kubepulse/cmd/kubepulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
