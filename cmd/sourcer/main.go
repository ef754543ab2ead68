package main

import (
	"os"

	"go-lead-sourcer/cmd/sourcer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
