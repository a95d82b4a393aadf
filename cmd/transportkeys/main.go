package main

import (
	"os"

	"transportkeys/cmd/transportkeys/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
