package main

import (
	"os"

	"cryptocall/cmd/cryptocall/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
