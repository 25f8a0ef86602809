package main

import (
	"os"

	"github.com/Lixing-Zhang/vending-machine/cmd/vendctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
