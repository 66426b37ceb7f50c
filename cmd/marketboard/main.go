package main

import (
	"os"

	"github.com/MrSnakeDoc/marketboard/cmd/marketboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
