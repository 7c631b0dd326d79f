package main

import (
	"os"

	"github.com/abhisek/aura/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
