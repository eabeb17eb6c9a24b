package main

import (
	"os"

	"github.com/shrinx/shrinx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
