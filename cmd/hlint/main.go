package main

import (
	"os"

	"github.com/hackstyle/hlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
