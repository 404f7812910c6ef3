package main

import (
	"os"

	"github.com/spigell/career-guide/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
