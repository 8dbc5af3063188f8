package main

import (
	"os"

	"github.com/ellipszist/texport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
