package main

import (
	"os"

	"github.com/skarland/clusterbench/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
