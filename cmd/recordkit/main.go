package main

import (
	"os"

	"github.com/msto63/recordkit/cmd/recordkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
