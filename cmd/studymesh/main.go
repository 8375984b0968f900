package main

import (
	"os"

	"github.com/studymesh/studymesh/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
