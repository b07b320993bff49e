package main

import (
	"os"

	"github.com/yigit/mathplan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
