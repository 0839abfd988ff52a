package main

import (
	"os"

	"salary-bias-service/internal/adapters/primary/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
