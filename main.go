package main

import (
	"context"
	"os"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
