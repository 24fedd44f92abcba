package main

import (
	"os"

	"github.com/heartbeatcoders/recruit/internal/recruit/command"
)

func main() {
	if err := command.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
