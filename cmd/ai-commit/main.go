package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/huimingz/ai-commit-go/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "ai-commit: %s\n", cli.Describe(err))
		os.Exit(1)
	}
}
