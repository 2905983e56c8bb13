package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is a base command.
var rootCmd = &cobra.Command{
	Use:   "pagebridge",
	Short: "MCP server bridging wiki page operations",
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
