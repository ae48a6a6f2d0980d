// Package main implements the procrastilist server binary: the HTTP API, its
// database migrations and a few operator helpers.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configPath is the optional config file shared by every subcommand.
var configPath string

var rootCmd = &cobra.Command{
	Use:           "procrastilist",
	Short:         "ProcrastiList task API with AI-generated distractions",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: ./config.yaml if present)")
}
