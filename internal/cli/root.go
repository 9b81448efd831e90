// Package cli wires configuration, storage, and the HTTP API into the
// quizdeck command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	addr       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAddr := os.Getenv("HTTP_ADDR")
	if envAddr == "" {
		envAddr = ":8080"
	}

	cmd := &cobra.Command{
		Use:   "quizdeck",
		Short: "Quiz authoring, taking, and grading service",
	}

	cmd.PersistentFlags().StringVar(&addr, "addr", envAddr, "address to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	cmd.AddCommand(NewServeCmd(&configPath, &addr))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
