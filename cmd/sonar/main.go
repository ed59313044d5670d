package main

import (
	"os"

	"github.com/spf13/cobra"

	"sonar/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sonar",
		Short: "Sonar - proxy subscription reachability scanner",
		Long:  `Sonar parses proxy subscription content, probes every server it finds, and reports the reachable ones ranked by latency.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
