package cmd

import "github.com/spf13/cobra"

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the configured simulation",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
