package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "techreport",
		Short: "HTTP Archive tech report API",
		Long: `techreport translates URL query parameters into filtered reads of the
tech report collections and serves the results as JSON.

Configuration is read from config.yaml (or CONFIG_PATH) and the environment.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newTranslateCmd())
	return root
}
