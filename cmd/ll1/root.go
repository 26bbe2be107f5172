package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ll1",
	Short: "Analyze a grammar and drive a predictive parser with it",
	Long: `ll1 provides two features:
- Computes the nullable/FIRST/FOLLOW sets of a grammar and derives its
  LL(1) parsing table.
- Parses a text stream with the derived table and prints the parse tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
