// Package cmd contains the relationship cli.
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relationship",
		Short: "Relationship checks the relation tables used to keep both sides of your entities in sync.",
		Long: `A tool to validate and inspect the relation configuration
of a relationship Synchronizer before shipping it with your application.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
}

// NewCLI initialises the complete relationship cli with its commands and returns the root command.
func NewCLI() *cobra.Command {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(Version("relationship"))
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newParseCmd())

	return rootCmd
}

// Execute runs the relationship cli.
func Execute() {
	if err := NewCLI().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
