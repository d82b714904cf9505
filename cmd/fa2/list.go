package main

import (
	"github.com/gingerrexayers/fa2-go/internal/fa2/commands"
	"github.com/spf13/cobra"
)

// NewListCommand creates the 'list' command for the CLI.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List the entries of an FA2 archive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.List(args[0])
		},
	}

	return cmd
}
