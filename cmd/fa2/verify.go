package main

import (
	"github.com/gingerrexayers/fa2-go/internal/fa2/commands"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the 'verify' command for the CLI.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <archive>",
		Short: "Validate the structure of an FA2 archive.",
		Long: `Parses an FA2 archive and checks every structural invariant: the magic
signature, the header's index offset and entry count, per-entry size records
and the 16-byte alignment of the data region. Archives in canonical sorted
order are also repacked and compared byte-for-byte.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Verify(args[0])
		},
	}

	return cmd
}
