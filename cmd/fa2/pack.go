package main

import (
	"github.com/gingerrexayers/fa2-go/internal/fa2/commands"
	"github.com/spf13/cobra"
)

// NewPackCommand creates the 'pack' command for the CLI.
func NewPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <directory> <output-file>",
		Short: "Pack a directory's files into an FA2 archive.",
		Long: `Packs the regular files directly inside a directory (non-recursive) into
a single uncompressed FA2 archive. Files are stored in sorted name order, so
packing the same directory contents always produces a byte-identical archive.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Pack(args[0], args[1])
		},
	}

	return cmd
}
