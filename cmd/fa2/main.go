package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{Use: "fa2"}

	// Add commands
	rootCmd.AddCommand(NewPackCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewVerifyCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
