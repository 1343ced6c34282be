/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewhitby/pipekit/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of Pipekit",
	Long:  `Displays the version of Pipekit.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Pipekit %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
