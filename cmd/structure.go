/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/logger"
	"github.com/ewhitby/pipekit/core/structure"
)

var (
	structureTemplate string
	structureDryRun   bool
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Project folder-structure tools",
	Long:  `Creates and validates project folder structures from a nested JSON template.`,
}

var structureGenerateCmd = &cobra.Command{
	Use:   "generate <root>",
	Short: "Create the folder structure under a root directory",
	Long: `Reads the folder-structure template and creates every folder it
describes under the given root. Folders that already exist are left
alone, so re-running on the same root is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("structure generate called")
		root := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		templatePath := structureTemplate
		if templatePath == "" {
			templatePath = cfg.Structure.Template
		}

		tmpl, err := structure.Load(templatePath)
		if err != nil {
			return err
		}

		creator := structure.NewCreator(structureDryRun)
		if err := creator.Create(root, tmpl); err != nil {
			return fmt.Errorf("failed to generate folder structure: %w", err)
		}

		if structureDryRun {
			fmt.Printf("Would create %d folder(s) under %s\n", len(creator.Created()), root)
		} else {
			fmt.Printf("Created %d folder(s) under %s\n", len(creator.Created()), root)
		}
		return nil
	},
}

var structureValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the folder-structure template",
	Long:  `Parses the folder-structure template and reports how many folders it describes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("structure validate called")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		templatePath := structureTemplate
		if templatePath == "" {
			templatePath = cfg.Structure.Template
		}

		tmpl, err := structure.Load(templatePath)
		if err != nil {
			return err
		}

		fmt.Printf("%s is valid: %d folder(s)\n", templatePath, tmpl.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(structureCmd)
	structureCmd.AddCommand(structureGenerateCmd)
	structureCmd.AddCommand(structureValidateCmd)

	structureCmd.PersistentFlags().StringVar(&structureTemplate, "template", "", "Path to the folder-structure template")
	structureGenerateCmd.Flags().BoolVar(&structureDryRun, "dry-run", false, "Show what would be created without touching the filesystem")
}
