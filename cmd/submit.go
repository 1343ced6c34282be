/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/deadline"
	"github.com/ewhitby/pipekit/core/logger"
	"github.com/ewhitby/pipekit/core/submit"
)

var (
	submitDeps     []string
	submitDryRun   bool
	submitPlugin   string
	submitFrames   string
	submitPriority int
	submitProject  string
)

var submitCmd = &cobra.Command{
	Use:   "submit <scene-file>",
	Short: "Stage a scene on the farm share and submit it to Deadline",
	Long: `Copies the scene file and its dependency files into a timestamped
folder on the farm share, then submits a render job to the Deadline
Web Service pointing at the staged copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("submit called")
		scenePath := args[0]
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := deadline.NewClient(cfg.Deadline.URL, cfg.Deadline.APIKey)
		if !submitDryRun {
			if err := client.Ping(ctx); err != nil {
				return err
			}
		}

		sub, err := submit.New(scenePath, client)
		if err != nil {
			return err
		}

		projectRoot := submitProject
		if projectRoot == "" {
			projectRoot = filepath.Dir(scenePath)
		}
		for _, ref := range submit.ExternalReferences(projectRoot, submitDeps) {
			logger.Warn("Dependency outside project folder: %s", ref)
		}

		priority := submitPriority
		if !cmd.Flags().Changed("priority") {
			priority = cfg.Deadline.Priority
		}

		result, err := sub.Run(ctx, submit.Options{
			FarmRoot:     cfg.Farm.RenderRoot,
			Dependencies: submitDeps,
			Plugin:       submitPlugin,
			Pool:         cfg.Deadline.Pool,
			Group:        cfg.Deadline.Group,
			Priority:     priority,
			Frames:       submitFrames,
			DryRun:       submitDryRun,
		})
		if err != nil {
			return fmt.Errorf("submission failed: %w", err)
		}

		if result.DryRun {
			fmt.Printf("Dry run: staged %s (not submitted)\n", result.RenderFolder)
		} else {
			fmt.Printf("Submitted job %s from %s\n", result.JobID, result.RenderFolder)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringSliceVar(&submitDeps, "dep", nil, "Dependency file to copy to the render folder (repeatable)")
	submitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "Stage files but skip the Deadline submission")
	submitCmd.Flags().StringVar(&submitPlugin, "plugin", "Houdini", "Deadline plugin to render with")
	submitCmd.Flags().StringVar(&submitFrames, "frames", "1", "Frame range to render")
	submitCmd.Flags().IntVar(&submitPriority, "priority", 50, "Job priority")
	submitCmd.Flags().StringVar(&submitProject, "project", "", "Project root for the external-reference check (default: scene folder)")
}
