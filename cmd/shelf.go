/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/logger"
	"github.com/ewhitby/pipekit/core/shelf"
)

var (
	shelfContext   string
	shelfLocalOnly bool
	shelfWatch     bool
)

var shelfCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Maya shelf publishing tools",
	Long: `Lists, saves and syncs Maya shelf files. Shelves live in the local
Maya prefs during development; saving publishes them to the shared
global shelf directory.`,
}

var shelfListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shelves in a context",
	Long:  `Lists the shelves found in a shelf context (local, preset or global), in reference order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("shelf list called")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		shelves, err := shelf.List(shelf.Context(shelfContext), cfg.Shelves)
		if err != nil {
			return err
		}

		for _, name := range shelves {
			fmt.Println(name)
		}
		return nil
	},
}

var shelfSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Publish a local shelf to the global shelf directory",
	Long: `Publishes the named local shelf to the global shelf directory. With
--local-only the shelf is checked but nothing is published.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("shelf save called")
		name := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if shelfLocalOnly {
			localDir, err := shelf.DirFor(shelf.Local, cfg.Shelves)
			if err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(localDir, shelf.FileName(name))); err != nil {
				return fmt.Errorf("shelf %q has no local file: %w", name, err)
			}
			fmt.Printf("Local save only, not publishing %s\n", name)
			return nil
		}

		switch err := shelf.Publish(name, cfg.Shelves); {
		case err == nil:
			fmt.Printf("Published shelf %s\n", name)
			return nil
		case err == shelf.ErrUnchanged:
			fmt.Printf("Shelf %s is already up to date\n", name)
			return nil
		default:
			return err
		}
	},
}

var shelfSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish every changed local shelf",
	Long: `Publishes every local shelf whose contents differ from the global
copy. With --watch, keeps mirroring changes until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("shelf sync called")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if shelfWatch {
			watcher, err := shelf.NewWatcher(cfg.Shelves)
			if err != nil {
				return err
			}
			defer watcher.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := watcher.Watch(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		}

		result, err := shelf.Sync(cfg.Shelves)
		if err != nil {
			return err
		}

		fmt.Printf("Published %d shelf file(s), %d up to date\n", len(result.Published), len(result.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shelfCmd)
	shelfCmd.AddCommand(shelfListCmd)
	shelfCmd.AddCommand(shelfSaveCmd)
	shelfCmd.AddCommand(shelfSyncCmd)

	shelfListCmd.Flags().StringVar(&shelfContext, "context", "local", "Shelf context (local, preset, global)")
	shelfSaveCmd.Flags().BoolVar(&shelfLocalOnly, "local-only", false, "Skip publishing to the global shelf directory")
	shelfSyncCmd.Flags().BoolVar(&shelfWatch, "watch", false, "Keep watching the local shelf directory for changes")
}
