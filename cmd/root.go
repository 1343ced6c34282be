/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ewhitby/pipekit/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pipekit",
	Short: "Pipeline helpers for Houdini, Maya and Unreal.",
	Long: `Pipekit bundles the small pipeline helpers the studio runs around
its DCCs: render-farm submission for Houdini scenes, Maya shelf
publishing, and project folder-structure generation for Unreal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if logfile != "" {
			logger.AttachFile(logfile)
		}
	},
}

var (
	cfgFile string
	logfile string
	verbose bool
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is pipekit.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName("pipekit")
	}

	viper.SetEnvPrefix("PIPEKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file: %s", viper.ConfigFileUsed())
	}
}
