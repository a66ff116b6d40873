package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gatekeeper-cli",
	Short: "gatekeeper-cli is the command-line interface for pr-gatekeeper.",
	Long: `A CLI for administering pr-gatekeeper: inspecting and editing the user and admin
lists, and replaying recorded webhook deliveries through the command engine.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding the authorization lists")
	rootCmd.PersistentFlags().String("storage", "", "Authorization list driver (file or postgres)")

	bindings := map[string]string{
		"CONFIG_DIRECTORY": "config-dir",
		"STORAGE_DRIVER":   "storage",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
