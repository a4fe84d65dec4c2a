// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/config"
	"github.com/janayne/salon/internal/db"
	"github.com/janayne/salon/internal/logging"
	"github.com/janayne/salon/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Salon configuration",
	Long:  "View and modify Salon configuration values",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()
		fmt.Println(config.GetString(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()

		if err := config.Set(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()

		all := config.GetAll()
		sections := make([]string, 0, len(all))
		for key := range all {
			sections = append(sections, key)
		}
		sort.Strings(sections)
		for _, key := range sections {
			fmt.Printf("%s: %v\n", key, all[key])
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig initializes the configuration system
func initConfig() error {
	configPath := os.Getenv("SALON_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".salon", "config.yaml")
	}

	return config.InitConfig(configPath)
}

func mustInitConfig() {
	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the logger from the log.* settings
func newLogger() *zap.Logger {
	logger, err := logging.New(logging.FromSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// openStore connects to the configured database and wraps it in a store
func openStore(logger *zap.Logger) *store.Store {
	database, err := db.Open(config.GetString("database.type"), config.GetString("database.path"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return store.New(store.NewGormBackend(database),
		store.WithQuota(config.GetInt("storage.quota_bytes")),
		store.WithLogger(logger),
	)
}
