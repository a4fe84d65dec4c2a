// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janayne/salon/internal/backup"
	"github.com/janayne/salon/internal/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups",
	Long:  "Commands for managing backups: list, create, restore and delete",
}

func newBackupManager() *backup.Manager {
	mustInitConfig()
	logger := newLogger()
	return backup.NewManager(config.GetString("backups.path"), openStore(logger), logger)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available backups",
	Run: func(cmd *cobra.Command, args []string) {
		backups, err := newBackupManager().List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to list backups: %v\n", err)
			os.Exit(1)
		}

		if len(backups) == 0 {
			fmt.Println("No backups found")
			return
		}

		fmt.Println("Available backups:")
		for i, b := range backups {
			note := ""
			if b.Note != "" {
				note = " - " + b.Note
			}
			fmt.Printf("%d. %s (%s, %d bytes, %s)%s\n", i+1, b.ID,
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"), b.Size, strings.Join(b.Keys, ", "), note)
		}
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [note]",
	Short: "Back up every stored document now",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		note := "manual"
		if len(args) == 1 {
			note = args[0]
		}
		meta, err := newBackupManager().Create(note)
		if err != nil {
			fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created backup %s (%d documents)\n", meta.ID, len(meta.Keys))
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore the store from a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager := newBackupManager()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("WARNING: This will overwrite the stored portfolio and settings.\n")
			fmt.Printf("Are you sure you want to restore from '%s'? (type 'yes' to confirm): ", args[0])

			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				fmt.Println("Restore cancelled.")
				return
			}
		}

		meta, err := manager.Restore(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "restore failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully restored from %s\n", meta.ID)
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := newBackupManager().Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "delete failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted backup %s\n", args[0])
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest backups",
	Run: func(cmd *cobra.Command, args []string) {
		manager := newBackupManager()
		keep, _ := cmd.Flags().GetInt("keep")
		if keep <= 0 {
			keep = config.GetInt("backups.retention")
		}
		removed, err := manager.Prune(keep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "prune failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d backups, kept %d\n", removed, keep)
	},
}

func init() {
	backupRestoreCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	backupPruneCmd.Flags().Int("keep", 0, "Number of backups to keep (defaults to backups.retention)")

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}
