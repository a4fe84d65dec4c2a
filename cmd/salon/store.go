// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/backup"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and move the stored documents",
	Long:  "Seed, read, export and import the JSON documents behind the site",
}

var storeSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default portfolio if none was ever saved",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()
		s := openStore(zap.NewNop())

		seeded, err := s.Seed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if seeded {
			fmt.Println("Default portfolio written")
		} else {
			fmt.Println("Portfolio already exists, nothing written")
		}
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <key> [path]",
	Short: "Print a stored document, or one field of it",
	Long: `Print the JSON document stored under key. An optional path selects
part of it, e.g. "salon store get portfolio #.title".`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()
		s := openStore(zap.NewNop())

		snapshot, err := s.Snapshot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		doc, ok := snapshot[args[0]]
		if !ok {
			fmt.Fprintf(os.Stderr, "Key %s has no valid document\n", args[0])
			os.Exit(1)
		}

		if len(args) == 1 {
			fmt.Println(string(doc))
			return
		}
		result := gjson.GetBytes(doc, args[1])
		if !result.Exists() {
			fmt.Fprintf(os.Stderr, "Path %s not found in %s\n", args[1], args[0])
			os.Exit(1)
		}
		fmt.Println(result.Raw)
	},
}

var storeExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every document to a JSON file, or stdout",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()
		s := openStore(zap.NewNop())

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		if err := backup.Export(out, s, "cli export"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var storeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore documents from an export or backup file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()
		s := openStore(newLogger())

		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		n, err := backup.Import(f, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d documents from %s\n", n, args[0])
	},
}

func init() {
	storeCmd.AddCommand(storeSeedCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeImportCmd)
	rootCmd.AddCommand(storeCmd)
}
