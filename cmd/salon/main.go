// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salon",
	Short: "Salon - portfolio site and admin panel for a nail studio",
	Long: `Salon serves a single-page portfolio for a nail studio, with an admin
panel for the portfolio cards, theme colors, hero image and WhatsApp link.

Everything is kept as JSON documents in one small table, so the whole site
can be backed up, exported and restored as a single file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
