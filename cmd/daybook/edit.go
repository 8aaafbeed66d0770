package main

import (
	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the interactive journal",
	Long:  `Open a terminal UI for browsing, searching, and editing journal entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return tui.ShowTUI(dbConn, newLogger())
	},
}
