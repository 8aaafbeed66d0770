package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var searchTagsFlag string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search journal entries",
	Long:  `Search entries by text and/or tags. Text matches against titles and bodies, case-insensitively. When tags are given, entries matching more of them rank higher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		queryTags := splitTagsFlag(searchTagsFlag)

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		results, err := journal.SearchEntries(cmd.Context(), dbConn, query, queryTags)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No entries matched.")
			return nil
		}

		fmt.Printf("Found %d entries:\n\n", len(results))
		for _, match := range results {
			if len(queryTags) > 0 {
				fmt.Printf("(%d matching tags)\n", match.MatchCount)
			}
			printEntry(match.Entry)
			fmt.Println()
		}
		return nil
	},
}

func initSearchCmd() {
	searchCmd.Flags().StringVar(&searchTagsFlag, "tags", "", "Comma-separated tags to match against")
}
