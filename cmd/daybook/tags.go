package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage entry tags",
	Long:  `List the tags used across journal entries and remove tags from every entry at once.`,
}

var listTagsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Long:  `List every tag in the journal along with the number of entries carrying it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tags, err := journal.ListTags(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags yet.")
			return nil
		}

		fmt.Println("Tags:")
		fmt.Println("Tag | Entries")
		fmt.Println("--------------------")
		for _, t := range tags {
			fmt.Printf("%s | %d\n", t.Tag, t.Count)
		}
		return nil
	},
}

var deleteTagCmd = &cobra.Command{
	Use:   "delete [tag]",
	Short: "Remove a tag from all entries",
	Long:  `Remove the given tag from every entry that carries it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		affected, err := journal.DeleteTag(cmd.Context(), dbConn, tag)
		if errors.Is(err, journal.ErrTagNotFound) {
			return fmt.Errorf("tag not found: %s", tag)
		}
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		fmt.Printf("Tag '%s' removed from %d entries.\n", tag, affected)
		return nil
	},
}

func initTagsCmd() {
	tagsCmd.AddCommand(
		listTagsCmd,
		deleteTagCmd,
	)
}
