package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/editor"
	"github.com/daybook-app/daybook/pkg/journal"
)

var (
	titleFlag      string
	bodyFlag       string
	dateFlag       string
	tagsFlag       string
	addTagsFlag    string
	removeTagsFlag string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage journal entries",
	Long:  `Create, list, update, and delete journal entries.`,
}

var createEntryCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new journal entry",
	Long:  `Create a new entry with a body and optional title, date, and tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ed := editor.New(journal.NewStore(dbConn), newLogger())
		ed.SetTitle(titleFlag)
		ed.SetBody(bodyFlag)
		if dateFlag != "" {
			date, err := time.Parse(journal.DateLayout, dateFlag)
			if err != nil {
				return fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", dateFlag)
			}
			ed.SetDate(date)
		}
		for _, tag := range splitTagsFlag(tagsFlag) {
			if err := ed.AddTag(tag); err != nil && !errors.Is(err, editor.ErrDuplicateTag) {
				return fmt.Errorf("failed to add tag '%s': %w", tag, err)
			}
		}

		entry, err := ed.Save(cmd.Context())
		if errors.Is(err, editor.ErrEmptyBody) {
			return errors.New("entry body is required; pass it with --body")
		}
		if err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		fmt.Println("Entry created successfully:")
		printEntry(entry)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Get an entry by ID",
	Long:  `Retrieve an entry by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryIDStr := args[0]
		entryID, err := uuid.Parse(entryIDStr)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.GetEntry(cmd.Context(), dbConn, entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", entryIDStr)
		}
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		printEntry(entry)
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  `List all journal entries, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := journal.ListEntries(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		fmt.Println("Entries:")
		fmt.Println("ID | Date | Title | Tags | Updated At")
		fmt.Println("------------------------------------------------------------")
		for _, e := range entries {
			fmt.Printf("%s | %s | %s | %s | %s\n",
				e.ID, e.Date.Format(journal.DateLayout), e.Title, formatTagsList(e.Tags), formatTimestamp(e.UpdatedAt))
		}
		return nil
	},
}

var updateEntryCmd = &cobra.Command{
	Use:   "update [entry-id]",
	Short: "Update an entry",
	Long:  `Update an entry's date, title, body, or tags. The stored entry is loaded first, so unspecified fields keep their values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryIDStr := args[0]
		entryID, err := uuid.Parse(entryIDStr)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ed := editor.NewForEntry(journal.NewStore(dbConn), newLogger(), entryID)
		if err := ed.Load(cmd.Context()); err != nil {
			if errors.Is(err, journal.ErrEntryNotFound) {
				return fmt.Errorf("entry not found: %s", entryIDStr)
			}
			return fmt.Errorf("failed to load entry: %w", err)
		}

		if cmd.Flags().Changed("title") {
			ed.SetTitle(titleFlag)
		}
		if cmd.Flags().Changed("body") {
			ed.SetBody(bodyFlag)
		}
		if dateFlag != "" {
			date, err := time.Parse(journal.DateLayout, dateFlag)
			if err != nil {
				return fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", dateFlag)
			}
			ed.SetDate(date)
		}
		for _, tag := range splitTagsFlag(addTagsFlag) {
			if err := ed.AddTag(tag); err != nil {
				if errors.Is(err, editor.ErrDuplicateTag) {
					cmd.PrintErrf("Tag '%s' is already on the entry.\n", tag)
					continue
				}
				return fmt.Errorf("failed to add tag '%s': %w", tag, err)
			}
		}
		for _, tag := range splitTagsFlag(removeTagsFlag) {
			ed.DeleteTag(tag)
		}

		entry, err := ed.Save(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		fmt.Println("Entry updated successfully!")
		printEntry(entry)
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently delete an entry from the journal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryIDStr := args[0]
		entryID, err := uuid.Parse(entryIDStr)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = journal.DeleteEntry(cmd.Context(), dbConn, entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", entryIDStr)
		}
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Printf("Entry %s deleted.\n", entryIDStr)
		return nil
	},
}

func formatTagsList(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func initEntriesCmd() {
	createEntryCmd.Flags().StringVar(&titleFlag, "title", "", "Optional title for the entry")
	createEntryCmd.Flags().StringVar(&bodyFlag, "body", "", "Body text of the entry (required)")
	createEntryCmd.Flags().StringVar(&dateFlag, "date", "", "Calendar date as YYYY-MM-DD (defaults to today)")
	createEntryCmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated list of tags")

	updateEntryCmd.Flags().StringVar(&titleFlag, "title", "", "Replacement title")
	updateEntryCmd.Flags().StringVar(&bodyFlag, "body", "", "Replacement body text")
	updateEntryCmd.Flags().StringVar(&dateFlag, "date", "", "Replacement calendar date as YYYY-MM-DD")
	updateEntryCmd.Flags().StringVar(&addTagsFlag, "add-tags", "", "Comma-separated tags to add")
	updateEntryCmd.Flags().StringVar(&removeTagsFlag, "remove-tags", "", "Comma-separated tags to remove")

	entriesCmd.AddCommand(
		createEntryCmd,
		getEntryCmd,
		listEntriesCmd,
		updateEntryCmd,
		deleteEntryCmd,
	)
}
