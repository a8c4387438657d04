package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [download-ref]",
	Short: "Import a document into the library",
	Long: `Downloads the reference (or reads it when it names a local file),
records it under a derived filename and opens it. A document already in
the library only gains the new identifiers.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// Metadata flags for the import command.
var (
	importTitle     string
	importAuthors   []string
	importYear      string
	importPublisher string
	importIDs       []string
)

func init() {
	importCmd.Flags().StringVarP(&importTitle, "title", "t", "", "Document title")
	importCmd.Flags().StringArrayVarP(&importAuthors, "author", "a", nil, "Author (repeatable)")
	importCmd.Flags().StringVarP(&importYear, "year", "y", "", "Publication year")
	importCmd.Flags().StringVar(&importPublisher, "publisher", "", "Publisher or venue")
	importCmd.Flags().StringArrayVar(&importIDs, "id", nil, "Extra identifier (repeatable)")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	downloadRef := args[0]
	record := domain.Record{
		Title:     importTitle,
		Authors:   importAuthors,
		Year:      importYear,
		Publisher: importPublisher,
	}
	// The download reference always identifies the document; canonical
	// forms of explicit identifiers come first.
	for _, id := range importIDs {
		record.MergeIdentifiers(domain.NormalizeIdentifier(id))
	}
	record.MergeIdentifiers(domain.NormalizeIdentifier(downloadRef))

	imported, err := dispatcher.Import(context.Background(), domain.ImportCommand{
		DownloadRef: downloadRef,
		Record:      record,
		StorageRoot: resolveStorageRoot(),
	})
	if err != nil {
		return err
	}

	cmd.Printf("Imported %q\n", imported.Filename)
	return nil
}
