package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

var citeCmd = &cobra.Command{
	Use:   "cite [reference]",
	Short: "Copy a citation link to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCite,
}

// Location flags for the cite command.
var (
	citeDest string
	citePage int
)

func init() {
	citeCmd.Flags().StringVarP(&citeDest, "dest", "d", "", "Named destination being cited")
	citeCmd.Flags().IntVarP(&citePage, "page", "p", 0, "Zero-based page being cited")
	citeCmd.MarkFlagRequired("dest")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	err := dispatcher.Cite(context.Background(), domain.CiteCommand{
		Reference:   args[0],
		StorageRoot: resolveStorageRoot(),
		Dest:        citeDest,
		Page:        citePage,
	})
	if err != nil {
		return err
	}

	cmd.Println("Citation copied to clipboard")
	return nil
}
