package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

var openCmd = &cobra.Command{
	Use:   "open [reference]",
	Short: "Open a document's annotated derivative",
	Long: `Resolves the reference (a local path, an arXiv or DOI URL, or any
recorded identifier) and opens the annotated derivative, building it on
first use. References outside the library fall back to the system's
default handler.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// Navigation flags for the open command.
var (
	openDest string
	openPage int
)

func init() {
	openCmd.Flags().StringVarP(&openDest, "dest", "d", "", "Jump to a named destination")
	openCmd.Flags().IntVarP(&openPage, "page", "p", -1, "Jump to a zero-based page")

	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	open := domain.OpenCommand{
		Reference:   args[0],
		StorageRoot: resolveStorageRoot(),
	}
	if openDest != "" {
		open.Dest = &openDest
	}
	if openPage >= 0 {
		page := openPage
		open.Page = &page
	}

	return dispatcher.Open(context.Background(), open)
}
