package texcli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

var openCmd = &cobra.Command{
	Use:   "open [tex-root]",
	Short: "Pick a citation and open its document through the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if dispatcher == nil || bibliography == nil {
		return errors.New("services not configured")
	}

	entries, err := bibliography.Entries(args[0])
	if err != nil {
		return fmt.Errorf("scanning bibliography: %w", err)
	}

	// Only entries that actually lead somewhere are offered.
	openable := make([]driven.BibEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Key != "" && entry.Link() != "" {
			openable = append(openable, entry)
		}
	}
	if len(openable) == 0 {
		return fmt.Errorf("%w: no openable bibliography entries under %s", domain.ErrNotFound, args[0])
	}

	entry, picked, err := pick("Open citation", openable)
	if err != nil {
		return err
	}
	if !picked {
		return nil
	}

	// The editor reads the key from stdout to leave a \cite behind.
	fmt.Fprint(cmd.OutOrStdout(), entry.Key)

	if knowledge != nil {
		if err := knowledge.Record(entry.Link(), driven.Anchor{Key: entry.Key}); err != nil {
			return err
		}
	}

	return dispatcher.Open(context.Background(), domain.OpenCommand{
		Reference:   entry.Link(),
		StorageRoot: resolveStorageRoot(),
	})
}
