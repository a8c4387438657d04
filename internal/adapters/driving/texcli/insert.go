package texcli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

var insertCmd = &cobra.Command{
	Use:   "insert [tex-root]",
	Short: "Pick a citation and print its key",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	if bibliography == nil {
		return errors.New("services not configured")
	}

	entries, err := bibliography.Entries(args[0])
	if err != nil {
		return fmt.Errorf("scanning bibliography: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no bibliography entries under %s", domain.ErrNotFound, args[0])
	}

	entry, picked, err := pick("Insert citation", entries)
	if err != nil {
		return err
	}
	if picked {
		fmt.Fprint(cmd.OutOrStdout(), entry.Key)
	}
	return nil
}
