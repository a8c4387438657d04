package texcli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

var createCmd = &cobra.Command{
	Use:   "create [url]",
	Short: "Emit an \\akldef snippet binding a URL to a citation anchor",
	Long: `Prints the \akldef{...} snippet the TeX side pastes to define a
citation anchor. An explicit --key records the binding in the knowledge
sidecar; without one the sidecar is consulted, so a URL cited before
needs no lookup at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

// Anchor flags for the create command.
var (
	createKey string
	createTag string
)

func init() {
	createCmd.Flags().StringVarP(&createKey, "key", "k", "", "Citation key to bind")
	createCmd.Flags().StringVarP(&createTag, "tag", "t", "", "Human-readable tag")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	if knowledge == nil {
		return errors.New("services not configured")
	}

	url := args[0]
	anchor := driven.Anchor{Key: createKey, Tag: createTag}

	if anchor.Key == "" {
		known, err := knowledge.Lookup(url)
		if err != nil {
			return fmt.Errorf("no key given and none recorded for %s: %w", url, err)
		}
		anchor = known
	} else if err := knowledge.Record(url, anchor); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\\akldef{\n\tkey=%s,\n\tname=%s,\n\turl=%s\n}\n",
		anchor.Key, anchor.Tag, url)
	return nil
}
