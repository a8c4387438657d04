package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/protocol"
)

var followCmd = &cobra.Command{
	Use:   "follow [akl-uri]",
	Short: "Handle an akl:// command URI",
	Long: `Decodes an akl:// URI and dispatches it. This is the entry point the
desktop's URI-scheme association invokes when a link inside an
annotated derivative is clicked.`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

func init() {
	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	decoded, err := protocol.Decode(args[0])
	if err != nil {
		return err
	}
	return dispatcher.Dispatch(context.Background(), decoded)
}
