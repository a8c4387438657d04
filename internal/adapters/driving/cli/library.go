package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [reference]",
	Short: "Print the derivative path a reference resolves to",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every record's derivative path",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var convertCmd = &cobra.Command{
	Use:   "convert [source] [output]",
	Short: "Rewrite a document into an explicit output path",
	Long: `Builds the annotated derivative of a local document at the given
output path without importing it into the library.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(convertCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	path, err := dispatcher.ResolvePath(context.Background(), args[0], resolveStorageRoot())
	if err != nil {
		return err
	}
	cmd.Println(path)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	paths, err := dispatcher.List(context.Background(), resolveStorageRoot())
	if err != nil {
		return err
	}
	for _, path := range paths {
		cmd.Println(path)
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	return dispatcher.Convert(context.Background(), args[0], args[1], resolveStorageRoot())
}
