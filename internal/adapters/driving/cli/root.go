// Package cli implements the akl command-line interface. Commands are
// registered against the root command in their files' init functions;
// the services they drive are injected once through Initialize.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/core/ports/driving"
	"github.com/aluminium-labs/akl/internal/logger"
)

// version is the build version, overridable at link time.
var version = "dev"

// Injected services. Nil until Initialize runs; commands guard
// against that so tests can exercise argument handling in isolation.
var (
	dispatcher  driving.Dispatcher
	configStore driven.ConfigStore
)

// Persistent flags.
var (
	verbose     bool
	storageRoot string
)

var rootCmd = &cobra.Command{
	Use:   "akl",
	Short: "Personal document archive",
	Long: `akl keeps an archive of documents under a single storage root,
addresses them by content and identifier, and opens annotated
derivatives whose links route back through akl itself.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storageRoot, "storage", "", "Storage root (defaults to the configured one)")
}

// Initialize wires the services the commands drive.
func Initialize(d driving.Dispatcher, cfg driven.ConfigStore) {
	dispatcher = d
	configStore = cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveStorageRoot applies the precedence flag, then configuration,
// then the conventional location under the home directory.
func resolveStorageRoot() string {
	if storageRoot != "" {
		return storageRoot
	}
	if configStore != nil {
		if root := configStore.GetString("storage.root"); root != "" {
			return root
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "akl"
	}
	return filepath.Join(home, "Documents", "akl")
}
