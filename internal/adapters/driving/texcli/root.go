// Package texcli implements akltex, the editor companion tool: it
// discovers bibliography entries under a TeX project, lets the user
// pick one interactively and feeds the choice back to the editor or to
// the archive.
package texcli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aluminium-labs/akl/internal/adapters/driving/picker"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/core/ports/driving"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Injected services. Nil until Initialize runs.
var (
	dispatcher   driving.Dispatcher
	bibliography driven.Bibliography
	knowledge    driven.KnowledgeStore
	configStore  driven.ConfigStore
)

// pick runs the interactive picker; tests substitute it.
var pick = picker.Pick

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "akltex",
	Short:        "Citation companion for TeX editing",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Initialize wires the services the commands drive.
func Initialize(d driving.Dispatcher, bib driven.Bibliography, know driven.KnowledgeStore, cfg driven.ConfigStore) {
	dispatcher = d
	bibliography = bib
	knowledge = know
	configStore = cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveStorageRoot applies the precedence configuration, then the
// conventional location under the home directory, mirroring the akl
// command so both binaries address the same archive.
func resolveStorageRoot() string {
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
