package main

import (
	"fmt"
	"os"

	"github.com/aluminium-labs/akl/internal/adapters/driven/clipboard"
	configfile "github.com/aluminium-labs/akl/internal/adapters/driven/config/file"
	"github.com/aluminium-labs/akl/internal/adapters/driven/fetch"
	"github.com/aluminium-labs/akl/internal/adapters/driven/storage/yamlfile"
	"github.com/aluminium-labs/akl/internal/adapters/driven/viewer"
	"github.com/aluminium-labs/akl/internal/adapters/driving/cli"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/core/services"
	"github.com/aluminium-labs/akl/internal/rewriter"
)

func main() {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "akl: loading configuration: %v\n", err)
		os.Exit(1)
	}

	var view driven.Viewer
	if command := cfg.GetString(configfile.KeyViewerCommand); command != "" {
		view = viewer.NewConfigured(
			command,
			cfg.GetString(configfile.KeyViewerPageFlag),
			cfg.GetString(configfile.KeyViewerDestFlag),
		)
	} else {
		view = viewer.NewPlatformDefault()
	}

	dispatcher := services.NewDispatcher(
		yamlfile.NewLibraryStore(),
		fetch.New(),
		rewriter.New(),
		view,
		viewer.NewOpener(),
		clipboard.New(),
	)

	cli.Initialize(dispatcher, cfg)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
