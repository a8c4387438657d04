package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aluminium-labs/akl/internal/adapters/driven/bibliography"
	"github.com/aluminium-labs/akl/internal/adapters/driven/clipboard"
	configfile "github.com/aluminium-labs/akl/internal/adapters/driven/config/file"
	"github.com/aluminium-labs/akl/internal/adapters/driven/fetch"
	"github.com/aluminium-labs/akl/internal/adapters/driven/knowledge"
	"github.com/aluminium-labs/akl/internal/adapters/driven/storage/yamlfile"
	"github.com/aluminium-labs/akl/internal/adapters/driven/viewer"
	"github.com/aluminium-labs/akl/internal/adapters/driving/texcli"
	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/services"
	"github.com/aluminium-labs/akl/internal/rewriter"
)

func main() {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "akltex: loading configuration: %v\n", err)
		os.Exit(1)
	}

	dispatcher := services.NewDispatcher(
		yamlfile.NewLibraryStore(),
		fetch.New(),
		rewriter.New(),
		viewer.NewPlatformDefault(),
		viewer.NewOpener(),
		clipboard.New(),
	)
	sidecar := knowledge.New(filepath.Join(cfg.StorageRoot(), domain.KnowledgeFile))

	texcli.Initialize(dispatcher, bibliography.New(), sidecar, cfg)
	if err := texcli.Execute(); err != nil {
		os.Exit(1)
	}
}
