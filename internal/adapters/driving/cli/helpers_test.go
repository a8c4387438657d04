package cli

import (
	"bytes"
	"context"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driving"
)

// fakeDispatcher records the last call of each operation.
type fakeDispatcher struct {
	dispatched domain.Command
	opened     *domain.OpenCommand
	imported   *domain.ImportCommand
	cited      *domain.CiteCommand
	err        error
}

var _ driving.Dispatcher = (*fakeDispatcher)(nil)

func (f *fakeDispatcher) Dispatch(_ context.Context, cmd domain.Command) error {
	f.dispatched = cmd
	return f.err
}

func (f *fakeDispatcher) Open(_ context.Context, cmd domain.OpenCommand) error {
	f.opened = &cmd
	return f.err
}

func (f *fakeDispatcher) Import(_ context.Context, cmd domain.ImportCommand) (*domain.Record, error) {
	f.imported = &cmd
	if f.err != nil {
		return nil, f.err
	}
	rec := cmd.Record
	rec.Filename = "XX 2020 title abc"
	return &rec, nil
}

func (f *fakeDispatcher) Cite(_ context.Context, cmd domain.CiteCommand) error {
	f.cited = &cmd
	return f.err
}

func (f *fakeDispatcher) ResolvePath(_ context.Context, reference, storageRoot string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return storageRoot + "/edit/" + reference, nil
}

func (f *fakeDispatcher) List(_ context.Context, storageRoot string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{storageRoot + "/edit/a", storageRoot + "/edit/b"}, nil
}

func (f *fakeDispatcher) Convert(_ context.Context, source, output, storageRoot string) error {
	return f.err
}

// setupTestServices injects a fake dispatcher and returns it together
// with a cleanup restoring the previous wiring and flag state.
func setupTestServices() (*fakeDispatcher, func()) {
	oldDispatcher := dispatcher
	oldConfig := configStore
	oldStorage := storageRoot

	fake := &fakeDispatcher{}
	dispatcher = fake

	return fake, func() {
		dispatcher = oldDispatcher
		configStore = oldConfig
		storageRoot = oldStorage
		openDest = ""
		openPage = -1
		citeDest = ""
		citePage = 0
		importTitle = ""
		importAuthors = nil
		importYear = ""
		importPublisher = ""
		importIDs = nil
	}
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
