// Package viewer launches external document viewers. The viewer
// strategy is resolved once at process start: an explicitly configured
// command wins, otherwise the platform's conventional viewer is used.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Ensure CommandViewer implements the interface.
var _ driven.Viewer = (*CommandViewer)(nil)

// CommandViewer shows documents by spawning a viewer process. The
// navigation argument shape differs per viewer, so it is captured in
// two small builder functions.
type CommandViewer struct {
	command  string
	baseArgs []string
	pageArgs func(page int) []string
	destArgs func(dest string) []string
}

// NewConfigured creates a viewer around an explicitly configured
// command with conventional flag-then-value navigation arguments.
// Empty flags disable the corresponding navigation.
func NewConfigured(command, pageFlag, destFlag string) *CommandViewer {
	v := &CommandViewer{command: command}
	if pageFlag != "" {
		// Viewers number pages from one; stored indexes are zero-based.
		v.pageArgs = func(page int) []string {
			return []string{pageFlag, fmt.Sprintf("%d", page+1)}
		}
	}
	if destFlag != "" {
		v.destArgs = func(dest string) []string {
			return []string{destFlag, dest}
		}
	}
	return v
}

// NewPlatformDefault creates the conventional viewer for the running
// platform: zathura on linux, Skim on darwin, Acrobat Reader on
// windows. Platforms without a convention get a nil command, which
// Show turns into a default-handler open.
func NewPlatformDefault() *CommandViewer {
	switch runtime.GOOS {
	case "linux":
		return &CommandViewer{
			command: "zathura",
			pageArgs: func(page int) []string {
				return []string{"--page", fmt.Sprintf("%d", page+1)}
			},
		}
	case "darwin":
		return &CommandViewer{
			command:  "open",
			baseArgs: []string{"-a", "Skim"},
		}
	case "windows":
		return &CommandViewer{
			command: "AcroRd32.exe",
			pageArgs: func(page int) []string {
				return []string{"/A", fmt.Sprintf("page=%d", page+1)}
			},
			destArgs: func(dest string) []string {
				return []string{"/A", "nameddest=" + dest}
			},
		}
	default:
		return &CommandViewer{}
	}
}

// Show runs the viewer on path and waits for it to exit, so callers
// treat viewing as a suspension point. A destination takes priority
// over a page; viewers without a matching argument builder get a plain
// open.
func (v *CommandViewer) Show(path string, dest *string, page *int) error {
	if v.command == "" {
		return openDefault(path)
	}

	args := append([]string{}, v.baseArgs...)
	switch {
	case dest != nil && v.destArgs != nil:
		args = append(args, v.destArgs(*dest)...)
	case page != nil && v.pageArgs != nil:
		args = append(args, v.pageArgs(*page)...)
	}
	args = append(args, path)

	logger.Debug("showing %s via %s %v", path, v.command, args)
	return exec.Command(v.command, args...).Run()
}

// DefaultOpener hands references to the operating system's default
// handler.
type DefaultOpener struct{}

// Ensure DefaultOpener implements the interface.
var _ driven.Opener = (*DefaultOpener)(nil)

// NewOpener creates the system default opener.
func NewOpener() *DefaultOpener {
	return &DefaultOpener{}
}

// OpenDefault opens a URL or path using the system default handler.
func (o *DefaultOpener) OpenDefault(reference string) error {
	logger.Debug("delegating %s to system handler", reference)
	return openDefault(reference)
}

func openDefault(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
