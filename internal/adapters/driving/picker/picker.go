// Package picker provides an interactive terminal picker over
// bibliography entries, used by the companion editor tool to choose a
// citation.
package picker

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#2E3440")).
	Background(lipgloss.Color("#8FBCBB")).
	Padding(0, 1)

// item adapts a bibliography entry to the list component.
type item struct {
	entry driven.BibEntry
}

func (i item) Title() string { return i.entry.Key }

func (i item) Description() string {
	desc := i.entry.Title
	if i.entry.Year != "" {
		desc += " (" + i.entry.Year + ")"
	}
	return desc
}

func (i item) FilterValue() string {
	return i.entry.Key + " " + i.entry.Title + " " + i.entry.Authors
}

// Model is the picker's bubbletea model.
type Model struct {
	list   list.Model
	choice *driven.BibEntry
}

// New creates a picker over entries with the given prompt title.
func New(title string, entries []driven.BibEntry) Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = item{entry: entry}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return Model{list: l}
}

// Init initialises the picker.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles selection, cancellation and resizing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Ignore keys while the filter input is capturing them.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(item); ok {
				entry := selected.entry
				m.choice = &entry
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	return m.list.View()
}

// Choice returns the picked entry, if any.
func (m Model) Choice() (driven.BibEntry, bool) {
	if m.choice == nil {
		return driven.BibEntry{}, false
	}
	return *m.choice, true
}

// Pick runs the picker interactively and returns the chosen entry.
// The boolean is false when the user cancelled.
func Pick(title string, entries []driven.BibEntry) (driven.BibEntry, bool, error) {
	final, err := tea.NewProgram(New(title, entries)).Run()
	if err != nil {
		return driven.BibEntry{}, false, err
	}
	model, ok := final.(Model)
	if !ok {
		return driven.BibEntry{}, false, nil
	}
	entry, picked := model.Choice()
	return entry, picked, nil
}
