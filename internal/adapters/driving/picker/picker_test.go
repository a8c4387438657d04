package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

func entries() []driven.BibEntry {
	return []driven.BibEntry{
		{Key: "smith2020", Title: "A Great Result", Year: "2020"},
		{Key: "doe2019", Title: "Another Result", Year: "2019"},
	}
}

func TestItem_Rendering(t *testing.T) {
	i := item{entry: entries()[0]}

	assert.Equal(t, "smith2020", i.Title())
	assert.Equal(t, "A Great Result (2020)", i.Description())
	assert.Contains(t, i.FilterValue(), "smith2020")
	assert.Contains(t, i.FilterValue(), "A Great Result")
}

func TestModel_EnterSelectsCurrentItem(t *testing.T) {
	m := New("Pick a citation", entries())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(Model)
	require.True(t, ok)

	entry, picked := model.Choice()
	require.True(t, picked)
	assert.Equal(t, "smith2020", entry.Key)
	require.NotNil(t, cmd)
}

func TestModel_EscapeCancels(t *testing.T) {
	m := New("Pick a citation", entries())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, ok := updated.(Model)
	require.True(t, ok)

	_, picked := model.Choice()
	assert.False(t, picked)
	require.NotNil(t, cmd)
}

func TestModel_NavigationChangesSelection(t *testing.T) {
	m := New("Pick a citation", entries())
	m.list.SetSize(80, 24)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model := updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	entry, picked := model.Choice()
	require.True(t, picked)
	assert.Equal(t, "doe2019", entry.Key)
}
