package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/actions"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/storage"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/todo"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newProvider(t *testing.T, seed ...string) (*actions.Provider, storage.Backend) {
	t.Helper()
	backend := storage.NewMemory()
	p := actions.Provide(todo.NewStore(nil), jsonstore.New(backend, nil), jsonstore.DefaultKey, nil)
	for i := len(seed) - 1; i >= 0; i-- {
		p.Add(model.Draft{Text: seed[i]})
	}
	return p, backend
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_ShowsHydratedItems(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "first", "second")
	m := New(p, p)
	require.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "first")
	assert.Contains(t, m.View(), "second")
}

func TestModel_ToggleAndDeletePersist(t *testing.T) {
	t.Parallel()

	p, backend := newProvider(t, "first", "second")
	m := New(p, p)

	m = send(t, m, space)
	assert.True(t, p.Todos()[0].Completed)

	m = send(t, m, runes("d"))
	require.Len(t, p.Todos(), 1)
	assert.Equal(t, "second", p.Todos()[0].Text)
	assert.Len(t, m.list.Items(), 1)

	persisted := jsonstore.New(backend, nil).Read(jsonstore.DefaultKey)
	assert.Equal(t, p.Todos(), persisted)
}

func TestModel_Add(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "old")
	m := New(p, p)

	m = send(t, m, runes("a"))
	require.True(t, m.adding)

	m = send(t, m, enter)
	assert.True(t, m.adding)
	assert.NotEmpty(t, m.inputErr)

	m.ti.SetValue("  buy milk ")
	m = send(t, m, enter)
	assert.False(t, m.adding)

	todos := p.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "buy milk", todos[0].Text)
	assert.Equal(t, 0, m.list.Index())
}

func TestModel_Edit(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "typo")
	id := p.Todos()[0].ID
	p.ToggleComplete(id)
	m := New(p, p)

	m = send(t, m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "typo", m.ti.Value())

	m.ti.SetValue("fixed")
	send(t, m, enter)

	assert.Equal(t, model.Collection{{ID: id, Text: "fixed", Completed: true}}, p.Todos())
}

func TestModel_EscCancelsInput(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "keep")
	m := New(p, p)
	m = send(t, m, runes("a"))
	m.ti.SetValue("discard me")
	m = send(t, m, esc)

	assert.False(t, m.adding)
	assert.Len(t, p.Todos(), 1)
}

func TestModel_EmptyListKeysAreNoops(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t)
	m := New(p, p)
	m = send(t, m, space, runes("d"), runes("e"))
	assert.False(t, m.editing)
	assert.Empty(t, p.Todos())
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t)
	_, cmd := New(p, p).Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "a")
	m := send(t, New(p, p), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.list.Width())
}

func TestModel_EscClearsAppliedFilter(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, "alpha", "beta")
	m := New(p, p)
	m.list.SetFilterText("al")
	require.Equal(t, list.FilterApplied, m.list.FilterState())

	next, cmd := m.Update(esc)
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, list.Unfiltered, m.list.FilterState())
	assert.Len(t, m.list.VisibleItems(), 2)

	_, cmd = m.Update(esc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
