package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jalexanderII/zero-todo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds msg to m and then every message its command produces.
func run(m tea.Model, msg tea.Msg) tea.Model {
	m, cmd := m.Update(msg)
	if cmd != nil {
		if next := cmd(); next != nil {
			m, _ = m.Update(next)
		}
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListModelLoadsOnInit(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "one"}, {ID: 2, Text: "two", Completed: true}}, nextID: 2}
	m := NewListModel(api)

	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	lm := model.(ListModel)
	require.Len(t, lm.Todos(), 2)
	assert.Contains(t, lm.View(), "one")
	assert.Equal(t, []string{"list"}, api.calls)
}

func TestListModelAddToggleDelete(t *testing.T) {
	api := &fakeAPI{}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	model, _ = model.Update(keyPress("a"))
	model = typeText(model, "new thing")
	model = run(model, keyPress("enter"))

	lm := model.(ListModel)
	require.Len(t, lm.Todos(), 1)
	assert.Equal(t, "new thing", lm.Todos()[0].Text)

	model = run(model, keyPress(" "))
	assert.True(t, model.(ListModel).Todos()[0].Completed)

	model = run(model, keyPress("d"))
	assert.Empty(t, model.(ListModel).Todos())
	assert.Equal(t, []string{"list", "create", "update", "delete"}, api.calls)
}

func TestListModelEdit(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "old"}}, nextID: 1}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	model, _ = model.Update(keyPress("e"))
	for range "old" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	model = typeText(model, "new")
	model = run(model, keyPress("enter"))

	assert.Equal(t, "new", model.(ListModel).Todos()[0].Text)
}

func TestListModelKeepsStateOnError(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "one"}}, nextID: 1}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	api.fail = errors.New("API Error: 500 - boom")
	model = run(model, keyPress(" "))

	lm := model.(ListModel)
	assert.False(t, lm.Todos()[0].Completed)
	assert.EqualError(t, lm.Err(), "API Error: 500 - boom")
	assert.Contains(t, lm.View(), "boom")
}

func TestListModelBlankInput(t *testing.T) {
	api := &fakeAPI{}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	model, _ = model.Update(keyPress("a"))
	model, cmd := model.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Error(t, model.(ListModel).Err())
	assert.Equal(t, []string{"list"}, api.calls)
}

func TestListModelEditKeepsTargetAcrossReload(t *testing.T) {
	todos := []models.Todo{{ID: 1, Text: "one"}, {ID: 2, Text: "two"}, {ID: 3, Text: "three"}}
	api := &fakeAPI{todos: append([]models.Todo(nil), todos...), nextID: 3}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	model, _ = model.Update(keyPress("j"))
	model, _ = model.Update(keyPress("j"))
	model, _ = model.Update(keyPress("e"))
	model = typeText(model, "!")

	// a reload lands while typing and shifts the rows under the cursor
	model, _ = model.Update(todosLoadedMsg{append([]models.Todo{{ID: 9, Text: "elsewhere"}}, todos...)})
	model = run(model, keyPress("enter"))

	lm := model.(ListModel)
	require.NoError(t, lm.Err())
	assert.Equal(t, "three!", lm.Todos()[3].Text)
	assert.Equal(t, "two", lm.Todos()[2].Text)
}

func TestListModelEditOfDeletedTodo(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "one"}, {ID: 2, Text: "two"}}, nextID: 2}
	m := NewListModel(api)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())

	model, _ = model.Update(keyPress("j"))
	model, _ = model.Update(keyPress("e"))
	model, _ = model.Update(todoDeletedMsg{id: 2})
	model, cmd := model.Update(keyPress("enter"))

	assert.Nil(t, cmd)
	assert.EqualError(t, model.(ListModel).Err(), "todo #2 no longer exists")
	assert.Equal(t, "one", model.(ListModel).Todos()[0].Text)
	assert.Equal(t, []string{"list"}, api.calls)
}
