package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardBounds(t *testing.T) {
	w := NewWizard(Step{Title: "one"}, Step{Title: "two"}, Step{Title: "three"}, Step{Title: "four"})

	assert.Equal(t, 1, w.Current())
	assert.Equal(t, 4, w.Total())
	assert.False(t, w.Previous())
	assert.Equal(t, 1, w.Current())

	for i := 0; i < 10; i++ {
		require.NoError(t, w.Next())
	}
	assert.Equal(t, 4, w.Current())
	assert.True(t, w.IsLast())

	assert.True(t, w.Previous())
	assert.Equal(t, "three", w.Step().Title)
}

func TestWizardValidationBlocksNext(t *testing.T) {
	valid := false
	w := NewWizard(
		Step{Title: "name", Validate: func() error {
			if !valid {
				return errors.New("name is required")
			}
			return nil
		}},
		Step{Title: "review"},
	)

	assert.EqualError(t, w.Next(), "name is required")
	assert.Equal(t, 1, w.Current())
	assert.Error(t, w.CanSubmit())

	valid = true
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.Current())
	assert.NoError(t, w.CanSubmit())

	valid = false
	assert.ErrorContains(t, w.CanSubmit(), "name is required")
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestWizardModelCreatesTodo(t *testing.T) {
	api := &fakeAPI{}
	var m tea.Model = NewWizardModel(api)

	// blank text does not advance
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.(WizardModel).wizard.Current())
	assert.ErrorIs(t, m.(WizardModel).err, ErrTextRequired)

	m = typeText(m, "plan trip")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.(WizardModel).wizard.Current())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 3, m.(WizardModel).wizard.Current())
	assert.Contains(t, m.View(), "plan trip")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	created := m.(WizardModel).Created()
	require.NotNil(t, created)
	assert.Equal(t, "plan trip", created.Text)
	assert.True(t, created.Completed)
	assert.Equal(t, []string{"create", "update"}, api.calls)
}

func TestWizardModelBackAndCancel(t *testing.T) {
	var m tea.Model = NewWizardModel(&fakeAPI{})
	m = typeText(m, "x")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 2, m.(WizardModel).wizard.Current())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.(WizardModel).wizard.Current())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.(WizardModel).Cancelled())
}

func TestWizardModelRetriesOnlyTheUpdate(t *testing.T) {
	api := &fakeAPI{failUpdate: errors.New("API Error: 500 - boom")}
	var m tea.Model = NewWizardModel(api)

	m = typeText(m, "file taxes")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 3, m.(WizardModel).wizard.Current())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	require.Nil(t, m.(WizardModel).Created())
	assert.ErrorContains(t, m.(WizardModel).err, "todo #1 created but not updated")
	assert.Contains(t, m.View(), "boom")

	api.failUpdate = nil
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	created := m.(WizardModel).Created()
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Completed)
	assert.Len(t, api.todos, 1)
	assert.Equal(t, []string{"create", "update", "update"}, api.calls)
}

func TestWizardWithoutSteps(t *testing.T) {
	w := NewWizard()

	assert.Equal(t, 0, w.Total())
	assert.Empty(t, w.Step().Title)
	assert.Nil(t, w.Step().Validate)
	assert.True(t, w.IsFirst())
	assert.True(t, w.IsLast())
	assert.NoError(t, w.Next())
	assert.False(t, w.Previous())
	assert.ErrorIs(t, w.CanSubmit(), ErrNoSteps)
	assert.Equal(t, "[░░░░] 0/0", w.Progress(4))
}
