package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jalexanderII/zero-todo/models"
)

// Step is one page of a Wizard. Validate, when set, must pass before the
// wizard moves past the step.
type Step struct {
	Title    string
	Validate func() error
}

var ErrNoSteps = errors.New("wizard has no steps")

// Wizard walks through its steps in order. Steps are numbered from 1; an
// empty wizard sits on step 0.
type Wizard struct {
	steps   []Step
	current int
}

func NewWizard(steps ...Step) *Wizard {
	w := &Wizard{steps: steps}
	if len(steps) > 0 {
		w.current = 1
	}
	return w
}

func (w *Wizard) Current() int { return w.current }

func (w *Wizard) Total() int { return len(w.steps) }

func (w *Wizard) Step() Step {
	if w.current == 0 {
		return Step{}
	}
	return w.steps[w.current-1]
}

func (w *Wizard) IsFirst() bool { return w.current <= 1 }

func (w *Wizard) IsLast() bool { return w.current == len(w.steps) }

// Next validates the current step and moves forward. On the last step it
// only validates.
func (w *Wizard) Next() error {
	if v := w.Step().Validate; v != nil {
		if err := v(); err != nil {
			return err
		}
	}
	if !w.IsLast() {
		w.current++
	}
	return nil
}

// Previous moves back one step and reports whether it moved.
func (w *Wizard) Previous() bool {
	if w.IsFirst() {
		return false
	}
	w.current--
	return true
}

// CanSubmit runs every step's validation. Submitting is only offered on the last step.
func (w *Wizard) CanSubmit() error {
	if len(w.steps) == 0 {
		return ErrNoSteps
	}
	if !w.IsLast() {
		return fmt.Errorf("step %d of %d: finish the remaining steps first", w.current, len(w.steps))
	}
	for i, s := range w.steps {
		if s.Validate == nil {
			continue
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Title, err)
		}
	}
	return nil
}

func (w *Wizard) Progress(width int) string {
	return progressBar(w.current, len(w.steps), width)
}

var ErrTextRequired = errors.New("text is required")

// NewTodoForm is what the new-todo wizard collects.
type NewTodoForm struct {
	Text      string
	Completed bool
}

type wizardSubmittedMsg struct{ todo models.Todo }

// wizardPartialMsg reports a todo that was created but whose follow-up
// update failed.
type wizardPartialMsg struct {
	todo models.Todo
	err  error
}

// WizardModel creates one todo in three steps: text, details, review.
type WizardModel struct {
	api    TodoAPI
	form   *NewTodoForm
	wizard *Wizard
	ti     textinput.Model

	submitting bool
	draft      *models.Todo
	created    *models.Todo
	err        error
	cancelled  bool
}

func NewWizardModel(api TodoAPI) WizardModel {
	form := &NewTodoForm{}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the task"
	ti.CharLimit = 200
	ti.Focus()

	w := NewWizard(
		Step{Title: "Basic Information", Validate: func() error {
			if strings.TrimSpace(form.Text) == "" {
				return ErrTextRequired
			}
			return nil
		}},
		Step{Title: "Details"},
		Step{Title: "Review & Confirm"},
	)
	return WizardModel{api: api, form: form, wizard: w, ti: ti}
}

// Created is the todo returned by the server once the wizard has submitted.
func (m WizardModel) Created() *models.Todo { return m.created }

func (m WizardModel) Cancelled() bool { return m.cancelled }

func (m WizardModel) Init() tea.Cmd { return textinput.Blink }

func (m WizardModel) submit() tea.Cmd {
	api := m.api
	form := *m.form
	draft := m.draft
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		text := strings.TrimSpace(form.Text)
		todo := draft
		if todo == nil {
			var err error
			todo, err = api.CreateTodo(ctx, text)
			if err != nil {
				return errMsg{err}
			}
		}
		// new todos always start open, completion is a follow-up update
		var req models.UpdateTodoRequest
		if form.Completed != todo.Completed {
			req.Completed = &form.Completed
		}
		if text != todo.Text {
			req.Text = &text
		}
		if req.Completed != nil || req.Text != nil {
			updated, err := api.UpdateTodo(ctx, todo.ID, req)
			if err != nil {
				return wizardPartialMsg{todo: *todo, err: err}
			}
			todo = updated
		}
		return wizardSubmittedMsg{*todo}
	}
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardSubmittedMsg:
		m.submitting = false
		m.created = &msg.todo
		return m, tea.Quit
	case wizardPartialMsg:
		m.submitting = false
		m.draft = &msg.todo
		m.err = fmt.Errorf("todo #%d created but not updated: %w", msg.todo.ID, msg.err)
		return m, nil
	case errMsg:
		m.submitting = false
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter, tea.KeyTab:
			return m.next()
		case tea.KeyShiftTab, tea.KeyEsc:
			if !m.wizard.Previous() && msg.Type == tea.KeyEsc {
				m.cancelled = true
				return m, tea.Quit
			}
			m.err = nil
			if m.wizard.Current() == 1 {
				return m, m.ti.Focus()
			}
			return m, nil
		}

		switch m.wizard.Current() {
		case 1:
			var cmd tea.Cmd
			m.ti, cmd = m.ti.Update(msg)
			m.form.Text = m.ti.Value()
			return m, cmd
		case 2:
			switch msg.String() {
			case " ", "x":
				m.form.Completed = !m.form.Completed
			case "y":
				m.form.Completed = true
			case "n":
				m.form.Completed = false
			}
		}
	}
	return m, nil
}

func (m WizardModel) next() (tea.Model, tea.Cmd) {
	if m.wizard.IsLast() {
		if err := m.wizard.CanSubmit(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.submitting = true
		return m, m.submit()
	}
	if err := m.wizard.Next(); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.ti.Blur()
	return m, nil
}

func (m WizardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New todo") + "\n")
	b.WriteString(accentStyle.Render(m.wizard.Progress(24)) + "\n")
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(fmt.Sprintf("Step %d of %d", m.wizard.Current(), m.wizard.Total())))

	var body strings.Builder
	fmt.Fprintf(&body, "Step %d: %s\n\n", m.wizard.Current(), m.wizard.Step().Title)
	switch m.wizard.Current() {
	case 1:
		body.WriteString(m.ti.View())
	case 2:
		box := boxUnchecked
		if m.form.Completed {
			box = boxChecked
		}
		fmt.Fprintf(&body, "%s already done (space to toggle)", box)
	case 3:
		fmt.Fprintf(&body, "Text:      %s\nCompleted: %t", strings.TrimSpace(m.form.Text), m.form.Completed)
	}
	b.WriteString(panelStyle.Render(body.String()) + "\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("✖ "+m.err.Error()) + "\n")
	}
	if m.submitting {
		b.WriteString(mutedStyle.Render("Submitting...") + "\n")
	}

	nextLabel := "enter next"
	if m.wizard.IsLast() {
		nextLabel = "enter submit"
	}
	b.WriteString(helpStyle.Render(nextLabel + " • shift+tab previous • esc back/cancel"))
	return b.String()
}

// RunWizard runs the new-todo wizard and returns the created todo, or nil
// when the user cancelled.
func RunWizard(api TodoAPI) (*models.Todo, error) {
	final, err := tea.NewProgram(NewWizardModel(api)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard model %T", final)
	}
	if m.created == nil && m.draft != nil {
		// created on the server, the follow-up update never went through
		return m.draft, m.err
	}
	if m.err != nil && m.created == nil && !m.cancelled {
		return nil, m.err
	}
	return m.created, nil
}
