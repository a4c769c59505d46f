package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jalexanderII/zero-todo/models"
)

// TodoAPI is the part of the API client the terminal views need.
type TodoAPI interface {
	ListTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, text string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

const requestTimeout = 10 * time.Second

type (
	todosLoadedMsg struct{ todos []models.Todo }
	todoSavedMsg   struct{ todo models.Todo }
	todoDeletedMsg struct{ id int64 }
	errMsg         struct{ err error }
)

type listMode int

const (
	browsing listMode = iota
	adding
	editing
)

type listKeyMap struct {
	Up, Down, Add, Edit, Toggle, Delete, Reload, Quit key.Binding
}

var listKeys = listKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ListModel shows the todos and sends every change to the API. Local state
// is only touched once the server has answered.
type ListModel struct {
	api     TodoAPI
	todos   TodoList
	cursor  int
	mode    listMode
	editID  int64
	ti      textinput.Model
	loading bool
	err     error
}

func NewListModel(api TodoAPI) ListModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	return ListModel{api: api, ti: ti, loading: true}
}

// Todos returns the current local copy.
func (m ListModel) Todos() []models.Todo { return m.todos.Items }

func (m ListModel) Err() error { return m.err }

// Init fetches the list once.
func (m ListModel) Init() tea.Cmd {
	return m.load()
}

func (m ListModel) load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todos, err := api.ListTodos(ctx)
		if err != nil {
			return errMsg{err}
		}
		return todosLoadedMsg{todos}
	}
}

func (m ListModel) create(text string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todo, err := api.CreateTodo(ctx, text)
		if err != nil {
			return errMsg{err}
		}
		return todoSavedMsg{*todo}
	}
}

func (m ListModel) update(id int64, req models.UpdateTodoRequest) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todo, err := api.UpdateTodo(ctx, id, req)
		if err != nil {
			return errMsg{err}
		}
		return todoSavedMsg{*todo}
	}
}

func (m ListModel) remove(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.DeleteTodo(ctx, id); err != nil {
			return errMsg{err}
		}
		return todoDeletedMsg{id}
	}
}

func (m ListModel) selected() (models.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos.Items) {
		return models.Todo{}, false
	}
	return m.todos.Items[m.cursor], true
}

func (m *ListModel) clampCursor() {
	if m.cursor >= len(m.todos.Items) {
		m.cursor = len(m.todos.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		m.err = nil
		m.todos.Replace(msg.todos)
		m.clampCursor()
		return m, nil
	case todoSavedMsg:
		m.err = nil
		m.todos.Upsert(msg.todo)
		return m, nil
	case todoDeletedMsg:
		m.err = nil
		m.todos.Remove(msg.id)
		m.clampCursor()
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if m.mode != browsing {
			return m.updateInput(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m ListModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.cursor < len(m.todos.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, listKeys.Add):
		m.mode = adding
		m.ti.SetValue("")
		return m, m.ti.Focus()
	case key.Matches(msg, listKeys.Edit):
		if t, ok := m.selected(); ok {
			m.mode = editing
			m.editID = t.ID
			m.ti.SetValue(t.Text)
			m.ti.CursorEnd()
			return m, m.ti.Focus()
		}
	case key.Matches(msg, listKeys.Toggle):
		if t, ok := m.selected(); ok {
			completed := !t.Completed
			return m, m.update(t.ID, models.UpdateTodoRequest{Completed: &completed})
		}
	case key.Matches(msg, listKeys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.remove(t.ID)
		}
	case key.Matches(msg, listKeys.Reload):
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m ListModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = browsing
		m.ti.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.ti.Value())
		if text == "" {
			m.err = fmt.Errorf("text is required")
			return m, nil
		}
		mode := m.mode
		m.mode = browsing
		m.ti.Blur()
		if mode == adding {
			return m, m.create(text)
		}
		// the cursor may have moved under a reload, the edit still targets its todo
		if m.todos.Index(m.editID) < 0 {
			m.err = fmt.Errorf("todo #%d no longer exists", m.editID)
			return m, nil
		}
		return m, m.update(m.editID, models.UpdateTodoRequest{Text: &text})
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m ListModel) View() string {
	var b strings.Builder

	done, pending := m.todos.Stats()
	fmt.Fprintf(&b, "%s   %s %d  %s %d  %s %d\n\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(m.todos.Items),
	)

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	case len(m.todos.Items) == 0:
		b.WriteString(mutedStyle.Render("Nothing to do. Press a to add a todo.") + "\n")
	}

	for i, t := range m.todos.Items {
		box, text := mutedStyle.Render(boxUnchecked), t.Text
		if t.Completed {
			box, text = successStyle.Render(boxChecked), doneStyle.Render(t.Text)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render(">") + " "
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}

	if m.mode != browsing {
		b.WriteString("\n" + m.ti.View() + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("✖ "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(progressBar(done, len(m.todos.Items), 28)))
	b.WriteString("\n" + helpStyle.Render("a add • e edit • space toggle • d delete • r reload • q quit"))
	return b.String()
}

// RunList starts the interactive list until the user quits.
func RunList(api TodoAPI) error {
	_, err := tea.NewProgram(NewListModel(api), tea.WithAltScreen()).Run()
	return err
}
