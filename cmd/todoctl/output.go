package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jalexanderII/zero-todo/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}

func printTodo(w io.Writer, t models.Todo) {
	box, text := "☐", t.Text
	if t.Completed {
		box, text = successStyle.Render("☑"), doneStyle.Render(t.Text)
	}
	fmt.Fprintf(w, "%s %s %s\n", mutedStyle.Render(fmt.Sprintf("%4d", t.ID)), box, text)
}
