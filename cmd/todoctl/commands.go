package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jalexanderII/zero-todo/models"
	"github.com/jalexanderII/zero-todo/tui"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().CheckHealth(cmd.Context())
		if err != nil {
			return err
		}
		ok(cmd.OutOrStdout(), fmt.Sprintf("%s at %s", h.Status, h.Timestamp))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all todos",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		todos, err := newClient().ListTodos(cmd.Context())
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no todos"))
			return nil
		}
		for _, t := range todos {
			printTodo(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Create a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newClient().CreateTodo(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		ok(cmd.OutOrStdout(), fmt.Sprintf("created #%d", t.ID))
		return nil
	},
}

func setCompletedCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c := newClient()
			for _, id := range ids {
				t, err := c.UpdateTodo(cmd.Context(), id, models.UpdateTodoRequest{Completed: &completed})
				if err != nil {
					return fmt.Errorf("todo %d: %w", id, err)
				}
				printTodo(cmd.OutOrStdout(), *t)
			}
			return nil
		},
	}
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>...",
	Short: "Replace the text of a todo",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[:1])
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		t, err := newClient().UpdateTodo(cmd.Context(), ids[0], models.UpdateTodoRequest{Text: &text})
		if err != nil {
			return err
		}
		printTodo(cmd.OutOrStdout(), *t)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete todos",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		c := newClient()
		for _, id := range ids {
			if err := c.DeleteTodo(cmd.Context(), id); err != nil {
				return fmt.Errorf("todo %d: %w", id, err)
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("deleted #%d", id))
		}
		return nil
	},
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse and edit todos interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunList(newClient())
	},
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Create a todo step by step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := tui.RunWizard(newClient())
		if err != nil {
			return err
		}
		if t == nil {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("cancelled"))
			return nil
		}
		ok(cmd.OutOrStdout(), fmt.Sprintf("created #%d", t.ID))
		return nil
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(strings.TrimPrefix(a, "#"), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid todo id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	rootCmd.AddCommand(
		healthCmd,
		listCmd,
		addCmd,
		setCompletedCmd("done", "Mark todos as completed", true),
		setCompletedCmd("undone", "Mark todos as not completed", false),
		editCmd,
		rmCmd,
		uiCmd,
		wizardCmd,
	)
}
