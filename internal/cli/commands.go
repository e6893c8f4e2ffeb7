package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasklist/internal/task"
	"github.com/idilsaglam/tasklist/internal/tui"
)

// idArg accepts exactly one integer task id.
func idArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("invalid task id: %q", args[0])
	}
	return nil
}

func parseID(args []string) int {
	id, _ := strconv.Atoi(args[0]) // checked by idArg
	return id
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add DESCRIPTION",
		Short: "Add a new task",
		Long:  "Add a new task. Wrap the description in quotes if it has spaces; bare words are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")

			list, err := a.load()
			if err != nil {
				return err
			}
			list, t := list.Add(desc)
			if err := a.save(list); err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Out, "Added task %d: %s\n", t.ID, t.Desc)
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var (
		format      string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			list, err := a.load()
			if err != nil {
				return err
			}
			if interactive {
				return a.runInteractive(list)
			}
			if err := writeList(a.opts.Out, a.out, list, f); err != nil {
				return fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(formatText), "output format: text, json or yaml")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse and edit tasks in a terminal UI")
	return cmd
}

// runInteractive starts the TUI and persists the list when it changed.
func (a *app) runInteractive(list task.List) error {
	res, err := tui.Run(list)
	if err != nil {
		return fail(fmt.Errorf("interactive: %w", err))
	}
	if !res.Changed {
		return nil
	}
	if err := a.save(res.List); err != nil {
		return err
	}
	fmt.Fprintf(a.opts.Out, "%s saved %d tasks\n", a.out.Success.Render("✔"), len(res.List))
	return nil
}

func (a *app) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a task as completed",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := parseID(args)

			list, err := a.load()
			if err != nil {
				return err
			}
			switch err := list.Complete(id); {
			case errors.Is(err, task.ErrNotFound):
				return a.notFound(id)
			case errors.Is(err, task.ErrAlreadyCompleted):
				fmt.Fprintf(a.opts.Out, "Task %d is already completed.\n", id)
				return nil
			}
			if err := a.save(list); err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Out, "Marked task %d as completed.\n", id)
			return nil
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := parseID(args)

			list, err := a.load()
			if err != nil {
				return err
			}
			list, removed := list.Remove(id)
			if !removed {
				return a.notFound(id)
			}
			if err := a.save(list); err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Out, "Removed task %d.\n", id)
			return nil
		},
	}
}
