// Package cli maps todo subcommands onto the task store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/exitcode"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
	"github.com/idilsaglam/tasklist/internal/task"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Options carries the output streams of one invocation.
type Options struct {
	Out io.Writer
	Err io.Writer
}

// exitError carries an exit code out of a command. A nil err means the
// command already reported the failure itself.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func fail(err error) error { return &exitError{code: exitcode.Failure, err: err} }

// app is the per-invocation state shared by the subcommands.
type app struct {
	opts  Options
	file  string
	debug bool

	out    ui.Styles
	errOut ui.Styles
	log    *log.Logger
	store  *jsonstore.Store
}

// Run executes the command line and returns the process exit code:
// 0 ok, 1 failure, 2 usage.
func Run(args []string, opts Options) int {
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	root := NewRootCmd(opts)
	root.SetArgs(negativeIDs(args))

	cmd, err := root.ExecuteC()
	if err == nil {
		return exitcode.Success
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(opts.Err, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	// Anything else came from argument parsing.
	fmt.Fprintf(opts.Err, "Error: %v\n", err)
	fmt.Fprint(opts.Err, cmd.UsageString())
	return exitcode.Usage
}

var negativeInt = regexp.MustCompile(`^-[0-9]+$`)

// negativeIDs ends flag parsing before the first bare negative integer so
// that "complete -1" reaches the command as an id instead of an unknown
// shorthand flag. Values of flags that take an argument are left alone.
func negativeIDs(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if !negativeInt.MatchString(arg) {
			continue
		}
		if i > 0 && (args[i-1] == "--file" || args[i-1] == "--format") {
			continue
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "--")
		return append(out, args[i:]...)
	}
	return args
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	a := &app{
		opts:   opts,
		out:    ui.NewStyles(opts.Out),
		errOut: ui.NewStyles(opts.Err),
	}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Simple TODO CLI",
		Long: `todo keeps a list of short text tasks in a JSON file.

The file is --file if given, else $` + config.EnvFile + `, else the "file" key of
` + config.ProjectConfigFile + ` or ~/.config/todo/` + config.UserConfigFile + `, else ` + config.DefaultFileName + ` in the
current directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("a command is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&a.file, "file", "", "path to tasks JSON file (default: tasks.json in current directory)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "print debug diagnostics to stderr")

	root.AddCommand(
		a.newAddCmd(),
		a.newListCmd(),
		a.newCompleteCmd(),
		a.newRemoveCmd(),
	)
	return root
}

// open resolves the task file and prepares the store. It runs once per
// invocation, from inside the subcommand.
func (a *app) open() error {
	a.log = logging.New(a.opts.Err, logging.Options{Debug: a.debug})

	cfg, err := config.Resolve(a.file)
	if err != nil {
		return fail(err)
	}
	a.log.Debug("resolved task file", "file", cfg.File, "source", cfg.Source, "config", cfg.ConfigPath)

	a.store = jsonstore.New(cfg.File, a.log)
	return nil
}

// load opens the store and reads the current list.
func (a *app) load() (task.List, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	list, err := a.store.Load()
	if err != nil {
		return nil, fail(fmt.Errorf("load: %w", err))
	}
	return list, nil
}

func (a *app) save(list task.List) error {
	if err := a.store.Save(list); err != nil {
		return fail(fmt.Errorf("save: %w", err))
	}
	return nil
}

// notFound reports an unknown id on stderr and fails without a message.
func (a *app) notFound(id int) error {
	fmt.Fprintln(a.opts.Err, a.errOut.Error.Render(fmt.Sprintf("Task %d not found.", id)))
	return &exitError{code: exitcode.Failure}
}
