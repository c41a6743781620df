package cobra

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Options configures the runtime collaborators of a dispatch: the I/O
// streams, the argument source, and the exit sink. Any nil field falls back
// to the process defaults ([os.Stdin], [os.Stdout], [os.Stderr], os.Args[1:]
// and [os.Exit]).
type Options struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Args sources the argument list when Execute is called with nil args.
	Args func() []string

	// Exit receives the final exit code from [CLI.Main].
	Exit func(code int)
}

func fillOptions(opt *Options) *Options {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Args == nil {
		opt.Args = func() []string { return os.Args[1:] }
	}
	if opt.Exit == nil {
		opt.Exit = os.Exit
	}
	return opt
}

// CLI is the root of a command tree plus its dispatch state: the implicit
// persistent help flag and the most recent dispatch outcome.
type CLI struct {
	*Command

	last *State
}

// New creates the root command from a use string. The root always carries a
// persistent boolean --help (-h) flag, inherited by every command in the
// tree.
func New(use string) (*CLI, error) {
	root := &Command{Use: use}
	if root.Name() == "" {
		return nil, ErrMissingUse
	}
	cli := &CLI{Command: root}
	if _, err := root.AddFlag(Flag{
		Type:       BooleanFlag,
		Name:       "help",
		Short:      "h",
		Usage:      "display usage",
		Persistent: true,
	}); err != nil {
		return nil, err
	}
	return cli, nil
}

// LastState returns the outcome of the most recent dispatch: the resolved
// command, its positional arguments, the bound flags, and whether help was
// rendered. It is nil before the first Execute call.
func (c *CLI) LastState() *State {
	return c.last
}

// Execute dispatches an argument list against the command tree and returns
// the exit code. A nil args slice sources the arguments from Options.Args.
//
// Resolution walks the tree by leading tokens, binding applies the resolved
// command's effective flags, a true help flag short-circuits the handler
// with long-form help and code 1, and handler errors are written to the
// error stream and converted to code 1. The only error Execute returns is
// an [AmbiguousCommandError] from resolution; everything else is contained
// in the exit code.
func (c *CLI) Execute(ctx context.Context, args []string, options *Options) (int, error) {
	options = fillOptions(options)
	if args == nil {
		args = options.Args()
	}

	// Everything after a literal "--" bypasses both command matching and
	// flag parsing.
	head := args
	var tail []string
	for i, arg := range args {
		if arg == "--" {
			head = args[:i]
			tail = args[i+1:]
			break
		}
	}

	cmd, leftover, err := c.Command.match(head)
	if err != nil {
		return 1, err
	}

	state := &State{
		Command: cmd,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		Code:    1,
		flags:   cmd.Flags(),
	}
	c.last = state

	bindings, positional, err := bind(cmd, leftover)
	if err != nil {
		fmt.Fprintln(options.Stderr, err)
		return 1, nil
	}
	state.bindings = bindings
	state.Args = append(positional, tail...)

	if helped, _ := Value[bool](state, "help"); helped {
		fmt.Fprintln(options.Stdout, cmd.Help(true))
		state.Helped = true
		return 1, nil
	}

	if cmd.Run == nil {
		fmt.Fprintln(options.Stdout, cmd.Help(false))
		state.Helped = true
		return 1, nil
	}

	code, err := cmd.Run(ctx, state)
	if err != nil {
		fmt.Fprintln(options.Stderr, err)
		if cmd.ShowHelpOnError {
			fmt.Fprintln(options.Stdout, cmd.Help(false))
			state.Helped = true
		}
		return 1, nil
	}
	if code != 0 && cmd.ShowHelpOnError {
		fmt.Fprintln(options.Stdout, cmd.Help(false))
		state.Helped = true
	}
	state.Code = code
	return code, nil
}

// Main dispatches the process arguments and exits with the resulting code.
// A resolution error is reported on the error stream and exits 1.
func (c *CLI) Main(ctx context.Context, options *Options) {
	options = fillOptions(options)
	code, err := c.Execute(ctx, options.Args(), options)
	if err != nil {
		fmt.Fprintln(options.Stderr, err)
		code = 1
	}
	options.Exit(code)
}
