package cobra

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingUse is returned when a command is built with an empty use string.
var ErrMissingUse = errors.New("command has no use string")

// DuplicateCommandError is returned by [Command.AddCommand] when a sibling
// command with the same name already exists.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("duplicate command %q", e.Name)
}

// FlagConflictError is returned by [Command.AddFlag] when the new flag shares
// a name or short name with a flag already visible from that command, either
// its own or one declared on an ancestor.
type FlagConflictError struct {
	Flag     *Flag
	Existing *Flag
}

func (e *FlagConflictError) Error() string {
	return fmt.Sprintf("flag %s conflicts with %s", flagLabel(e.Flag), flagLabel(e.Existing))
}

// AmbiguousCommandError is returned during dispatch when more than one
// sibling command matches a token. Sibling names are unique by construction,
// so this is only reachable when the tree has been manipulated directly.
type AmbiguousCommandError struct {
	Token string
}

func (e *AmbiguousCommandError) Error() string {
	return fmt.Sprintf("ambiguous command %q", e.Token)
}

// UnknownFlagError is returned by the flag accessors when the requested key
// does not name a flag in the command's effective set.
type UnknownFlagError struct {
	Key         string
	Suggestions []string
}

func (e *UnknownFlagError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown flag %q. Did you mean one of these?\n\t%s",
			e.Key, strings.Join(e.Suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown flag %q", e.Key)
}

// RequiredFlagError is returned by [State.CheckRequired] for a required flag
// whose value, after binding, is unset or still equal to its default.
type RequiredFlagError struct {
	Flag *Flag
}

func (e *RequiredFlagError) Error() string {
	return fmt.Sprintf("required flag %s not set", flagLabel(e.Flag))
}

// flagLabel renders a flag's identity for error messages, including the
// short alias when one exists.
func flagLabel(f *Flag) string {
	switch {
	case f.Name != "" && f.Short != "":
		return fmt.Sprintf("--%s (-%s)", f.Name, f.Short)
	case f.Name != "":
		return "--" + f.Name
	default:
		return "-" + f.Short
	}
}
