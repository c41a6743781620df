package cobra

import (
	"fmt"
	"io"

	"github.com/aricart/cobra.js/pkg/suggest"
)

// State is the per-dispatch record handed to a command's handler: the
// resolved command, the positional arguments left after resolution, the I/O
// streams, and the bound flag values. Read flags with [Value] and [Values].
//
// Every dispatch builds a fresh State, so handlers never observe values
// bound by an earlier call.
type State struct {
	// Command is the resolved command, the deepest node matched by the
	// argument list.
	Command *Command

	// Args holds the positional arguments, including everything after a
	// literal "--" token.
	Args []string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Helped records whether this dispatch rendered help instead of, or in
	// addition to, running the handler.
	Helped bool

	// Code is the exit code the dispatch produced.
	Code int

	flags    []*Flag
	bindings map[*Flag]*binding
}

// lookup finds a flag in the effective set by long or short name.
func (s *State) lookup(key string) *Flag {
	for _, f := range s.flags {
		if f.matches(key) {
			return f
		}
	}
	return nil
}

// unknown builds an [UnknownFlagError] decorated with near-miss flag names.
func (s *State) unknown(key string) error {
	var known []string
	for _, f := range s.flags {
		if f.Name != "" {
			known = append(known, f.Name)
		}
		if f.Short != "" {
			known = append(known, f.Short)
		}
	}
	return &UnknownFlagError{Key: key, Suggestions: suggest.Similar(key, known, 3)}
}

// Changed reports whether the flag was explicitly set during this dispatch
// with a value that differs from its default. Unknown keys report false.
func (s *State) Changed(key string) bool {
	f := s.lookup(key)
	if f == nil {
		return false
	}
	b := s.bindings[f]
	return b != nil && b.changed
}

// CheckRequired verifies every required flag in the effective set. A flag
// counts as missing when it was never set or when the parsed value equals
// its declared default; passing the default explicitly is indistinguishable
// from passing nothing.
func (s *State) CheckRequired() error {
	for _, f := range s.flags {
		if !f.Required {
			continue
		}
		b := s.bindings[f]
		if b == nil || !b.changed {
			return &RequiredFlagError{Flag: f}
		}
	}
	return nil
}

// Scalar is the set of Go types a flag value can be read as. Number flags
// read as float64, or as int with truncation.
type Scalar interface {
	string | bool | float64 | int
}

// Value reads one flag by long or short name. Resolution order is the
// explicitly bound value, then the declared default, then the type's zero
// value. When the resolved value is a list, the first element is returned.
// A key naming no flag in the effective set is an [UnknownFlagError].
func Value[T Scalar](s *State, key string) (T, error) {
	var zero T
	f := s.lookup(key)
	if f == nil {
		return zero, s.unknown(key)
	}
	if b := s.bindings[f]; b != nil {
		return convertToken[T](f, b.raw[0])
	}
	if def := defaultScalar(f.Default); def != nil {
		return castScalar[T](f, def)
	}
	return zero, nil
}

// Values reads all occurrences of one flag as a slice. Unlike [Value] it
// never falls back to the default: a flag that was not set yields an empty
// slice. A single occurrence yields a one-element slice.
func Values[T Scalar](s *State, key string) ([]T, error) {
	f := s.lookup(key)
	if f == nil {
		return nil, s.unknown(key)
	}
	b := s.bindings[f]
	if b == nil {
		return []T{}, nil
	}
	out := make([]T, 0, len(b.raw))
	for _, tok := range b.raw {
		v, err := convertToken[T](f, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertToken[T Scalar](f *Flag, tok string) (T, error) {
	var zero T
	v, err := coerceToken(f.Type, tok)
	if err != nil {
		return zero, fmt.Errorf("flag %s: %w", flagLabel(f), err)
	}
	return castScalar[T](f, v)
}

// castScalar converts a coerced value to the requested type. Number values
// travel as float64 internally; int is offered for convenience, and int
// defaults are widened so a Number flag declared with Default: 12 reads back
// as float64.
func castScalar[T Scalar](f *Flag, v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	switch n := v.(type) {
	case float64:
		if t, ok := any(int(n)).(T); ok {
			return t, nil
		}
	case int:
		if t, ok := any(float64(n)).(T); ok {
			return t, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("flag %s: cannot read %s value as %T", flagLabel(f), f.Type, zero)
}
