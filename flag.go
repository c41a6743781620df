package cobra

import (
	"errors"
	"reflect"
	"strconv"
)

// FlagType is the closed set of value types a flag can declare.
type FlagType int

const (
	StringFlag FlagType = iota
	BooleanFlag
	NumberFlag
)

func (t FlagType) String() string {
	switch t {
	case BooleanFlag:
		return "boolean"
	case NumberFlag:
		return "number"
	default:
		return "string"
	}
}

// Flag describes one typed option. A Flag is a pure declaration: it is owned
// by the command it was added to and carries no per-dispatch state. Values
// bound during a dispatch live on that dispatch's [State].
//
// At least one of Name and Short must be non-empty. Default may be nil, a
// scalar of the declared type, or a slice of it.
type Flag struct {
	Type       FlagType
	Name       string // long form, e.g. "output" for --output
	Short      string // single character, e.g. "o" for -o
	Usage      string
	Required   bool
	Persistent bool
	Default    any
}

// key is the canonical parser key: the short name wins when both are set.
func (f *Flag) key() string {
	if f.Short != "" {
		return f.Short
	}
	return f.Name
}

// matches reports whether key names this flag by either its long or short
// form.
func (f *Flag) matches(key string) bool {
	return (f.Name != "" && f.Name == key) || (f.Short != "" && f.Short == key)
}

// AddFlag declares a flag on the command. The candidate is checked against
// every flag on this command and on each ancestor: sharing a non-empty name
// or a non-empty short with any of them is a [FlagConflictError], whether or
// not the existing flag is persistent. The stored flag is returned.
//
// Attach a command to its parent before declaring flags on it, otherwise the
// ancestor chain is not yet visible to the conflict check.
func (c *Command) AddFlag(f Flag) (*Flag, error) {
	if f.Name == "" && f.Short == "" {
		return nil, errors.New("flag has neither a name nor a short name")
	}
	for node := c; node != nil; node = node.parent {
		for _, existing := range node.flags {
			if (f.Name != "" && f.Name == existing.Name) ||
				(f.Short != "" && f.Short == existing.Short) {
				return nil, &FlagConflictError{Flag: &f, Existing: existing}
			}
		}
	}
	nf := &Flag{
		Type:       f.Type,
		Name:       f.Name,
		Short:      f.Short,
		Usage:      f.Usage,
		Required:   f.Required,
		Persistent: f.Persistent,
		Default:    f.Default,
	}
	c.flags = append(c.flags, nf)
	return nf, nil
}

// Flag looks up a flag by its long name, on this command first and then up
// the ancestor chain. It returns nil when no ancestor declares the name.
// Short names are not consulted.
func (c *Command) Flag(name string) *Flag {
	for _, f := range c.flags {
		if f.Name == name {
			return f
		}
	}
	if c.parent != nil {
		return c.parent.Flag(name)
	}
	return nil
}

// Flags returns the command's effective flag set: its own flags followed by
// every ancestor's persistent flags. Entries are de-duplicated by identity
// so a flag reachable through more than one path appears once.
func (c *Command) Flags() []*Flag {
	seen := make(map[*Flag]bool, len(c.flags))
	var out []*Flag
	for _, f := range c.flags {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for node := c.parent; node != nil; node = node.parent {
		for _, f := range node.flags {
			if f.Persistent && !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// coerceToken converts one raw parser token to the flag type's Go value:
// string, bool, or float64.
func coerceToken(t FlagType, tok string) (any, error) {
	switch t {
	case BooleanFlag:
		return strconv.ParseBool(tok)
	case NumberFlag:
		return strconv.ParseFloat(tok, 64)
	default:
		return tok, nil
	}
}

// defaultScalar reduces a declared default to a scalar: slices yield their
// first element, or nil when empty.
func defaultScalar(def any) any {
	if def == nil {
		return nil
	}
	rv := reflect.ValueOf(def)
	if rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return nil
		}
		return rv.Index(0).Interface()
	}
	return def
}

// scalarEqual compares a coerced token value against a declared default,
// treating all numeric kinds as one domain.
func scalarEqual(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
