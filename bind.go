package cobra

import (
	"flag"
	"io"
	"reflect"

	"github.com/mfridman/xflag"
)

// binding holds one flag's parsed result for a single dispatch: the raw
// tokens in occurrence order and whether the value differs from the flag's
// default. Flags that never appeared have no binding at all.
type binding struct {
	raw     []string
	changed bool
}

// tokenValue collects occurrences of one flag. Registering the same value
// under both the short and the long name is what makes them aliases; the
// boolean type hint comes from IsBoolFlag, and number tokens stay raw until
// read time.
type tokenValue struct {
	flag *Flag
	raw  []string
}

func (v *tokenValue) String() string { return "" }

func (v *tokenValue) Set(s string) error {
	v.raw = append(v.raw, s)
	return nil
}

func (v *tokenValue) IsBoolFlag() bool { return v.flag.Type == BooleanFlag }

// bind parses the resolver's leftover tokens against the command's effective
// flag set and returns the binding table plus the positional arguments. The
// flag set is rebuilt from the declarations on every call, so repeated
// dispatches start from a clean slate.
func bind(cmd *Command, tokens []string) (map[*Flag]*binding, []string, error) {
	flags := cmd.Flags()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	values := make(map[*Flag]*tokenValue, len(flags))
	for _, f := range flags {
		v := &tokenValue{flag: f}
		values[f] = v
		if f.Short != "" {
			fs.Var(v, f.Short, f.Usage)
		}
		if f.Name != "" && f.Name != f.Short {
			fs.Var(v, f.Name, f.Usage)
		}
	}

	// ParseToEnd keeps going past positional arguments, so flags may appear
	// anywhere in the leftover tokens.
	if err := xflag.ParseToEnd(fs, tokens); err != nil {
		return nil, nil, err
	}

	bindings := make(map[*Flag]*binding, len(flags))
	for _, f := range flags {
		raw := values[f].raw
		if len(raw) == 0 {
			continue
		}
		bindings[f] = &binding{raw: raw, changed: changedFromDefault(f, raw)}
	}
	return bindings, fs.Args(), nil
}

// changedFromDefault reports whether a parsed occurrence list counts as a
// change. Without a configured default every explicit value is a change,
// including zero and the empty string. Against a scalar default, a single
// occurrence is compared by value; multiple occurrences, and slice defaults,
// always count as changed.
func changedFromDefault(f *Flag, raw []string) bool {
	if f.Default == nil || len(raw) != 1 {
		return true
	}
	if reflect.ValueOf(f.Default).Kind() == reflect.Slice {
		return true
	}
	v, err := coerceToken(f.Type, raw[0])
	if err != nil {
		return true
	}
	return !scalarEqual(v, f.Default)
}
