package cobra

import (
	"context"
	"strings"

	"github.com/google/btree"
)

// Command is one node in the dispatch tree. The first whitespace-delimited
// token of Use is the command's matchable name; the rest of the string is
// display-only. Set the exported fields before attaching the command with
// [Command.AddCommand]; after that the topology is fixed.
type Command struct {
	// Use is the usage synopsis, e.g. "add [file]...".
	Use string

	// Short is a one-line description shown in command listings.
	Short string

	// Long is the multi-paragraph description shown by long-form help. When
	// empty, Short is used instead.
	Long string

	// Run is the command's handler. It receives the per-dispatch [State] and
	// returns the process exit code. A command without a handler renders its
	// short-form help and exits 1.
	Run func(ctx context.Context, s *State) (int, error)

	// ShowHelpOnError makes the dispatcher render this command's help
	// whenever its handler fails or returns a non-zero code.
	ShowHelpOnError bool

	name     string
	parent   *Command
	children []*Command
	index    *btree.BTree
	flags    []*Flag
}

// commandItem adapts a Command for the sibling-name index.
type commandItem struct {
	cmd *Command
}

func (i commandItem) Less(than btree.Item) bool {
	return i.cmd.Name() < than.(commandItem).cmd.Name()
}

// Name returns the command's matchable name, the first whitespace-delimited
// token of Use.
func (c *Command) Name() string {
	if c.name == "" {
		if fields := strings.Fields(c.Use); len(fields) > 0 {
			c.name = fields[0]
		}
	}
	return c.name
}

// AddCommand attaches sub as a child of c. The child's name is derived from
// its use string; an empty use string is [ErrMissingUse] and a name already
// taken by a sibling is a [DuplicateCommandError]. Children keep insertion
// order; help output sorts them separately.
func (c *Command) AddCommand(sub *Command) (*Command, error) {
	if sub.Name() == "" {
		return nil, ErrMissingUse
	}
	if c.index == nil {
		c.index = btree.New(2)
	}
	if c.index.Get(commandItem{cmd: sub}) != nil {
		return nil, &DuplicateCommandError{Name: sub.Name()}
	}
	sub.parent = c
	c.children = append(c.children, sub)
	c.index.ReplaceOrInsert(commandItem{cmd: sub})
	return sub, nil
}

// Commands returns the command's children in insertion order.
func (c *Command) Commands() []*Command {
	return c.children
}

// Parent returns the command this command is attached to, nil for the root.
func (c *Command) Parent() *Command {
	return c.parent
}

// Root walks the parent chain to the tree's root.
func (c *Command) Root() *Command {
	if c.parent == nil {
		return c
	}
	return c.parent.Root()
}

// match walks the tree consuming leading tokens that name children. It stops
// at the first token that matches no child, or at a node without children,
// and returns the deepest matched command along with the unconsumed tokens.
// More than one sibling matching a token is an [AmbiguousCommandError]; the
// index makes that unreachable through AddCommand, so it only guards against
// direct manipulation of the child slice.
func (c *Command) match(tokens []string) (*Command, []string, error) {
	cmd := c
	rest := tokens
	for len(rest) > 0 && len(cmd.children) > 0 {
		var found *Command
		matches := 0
		for _, sub := range cmd.children {
			if sub.Name() == rest[0] {
				matches++
				if found == nil {
					found = sub
				}
			}
		}
		if matches > 1 {
			return nil, nil, &AmbiguousCommandError{Token: rest[0]}
		}
		if matches == 0 {
			break
		}
		cmd = found
		rest = rest[1:]
	}
	return cmd, rest, nil
}

// pathUse is the command's use string qualified with its ancestors' names,
// e.g. "root sub add [file]...".
func (c *Command) pathUse() string {
	var names []string
	for p := c.parent; p != nil; p = p.parent {
		names = append([]string{p.Name()}, names...)
	}
	return strings.Join(append(names, c.Use), " ")
}
