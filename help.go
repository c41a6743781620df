package cobra

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/btree"
	"github.com/muesli/reflow/wordwrap"
)

// Help renders the command's help text. The long form substitutes the Long
// description for the one-line summary when one is set; everything else is
// identical between the two forms: a usage synopsis, the children sorted by
// name in aligned columns, and the effective flag table.
func (c *Command) Help(long bool) string {
	var b strings.Builder

	desc := c.Short
	if long && c.Long != "" {
		desc = wordwrap.String(c.Long, 80)
	}
	if desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	b.WriteString("Usage:\n")
	b.WriteString("  " + c.pathUse() + "\n\n")

	if c.index != nil && c.index.Len() > 0 {
		b.WriteString("Available Commands:\n")
		maxName := 0
		c.index.Ascend(func(i btree.Item) bool {
			if n := len(i.(commandItem).cmd.Name()); n > maxName {
				maxName = n
			}
			return true
		})
		c.index.Ascend(func(i btree.Item) bool {
			sub := i.(commandItem).cmd
			fmt.Fprintf(&b, "  %-*s%s\n", maxName+3, sub.Name(), sub.Short)
			return true
		})
		b.WriteString("\n")
	}

	if flags := c.Flags(); len(flags) > 0 {
		b.WriteString("Flags:\n")
		writeFlagRows(&b, flags)
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeFlagRows renders the flag table with the fixed column layout: the
// short column is the longest short name plus three (dash, comma, space),
// the long column is the longest long name plus two (the double dash).
func writeFlagRows(b *strings.Builder, flags []*Flag) {
	sorted := slices.Clone(flags)
	slices.SortFunc(sorted, func(a, b *Flag) int {
		return cmp.Compare(a.Name, b.Name)
	})

	maxShort, maxLong := 0, 0
	for _, f := range sorted {
		if len(f.Short) > maxShort {
			maxShort = len(f.Short)
		}
		if len(f.Name) > maxLong {
			maxLong = len(f.Name)
		}
	}

	for _, f := range sorted {
		short := "  "
		if f.Short != "" {
			short = "-" + f.Short
			if f.Name != "" {
				short += ","
			}
		}
		long := ""
		if f.Name != "" {
			long = "--" + f.Name
		}
		fmt.Fprintf(b, "  %-*s%-*s   %s\n", maxShort+3, short, maxLong+2, long, f.Usage)
	}
}
