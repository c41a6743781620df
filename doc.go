// Package cobra implements a small command dispatch engine. Programs declare
// a tree of named sub-commands carrying typed flags, and a dispatch call
// resolves a raw argument list to the deepest matching command, binds flag
// values with default and required semantics, and either renders help or
// invokes the command's handler, producing an exit code.
//
// Flags declared as persistent on a command are visible to every descendant
// command, both for lookup and for binding. Flag declarations themselves are
// immutable after setup; each dispatch produces a fresh [State] carrying the
// bound values, so a tree can be dispatched any number of times.
package cobra
