// Package lrparse implements the table-driven LR(1) parser: a pair of
// stacks and an action dispatcher, executed over a tokenized input stream.
package lrparse

import (
	"fmt"

	"github.com/dekarrin/lrone/internal/grammar"
	"github.com/dekarrin/lrone/internal/lrtable"
)

// Step is a snapshot of the driver's state taken once per loop iteration,
// before the listed action is applied. Trace presentation (column
// alignment, coloring) is not this package's concern; present renders
// Steps.
type Step struct {
	States    []int
	Symbols   []grammar.Symbol
	Remaining []int
	Action    lrtable.LRAction
}

// SyntaxError is returned when the driver reaches an Error action cell: it
// reports the unexpected terminal and the set of terminals that would have
// been valid in that state.
type SyntaxError struct {
	State    int
	Terminal int
	Valid    []int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unexpected terminal %d in state %d", e.Terminal, e.State)
}

// Driver holds the read-only Grammar and LRTable pair a parse runs against.
// Both may be shared across any number of Drivers; Parse mutates only its
// own local stacks and cursor.
type Driver struct {
	Grammar *grammar.Grammar
	Table   *lrtable.LRTable
}

// New creates a Driver over g and table. Both must already be fully built
// (g.Calculate and lrtable.GenerateTable having run).
func New(g *grammar.Grammar, table *lrtable.LRTable) *Driver {
	return &Driver{Grammar: g, Table: table}
}

// Parse runs the LR(1) automaton over input, a sequence of terminal ids
// already terminated by grammar.EndOfInput (TokenizeString appends it). If
// trace is non-nil, it is invoked once per loop iteration with a snapshot
// of the current state taken before that iteration's action is applied.
//
// Parse returns (true, nil) on Accept, or (false, err) on a syntax error.
// Rejection is an ordinary return, not a panic or a process exit.
func (d *Driver) Parse(input []int, trace func(Step)) (bool, *SyntaxError) {
	states := []int{0}
	var symbols []grammar.Symbol
	cursor := 0

	for {
		s := states[len(states)-1]
		a := input[cursor]
		act := d.Table.Action[s][a]

		if trace != nil {
			trace(Step{
				States:    append([]int(nil), states...),
				Symbols:   append([]grammar.Symbol(nil), symbols...),
				Remaining: append([]int(nil), input[cursor:]...),
				Action:    act,
			})
		}

		switch act.Type {
		case lrtable.ActionShift:
			states = append(states, act.State)
			symbols = append(symbols, grammar.T(a))
			cursor++

		case lrtable.ActionReduce:
			rule := d.Grammar.Rules[act.Rule]
			n := len(rule.RHS)
			states = states[:len(states)-n]
			symbols = symbols[:len(symbols)-n]
			symbols = append(symbols, grammar.N(rule.LHS))

			top := states[len(states)-1]
			states = append(states, d.Table.Goto[top][rule.LHS])
			// cursor is not advanced on a reduce.

		case lrtable.ActionAccept:
			return true, nil

		case lrtable.ActionError:
			return false, &SyntaxError{
				State:    s,
				Terminal: a,
				Valid:    d.validTerminals(s),
			}
		}
	}
}

// validTerminals returns, in ascending id order, every terminal for which
// action[state][t] != Error.
func (d *Driver) validTerminals(state int) []int {
	var valid []int
	for t, act := range d.Table.Action[state] {
		if act.Type != lrtable.ActionError {
			valid = append(valid, t)
		}
	}
	return valid
}

// TokenizeString splits a space-separated input line into terminal ids
// using g's terminal name table, appending grammar.EndOfInput as the end
// marker. An unknown terminal name is reported as a plain error rather
// than exiting the process, so that callers (the CLI, or a REPL driving
// many lines against one table) decide how to handle it.
func TokenizeString(s string, g *grammar.Grammar) ([]int, error) {
	var ids []int
	for _, field := range splitFields(s) {
		id, ok := g.TerminalID(field)
		if !ok {
			return nil, fmt.Errorf("unknown terminal in input: %q", field)
		}
		ids = append(ids, id)
	}
	ids = append(ids, grammar.EndOfInput)
	return ids, nil
}

func splitFields(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
