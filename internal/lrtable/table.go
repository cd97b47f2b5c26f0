package lrtable

import (
	"fmt"

	"github.com/dekarrin/lrone/internal/diag"
	"github.com/dekarrin/lrone/internal/grammar"
)

// LRActionType tags an LRAction. Error is the default/zero value, so a
// freshly allocated ACTION row is all errors.
type LRActionType int

const (
	ActionError LRActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (t LRActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one ACTION table cell: Error, Shift(State), Reduce(Rule), or
// Accept (Rule is always 0 for Accept).
type LRAction struct {
	Type  LRActionType
	State int // valid when Type == ActionShift
	Rule  int // valid when Type == ActionReduce or ActionAccept
}

func (a LRAction) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Rule)
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

// LRTable is the ACTION/GOTO pair produced by GenerateTable:
// Action[state][terminal] and Goto[state][nonterminal], with goto value 0
// meaning "none".
type LRTable struct {
	Action [][]LRAction
	Goto   [][]int

	// States holds the canonical item set backing each state, retained for
	// presentation (printing I0, I1, ... listings) and tests. It may be
	// discarded by callers once the table itself is all that's needed.
	States []ItemSet
}

// NumStates returns the number of generated states.
func (t *LRTable) NumStates() int { return len(t.Action) }

type backtrack struct {
	pred int
	sym  grammar.Symbol
}

// GenerateTable builds the canonical LR(1) collection and ACTION/GOTO
// tables for g by worklist, returning any shift-reduce or reduce-reduce
// conflicts found along the way as diag.Records for the caller to render.
// g.Calculate must have been called already.
func GenerateTable(g *grammar.Grammar) (*LRTable, []diag.Record, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	var recs []diag.Record

	i0 := Closure([]LRItem{{Rule: 0, Dot: 0, Lookahead: grammar.EndOfInput}}, g)

	table := &LRTable{}
	stateIndex := map[string]int{i0.Key(): 0}
	bt := []backtrack{{}} // bt[0] is never read; state 0 has no predecessor

	appendState := func(set ItemSet) {
		table.States = append(table.States, set)
		table.Action = append(table.Action, make([]LRAction, g.NumTerminals()))
		table.Goto = append(table.Goto, make([]int, g.NumNonTerminals()))
	}
	appendState(i0)

	for s := 0; s < len(table.States); s++ {
		set := table.States[s]

		// Reductions first, so a conflicting shift found below reports
		// against the already-recorded reduce.
		for _, it := range set {
			if _, hasNext := it.NextSymbol(g); hasNext {
				continue
			}

			if it.Rule == 0 && it.Lookahead == grammar.EndOfInput {
				cur := table.Action[s][grammar.EndOfInput]
				if cur.Type == ActionError {
					table.Action[s][grammar.EndOfInput] = LRAction{Type: ActionAccept, Rule: 0}
				} else {
					recs = append(recs, conflictRecord(g, bt, s, grammar.EndOfInput, cur, LRAction{Type: ActionAccept, Rule: 0}))
				}
				continue
			}

			cur := table.Action[s][it.Lookahead]
			newAct := LRAction{Type: ActionReduce, Rule: it.Rule}
			if cur.Type == ActionError {
				table.Action[s][it.Lookahead] = newAct
			} else if !cur.Equal(newAct) {
				recs = append(recs, conflictRecord(g, bt, s, it.Lookahead, cur, newAct))
			}
		}

		// Nonterminal GOTOs.
		for nt := 1; nt < g.NumNonTerminals(); nt++ {
			succ := Successor(set, grammar.N(nt), g)
			if len(succ) == 0 {
				continue
			}
			target := resolveState(table, stateIndex, &bt, appendState, succ, s, grammar.N(nt))
			table.Goto[s][nt] = target
		}

		// Terminal shifts.
		for term := 1; term < g.NumTerminals(); term++ {
			succ := Successor(set, grammar.T(term), g)
			if len(succ) == 0 {
				continue
			}
			target := resolveState(table, stateIndex, &bt, appendState, succ, s, grammar.T(term))

			cur := table.Action[s][term]
			switch cur.Type {
			case ActionError:
				table.Action[s][term] = LRAction{Type: ActionShift, State: target}
			case ActionReduce:
				recs = append(recs, conflictRecord(g, bt, s, term, cur, LRAction{Type: ActionShift, State: target}))
				// A reduce already in the cell is never overwritten by a
				// later shift; the conflict is reported and the reduce
				// stands.
			default:
				// Already Shift or Accept: leave as-is.
			}
		}
	}

	return table, recs, nil
}

// Equal reports whether two actions are the same type with the same
// payload.
func (a LRAction) Equal(o LRAction) bool {
	return a.Type == o.Type && a.State == o.State && a.Rule == o.Rule
}

// resolveState looks up succ in the canonical collection, appending a new
// state (and recording its backtrack edge) if it hasn't been seen before.
func resolveState(table *LRTable, stateIndex map[string]int, bt *[]backtrack, appendState func(ItemSet), succ ItemSet, pred int, via grammar.Symbol) int {
	key := succ.Key()
	if existing, ok := stateIndex[key]; ok {
		return existing
	}

	target := len(table.States)
	stateIndex[key] = target
	appendState(succ)
	*bt = append(*bt, backtrack{pred: pred, sym: via})
	return target
}

// conflictRecord builds a diag.Record describing a shift/reduce,
// reduce/reduce, or accept/* conflict found at state s on terminal a,
// including the witness trace back to state 0.
func conflictRecord(g *grammar.Grammar, bt []backtrack, s, a int, existing, attempted LRAction) diag.Record {
	kind := diag.ReduceReduce
	if existing.Type == ActionShift || attempted.Type == ActionShift {
		kind = diag.ShiftReduce
	}

	var trail []diag.Witness
	for i := s; i != 0; i = bt[i].pred {
		trail = append(trail, diag.Witness{State: i, Symbol: bt[i].sym.Name(g)})
	}

	return diag.Record{
		Severity:    diag.Conflict,
		Kind:        kind,
		State:       s,
		Terminal:    g.TerminalName(a),
		Trail:       trail,
		ExistingAct: actionLabel(g, existing),
		NewAct:      actionLabel(g, attempted),
		Message: fmt.Sprintf("%s conflict in state %d on terminal %q (%s vs %s)",
			conflictName(kind), s, g.TerminalName(a), actionLabel(g, existing), actionLabel(g, attempted)),
	}
}

func conflictName(k diag.ConflictKind) string {
	if k == diag.ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

func actionLabel(g *grammar.Grammar, a LRAction) string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		r := g.Rules[a.Rule]
		return fmt.Sprintf("reduce %s -> %s", g.NonTerminalName(r.LHS), r.RHSString(g))
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}
