// Package lrtable implements canonical LR(1) item-set construction and the
// ACTION/GOTO table generator built on top of it, following Aho/Sethi/
// Ullman Algorithm 4.56.
package lrtable

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/lrone/internal/grammar"
)

// LRItem is an LR(1) item: a rule, a dot position in [0, len(rhs)], and a
// single terminal of lookahead. Equality is structural on all three fields.
type LRItem struct {
	Rule      int
	Dot       int
	Lookahead int
}

// NextSymbol returns the symbol immediately after the dot, or ok == false if
// the dot has reached the end of the production. The explicit boolean keeps
// a literal "$" on a right-hand side distinct from dot-past-end.
func (it LRItem) NextSymbol(g *grammar.Grammar) (grammar.Symbol, bool) {
	rhs := g.Rules[it.Rule].RHS
	if it.Dot >= len(rhs) {
		return grammar.Symbol{}, false
	}
	return rhs[it.Dot], true
}

// String renders it for display, e.g. "E -> E + . T, $".
func (it LRItem) String(g *grammar.Grammar) string {
	r := g.Rules[it.Rule]
	var sb strings.Builder
	sb.WriteString(g.NonTerminalName(r.LHS))
	sb.WriteString(" ->")
	for i, sym := range r.RHS {
		if i == it.Dot {
			sb.WriteString(" .")
		}
		sb.WriteString(" ")
		sb.WriteString(sym.Name(g))
	}
	if it.Dot == len(r.RHS) {
		sb.WriteString(" .")
	}
	sb.WriteString(", ")
	sb.WriteString(g.TerminalName(it.Lookahead))
	return sb.String()
}

// ItemSet is an unordered collection of LRItems with no duplicates.
// Insertion order is preserved for display purposes, but equality treats
// two ItemSets as equal iff they contain the same items regardless of
// order.
type ItemSet []LRItem

// Key returns a canonical string representation of s suitable for use as a
// map key: items sorted by (Rule, Dot, Lookahead). Two ItemSets are the
// same LR(1) state iff their Keys are equal, so closures built in different
// insertion orders still land on the same state.
func (s ItemSet) Key() string {
	sorted := make([]LRItem, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rule != sorted[j].Rule {
			return sorted[i].Rule < sorted[j].Rule
		}
		if sorted[i].Dot != sorted[j].Dot {
			return sorted[i].Dot < sorted[j].Dot
		}
		return sorted[i].Lookahead < sorted[j].Lookahead
	})

	var sb strings.Builder
	for _, it := range sorted {
		sb.WriteString(strconv.Itoa(it.Rule))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.Dot))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.Lookahead))
		sb.WriteByte('|')
	}
	return sb.String()
}

// Closure expands an item set under the epsilon-successor rule until fixed
// point: for every item [A -> α·Bβ, a] with B a nonterminal, and every
// production B -> γ, every b in FIRST(βa) yields a new item [B -> ·γ, b].
// Iteration is insertion-safe: items added during the walk are themselves
// walked.
func Closure(seed []LRItem, g *grammar.Grammar) ItemSet {
	set := make([]LRItem, len(seed))
	copy(set, seed)

	seen := make(map[LRItem]bool, len(seed))
	for _, it := range set {
		seen[it] = true
	}

	for i := 0; i < len(set); i++ {
		it := set[i]

		next, ok := it.NextSymbol(g)
		if !ok || next.IsTerminal() {
			continue
		}

		rhs := g.Rules[it.Rule].RHS
		beta := rhs[it.Dot+1:]
		lookaheads := g.FirstSeqWithLookahead(beta, it.Lookahead)

		for ruleID, r := range g.Rules {
			if r.LHS != next.ID {
				continue
			}
			for _, b := range lookaheads {
				newItem := LRItem{Rule: ruleID, Dot: 0, Lookahead: b}
				if !seen[newItem] {
					seen[newItem] = true
					set = append(set, newItem)
				}
			}
		}
	}

	return ItemSet(set)
}

// Successor computes GOTO(I, X): every item [A -> α·Xγ, a] in I has its dot
// advanced past X, and the result is closed. It returns nil if no item in I
// has X immediately after the dot.
func Successor(set ItemSet, x grammar.Symbol, g *grammar.Grammar) ItemSet {
	var advanced []LRItem
	for _, it := range set {
		next, ok := it.NextSymbol(g)
		if ok && next == x {
			advanced = append(advanced, LRItem{Rule: it.Rule, Dot: it.Dot + 1, Lookahead: it.Lookahead})
		}
	}
	if len(advanced) == 0 {
		return nil
	}
	return Closure(advanced, g)
}
