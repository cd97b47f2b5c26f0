package grammar

import "github.com/dekarrin/lrone/internal/util"

// Calculate computes FIRST for every nonterminal and caches the result. It
// runs whole-grammar passes to a fixed point: every pass over the rules can
// only add terminal ids to a FIRST set, never remove one, so the loop
// terminates once a full pass makes no change, with no recursion and no
// depth guard needed for mutually recursive nonterminals.
func (g *Grammar) Calculate() {
	sets := make([]util.IntSet, g.NumNonTerminals())

	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules {
			before := sets[r.LHS].Len()
			g.applyRule(r, sets)
			if sets[r.LHS].Len() != before {
				changed = true
			}
		}
	}

	g.first = make([]IntSlice, len(sets))
	for i, s := range sets {
		g.first[i] = IntSlice(s.Slice())
	}
}

// applyRule folds one production's contribution into sets[r.LHS].
func (g *Grammar) applyRule(r Rule, sets []util.IntSet) {
	if len(r.RHS) == 0 {
		sets[r.LHS].Add(Epsilon)
		return
	}

	for _, sym := range r.RHS {
		if sym.IsTerminal() {
			sets[r.LHS].Add(sym.ID)
			return
		}

		if sym.ID == r.LHS {
			// Reaching the lhs itself contributes nothing for this rule;
			// stop without adding epsilon.
			return
		}

		sub := sets[sym.ID]
		for _, t := range sub.Slice() {
			if t != Epsilon {
				sets[r.LHS].Add(t)
			}
		}
		if !sub.Has(Epsilon) {
			return
		}
		// sub is nullable; continue the walk to the next symbol.
	}

	// Walked every symbol in RHS without stopping: every symbol is
	// epsilon-derivable, so the whole production is.
	sets[r.LHS].Add(Epsilon)
}

// FirstNonTerminal returns the cached FIRST set of nonterminal nt. Calculate
// must have been called first; an uncalculated entry reads as empty.
func (g *Grammar) FirstNonTerminal(nt int) IntSlice {
	if nt < 0 || nt >= len(g.first) {
		return nil
	}
	return g.first[nt]
}

// FirstSeq computes FIRST(β) for an arbitrary symbol sequence β, walking
// left to right with the same rules Calculate applies to a single
// production's rhs. Epsilon is included in the result iff every symbol in
// seq is epsilon-derivable (or seq is empty).
func (g *Grammar) FirstSeq(seq []Symbol) IntSlice {
	var result util.IntSet

	for _, sym := range seq {
		if sym.IsTerminal() {
			result.Add(sym.ID)
			return IntSlice(result.Slice())
		}

		sub := g.FirstNonTerminal(sym.ID)
		for _, t := range sub {
			if t != Epsilon {
				result.Add(t)
			}
		}
		if !sub.Has(Epsilon) {
			return IntSlice(result.Slice())
		}
	}

	result.Add(Epsilon)
	return IntSlice(result.Slice())
}

// FirstSeqWithLookahead computes FIRST(β a): FIRST of seq followed by the
// single terminal lookahead, used by item-set closure to determine the
// lookaheads propagated into a closed-over production. It is equivalent to
// computing FIRST(β) and substituting lookahead for any epsilon member.
func (g *Grammar) FirstSeqWithLookahead(seq []Symbol, lookahead int) IntSlice {
	extended := make([]Symbol, len(seq)+1)
	copy(extended, seq)
	extended[len(seq)] = T(lookahead)
	return g.FirstSeq(extended)
}
