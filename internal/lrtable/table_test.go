package lrtable

import (
	"testing"

	"github.com/dekarrin/lrone/internal/diag"
	"github.com/dekarrin/lrone/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// buildSingleRule returns the smallest useful grammar: S -> a.
func buildSingleRule() *grammar.Grammar {
	g := grammar.New()
	a := g.AddTerminal("a")
	g.AddNonTerminal("S")
	g.AddRule(grammar.AugmentedStart, []grammar.Symbol{grammar.N(1)})
	g.AddRule(1, []grammar.Symbol{grammar.T(a)})
	g.Calculate()
	return g
}

func Test_GenerateTable_singleRule_stateCount(t *testing.T) {
	assert := assert.New(t)

	g := buildSingleRule()
	table, recs, err := GenerateTable(g)

	assert.NoError(err)
	assert.Empty(recs)

	// I0, the goto target on S, and the shift target on a.
	assert.Equal(3, table.NumStates())
}

func Test_GenerateTable_invariants_rowCountsMatch(t *testing.T) {
	assert := assert.New(t)

	g := buildSingleRule()
	table, _, err := GenerateTable(g)
	assert.NoError(err)

	assert.Equal(len(table.Action), len(table.Goto))
	for _, row := range table.Action {
		assert.Equal(g.NumTerminals(), len(row))
	}
	for _, row := range table.Goto {
		assert.Equal(g.NumNonTerminals(), len(row))
	}
}

func Test_GenerateTable_gotoZeroNeverSet(t *testing.T) {
	assert := assert.New(t)

	g := buildSingleRule()
	table, _, err := GenerateTable(g)
	assert.NoError(err)

	for _, row := range table.Goto {
		assert.Equal(0, row[grammar.AugmentedStart])
	}
}

func Test_GenerateTable_acceptExactlyOnce(t *testing.T) {
	assert := assert.New(t)

	g := buildSingleRule()
	table, _, err := GenerateTable(g)
	assert.NoError(err)

	count := 0
	for _, row := range table.Action {
		for term, act := range row {
			if act.Type == ActionAccept {
				count++
				assert.Equal(0, act.Rule)
				assert.Equal(grammar.EndOfInput, term)
			}
		}
	}
	assert.Equal(1, count)
}

// buildAmbiguous returns a dangling-else style ambiguous grammar:
//
//	S -> i S t S | i S t S e S | a
func buildAmbiguous() *grammar.Grammar {
	g := grammar.New()
	i := g.AddTerminal("i")
	tTerm := g.AddTerminal("t")
	e := g.AddTerminal("e")
	a := g.AddTerminal("a")
	_ = g.AddTerminal("b") // unused terminal from the grammar's declared line

	g.AddNonTerminal("S")

	g.AddRule(grammar.AugmentedStart, []grammar.Symbol{grammar.N(1)})
	g.AddRule(1, []grammar.Symbol{grammar.T(i), grammar.N(1), grammar.T(tTerm), grammar.N(1)})
	g.AddRule(1, []grammar.Symbol{grammar.T(i), grammar.N(1), grammar.T(tTerm), grammar.N(1), grammar.T(e), grammar.N(1)})
	g.AddRule(1, []grammar.Symbol{grammar.T(a)})

	g.Calculate()
	return g
}

func Test_GenerateTable_ambiguousGrammar_shiftReduceOnE(t *testing.T) {
	assert := assert.New(t)

	g := buildAmbiguous()
	_, recs, err := GenerateTable(g)
	assert.NoError(err)

	found := false
	for _, r := range recs {
		if r.Severity == diag.Conflict && r.Kind == diag.ShiftReduce && r.Terminal == "e" {
			found = true
		}
	}
	assert.True(found, "expected a shift-reduce conflict on terminal e, got: %+v", recs)
}

// buildArith returns the classic left-recursive arithmetic grammar over
// id, +, *, and parentheses.
func buildArith() *grammar.Grammar {
	g := grammar.New()
	id := g.AddTerminal("id")
	plus := g.AddTerminal("+")
	star := g.AddTerminal("*")
	lparen := g.AddTerminal("(")
	rparen := g.AddTerminal(")")

	e := g.AddNonTerminal("E")
	tN := g.AddNonTerminal("T")
	f := g.AddNonTerminal("F")

	g.AddRule(grammar.AugmentedStart, []grammar.Symbol{grammar.N(e)})
	g.AddRule(e, []grammar.Symbol{grammar.N(e), grammar.T(plus), grammar.N(tN)})
	g.AddRule(e, []grammar.Symbol{grammar.N(tN)})
	g.AddRule(tN, []grammar.Symbol{grammar.N(tN), grammar.T(star), grammar.N(f)})
	g.AddRule(tN, []grammar.Symbol{grammar.N(f)})
	g.AddRule(f, []grammar.Symbol{grammar.T(lparen), grammar.N(e), grammar.T(rparen)})
	g.AddRule(f, []grammar.Symbol{grammar.T(id)})

	g.Calculate()
	return g
}

func Test_GenerateTable_arithmetic_noConflicts(t *testing.T) {
	assert := assert.New(t)

	g := buildArith()
	_, recs, err := GenerateTable(g)
	assert.NoError(err)
	assert.Empty(recs)
}

// buildEpsilon returns a grammar with an epsilon production:
// S -> A a, A -> epsilon.
func buildEpsilon() *grammar.Grammar {
	g := grammar.New()
	a := g.AddTerminal("a")
	g.AddNonTerminal("S")
	g.AddNonTerminal("A")

	g.AddRule(grammar.AugmentedStart, []grammar.Symbol{grammar.N(1)})
	g.AddRule(1, []grammar.Symbol{grammar.N(2), grammar.T(a)})
	g.AddRule(2, nil)

	g.Calculate()
	return g
}

func Test_GenerateTable_epsilonProduction_reduceWithEmptyRHS(t *testing.T) {
	assert := assert.New(t)

	g := buildEpsilon()
	table, recs, err := GenerateTable(g)
	assert.NoError(err)
	assert.Empty(recs)

	foundEpsilonReduce := false
	for _, row := range table.Action {
		for _, act := range row {
			if act.Type == ActionReduce && len(g.Rules[act.Rule].RHS) == 0 {
				foundEpsilonReduce = true
			}
		}
	}
	assert.True(foundEpsilonReduce)
}

func Test_ItemSet_Key_orderIndependent(t *testing.T) {
	assert := assert.New(t)

	a := ItemSet{{Rule: 1, Dot: 0, Lookahead: 2}, {Rule: 0, Dot: 1, Lookahead: 3}}
	b := ItemSet{{Rule: 0, Dot: 1, Lookahead: 3}, {Rule: 1, Dot: 0, Lookahead: 2}}

	assert.Equal(a.Key(), b.Key())
}

func Test_Closure_idempotent(t *testing.T) {
	assert := assert.New(t)

	g := buildArith()
	seed := []LRItem{{Rule: 0, Dot: 0, Lookahead: grammar.EndOfInput}}

	once := Closure(seed, g)
	twice := Closure(once, g)

	assert.Equal(once.Key(), twice.Key())
}

func Test_Successor_roundTrip(t *testing.T) {
	assert := assert.New(t)

	g := buildArith()
	i0 := Closure([]LRItem{{Rule: 0, Dot: 0, Lookahead: grammar.EndOfInput}}, g)

	id, _ := g.TerminalID("id")
	succ := Successor(i0, grammar.T(id), g)
	assert.NotEmpty(succ)

	for _, it := range i0 {
		next, ok := it.NextSymbol(g)
		if ok && next == grammar.T(id) {
			advanced := LRItem{Rule: it.Rule, Dot: it.Dot + 1, Lookahead: it.Lookahead}
			assert.Contains(succ, advanced)
		}
	}
}
