// Package present renders grammars, ACTION/GOTO tables, diagnostics, and
// parse traces for the command line. It deliberately knows nothing about
// how a table is generated or a string is parsed: grammar, lrtable, and
// lrparse hand it plain data and present turns it into colored,
// column-aligned text.
package present

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lrone/internal/diag"
	"github.com/dekarrin/lrone/internal/grammar"
	"github.com/dekarrin/lrone/internal/lrparse"
	"github.com/dekarrin/lrone/internal/lrtable"
	"github.com/dekarrin/lrone/internal/util"
	"github.com/dekarrin/rosed"
	"github.com/pterm/pterm"
)

// Printer renders diagnostics, tables, and traces to a stream, honoring a
// fixed column width (0 means auto-detect from the terminal on each call).
type Printer struct {
	ColWidth int
	NoColor  bool
}

// New builds a Printer with the given column width (0 for auto-detect) and
// disables pterm's styling when noColor is set or NO_COLOR/--no-color
// applies.
func New(colWidth int, noColor bool) *Printer {
	if noColor {
		pterm.DisableColor()
	}
	return &Printer{ColWidth: colWidth, NoColor: noColor}
}

func (p *Printer) width() int {
	if p.ColWidth > 0 {
		return p.ColWidth
	}
	w := pterm.GetTerminalWidth()
	if w <= 0 {
		return 80
	}
	return w
}

// Grammar prints the terminal list, nonterminal list with FIRST sets, and
// rule list of g.
func (p *Printer) Grammar(g *grammar.Grammar) {
	pterm.DefaultSection.Println("Grammar")

	pterm.Println(pterm.Bold.Sprint("Terminals: ") + strings.Join(g.TerminalNames()[1:], " "))

	var ntLines []string
	for nt := 1; nt < g.NumNonTerminals(); nt++ {
		first := g.FirstNonTerminal(nt)
		var names []string
		for _, t := range first {
			if t == grammar.Epsilon {
				names = append(names, "ε")
				continue
			}
			names = append(names, g.TerminalName(t))
		}
		ntLines = append(ntLines, fmt.Sprintf("%s: FIRST = {%s}", g.NonTerminalName(nt), strings.Join(names, ", ")))
	}
	pterm.Println(pterm.Bold.Sprint("Nonterminals:"))
	for _, l := range ntLines {
		pterm.Println("  " + l)
	}

	pterm.Println(pterm.Bold.Sprint("Rules:"))
	for i, r := range g.Rules {
		pterm.Printf("  %d: %s -> %s\n", i, g.NonTerminalName(r.LHS), r.RHSString(g))
	}
}

// Diagnostics prints each record with the pterm prefix matching its
// severity, including the witness trail for conflicts.
func (p *Printer) Diagnostics(recs []diag.Record) {
	for _, r := range recs {
		switch r.Severity {
		case diag.Warning:
			pterm.Warning.Println(r.Message)
		case diag.Conflict:
			pterm.Warning.Println(r.Message)
			if len(r.Trail) > 0 {
				hops := []string{"0"}
				for i := len(r.Trail) - 1; i >= 0; i-- {
					hops = append(hops, fmt.Sprintf("--%s--> %d", r.Trail[i].Symbol, r.Trail[i].State))
				}
				pterm.Println("  witness: " + strings.Join(hops, " "))
			}
		default:
			pterm.Error.Println(r.Message)
		}
	}
}

// Table renders the ACTION/GOTO grid with rosed: one "S" column, an "A:"
// column per terminal, a separator, and a "G:" column per nonterminal.
func (p *Printer) Table(g *grammar.Grammar, table *lrtable.LRTable) string {
	headers := []string{"S", "|"}
	for t := 0; t < g.NumTerminals(); t++ {
		headers = append(headers, "A:"+g.TerminalName(t))
	}
	headers = append(headers, "|")
	for nt := 1; nt < g.NumNonTerminals(); nt++ {
		headers = append(headers, "G:"+g.NonTerminalName(nt))
	}

	data := [][]string{headers}
	for s := 0; s < table.NumStates(); s++ {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for t := 0; t < g.NumTerminals(); t++ {
			row = append(row, table.Action[s][t].String())
		}
		row = append(row, "|")
		for nt := 1; nt < g.NumNonTerminals(); nt++ {
			if v := table.Goto[s][nt]; v != 0 {
				row = append(row, fmt.Sprintf("%d", v))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, p.width(), rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Trace renders one parse step as a row of (state stack | symbol stack |
// remaining input | action), suitable to call once per lrparse.Step.
func (p *Printer) Trace(g *grammar.Grammar, step lrparse.Step) string {
	states := make([]string, len(step.States))
	for i, s := range step.States {
		states[i] = fmt.Sprintf("%d", s)
	}

	symbols := make([]string, len(step.Symbols))
	for i, sym := range step.Symbols {
		symbols[i] = sym.Name(g)
	}

	remaining := make([]string, len(step.Remaining))
	for i, t := range step.Remaining {
		remaining[i] = g.TerminalName(t)
	}

	data := [][]string{{
		strings.Join(states, " "),
		strings.Join(symbols, " "),
		strings.Join(remaining, " "),
		step.Action.String(),
	}}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, p.width(), rosed.Options{}).
		String()
}

// SyntaxError prints a *lrparse.SyntaxError using pterm's Error prefix,
// naming the valid terminals that would have continued the parse.
func (p *Printer) SyntaxError(g *grammar.Grammar, err *lrparse.SyntaxError) {
	var valid []string
	for _, t := range err.Valid {
		valid = append(valid, g.TerminalName(t))
	}
	pterm.Error.Printf("syntax error in state %d on terminal %q; expected %s\n",
		err.State, g.TerminalName(err.Terminal), util.MakeTextList(valid))
}

// Accepted prints a success message using pterm's Success style.
func (p *Printer) Accepted() {
	pterm.Success.Println("input accepted")
}
