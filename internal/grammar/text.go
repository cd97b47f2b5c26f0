package grammar

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/lrone/internal/diag"
)

// ParseText builds a Grammar from the three-section text format: a line of
// terminal names, a line of nonterminal names, then one production per
// remaining nonempty line. Terminal 0 and nonterminal 0 are pre-registered
// before any user names are read, and rule 0 is the automatic augmentation
// S' → <first user nonterminal>.
func ParseText(r io.Reader) (*Grammar, []diag.Record) {
	g := New()
	var recs []diag.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	termLine, _ := readLine(scanner)
	for _, name := range splitFields(termLine) {
		if _, exists := g.TerminalID(name); exists {
			recs = append(recs, diag.Warningf("duplicate terminal name %q ignored", name))
		}
		g.AddTerminal(name)
	}

	ntLine, _ := readLine(scanner)
	for _, name := range splitFields(ntLine) {
		if _, exists := g.TerminalID(name); exists {
			recs = append(recs, diag.Warningf("nonterminal name %q collides with an existing terminal", name))
		}
		if _, exists := g.NonTerminalID(name); exists {
			recs = append(recs, diag.Warningf("duplicate nonterminal name %q ignored", name))
		}
		g.AddNonTerminal(name)
	}

	// Rule 0: the automatic augmentation S' → <start symbol>.
	g.AddRule(AugmentedStart, []Symbol{N(g.StartSymbol())})

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitFields(line)
		lhsName := fields[0]
		lhs, ok := g.NonTerminalID(lhsName)
		if !ok {
			recs = append(recs, diag.Warningf("unknown non-terminal %q, discarding rule %q", lhsName, line))
			continue
		}

		var rhs []Symbol
		for _, item := range fields[1:] {
			if tid, ok := g.TerminalID(item); ok {
				rhs = append(rhs, T(tid))
			} else if ntid, ok := g.NonTerminalID(item); ok {
				rhs = append(rhs, N(ntid))
			} else {
				recs = append(recs, diag.Warningf("unknown symbol %q, skipping in rule %q", item, line))
			}
		}

		g.AddRule(lhs, rhs)
	}

	return g, recs
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

// splitFields splits on single spaces (the format's separator, not
// arbitrary whitespace) and drops empty fields so that repeated or trailing
// spaces don't produce a spurious empty symbol name.
func splitFields(line string) []string {
	raw := strings.Split(line, " ")
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
