/*
Lrone builds the canonical LR(1) ACTION/GOTO table for a grammar and drives
it over an input token stream, or over a REPL session of many streams.

Usage:

	lrone -g FILE [flags]

The flags are:

	-g, --grammar FILE
		Load the grammar from FILE (required). See the grammar file format
		in the documentation of grammar.ParseText in internal/grammar.

	-s, --string STRING
		Parse STRING (a space-separated sequence of terminal names) against
		the generated table and print the trace and result.

	-o, --csv FILE
		Write the ACTION+GOTO table to FILE in CSV form.

	-b, --bench
		Benchmark mode: suppress diagnostic, grammar, table, and trace
		output, and print only a completion line with the run id. Phase
		timings are not printed; they are recorded only in the -p capture.

	-p, --profile FILE
		Write a Chrome trace-format profiling capture to FILE.

	-l, --col-width N
		Trace/table column width. 0 (the default) auto-detects from the
		terminal width.

	-i, --interactive
		After generating the table, drop into a REPL that parses one input
		string per line until EOF.

	-d, --direct
		Force the REPL to read directly from stdin instead of going through
		GNU readline. Use when piping input to -i.

	-c, --config FILE
		Load default flag values from a TOML file; explicit flags above
		still take precedence.

	--no-color
		Disable ANSI styling regardless of TTY detection.

	-h, --help
		Print usage and exit 0.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/lrone/internal/config"
	"github.com/dekarrin/lrone/internal/grammar"
	"github.com/dekarrin/lrone/internal/input"
	"github.com/dekarrin/lrone/internal/lrparse"
	"github.com/dekarrin/lrone/internal/lrtable"
	"github.com/dekarrin/lrone/internal/present"
	"github.com/dekarrin/lrone/internal/profiler"
	"github.com/dekarrin/lrone/internal/tqerrors"
	"github.com/dekarrin/lrone/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution, including a
	// run that reports a parse-time syntax error.
	ExitSuccess = iota

	// ExitSetupError indicates an unsuccessful program execution due to an
	// issue with the CLI flags, loading the grammar, tokenizing the input
	// string, or writing an output file. A config file that fails to load
	// only produces a warning.
	ExitSetupError
)

var (
	returnCode int = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile     = pflag.StringP("grammar", "g", "", "The grammar file to load (required)")
	inputString     = pflag.StringP("string", "s", "", "A space-separated token stream to parse")
	csvFile         = pflag.StringP("csv", "o", "", "Write the ACTION+GOTO table to this file as CSV")
	bench           = pflag.BoolP("bench", "b", false, "Benchmark mode: suppress trace/table output, print only the run id")
	profileFile     = pflag.StringP("profile", "p", "", "Write a Chrome trace-format profiling capture to this file")
	colWidth        = pflag.IntP("col-width", "l", 0, "Trace/table column width (0 = auto-detect)")
	interactive     = pflag.BoolP("interactive", "i", false, "Drop into a REPL after generating the table")
	forceDirect     = pflag.BoolP("direct", "d", false, "Force reading REPL input directly from stdin instead of going through GNU readline")
	configFile      = pflag.StringP("config", "c", "", "Load default flag values from this TOML file")
	noColor         = pflag.Bool("no-color", false, "Disable ANSI styling")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", tqerrors.OperatorMessage(err))
		returnCode = ExitSetupError
		return
	}
}

func run() error {
	applyConfigDefaults()

	if *grammarFile == "" {
		return tqerrors.Setup("a grammar file must be given with -g/--grammar", "")
	}

	prof := profiler.New(*profileFile != "")
	printer := present.New(*colWidth, *noColor || os.Getenv("NO_COLOR") != "")

	f, err := os.Open(*grammarFile)
	if err != nil {
		return tqerrors.WrapSetupf(err, "could not open grammar file %q", *grammarFile)
	}
	defer f.Close()

	endLoad := prof.Span("load-grammar")
	g, recs := grammar.ParseText(f)
	endLoad()
	if !*bench {
		printer.Diagnostics(recs)
	}

	endFirst := prof.Span("compute-first")
	g.Calculate()
	endFirst()

	endGen := prof.Span("generate-table")
	table, tableRecs, err := lrtable.GenerateTable(g)
	endGen()
	if err != nil {
		return tqerrors.WrapSetupf(err, "could not generate parse table for %q", *grammarFile)
	}
	if !*bench {
		printer.Diagnostics(tableRecs)
		printer.Grammar(g)
		fmt.Println(printer.Table(g, table))
	}

	if *csvFile != "" {
		if err := writeCSV(*csvFile, g, table); err != nil {
			return tqerrors.WrapSetupf(err, "could not write CSV table to %q", *csvFile)
		}
	}

	d := lrparse.New(g, table)

	if *inputString != "" {
		if err := parseAndReport(d, g, printer, *inputString, prof); err != nil {
			return err
		}
	}

	if *interactive {
		if err := repl(d, g, printer, prof); err != nil {
			return err
		}
	}

	if *profileFile != "" {
		pf, err := os.Create(*profileFile)
		if err != nil {
			return tqerrors.WrapSetupf(err, "could not write profile to %q", *profileFile)
		}
		defer pf.Close()
		if err := prof.WriteTo(pf); err != nil {
			return tqerrors.WrapSetupf(err, "could not write profile to %q", *profileFile)
		}
	}

	if *bench {
		fmt.Printf("run %s complete\n", prof.RunID())
	}

	return nil
}

func applyConfigDefaults() {
	if *configFile == "" {
		return
	}
	defaults, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: could not load config %q: %s\n", *configFile, err)
		return
	}

	if *grammarFile == "" && defaults.Grammar != "" {
		*grammarFile = defaults.Grammar
	}
	if *inputString == "" && defaults.String != "" {
		*inputString = defaults.String
	}
	if *csvFile == "" && defaults.CSV != "" {
		*csvFile = defaults.CSV
	}
	if !*bench && defaults.Bench {
		*bench = true
	}
	if *profileFile == "" && defaults.Profile != "" {
		*profileFile = defaults.Profile
	}
	if *colWidth == 0 && defaults.ColWidth != 0 {
		*colWidth = defaults.ColWidth
	}
	if !*interactive && defaults.Interactive {
		*interactive = true
	}
	if !*forceDirect && defaults.Direct {
		*forceDirect = true
	}
	if !*noColor && defaults.NoColor {
		*noColor = true
	}
}

func parseAndReport(d *lrparse.Driver, g *grammar.Grammar, printer *present.Printer, line string, prof *profiler.Profiler) error {
	toks, err := lrparse.TokenizeString(line, g)
	if err != nil {
		return tqerrors.WrapSetupf(err, "could not tokenize input %q", line)
	}

	endParse := prof.Span("parse")
	defer endParse()

	accepted, synErr := d.Parse(toks, func(s lrparse.Step) {
		if !*bench {
			fmt.Println(printer.Trace(g, s))
		}
	})

	if synErr != nil {
		if !*bench {
			printer.SyntaxError(g, synErr)
		}
		return nil
	}
	if accepted && !*bench {
		printer.Accepted()
	}
	return nil
}

func repl(d *lrparse.Driver, g *grammar.Grammar, printer *present.Printer, prof *profiler.Profiler) error {
	var reader input.Reader
	if *forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ir, err := input.NewInteractiveReader("lrone> ")
		if err != nil {
			return tqerrors.WrapSetupf(err, "could not start interactive session")
		}
		reader = ir
	}
	defer reader.Close()

	for {
		line, err := reader.ReadTokens()
		if err != nil {
			break
		}
		if strings.EqualFold(line, "quit") {
			break
		}
		if err := parseAndReport(d, g, printer, line, prof); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", tqerrors.OperatorMessage(err))
		}
	}
	return nil
}

// csvActionCell renders an ACTION cell in the E/S<n>/R<n>/A form the CSV
// dump uses, distinct from LRAction.String's "s%d"/"r%d" form used in
// trace/table presentation.
func csvActionCell(a lrtable.LRAction) string {
	switch a.Type {
	case lrtable.ActionShift:
		return fmt.Sprintf("S%d", a.State)
	case lrtable.ActionReduce:
		return fmt.Sprintf("R%d", a.Rule)
	case lrtable.ActionAccept:
		return "A"
	default:
		return "E"
	}
}

func writeCSV(path string, g *grammar.Grammar, table *lrtable.LRTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString("State,")
	for t := 0; t < g.NumTerminals(); t++ {
		fmt.Fprintf(&sb, "%q,", g.TerminalName(t))
	}
	for nt := 1; nt < g.NumNonTerminals(); nt++ {
		fmt.Fprintf(&sb, "%q,", g.NonTerminalName(nt))
	}
	sb.WriteString("\n")

	for s := 0; s < table.NumStates(); s++ {
		fmt.Fprintf(&sb, "%q,", fmt.Sprintf("%d", s))
		for t := 0; t < g.NumTerminals(); t++ {
			fmt.Fprintf(&sb, "%q,", csvActionCell(table.Action[s][t]))
		}
		for nt := 1; nt < g.NumNonTerminals(); nt++ {
			if v := table.Goto[s][nt]; v != 0 {
				fmt.Fprintf(&sb, "%q,", fmt.Sprintf("%d", v))
			} else {
				sb.WriteString(`"",`)
			}
		}
		sb.WriteString("\n")
	}

	_, err = f.WriteString(sb.String())
	return err
}
