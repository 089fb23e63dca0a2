package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
)

// SimulateOptions configures the simulate command.
type SimulateOptions struct {
	Dir   string
	Ref   string
	Words []string
	Step  bool
	Plain bool
	Debug bool

	Input  io.Reader
	Output io.Writer
}

// Simulate runs the given words against an automaton, or starts the
// interactive runner when no words are given.
func Simulate(ctx context.Context, opts SimulateOptions) error {
	logger := createLogger(opts.Debug)

	def, err := loadDefinition(ctx, opts.Dir, opts.Ref)
	if err != nil {
		return err
	}
	a := def.Automaton()
	engine := createEngine(opts.Debug, logger)
	rich := !opts.Plain && isTerminal(opts.Output)

	if len(opts.Words) == 0 {
		if rich {
			tui.PrintBanner(opts.Output)
		}
		r := automata.NewRunner()
		r.Input = opts.Input
		r.Output = opts.Output
		r.Headless = !isTerminal(opts.Input)
		if rich {
			r.Renderer = tui.NewResultRenderer()
		}
		n, err := r.Run(engine, a)
		logger.Debug("runner finished", "automaton", def.ID, "words", n)
		return err
	}

	results := engine.SimulateAll(a, opts.Words)
	for _, res := range results {
		if opts.Step {
			printPlayback(opts.Output, res)
		}
		fmt.Fprintln(opts.Output, formatLine(res, rich))
	}
	if len(results) > 1 {
		printSystemMessage(opts.Output, "%s", automata.BatchSummary(results))
	}
	return nil
}

func formatLine(res domain.SimulationResult, rich bool) string {
	line := automata.FormatResult(res)
	if !rich {
		return line
	}
	verdict, rest, _ := strings.Cut(line, " ")
	return tui.Verdict(res.Accepted(), verdict) + " " + rest
}

// printPlayback walks the witness path frame by frame.
func printPlayback(w io.Writer, res domain.SimulationResult) {
	p := editor.NewPlayback(res)
	for {
		f, ok := p.Frame()
		if !ok {
			return
		}
		fmt.Fprintf(w, "  %-12s %s\n", f.Progress(res.Word()), f)
		if !p.Next() {
			return
		}
	}
}
