package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
)

// Output formats shared by analyze, graph and sample.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// InspectOptions configures the read-only commands (analyze, graph, sample).
type InspectOptions struct {
	Dir    string
	Ref    string
	Format string
	Debug  bool
	Output io.Writer

	// graph
	Word *string

	// sample
	Limit     int
	MaxLength int
}

// Analyze prints the static analysis report.
func Analyze(ctx context.Context, opts InspectOptions) error {
	def, err := loadDefinition(ctx, opts.Dir, opts.Ref)
	if err != nil {
		return err
	}
	report := createEngine(opts.Debug, createLogger(opts.Debug)).Analyze(def.Automaton())

	switch opts.Format {
	case FormatJSON:
		return writeJSON(opts.Output, report)
	case FormatText, "":
		fmt.Fprintf(opts.Output, "%s: %s\n", def.Title(), report.Kind)
		fmt.Fprintf(opts.Output, "states:      %d (%d initial, %d final)\n",
			report.Summary.States, report.Summary.InitialStates, report.Summary.FinalStates)
		fmt.Fprintf(opts.Output, "transitions: %d (%d ε)\n",
			report.Summary.Transitions, report.Summary.EpsilonTransitions)
		fmt.Fprintf(opts.Output, "alphabet:    {%s}\n", strings.Join(report.Alphabet, ", "))
		fmt.Fprintf(opts.Output, "complete:    %s\n", yesNo(report.Complete))
		fmt.Fprintf(opts.Output, "unreachable: %s\n", listOrDash(report.Unreachable))
		fmt.Fprintf(opts.Output, "dead states: %s\n", listOrDash(report.DeadStates))
		if len(report.Diagnostics) == 0 {
			fmt.Fprintln(opts.Output, "no issues found")
			return nil
		}
		fmt.Fprintln(opts.Output, "diagnostics:")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(opts.Output, "  - %s\n", d)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text or json)", opts.Format)
	}
}

// Graph prints a Mermaid or DOT diagram, optionally highlighting the
// witness path of a word.
func Graph(ctx context.Context, opts InspectOptions) error {
	def, err := loadDefinition(ctx, opts.Dir, opts.Ref)
	if err != nil {
		return err
	}
	a := def.Automaton()

	var overlay *graph.Overlay
	if opts.Word != nil {
		res := createEngine(opts.Debug, createLogger(opts.Debug)).Simulate(a, *opts.Word)
		overlay = graph.OverlayFromResult(res)
	}

	switch opts.Format {
	case FormatMermaid, "":
		fmt.Fprint(opts.Output, graph.GenerateMermaid(a, overlay))
	case FormatDOT:
		fmt.Fprint(opts.Output, graph.GenerateDOT(a, overlay))
	default:
		return fmt.Errorf("unsupported format %q (use mermaid or dot)", opts.Format)
	}
	return nil
}

// Sample prints accepted words in shortlex order.
func Sample(ctx context.Context, opts InspectOptions) error {
	def, err := loadDefinition(ctx, opts.Dir, opts.Ref)
	if err != nil {
		return err
	}
	words := createEngine(opts.Debug, createLogger(opts.Debug)).Sample(def.Automaton(), opts.Limit, opts.MaxLength)

	switch opts.Format {
	case FormatJSON:
		return writeJSON(opts.Output, words)
	case FormatText, "":
		if len(words) == 0 {
			printSystemMessage(opts.Output, "no accepted words up to length %d", opts.MaxLength)
			return nil
		}
		for _, w := range words {
			fmt.Fprintln(opts.Output, domain.RenderWord(w))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text or json)", opts.Format)
	}
}

// Version prints the library version.
func Version(w io.Writer) {
	fmt.Fprintf(w, "automata %s\n", strings.TrimSpace(automata.Version))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func listOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
