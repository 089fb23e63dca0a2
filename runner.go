package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Runner is an interactive loop that reads words line by line and prints
// the verdict of each against a fixed automaton.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms a simulation result into printable text.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(domain.SimulationResult) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// ParseWords splits a comma-separated batch into words.
// Entries are trimmed; an empty entry is the empty word (ε).
func ParseWords(line string) []string {
	parts := strings.Split(line, ",")
	words := make([]string, len(parts))
	for i, p := range parts {
		words[i] = strings.TrimSpace(p)
	}
	return words
}

// Run reads batches until EOF or "exit"/"quit" and returns how many words
// were simulated.
func (r *Runner) Run(engine *Engine, a domain.Automaton) (int, error) {
	if r.Input == nil {
		return 0, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return 0, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	if !r.Headless {
		fmt.Fprintf(writer, "--- Automata Runner (%s, %d states) ---\n", engine.Kind(a), len(a.States))
		fmt.Fprintln(writer, "Enter comma-separated words, an empty line for ε, 'exit' to quit.")
	}

	count := 0
	for {
		if !r.Headless {
			fmt.Fprint(writer, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil && err != io.EOF {
			return count, fmt.Errorf("input error: %w", err)
		}
		if err == io.EOF && text == "" {
			break
		}

		line := strings.TrimRight(text, "\r\n")
		if cmd := strings.TrimSpace(line); cmd == "exit" || cmd == "quit" {
			if !r.Headless {
				fmt.Fprintln(writer, "Bye!")
			}
			break
		}

		results := engine.SimulateAll(a, ParseWords(line))
		for _, res := range results {
			count++
			if err := r.print(res); err != nil {
				return count, err
			}
		}
		if len(results) > 1 {
			fmt.Fprintln(writer, BatchSummary(results))
		}

		if err == io.EOF {
			break
		}
	}
	return count, nil
}

func (r *Runner) print(res domain.SimulationResult) error {
	output := FormatResult(res)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(res); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(r.Output, strings.TrimRight(output, "\n"))
	return err
}

// BatchSummary reports how many results of a batch were accepted.
func BatchSummary(results []domain.SimulationResult) string {
	accepted := 0
	for _, res := range results {
		if res.Accepted() {
			accepted++
		}
	}
	return fmt.Sprintf("batch done: %d of %d words accepted", accepted, len(results))
}

// FormatResult renders a result as a single plain-text line.
func FormatResult(res domain.SimulationResult) string {
	verdict := "REJECTED"
	if res.Accepted() {
		verdict = "ACCEPTED"
	}

	path := make([]string, 0, len(res.Path()))
	for _, step := range res.Steps() {
		if len(path) == 0 {
			path = append(path, step.From)
		}
		path = append(path, fmt.Sprintf("-%s-> %s", step.Symbol, step.To))
	}
	if len(path) == 0 && len(res.Path()) > 0 {
		path = append(path, res.Path()[0].Name)
	}

	return fmt.Sprintf("%s %s: %s [%s]", verdict, domain.RenderWord(res.Word()), res.Message(), strings.Join(path, " "))
}
