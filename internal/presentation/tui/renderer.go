package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("glamour renderer unavailable: %w", err)
		}
		return r.Render(markdown)
	}
}

// NewResultRenderer renders simulation results as a markdown trace table.
// It matches automata.ContentRenderer.
func NewResultRenderer() func(domain.SimulationResult) (string, error) {
	render := NewRenderer()
	return func(res domain.SimulationResult) (string, error) {
		return render(ResultMarkdown(res))
	}
}

// ResultMarkdown describes a simulation as markdown: the verdict, the
// message and one table row per step of the witness path.
func ResultMarkdown(res domain.SimulationResult) string {
	var sb strings.Builder

	verdict := "❌ REJECTED"
	if res.Accepted() {
		verdict = "✅ ACCEPTED"
	}
	fmt.Fprintf(&sb, "### %s `%s`\n\n", verdict, domain.RenderWord(res.Word()))
	fmt.Fprintf(&sb, "%s\n\n", res.Message())

	steps := res.Steps()
	if len(steps) == 0 {
		if path := res.Path(); len(path) > 0 {
			fmt.Fprintf(&sb, "Stayed in `%s`.\n", path[0].Name)
		}
		return sb.String()
	}

	sb.WriteString("| # | From | Symbol | To |\n")
	sb.WriteString("|---|------|--------|----|\n")
	for i, step := range steps {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i+1, step.From, step.Symbol, step.To)
	}
	return sb.String()
}
