package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph of the automaton.
// Final states are double circles and initial states are pointed at by an
// invisible start node. Walked edges and visited states of the overlay are
// highlighted.
func GenerateDOT(a domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder

	sb.WriteString("digraph Automaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	visited := overlay.visited()
	for _, s := range a.States {
		attrs := []string{fmt.Sprintf("label=%s", quote(s.Name))}
		if s.Final {
			attrs = append(attrs, "shape=doublecircle")
		}
		if visited[s.Name] {
			attrs = append(attrs, "style=filled", "fillcolor=\"#e1f5fe\"")
		}
		if overlay != nil && s.Name == overlay.CurrentState {
			color := "#c62828"
			if overlay.Accepted {
				color = "#2e7d32"
			}
			attrs = append(attrs, "penwidth=3", fmt.Sprintf("color=%s", quote(color)))
		}
		fmt.Fprintf(&sb, "  %s [%s];\n", quote(s.Name), strings.Join(attrs, ", "))
	}
	sb.WriteString("\n")

	for i, s := range a.InitialStates() {
		start := fmt.Sprintf("__start%d", i)
		fmt.Fprintf(&sb, "  %s [shape=point];\n", start)
		fmt.Fprintf(&sb, "  %s -> %s;\n", start, quote(s.Name))
	}

	for _, t := range a.Transitions {
		attrs := []string{fmt.Sprintf("label=%s", quote(t.DisplayLabel()))}
		if t.IsEpsilon() {
			attrs = append(attrs, "style=dashed")
		}
		if overlay.walked(t) {
			attrs = append(attrs, "color=\"#01579b\"", "penwidth=2")
		}
		fmt.Fprintf(&sb, "  %s -> %s [%s];\n", quote(t.From), quote(t.To), strings.Join(attrs, ", "))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}
