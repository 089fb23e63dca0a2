package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// startMarker is the invisible node pointing at initial states.
const startMarker = "__start"

// GenerateMermaid produces a Mermaid flowchart syntax string from an automaton.
// It applies semantic styling:
// - State: ((Circle))
// - Final state: (((Double circle)))
// - Initial state: arrow from an unlabeled start marker
// It also applies overlay styles (Visited/Current/walked edges) if provided.
func GenerateMermaid(a domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range a.States {
		safeID := sanitizeMermaidID(s.Name)

		opener, closer := "((", "))"
		if s.Final {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(s.Name), closer)
	}

	edge := 0
	var walked []int
	for _, s := range a.InitialStates() {
		fmt.Fprintf(&sb, "    %s_%s[\" \"] --> %s\n", startMarker, sanitizeMermaidID(s.Name), sanitizeMermaidID(s.Name))
		edge++
	}
	for _, t := range a.Transitions {
		arrow := fmt.Sprintf("-- \"%s\" -->", escapeLabel(t.DisplayLabel()))
		if t.IsEpsilon() {
			arrow = fmt.Sprintf("-. \"%s\" .->", escapeLabel(t.DisplayLabel()))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(t.From), arrow, sanitizeMermaidID(t.To))
		if overlay.walked(t) {
			walked = append(walked, edge)
		}
		edge++
	}

	for _, s := range a.InitialStates() {
		fmt.Fprintf(&sb, "    style %s_%s fill:none,stroke:none\n", startMarker, sanitizeMermaidID(s.Name))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(name)
			if !visited[safeID] && safeID != "" && name != overlay.CurrentState {
				visited[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			class := "rejected"
			if overlay.Accepted {
				class = "accepted"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(overlay.CurrentState), class)
		}

		for _, i := range walked {
			fmt.Fprintf(&sb, "    linkStyle %d stroke:#01579b,stroke-width:3px;\n", i)
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
