package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner for the automata CLI.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{`    _         _                        _        `, "#818cf8"},
		{`   / \  _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#a78bfa"},
		{`  / _ \| | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#c084fc"},
		{` / ___ \ |_| | || (_) | | | | | | (_| | || (_| |`, "#e879f9"},
		{`/_/   \_\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Verdict colours an ACCEPTED/REJECTED line for the terminal.
func Verdict(accepted bool, text string) string {
	p := termenv.ColorProfile()
	color := "#ef4444"
	if accepted {
		color = "#22c55e"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
