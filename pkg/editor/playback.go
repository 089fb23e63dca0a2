package editor

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Playback steps back and forth through the witness path of a simulation.
type Playback struct {
	result domain.SimulationResult
	path   []domain.State
	steps  []domain.Step
	pos    int
}

// Frame describes the playback cursor.
type Frame struct {
	Index    int
	Total    int
	State    domain.State
	Symbol   string // symbol used to reach State; empty on the first frame
	Consumed int    // input symbols consumed so far, ε-moves excluded
	Last     bool
	Accepted bool // only true on the last frame of an accepted run
}

// NewPlayback creates a playback positioned on the first frame.
func NewPlayback(res domain.SimulationResult) *Playback {
	return &Playback{
		result: res,
		path:   res.Path(),
		steps:  res.Steps(),
	}
}

// Len returns the number of frames.
func (p *Playback) Len() int { return len(p.path) }

// Result returns the simulation being played back.
func (p *Playback) Result() domain.SimulationResult { return p.result }

// Next advances the cursor. It reports false at the last frame.
func (p *Playback) Next() bool {
	if p.pos >= len(p.path)-1 {
		return false
	}
	p.pos++
	return true
}

// Prev moves the cursor back. It reports false at the first frame.
func (p *Playback) Prev() bool {
	if p.pos <= 0 {
		return false
	}
	p.pos--
	return true
}

// Reset moves the cursor to the first frame.
func (p *Playback) Reset() { p.pos = 0 }

// Frame returns the frame under the cursor; false for an empty path.
func (p *Playback) Frame() (Frame, bool) {
	if len(p.path) == 0 {
		return Frame{}, false
	}

	f := Frame{
		Index: p.pos,
		Total: len(p.path),
		State: p.path[p.pos],
		Last:  p.pos == len(p.path)-1,
	}
	if p.pos > 0 {
		f.Symbol = p.steps[p.pos-1].Symbol
	}
	for _, step := range p.steps[:p.pos] {
		if step.Symbol != domain.Epsilon {
			f.Consumed++
		}
	}
	f.Accepted = f.Last && p.result.Accepted()
	return f, true
}

func (f Frame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %d of %d | state %s", f.Index+1, f.Total, f.State.Name)
	if f.Index == 0 {
		b.WriteString(" (initial)")
	} else {
		fmt.Fprintf(&b, " | consumed '%s'", f.Symbol)
	}
	if f.Last {
		if f.State.Final {
			b.WriteString(" | FINAL")
		} else {
			b.WriteString(" | NON-FINAL")
		}
	}
	return b.String()
}

// Progress marks the consumed part of word, e.g. "[a][b]c".
func (f Frame) Progress(word string) string {
	if word == "" {
		return domain.Epsilon
	}
	var b strings.Builder
	for i, r := range []rune(word) {
		if i < f.Consumed {
			fmt.Fprintf(&b, "[%c]", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
