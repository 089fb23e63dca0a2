package editor

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Op names a workspace edit.
type Op string

const (
	OpAddState    Op = "add_state"
	OpRenameState Op = "rename_state"
	OpRemoveState Op = "remove_state"
	OpSetInitial  Op = "set_initial"
	OpSetFinal    Op = "set_final"
	OpMove        Op = "move"
	OpConnect     Op = "connect"
	OpRelabel     Op = "relabel"
	OpDisconnect  Op = "disconnect"
	OpClear       Op = "clear"
	OpResetNaming Op = "reset_naming"
)

// ErrUnknownOp is returned when a command names an unsupported edit.
var ErrUnknownOp = errors.New("unknown edit operation")

// Command is a serializable edit, so remote clients (HTTP, MCP) can drive a
// workspace. Only the fields relevant to Op are read.
type Command struct {
	Op      Op      `json:"op" yaml:"op" mapstructure:"op"`
	State   string  `json:"state,omitempty" yaml:"state,omitempty" mapstructure:"state"`
	NewName string  `json:"new_name,omitempty" yaml:"new_name,omitempty" mapstructure:"new_name"`
	From    string  `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	To      string  `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
	Symbols string  `json:"symbols,omitempty" yaml:"symbols,omitempty" mapstructure:"symbols"`
	Label   string  `json:"new_symbols,omitempty" yaml:"new_symbols,omitempty" mapstructure:"new_symbols"`
	Flag    bool    `json:"flag,omitempty" yaml:"flag,omitempty" mapstructure:"flag"`
	X       float64 `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y       float64 `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
}

// Apply runs commands in order and stops at the first failure.
// Edits applied before the failure are kept.
func Apply(w *Workspace, cmds ...Command) error {
	for i, cmd := range cmds {
		if err := apply(w, cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return nil
}

func apply(w *Workspace, cmd Command) error {
	edge := domain.NewTransition(cmd.From, cmd.To, normalizeLabel(cmd.Symbols))

	switch cmd.Op {
	case OpAddState:
		_, err := w.AddState(cmd.State, cmd.X, cmd.Y)
		return err
	case OpRenameState:
		return w.RenameState(cmd.State, cmd.NewName)
	case OpRemoveState:
		_, err := w.RemoveState(cmd.State)
		return err
	case OpSetInitial:
		_, err := w.SetInitial(cmd.State, cmd.Flag)
		return err
	case OpSetFinal:
		return w.SetFinal(cmd.State, cmd.Flag)
	case OpMove:
		return w.Move(cmd.State, cmd.X, cmd.Y)
	case OpConnect:
		_, err := w.Connect(cmd.From, cmd.To, cmd.Symbols)
		return err
	case OpRelabel:
		_, err := w.Relabel(edge, cmd.Label)
		return err
	case OpDisconnect:
		return w.Disconnect(edge)
	case OpClear:
		w.Clear()
		return nil
	case OpResetNaming:
		w.ResetNaming()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}
}
