package cli

import (
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
)

// createEngine initializes an engine with standard CLI conventions.
// Extra hooks are combined with the debug hooks.
func createEngine(debug bool, logger *slog.Logger, hooks ...domain.LifecycleHooks) *automata.Engine {
	if debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}

	return automata.New(
		automata.WithLogger(logger),
		automata.WithLifecycleHooks(observability.Combine(hooks...)),
	)
}
