package observability

import (
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Combine fans every event out to each hook set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var onSimulate []func(*domain.SimulationEvent)
	var onAnalyze []func(*domain.AnalysisEvent)
	for _, h := range sets {
		if h.OnSimulate != nil {
			onSimulate = append(onSimulate, h.OnSimulate)
		}
		if h.OnAnalyze != nil {
			onAnalyze = append(onAnalyze, h.OnAnalyze)
		}
	}

	var combined domain.LifecycleHooks
	if len(onSimulate) > 0 {
		combined.OnSimulate = func(e *domain.SimulationEvent) {
			for _, fn := range onSimulate {
				fn(e)
			}
		}
	}
	if len(onAnalyze) > 0 {
		combined.OnAnalyze = func(e *domain.AnalysisEvent) {
			for _, fn := range onAnalyze {
				fn(e)
			}
		}
	}
	return combined
}

// LogHooks audits every simulation and analysis at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulate: func(e *domain.SimulationEvent) {
			logger.Debug("simulation",
				"kind", e.Kind,
				"word", domain.RenderWord(e.Word),
				"accepted", e.Accepted,
				"steps", e.Steps,
				"duration", e.Duration,
			)
		},
		OnAnalyze: func(e *domain.AnalysisEvent) {
			logger.Debug("analysis",
				"kind", e.Kind,
				"states", e.States,
				"diagnostics", e.Diagnostics,
			)
		},
	}
}
