/*
Package observability provides tools for monitoring the automata engine.

It includes Prometheus metrics and structured-log auditing, both fed by the
engine's lifecycle hooks, and a way to fan several hook sets into one.

Usage:

	metrics := observability.NewMetrics()
	hooks := observability.Combine(metrics.Hooks(), observability.LogHooks(logger))
	engine := automata.New(automata.WithLifecycleHooks(hooks))
	http.Handle("/metrics", metrics.Handler())
*/
package observability
