package cli

import (
	"context"
	"fmt"
	"io"
)

// CatalogOptions configures the catalog command.
type CatalogOptions struct {
	Dir    string
	Watch  bool
	Debug  bool
	Output io.Writer
}

// Catalog lists the automata found under Dir. In watch mode it keeps
// running and re-analyzes every document changed on disk.
func Catalog(ctx context.Context, opts CatalogOptions) error {
	logger := createLogger(opts.Debug)

	catalog, err := openCatalog(opts.Dir)
	if err != nil {
		return err
	}
	ids, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(opts.Output, id)
	}
	if !opts.Watch {
		return nil
	}

	changes, err := catalog.Watch(ctx)
	if err != nil {
		return err
	}
	engine := createEngine(opts.Debug, logger)
	printSystemMessage(opts.Output, "Watching %d automata. Press Ctrl+C to stop.", len(ids))

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			def, err := catalog.Load(ctx, id)
			if err != nil {
				logger.Warn("reload failed", "id", id, "err", err)
				printSystemMessage(opts.Output, "%s: %v", id, err)
				continue
			}
			report := engine.Analyze(def.Automaton())
			printSystemMessage(opts.Output, "%s changed: %s, %d diagnostics", id, report.Kind, len(report.Diagnostics))
		}
	}
}
