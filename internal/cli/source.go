package cli

import (
	"context"
	"fmt"
	"os"

	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/definition"
)

// loadDefinition resolves ref as a definition file first and falls back to
// the catalog rooted at dir, where ref is a document ID.
func loadDefinition(ctx context.Context, dir, ref string) (definition.Definition, error) {
	if ref == "" {
		return definition.Definition{}, fmt.Errorf("an automaton file or catalog ID is required")
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return definition.Load(ref)
	}

	catalog, err := openCatalog(dir)
	if err != nil {
		return definition.Definition{}, err
	}
	return catalog.Load(ctx, ref)
}

func openCatalog(dir string) (*loamAdapter.Catalog, error) {
	if dir == "" {
		dir = "."
	}
	return loamAdapter.Open(dir)
}
