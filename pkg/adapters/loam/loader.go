package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Catalog adapts the Loam library to the ports.Catalog interface.
// Each document (Markdown with frontmatter, JSON or YAML) holds one automaton.
type Catalog struct {
	Repo *loam.TypedRepository[AutomatonMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[AutomatonMetadata]) *Catalog {
	return &Catalog{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository rooted at dir.
// Strict mode keeps numbers consistent across JSON and frontmatter documents.
func Open(dir string) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[AutomatonMetadata](repo)), nil
}

// Load returns the automaton whose normalized ID matches id.
// The Markdown body is used as the description when none is declared.
func (c *Catalog) Load(ctx context.Context, id string) (definition.Definition, error) {
	defs, err := c.index(ctx)
	if err != nil {
		return definition.Definition{}, err
	}

	def, ok := defs[trimExtension(id)]
	if !ok {
		return definition.Definition{}, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	if err := def.Validate(); err != nil {
		return definition.Definition{}, fmt.Errorf("automaton %s: %w", def.ID, err)
	}
	return def, nil
}

// List lists all automata in the repository.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	defs, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	return ids, nil
}

// index reads every document and keys the converted definitions by ID.
func (c *Catalog) index(ctx context.Context) (map[string]definition.Definition, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	defs := make(map[string]definition.Definition, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		defs[id] = toDefinition(id, doc.Data, doc.Content)
	}
	return defs, nil
}

func toDefinition(id string, meta AutomatonMetadata, content string) definition.Definition {
	def := definition.Definition{
		ID:          id,
		Name:        meta.Name,
		Description: meta.Description,
		States:      make([]domain.State, 0, len(meta.States)),
		Transitions: make([]domain.Transition, 0, len(meta.Transitions)),
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}

	for _, s := range meta.States {
		def.States = append(def.States, domain.State{
			Name:    s.Name,
			Initial: s.Initial,
			Final:   s.Final,
			X:       s.X,
			Y:       s.Y,
		})
	}
	for _, lt := range meta.Transitions {
		symbols := lt.Symbols
		if symbols == "" {
			symbols = lt.On
		}
		def.Transitions = append(def.Transitions, domain.NewTransition(lt.From, lt.To, symbols))
	}
	return def
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch streams the IDs of documents changed on disk until ctx is done.
func (c *Catalog) Watch(ctx context.Context) (<-chan string, error) {
	events, err := c.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces on its side; forward the normalized ID.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
