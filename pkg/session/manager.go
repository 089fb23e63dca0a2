package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes edits of stored automata, ensuring safe concurrent
// read-modify-write cycles. It uses reference counting to garbage collect
// unused locks.
type Manager struct {
	store ports.AutomatonStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker   ports.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	logger   *slog.Logger
	onChange ChangeFunc
}

// ChangeFunc receives the diff produced by a successful write.
// It runs while the automaton's lock is held and must not call back into the Manager.
type ChangeFunc func(id string, diff *domain.AutomatonDiff)

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithChangeHook registers a callback for every write that changed the automaton.
func WithChangeHook(fn ChangeFunc) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.AutomatonStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Load retrieves a definition from the store.
func (m *Manager) Load(ctx context.Context, id string) (definition.Definition, error) {
	var def definition.Definition
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		def, err = m.store.Load(ctx, id)
		return err
	})
	return def, err
}

// Save validates and persists a definition.
func (m *Manager) Save(ctx context.Context, def definition.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	return m.WithLock(ctx, def.ID, func(ctx context.Context) error {
		before := m.current(ctx, def.ID)
		if err := m.store.Save(ctx, def); err != nil {
			return err
		}
		after := def.Automaton()
		m.notify(def.ID, before, &after)
		return nil
	})
}

// Delete removes the definition from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		before := m.current(ctx, id)
		if err := m.store.Delete(ctx, id); err != nil {
			return err
		}
		m.notify(id, before, &domain.Automaton{})
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying automaton store.
func (m *Manager) Store() ports.AutomatonStore {
	return m.store
}

// Edit loads the automaton (or starts an empty one), applies the commands
// through an editor.Workspace and saves the result, all under the lock for
// id. Nothing is saved if any command fails.
func (m *Manager) Edit(ctx context.Context, id string, cmds ...editor.Command) (definition.Definition, error) {
	var out definition.Definition
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		def, err := m.store.Load(ctx, id)
		if errors.Is(err, domain.ErrAutomatonNotFound) {
			def = definition.Definition{ID: id}
		} else if err != nil {
			return fmt.Errorf("failed to load automaton: %w", err)
		}

		ws, err := editor.FromAutomaton(def.Automaton(), editor.WithLogger(m.logger))
		if err != nil {
			return fmt.Errorf("stored automaton %s is not editable: %w", id, err)
		}
		if err := editor.Apply(ws, cmds...); err != nil {
			return err
		}

		before := def.Automaton()
		snap := ws.Snapshot()
		def.States, def.Transitions = snap.States, snap.Transitions
		if err := m.store.Save(ctx, def); err != nil {
			return fmt.Errorf("failed to save automaton: %w", err)
		}
		m.notify(id, &before, &snap)
		out = def
		return nil
	})
	return out, err
}

// current loads the stored snapshot, or nil when there is none.
// The caller must hold the lock for id.
func (m *Manager) current(ctx context.Context, id string) *domain.Automaton {
	if m.onChange == nil {
		return nil
	}
	def, err := m.store.Load(ctx, id)
	if err != nil {
		return nil
	}
	a := def.Automaton()
	return &a
}

func (m *Manager) notify(id string, before, after *domain.Automaton) {
	if m.onChange == nil {
		return
	}
	if diff := domain.Diff(before, after); diff != nil {
		m.onChange(id, diff)
	}
}

// WithLock executes a function while holding the lock for the automaton.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"automaton_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
