package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// StreamManager fans automaton diffs out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // AutomatonID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager. A nil logger discards output.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for id. The returned func unsubscribes and
// closes the channel.
func (sm *StreamManager) Subscribe(id string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- string]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of id without blocking.
func (sm *StreamManager) Broadcast(id string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs, ok := sm.subscribers[id]
	if !ok {
		return
	}
	sm.logger.Debug("broadcasting diff", "automaton_id", id, "subscribers", len(subs), "payload_size", len(msg))
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE client buffer full, dropping message", "automaton_id", id)
		}
	}
}

// Publish encodes a diff and broadcasts it. It matches session.ChangeFunc.
func (sm *StreamManager) Publish(id string, diff *domain.AutomatonDiff) {
	bytes, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("failed to encode diff", "automaton_id", id, "err", err)
		return
	}
	sm.Broadcast(id, string(bytes))
}
