package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/analyzer"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultBody struct {
	Accepted bool     `json:"accepted"`
	Word     string   `json:"word"`
	Path     []string `json:"path"`
	Message  string   `json:"message"`
}

type simulateBody struct {
	Kind     string       `json:"kind"`
	Results  []resultBody `json:"results"`
	Accepted int          `json:"accepted"`
}

func endsWithB() definition.Definition {
	return definition.Definition{
		ID: "ends-with-b",
		States: []domain.State{
			{Name: "q0", Initial: true},
			{Name: "q1", Final: true},
		},
		Transitions: []domain.Transition{
			domain.NewTransition("q0", "q0", "a"),
			domain.NewTransition("q0", "q1", "b"),
			domain.NewTransition("q1", "q1", "b"),
			domain.NewTransition("q1", "q0", "a"),
		},
	}
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSimulate_Inline(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "POST", "/simulate", map[string]any{
		"automaton": endsWithB(),
		"words":     []string{"ab", "ba", ""},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[simulateBody](t, w)
	assert.Equal(t, "DFA", resp.Kind)
	assert.Equal(t, 1, resp.Accepted)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Accepted)
	assert.Equal(t, []string{"q0", "q0", "q1"}, resp.Results[0].Path)
	assert.False(t, resp.Results[1].Accepted)
	assert.False(t, resp.Results[2].Accepted)
	assert.Equal(t, "", resp.Results[2].Word)
}

func TestSimulate_SingleWordComesFirst(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "POST", "/simulate", map[string]any{
		"automaton": endsWithB(),
		"word":      "b",
		"words":     []string{"a"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[simulateBody](t, w)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "b", resp.Results[0].Word)
	assert.Equal(t, "a", resp.Results[1].Word)
}

func TestSimulate_BadRequests(t *testing.T) {
	handler := NewHandler(automata.New())

	t.Run("Invalid Automaton", func(t *testing.T) {
		bad := endsWithB()
		bad.Transitions = append(bad.Transitions, domain.NewTransition("q0", "ghost", "c"))
		w := do(t, handler, "POST", "/simulate", map[string]any{"automaton": bad, "word": "a"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode[errorResponse](t, w)
		require.Len(t, resp.Details, 1)
		assert.Contains(t, resp.Details[0], "transitions[4].to")
	})

	t.Run("No Words", func(t *testing.T) {
		w := do(t, handler, "POST", "/simulate", map[string]any{"automaton": endsWithB()})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "word or words is required")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/simulate", strings.NewReader("{"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyze_Inline(t *testing.T) {
	handler := NewHandler(automata.New())

	def := definition.Definition{
		States: []domain.State{{Name: "q0", Initial: true}, {Name: "q1"}},
		Transitions: []domain.Transition{
			domain.NewTransition("q0", "q0", "a"),
		},
	}
	w := do(t, handler, "POST", "/analyze", map[string]any{"automaton": def})
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[analyzer.Report](t, w)
	assert.Equal(t, domain.KindDFA, report.Kind)
	assert.Equal(t, []string{"q1"}, report.Unreachable)
	assert.Contains(t, report.Diagnostics, analyzer.MsgNoFinalState)
	assert.Equal(t, 2, report.Summary.States)
}

func TestSample(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "POST", "/sample", map[string]any{
		"automaton":  endsWithB(),
		"limit":      3,
		"max_length": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SampleResponse](t, w)
	assert.Equal(t, []string{"b", "ab", "bb"}, resp.Words)

	w = do(t, handler, "POST", "/sample", map[string]any{
		"automaton":  endsWithB(),
		"max_length": MaxSampleLength + 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutomata_Lifecycle(t *testing.T) {
	handler := NewHandler(automata.New())

	// 1. Create (body ID is ignored)
	def := endsWithB()
	def.ID = "ignored"
	w := do(t, handler, "PUT", "/automata/ends", def)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "ends", decode[definition.Definition](t, w).ID)

	// 2. Read
	w = do(t, handler, "GET", "/automata/ends", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[definition.Definition](t, w).States, 2)

	// 3. List
	w = do(t, handler, "GET", "/automata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ends"}, decode[ListResponse](t, w).IDs)

	// 4. Simulate stored
	w = do(t, handler, "POST", "/automata/ends/simulate", map[string]any{"words": []string{"aab", "aba"}})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[simulateBody](t, w)
	assert.Equal(t, 1, resp.Accepted)

	// 5. Analysis
	w = do(t, handler, "GET", "/automata/ends/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[analyzer.Report](t, w)
	assert.True(t, report.Complete)
	assert.Empty(t, report.Diagnostics)

	// 6. Delete
	w = do(t, handler, "DELETE", "/automata/ends", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, handler, "GET", "/automata/ends", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, handler, "GET", "/automata/ends/analysis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAutomata_PutInvalid(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "PUT", "/automata/bad", definition.Definition{
		States: []domain.State{{Name: "q0"}, {Name: "q0"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, handler, "GET", "/automata/bad", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAutomata_Edits(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "POST", "/automata/built/edits", map[string]any{
		"commands": []map[string]any{
			{"op": "add_state"},
			{"op": "add_state"},
			{"op": "set_initial", "state": "q0", "flag": true},
			{"op": "set_final", "state": "q1", "flag": true},
			{"op": "connect", "from": "q0", "to": "q1", "symbols": "a"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	def := decode[definition.Definition](t, w)
	assert.Equal(t, "built", def.ID)
	require.Len(t, def.Transitions, 1)

	w = do(t, handler, "POST", "/automata/built/simulate", map[string]any{"word": "a"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[simulateBody](t, w).Accepted)

	t.Run("Conflict", func(t *testing.T) {
		w := do(t, handler, "POST", "/automata/built/edits", map[string]any{
			"commands": []map[string]any{{"op": "connect", "from": "q0", "to": "q1", "symbols": "a"}},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown Op", func(t *testing.T) {
		w := do(t, handler, "POST", "/automata/built/edits", map[string]any{
			"commands": []map[string]any{{"op": "paint"}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAutomata_CatalogFallback(t *testing.T) {
	catalog, err := memory.NewFromDefinitions(endsWithB())
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), definition.Definition{ID: "stored"}))

	handler := NewHandler(automata.New(),
		WithSessions(session.NewManager(store)),
		WithCatalog(catalog),
	)

	w := do(t, handler, "GET", "/automata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ends-with-b", "stored"}, decode[ListResponse](t, w).IDs)

	w = do(t, handler, "POST", "/automata/ends-with-b/simulate", map[string]any{"word": "b"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[simulateBody](t, w).Accepted)
}

func TestSubscribeEvents(t *testing.T) {
	handler := NewHandler(automata.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/automata/live/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	w := do(t, handler, "POST", "/automata/live/edits", map[string]any{
		"commands": []map[string]any{{"op": "add_state", "state": "start"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, "event: diff")
	assert.Contains(t, output, `"added_states":["start"]`)
}

func TestDocsAndInfo(t *testing.T) {
	handler := NewHandler(automata.New())

	w := do(t, handler, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "title: Automata API")

	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/automata/{id}/edits"))

	w = do(t, handler, "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]string](t, w)
	assert.Equal(t, strings.TrimSpace(automata.Version), info["version"])
	assert.Equal(t, doc.Info.Version, info["api_version"])

	w = do(t, handler, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, "OPTIONS", "/simulate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestValidation(t *testing.T) {
	handler := NewHandler(automata.New(), WithRequestValidation())

	w := do(t, handler, "POST", "/simulate", map[string]any{"words": []string{"a"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "automaton")

	w = do(t, handler, "POST", "/simulate", map[string]any{"automaton": endsWithB(), "words": []string{"b"}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Undocumented paths are not validated.
	w = do(t, handler, "GET", "/swagger", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMount(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("automata_simulations_total 1"))
	})
	handler := NewHandler(automata.New(), WithMetrics(metrics))

	w := do(t, handler, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "automata_simulations_total")

	w = do(t, NewHandler(automata.New()), "GET", "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
