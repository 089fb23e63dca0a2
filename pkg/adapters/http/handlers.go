package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/go-chi/chi/v5"
)

// Sampling bounds for POST /sample.
const (
	DefaultSampleLimit  = 10
	DefaultSampleLength = 8
	MaxSampleLength     = 12
)

// SimulateRequest runs words against an inline automaton.
type SimulateRequest struct {
	Automaton definition.Definition `json:"automaton"`
	WordsRequest
}

// WordsRequest lists the words to simulate. Word is appended before Words.
type WordsRequest struct {
	Word  *string  `json:"word,omitempty"`
	Words []string `json:"words,omitempty"`
}

func (r WordsRequest) all() ([]string, error) {
	var words []string
	if r.Word != nil {
		words = append(words, *r.Word)
	}
	words = append(words, r.Words...)
	if len(words) == 0 {
		return nil, errors.New("word or words is required")
	}
	return words, nil
}

// SimulateResponse holds one result per word, in input order.
type SimulateResponse struct {
	Kind     domain.Kind               `json:"kind"`
	Results  []domain.SimulationResult `json:"results"`
	Accepted int                       `json:"accepted"`
}

// AnalyzeRequest carries an inline automaton.
type AnalyzeRequest struct {
	Automaton definition.Definition `json:"automaton"`
}

// SampleRequest asks for accepted words of an inline automaton.
type SampleRequest struct {
	Automaton definition.Definition `json:"automaton"`
	Limit     *int                  `json:"limit,omitempty"`
	MaxLength *int                  `json:"max_length,omitempty"`
}

// SampleResponse lists accepted words, shortest first.
type SampleResponse struct {
	Words []string `json:"words"`
}

// ListResponse lists automaton IDs.
type ListResponse struct {
	IDs []string `json:"ids"`
}

// EditRequest is a batch of editor commands applied atomically.
type EditRequest struct {
	Commands []editor.Command `json:"commands"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
	})
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := body.Automaton.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.simulate(w, body.Automaton.Automaton(), body.WordsRequest)
}

// SimulateStored handles the POST /automata/{id}/simulate request.
func (s *Server) SimulateStored(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body WordsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	s.simulate(w, def.Automaton(), body)
}

func (s *Server) simulate(w http.ResponseWriter, a domain.Automaton, req WordsRequest) {
	words, err := req.all()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := SimulateResponse{
		Kind:    s.Engine.Kind(a),
		Results: s.Engine.SimulateAll(a, words),
	}
	for _, res := range resp.Results {
		if res.Accepted() {
			resp.Accepted++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Analyze handles the POST /analyze request.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := body.Automaton.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.Analyze(body.Automaton.Automaton()))
}

// AnalyzeStored handles the GET /automata/{id}/analysis request.
func (s *Server) AnalyzeStored(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.Analyze(def.Automaton()))
}

// Sample handles the POST /sample request.
func (s *Server) Sample(w http.ResponseWriter, r *http.Request) {
	var body SampleRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := body.Automaton.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit, maxLen := DefaultSampleLimit, DefaultSampleLength
	if body.Limit != nil {
		limit = *body.Limit
	}
	if body.MaxLength != nil {
		maxLen = *body.MaxLength
	}
	if maxLen > MaxSampleLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("max_length must be at most %d", MaxSampleLength))
		return
	}

	words := s.Engine.Sample(body.Automaton.Automaton(), limit, maxLen)
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, SampleResponse{Words: words})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.logger.Error("list failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.Catalog != nil {
		catalogued, err := s.Catalog.List(r.Context())
		if err != nil {
			s.logger.Error("catalog list failed", "err", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		ids = append(ids, catalogued...)
	}

	slices.Sort(ids)
	ids = slices.Compact(ids)
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ListResponse{IDs: ids})
}

// GetAutomaton handles the GET /automata/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// PutAutomaton handles the PUT /automata/{id} request. The path ID wins over
// any ID in the body.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	var def definition.Definition
	if !decodeBody(w, r, &def) {
		return
	}
	def.ID = chi.URLParam(r, "id")

	if err := s.Sessions.Save(r.Context(), def); err != nil {
		s.fail(w, "save", def.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// DeleteAutomaton handles the DELETE /automata/{id} request.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "delete", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditAutomaton handles the POST /automata/{id}/edits request.
func (s *Server) EditAutomaton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body EditRequest
	if !decodeBody(w, r, &body) {
		return
	}

	def, err := s.Sessions.Edit(r.Context(), id, body.Commands...)
	if err != nil {
		s.fail(w, "edit", id, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// SubscribeEvents handles the GET /automata/{id}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}
	id := chi.URLParam(r, "id")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Info("SSE subscribed", "automaton_id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "automaton_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: diff\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// lookup loads the automaton named in the path, from the stored automata
// first and then from the catalog.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (definition.Definition, bool) {
	id := chi.URLParam(r, "id")
	def, err := s.load(r.Context(), id)
	if err != nil {
		s.fail(w, "load", id, err)
		return definition.Definition{}, false
	}
	return def, true
}

func (s *Server) load(ctx context.Context, id string) (definition.Definition, error) {
	def, err := s.Sessions.Load(ctx, id)
	if errors.Is(err, domain.ErrAutomatonNotFound) && s.Catalog != nil {
		return s.Catalog.Load(ctx, id)
	}
	return def, err
}

func (s *Server) fail(w http.ResponseWriter, op, id string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "automaton_id", id, "err", err)
	} else {
		s.logger.Debug(op+" rejected", "automaton_id", id, "err", err)
	}
	writeError(w, status, err)
}
