package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/analyzer"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Sampling bounds for the sample tool.
const (
	defaultSampleLimit  = 10
	defaultSampleLength = 8
	maxSampleLength     = 12
)

// ResultView is the structured form of a simulation result.
type ResultView struct {
	Word     string   `json:"word" jsonschema_description:"The simulated word; empty for ε"`
	Accepted bool     `json:"accepted" jsonschema_description:"Whether the automaton accepts the word"`
	Path     []string `json:"path" jsonschema_description:"Witness path as state names"`
	Symbols  []string `json:"symbols_used" jsonschema_description:"Symbol consumed on each path edge (ε for ε-moves)"`
	Message  string   `json:"message" jsonschema_description:"Human-readable verdict"`
}

// SimulateResponse aligns with the HTTP API and provides a unified structure across adapters.
type SimulateResponse struct {
	Kind     domain.Kind  `json:"kind" jsonschema_description:"DFA or NFA"`
	Results  []ResultView `json:"results" jsonschema_description:"One result per word, in input order"`
	Accepted int          `json:"accepted" jsonschema_description:"How many words were accepted"`
}

// SampleResponse lists accepted words, shortest first.
type SampleResponse struct {
	Words []string `json:"words" jsonschema_description:"Accepted words in shortlex order"`
}

// ListResponse lists catalogued automata.
type ListResponse struct {
	IDs []string `json:"ids" jsonschema_description:"Automaton IDs, sorted"`
}

// Server wraps the automata Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	catalog   ports.Catalog
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance. catalog may be nil, in
// which case tools only accept inline automata.
func NewServer(engine ports.Engine, catalog ports.Catalog, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		catalog:   catalog,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	automatonArg := mcp.WithObject("automaton",
		mcp.Description("Inline automaton: {states: [{name, initial, final}], transitions: [{from, to, symbols}]}. An empty symbols string is ε."),
	)
	idArg := mcp.WithString("id", mcp.Description("ID of a catalogued automaton (used when automaton is omitted)"))

	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run one or more words through a finite automaton (DFA or NFA) and report acceptance with the witness path."),
		automatonArg,
		idArg,
		mcp.WithString("word", mcp.Description("A single word; empty for the empty word")),
		mcp.WithArray("words", mcp.Description("Several words, simulated independently"), mcp.WithStringItems()),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: analyze
	analyzeTool := mcp.NewTool("analyze",
		mcp.WithDescription("Classify a finite automaton and report its alphabet, completeness, unreachable states, dead states and diagnostics."),
		automatonArg,
		idArg,
		mcp.WithOutputSchema[analyzer.Report](),
	)
	s.mcpServer.AddTool(analyzeTool, mcp.NewStructuredToolHandler(s.handleAnalyze))

	// TOOL: sample
	sampleTool := mcp.NewTool("sample",
		mcp.WithDescription("List words accepted by a finite automaton, shortest first."),
		automatonArg,
		idArg,
		mcp.WithNumber("limit", mcp.Description("Maximum number of words (default 10)")),
		mcp.WithNumber("max_length", mcp.Description("Maximum word length (default 8, at most 12)")),
		mcp.WithOutputSchema[SampleResponse](),
	)
	s.mcpServer.AddTool(sampleTool, mcp.NewStructuredToolHandler(s.handleSample))

	// TOOL: list_automata
	listTool := mcp.NewTool("list_automata",
		mcp.WithDescription("List the IDs of catalogued automata."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))
}

// Handler methods for structured tools

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return SimulateResponse{}, err
	}

	var words []string
	if word, ok := args["word"].(string); ok {
		words = append(words, word)
	}
	if list, ok := args["words"].([]interface{}); ok {
		for _, w := range list {
			str, ok := w.(string)
			if !ok {
				return SimulateResponse{}, fmt.Errorf("words must be strings, got %T", w)
			}
			words = append(words, str)
		}
	}
	if len(words) == 0 {
		return SimulateResponse{}, errors.New("word or words is required")
	}

	resp := SimulateResponse{Kind: s.engine.Kind(a)}
	for _, res := range s.engine.SimulateAll(a, words) {
		view := ResultView{
			Word:     res.Word(),
			Accepted: res.Accepted(),
			Symbols:  res.SymbolsUsed(),
			Message:  res.Message(),
		}
		for _, st := range res.Path() {
			view.Path = append(view.Path, st.Name)
		}
		if res.Accepted() {
			resp.Accepted++
		}
		resp.Results = append(resp.Results, view)
	}
	s.logger.Debug("MCP simulate", "words", len(words), "accepted", resp.Accepted)
	return resp, nil
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (analyzer.Report, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return analyzer.Report{}, err
	}
	return s.engine.Analyze(a), nil
}

func (s *Server) handleSample(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SampleResponse, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return SampleResponse{}, err
	}

	limit, maxLen := defaultSampleLimit, defaultSampleLength
	if v, ok := args["limit"].(float64); ok {
		limit = int(v)
	}
	if v, ok := args["max_length"].(float64); ok {
		maxLen = int(v)
	}
	if maxLen > maxSampleLength {
		return SampleResponse{}, fmt.Errorf("max_length must be at most %d", maxSampleLength)
	}

	words := s.engine.Sample(a, limit, maxLen)
	if words == nil {
		words = []string{}
	}
	return SampleResponse{Words: words}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	if s.catalog == nil {
		return ListResponse{IDs: []string{}}, nil
	}
	ids, err := s.catalog.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{IDs: ids}, nil
}

// resolve returns the inline automaton, or loads the one named by "id".
func (s *Server) resolve(ctx context.Context, args map[string]interface{}) (domain.Automaton, error) {
	if raw, ok := args["automaton"]; ok && raw != nil {
		def, err := definition.Decode(raw)
		if err != nil {
			return domain.Automaton{}, err
		}
		return def.Automaton(), nil
	}

	id, _ := args["id"].(string)
	if id == "" {
		return domain.Automaton{}, errors.New("automaton or id is required")
	}
	if s.catalog == nil {
		return domain.Automaton{}, fmt.Errorf("%w: %s (no catalog configured)", domain.ErrAutomatonNotFound, id)
	}
	def, err := s.catalog.Load(ctx, id)
	if err != nil {
		return domain.Automaton{}, err
	}
	return def.Automaton(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://catalog
	s.mcpServer.AddResource(mcp.NewResource("automata://catalog", "Catalogued Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resp, err := s.handleList(ctx, mcp.CallToolRequest{}, nil)
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(resp)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
