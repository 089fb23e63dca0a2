package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine   ports.Engine
	Sessions *session.Manager
	Catalog  ports.Catalog // optional read-only fallback for GET routes
	Streams  *StreamManager

	metrics  http.Handler
	validate bool
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessions serves stored automata from the given manager. Pair it with
// WithStreams and session.WithChangeHook(streams.Publish) to get SSE diffs.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithStreams sets the stream manager used by the events route.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithCatalog exposes a read-only catalog next to the stored automata.
func WithCatalog(c ports.Catalog) Option {
	return func(s *Server) {
		s.Catalog = c
	}
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRequestValidation checks requests against the OpenAPI document.
func WithRequestValidation() Option {
	return func(s *Server) {
		s.validate = true
	}
}

// WithLogger sets the logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
// Without WithSessions, automata are kept in memory for the process lifetime.
func NewHandler(engine ports.Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}
	if server.Sessions == nil {
		server.Sessions = session.NewManager(memory.NewStore(),
			session.WithLogger(server.logger),
			session.WithChangeHook(server.Streams.Publish),
		)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	if server.validate {
		doc, err := GetSwagger()
		if err == nil {
			var validator func(http.Handler) http.Handler
			validator, err = requestValidator(doc)
			if err == nil {
				r.Use(validator)
			}
		}
		if err != nil {
			server.logger.Error("request validation disabled", "err", err)
		}
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/simulate", server.Simulate)
	r.Post("/analyze", server.Analyze)
	r.Post("/sample", server.Sample)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", server.ListAutomata)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetAutomaton)
			r.Put("/", server.PutAutomaton)
			r.Delete("/", server.DeleteAutomaton)
			r.Post("/simulate", server.SimulateStored)
			r.Get("/analysis", server.AnalyzeStored)
			r.Post("/edits", server.EditAutomaton)
			r.Get("/events", server.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// -- Helpers --

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	for _, verr := range definition.ValidationErrors(err) {
		resp.Details = append(resp.Details, verr.Error())
	}
	writeJSON(w, status, resp)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDefinition):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrUnknownOp):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStateNotFound),
		errors.Is(err, domain.ErrTransitionNotFound),
		errors.Is(err, domain.ErrDuplicateState),
		errors.Is(err, domain.ErrDuplicateTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

