package resolverd

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pipeyard/pipeyard/internal/wire"
)

// Server is the stateless layout resolver/generator service the sandbox
// talks to. Both exchanges are pure request/response; nothing is retained
// between calls.
type Server struct {
	cfg *Config
	log *zap.Logger
}

// NewServer creates the service with its configuration and logger.
func NewServer(cfg *Config, log *zap.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/resolve", s.handleResolve)
	r.Post("/generate", s.handleGenerate)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req wire.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	movements := Movements(req, s.cfg.Clearance)
	s.log.Info("resolve",
		zap.Int("nodes", len(req.Nodes)),
		zap.Int("edges", len(req.Edges)),
		zap.Int("newEdgeId", req.NewEdgeID),
		zap.Int("movements", len(movements)))
	writeJSON(w, http.StatusOK, wire.ResolveResponse{Movements: movements})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req wire.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	payload, err := Generate(req.Mode, seed)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.log.Info("generate",
		zap.String("mode", req.Mode),
		zap.Int("nodes", len(payload.Nodes)),
		zap.Int("edges", len(payload.Edges)))
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger logs one line per request with method, path, and elapsed time.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
