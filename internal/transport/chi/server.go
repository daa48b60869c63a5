package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/essay"
	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/result"
	logpkg "github.com/kailas-cloud/essaysim/internal/logger"
	compareuc "github.com/kailas-cloud/essaysim/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/essaysim/internal/usecase/health"
)

// DefaultMaxBodyBytes caps a compare request body.
const DefaultMaxBodyBytes = 1 << 20

// errorCode is the machine-readable error identifier returned to clients.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeUnauthorized       errorCode = "unauthorized"
	codeUnknownMethod      errorCode = "unknown_method"
	codeValidationFailed   errorCode = "validation_failed"
	codeMalformedText      errorCode = "malformed_text"
	codeLexiconUnavailable errorCode = "lexicon_unavailable"
	codeInternalError      errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type compareRequest struct {
	IDA     string   `json:"id_a,omitempty"`
	IDB     string   `json:"id_b,omitempty"`
	TextA   *string  `json:"text_a"`
	TextB   *string  `json:"text_b"`
	Methods []string `json:"methods,omitempty"`
}

type methodScore struct {
	Method         method.Method `json:"method"`
	Score          float64       `json:"score"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
}

type compareResponse struct {
	IDA    string        `json:"id_a"`
	IDB    string        `json:"id_b"`
	Scores []methodScore `json:"scores"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the pairwise comparison API.
type Server struct {
	compare       *compareuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxBodyBytes <= 0 uses DefaultMaxBodyBytes.
func NewServer(compare *compareuc.Service, health *healthuc.Service, logger *zap.Logger, maxBodyBytes int64) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		compare:      compare,
		health:       health,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownMethod, http.StatusBadRequest, codeUnknownMethod),
		sentinelHandler(domain.ErrInvalidEssay, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidCorpus, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrMalformedText, http.StatusBadRequest, codeMalformedText),
		sentinelHandler(domain.ErrLexiconUnavailable, http.StatusServiceUnavailable, codeLexiconUnavailable),
	}
	return s
}

// Compare handles POST /v1/compare. Scores are raw; corpus normalization
// needs the whole corpus and only happens in batch runs.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.TextA == nil || req.TextB == nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text_a and text_b are required")
		return
	}
	if req.IDA == "" {
		req.IDA = "a"
	}
	if req.IDB == "" {
		req.IDB = "b"
	}

	methods, err := method.ParseList(req.Methods)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	a, err := essay.New(req.IDA, *req.TextA)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	b, err := essay.New(req.IDB, *req.TextB)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.compare.ComparePair(r.Context(), a, b, methods)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := compareResponse{IDA: req.IDA, IDB: req.IDB, Scores: make([]methodScore, 0, len(results))}
	for _, res := range results {
		if res.Status() == result.StatusError {
			s.handleDomainError(w, r, res.Err())
			return
		}
		resp.Scores = append(resp.Scores, methodScore{
			Method:         res.Method(),
			Score:          res.Score(),
			ElapsedSeconds: res.Elapsed().Seconds(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownMethod,
		domain.ErrInvalidEssay,
		domain.ErrInvalidCorpus,
		domain.ErrMalformedText,
		domain.ErrLexiconUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
