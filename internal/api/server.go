package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/morse-tree/internal/morse"
	"github.com/kumarlokesh/morse-tree/internal/prefixtree"
)

const defaultMaxBodyBytes = 1 << 20

// Server represents the HTTP API server
type Server struct {
	codec        *morse.Codec
	server       *http.Server
	logger       zerolog.Logger
	maxBodyBytes int64
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server
func NewServer(addr string, codec *morse.Codec, opts ...Option) *Server {
	s := &Server{
		codec:        codec,
		logger:       zerolog.Nop(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.HandleFunc("/encode", s.encode).Methods(http.MethodPost)
	r.HandleFunc("/decode", s.decode).Methods(http.MethodPost)
	r.HandleFunc("/tree", s.tree).Methods(http.MethodGet)
	r.HandleFunc("/table", s.table).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens on the configured address and serves until Shutdown is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info().Str("addr", l.Addr().String()).Msg("serving HTTP requests")
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Helper functions for HTTP responses
func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps codec errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, morse.ErrUnknownSymbol), errors.Is(err, morse.ErrMalformedCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, prefixtree.ErrEmptyTree):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// HTTP Handlers

// EncodeRequest is the body of POST /encode
type EncodeRequest struct {
	Text string `json:"text"`
}

// EncodeResponse is returned by POST /encode
type EncodeResponse struct {
	Code string `json:"code"`
}

// DecodeRequest is the body of POST /decode
type DecodeRequest struct {
	Code string `json:"code"`
}

// DecodeResponse is returned by POST /decode
type DecodeResponse struct {
	Text string `json:"text"`
}

// health handles GET /healthz
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// encode handles POST /encode
func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	code, err := s.codec.Encode(req.Text)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respond(w, http.StatusOK, EncodeResponse{Code: code})
}

// decode handles POST /decode
func (s *Server) decode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	text, err := s.codec.Decode(req.Code)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respond(w, http.StatusOK, DecodeResponse{Text: text})
}

// tree handles GET /tree. ?format=binary returns the snapshot encoding,
// otherwise the display dump is returned as plain text.
func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, morse.Dump(s.codec.Tree()))
	case "binary":
		data, err := morse.MarshalTree(s.codec.Tree())
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("unsupported tree format %q", format))
	}
}

// table handles GET /table
func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	t := s.codec.Table()
	s.respond(w, http.StatusOK, map[string]interface{}{
		"symbols": t.Len(),
		"codes":   t.Entries(),
	})
}
