package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rbcheck/pkg/buildinfo"
	"github.com/matzehuels/rbcheck/pkg/cache"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/observability"
	"github.com/matzehuels/rbcheck/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Options configures a [Server]. Nil fields get in-memory defaults.
type Options struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Server holds the dependencies shared by the handlers.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{store: opts.Store, cache: opts.Cache, keyer: opts.Keyer, logger: opts.Logger}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/verify", s.handleVerify)
		r.Post("/insert", s.handleInsert)

		r.Route("/canvases", func(r chi.Router) {
			r.Get("/", s.handleListCanvases)
			r.Post("/", s.handleCreateCanvas)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCanvas)
				r.Put("/", s.handlePutCanvas)
				r.Delete("/", s.handleDeleteCanvas)
				r.Post("/verify", s.handleVerifyCanvas)
				r.Get("/render", s.handleRenderCanvas)
			})
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
			buildinfo.Info
		}{"ok", buildinfo.Get()})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

type errorBody struct {
	Code  errs.Code `json:"code"`
	Error string    `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		err = errs.Wrap(errs.ErrCodeNotFound, err, "canvas not found")
	}
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)
	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == "" {
			code = errs.ErrCodeInternal
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
