package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/cache"
	"github.com/opckit/opckit/pkg/catalog"
	opcerrors "github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/manifest"
	"github.com/opckit/opckit/pkg/opc"
	"github.com/opckit/opckit/pkg/zippkg"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the package inspection HTTP API",
		Long: `Serve exposes package inspection over HTTP. POST a container to
/api/inspect to receive its manifest; inspected packages are cataloged and
retrievable under /api/packages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.newCatalogStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			srv := &server{
				logger:    c.Logger,
				store:     store,
				maxUpload: int64(c.Config.Serve.MaxUploadMB) << 20,
			}

			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- httpSrv.ListenAndServe() }()
			c.Logger.Info("serving", "addr", addr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}

// newCatalogStore opens the configured catalog backend, falling back to an
// in-memory store when no MongoDB is configured.
func (c *CLI) newCatalogStore(ctx context.Context) (catalog.Store, error) {
	if uri := c.Config.Catalog.MongoURI; uri != "" {
		store, err := catalog.NewMongoStore(ctx, uri)
		if err != nil {
			return nil, opcerrors.Wrap(opcerrors.ErrCodeCatalog, err, "open catalog")
		}
		return store, nil
	}
	c.Logger.Debug("no catalog configured, using in-memory store")
	return catalog.NewMemoryStore(), nil
}

// server holds the HTTP API's dependencies.
type server struct {
	logger    *log.Logger
	store     catalog.Store
	maxUpload int64
}

// router assembles the chi route tree.
func (s *server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/inspect", s.handleInspect)
		r.Get("/packages", s.handleList)
		r.Get("/packages/{id}", s.handleGet)
		r.Delete("/packages/{id}", s.handleDelete)
	})
	return r
}

// requestID tags every request with a fresh id, echoed in the response
// header and attached to the context logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// inspectResponse is the body returned by POST /api/inspect.
type inspectResponse struct {
	ID       string            `json:"id"`
	Hash     string            `json:"hash"`
	Manifest manifest.Manifest `json:"manifest"`
}

// handleInspect unmarshals an uploaded container, catalogs its manifest,
// and returns it. The upload is the raw container bytes; the optional
// X-Package-Name header names the catalog entry.
func (s *server) handleInspect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		writeError(w, r, opcerrors.New(opcerrors.ErrCodeInvalidInput, "read upload: %v", err))
		return
	}
	if len(body) == 0 {
		writeError(w, r, opcerrors.New(opcerrors.ErrCodeInvalidInput, "empty upload"))
		return
	}

	zr, err := zippkg.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		writeError(w, r, opcerrors.FromOPC(err, "open package"))
		return
	}
	pkg, err := opc.Open(zr, nil)
	if err != nil {
		writeError(w, r, opcerrors.FromOPC(err, "unmarshal package"))
		return
	}

	m := manifest.FromPackage(pkg)
	name := r.Header.Get("X-Package-Name")
	if name == "" {
		name = "upload"
	}
	entry := catalog.NewEntry(name, cache.Hash(body), m)
	if err := s.store.Put(r.Context(), entry); err != nil {
		writeError(w, r, opcerrors.Wrap(opcerrors.ErrCodeCatalog, err, "catalog package"))
		return
	}

	writeJSON(w, http.StatusOK, inspectResponse{ID: entry.ID, Hash: entry.Hash, Manifest: m})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context(), 100)
	if err != nil {
		writeError(w, r, opcerrors.Wrap(opcerrors.ErrCodeCatalog, err, "list packages"))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, r, opcerrors.New(opcerrors.ErrCodeNotFound, "no such package"))
		return
	}
	if err != nil {
		writeError(w, r, opcerrors.Wrap(opcerrors.ErrCodeCatalog, err, "get package"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, r, opcerrors.New(opcerrors.ErrCodeNotFound, "no such package"))
		return
	}
	if err != nil {
		writeError(w, r, opcerrors.Wrap(opcerrors.ErrCodeCatalog, err, "delete package"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := opcerrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case opcerrors.ErrCodeInvalidInput, opcerrors.ErrCodeInvalidPartName,
		opcerrors.ErrCodeInvalidFormat, opcerrors.ErrCodeInvalidPath,
		opcerrors.ErrCodeMalformedPackage:
		status = http.StatusBadRequest
	case opcerrors.ErrCodeNotFound, opcerrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case opcerrors.ErrCodeAmbiguousRelType, opcerrors.ErrCodeExternalTarget:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: opcerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already written; an encode failure has no recovery.
	_ = json.NewEncoder(w).Encode(v)
}
