// Package server exposes the WADM client operations as a read-only JSON
// HTTP gateway.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/wadm-client/internal/query"
	"github.com/Sternrassler/wadm-client/pkg/client"
	"github.com/Sternrassler/wadm-client/pkg/metrics"
	"github.com/Sternrassler/wadm-client/pkg/pagination"
)

// Catalog is the subset of *client.Client the gateway serves.
type Catalog interface {
	ConnectionTest(ctx context.Context) bool
	GetArtworksPage(ctx context.Context, page int, filter *client.Filter) (client.ArtworkPage, bool, error)
	GetArtworksByAlbumID(ctx context.Context, albumID, page int, filter *client.Filter) (client.ArtworkPage, bool, error)
	GetArtworkByID(ctx context.Context, artworkID int, filter *client.Filter) (client.ArtworkPlus, bool, error)
	GetArtworks(ctx context.Context, filter *client.Filter) ([]client.ArtworkPlus, error)
	GetArtworksByAlbum(ctx context.Context, albumID int, filter *client.Filter) ([]client.ArtworkPlus, error)
}

// Server routes gateway requests to a Catalog.
type Server struct {
	catalog Catalog
	logger  zerolog.Logger
	timeout time.Duration
	router  *mux.Router
}

// ListResponse is the body of the listing routes. Stats is set only when a
// single page was requested; Truncated marks a listing cut at the page limit.
type ListResponse struct {
	Artworks  []client.ArtworkPlus `json:"artworks"`
	Stats     *client.Stats        `json:"stats,omitempty"`
	Truncated bool                 `json:"truncated,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a gateway. timeout bounds each upstream operation; zero means
// the request context alone applies.
func New(catalog Catalog, logger zerolog.Logger, timeout time.Duration) *Server {
	s := &Server{
		catalog: catalog,
		logger:  logger,
		timeout: timeout,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/artworks", s.handleArtworks).Methods(http.MethodGet)
	r.HandleFunc("/artworks/{id:[0-9]+}", s.handleArtwork).Methods(http.MethodGet)
	r.HandleFunc("/albums/{id:[0-9]+}/artworks", s.handleAlbum).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps handler in an *http.Server listening on addr.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "OK"); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to write health response")
	}
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.context(r)
	defer cancel()

	if !s.catalog.ConnectionTest(ctx) {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleArtworks(w http.ResponseWriter, r *http.Request) {
	s.serveListing(w, r, 0)
}

func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || albumID == 0 {
		s.writeError(w, http.StatusBadRequest, client.ErrMissingAlbumID)
		return
	}
	s.serveListing(w, r, albumID)
}

func (s *Server) handleArtwork(w http.ResponseWriter, r *http.Request) {
	artworkID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || artworkID == 0 {
		s.writeError(w, http.StatusBadRequest, client.ErrMissingArtworkID)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := s.context(r)
	defer cancel()

	artwork, ok, err := s.catalog.GetArtworkByID(ctx, artworkID, filter)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("artwork %d not found", artworkID))
		return
	}
	s.writeJSON(w, http.StatusOK, artwork)
}

// serveListing answers a listing route. albumID 0 selects the user's
// artworks. With a page parameter a single page is fetched, otherwise all.
func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, albumID int) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var predicate *query.Predicate
	if where := r.URL.Query().Get("where"); where != "" {
		if predicate, err = query.Compile(where); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	ctx, cancel := s.context(r)
	defer cancel()

	var resp ListResponse
	if page > 0 {
		var (
			p  client.ArtworkPage
			ok bool
		)
		if albumID == 0 {
			p, ok, err = s.catalog.GetArtworksPage(ctx, page, filter)
		} else {
			p, ok, err = s.catalog.GetArtworksByAlbumID(ctx, albumID, page, filter)
		}
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		if !ok {
			s.writeError(w, http.StatusNotFound, fmt.Errorf("page %d not found", page))
			return
		}
		resp.Artworks = p.Artworks
		resp.Stats = &p.Stats
	} else {
		if albumID == 0 {
			resp.Artworks, err = s.catalog.GetArtworks(ctx, filter)
		} else {
			resp.Artworks, err = s.catalog.GetArtworksByAlbum(ctx, albumID, filter)
		}
		if errors.Is(err, pagination.ErrPageLimit) {
			resp.Truncated = true
			err = nil
		}
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		if len(resp.Artworks) == 0 {
			s.writeError(w, http.StatusNotFound, errors.New("no artworks found"))
			return
		}
	}

	if resp.Artworks, err = predicate.Filter(resp.Artworks); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) context(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(r.Context(), s.timeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, client.ErrMissingAlbumID) || errors.Is(err, client.ErrMissingArtworkID) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Error().Err(err).Msg("Upstream request failed")
	s.writeError(w, http.StatusBadGateway, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write response")
	}
}

func parseFilter(r *http.Request) (*client.Filter, error) {
	q := r.URL.Query()
	return client.ParseFilter(client.FilterParams{
		Order:        q.Get("order"),
		Medium:       q.Get("medium"),
		Size:         q.Get("size"),
		LanguageCode: q.Get("languageCode"),
		Locale:       q.Get("locale"),
	})
}

// parsePage returns 0 when the page parameter is absent.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page: %q", raw)
	}
	return page, nil
}
