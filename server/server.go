package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/kasuboski/showfinder/pkg/app"
	"github.com/kasuboski/showfinder/pkg/dom"
	"github.com/kasuboski/showfinder/pkg/live"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/report"
	"github.com/kasuboski/showfinder/pkg/tvmaze"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static
var assets embed.FS

const indexPath = "static/index.html"

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses all dependencies for the front end to work such as loggers, clients, configurations, etc.
type Server struct {
	baseLogger *zap.SugaredLogger
	catalog    tvmaze.Catalog
	reporter   report.Reporter
	sessions   *live.Registry
	latestWins bool
	upgrader   *websocket.Upgrader
}

type Option func(*Server)

// WithLatestWins is passed through to every page served
func WithLatestWins(enabled bool) Option {
	return func(s *Server) {
		s.latestWins = enabled
	}
}

// WithReporter sets where failed page events are reported
func WithReporter(r report.Reporter) Option {
	return func(s *Server) {
		s.reporter = r
	}
}

// New creates a new front end server
func New(logger *zap.SugaredLogger, catalog tvmaze.Catalog, opts ...Option) Server {
	s := Server{
		baseLogger: logger,
		catalog:    catalog,
		reporter:   report.Log{},
		sessions:   live.NewRegistry(),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// Router builds the handler tree
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	rtr.HandleFunc("/", s.Index()).Methods(http.MethodGet)
	rtr.PathPrefix("/static/").Handler(http.FileServer(http.FS(assets))).Methods(http.MethodGet)
	rtr.HandleFunc("/ws", s.Live()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/shows", s.SearchShows()).Methods(http.MethodGet)
	v1.HandleFunc("/shows/{id}/episodes", s.ListEpisodes()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}
	// hijacked websocket connections are not tracked by Shutdown
	srv.RegisterOnShutdown(s.sessions.CloseAll)

	go func() {
		s.baseLogger.Infow("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// Index serves the page skeleton
func (s Server) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(assets, indexPath)
		if err != nil {
			logger.FromCtx(r.Context()).Errorw("failed to read page", zap.Error(err))
			http.Error(w, "failed to read page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.Write(b)
	}
}

// Live upgrades to a websocket and serves a fresh page for the connection's lifetime
func (s Server) Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		b, err := fs.ReadFile(assets, indexPath)
		if err != nil {
			log.Errorw("failed to read page", zap.Error(err))
			http.Error(w, "failed to read page", http.StatusInternalServerError)
			return
		}

		doc, err := dom.Parse(bytes.NewReader(b))
		if err != nil {
			log.Errorw("failed to parse page", zap.Error(err))
			http.Error(w, "failed to parse page", http.StatusInternalServerError)
			return
		}

		surfaces, err := app.SurfacesFrom(doc)
		if err != nil {
			log.Errorw("page is missing regions", zap.Error(err))
			http.Error(w, "page is missing regions", http.StatusInternalServerError)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debugw("websocket upgrade failed", zap.Error(err))
			return
		}

		page := app.New(s.catalog, doc, surfaces, app.WithLatestWins(s.latestWins))
		session := live.NewSession(r.Context(), conn, doc, page, s.reporter)

		s.sessions.Add(session)
		defer s.sessions.Remove(session.ID())

		session.Run()
	}
}

// SearchShows searches the catalog and returns the shaped results
func (s Server) SearchShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		query := app.NormalizeQuery(r.URL.Query().Get("q"))
		if query == "" {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("query parameter q is required"))
			return
		}

		result, err := s.catalog.SearchShows(r.Context(), query)
		if err != nil {
			log.Errorw("failed to search shows", zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: result})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
			return
		}
	}
}

// ListEpisodes returns the shaped episode list of a show
func (s Server) ListEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid show id: %w", err))
			return
		}

		result, err := s.catalog.FetchEpisodes(r.Context(), id)
		if err != nil {
			log.Errorw("failed to fetch episodes", zap.Error(err), zap.Int("show_id", id))
			writeErrorResponse(w, http.StatusBadGateway, err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: result})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
			return
		}
	}
}
