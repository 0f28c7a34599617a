// Package api serves the results of a completed PageRank run over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/citerank/citerank/service/api Results

const (
	topPagesEndpoint   = "/pages/top/{k:[0-9]+}"
	pageScoreEndpoint  = "/pages/{id:-?[0-9]+}"
	perplexityEndpoint = "/perplexity"

	defaultMaxK = 1000
)

// Results provides read access to the outcome of a PageRank run.
type Results interface {
	// RankedPages returns the IDs of the k highest ranked pages.
	RankedPages(k int) []int64

	// Score returns the score of a page and whether the page is known.
	Score(id int64) (float64, bool)

	// PerplexityTrace returns the perplexity observed after each pass.
	PerplexityTrace() []float64

	// PageCount returns the number of ranked pages.
	PageCount() int
}

// Config encapsulates the settings for configuring the score query service.
type Config struct {
	// The results to serve.
	Results Results

	// The address to listen for incoming requests.
	ListenAddr string

	// The maximum number of pages returned by a top-K query. If not
	// specified, a default value of 1000 will be used instead.
	MaxK int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Results == nil {
		err = multierror.Append(err, xerrors.Errorf("results have not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.MaxK <= 0 {
		cfg.MaxK = defaultMaxK
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service serves PageRank results as JSON documents.
type Service struct {
	cfg    Config
	router *mux.Router
}

// NewService creates a new score query service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("score API: config validation failed: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	svc.router.HandleFunc(topPagesEndpoint, svc.topPages).Methods("GET")
	svc.router.HandleFunc(pageScoreEndpoint, svc.pageScore).Methods("GET")
	svc.router.HandleFunc(perplexityEndpoint, svc.perplexity).Methods("GET")
	svc.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		svc.writeError(w, http.StatusNotFound, "not found")
	})
	return svc, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "score API" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	svc.cfg.Logger.WithField("addr", svc.cfg.ListenAddr).Info("starting score API server")
	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Ignore error when the server shuts down.
		err = nil
	}

	return err
}

type topPagesResponse struct {
	K     int     `json:"k"`
	Pages []int64 `json:"pages"`
}

type pageScoreResponse struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

type perplexityResponse struct {
	Pages        int       `json:"pages"`
	Iterations   int       `json:"iterations"`
	Perplexities []float64 `json:"perplexities"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (svc *Service) topPages(w http.ResponseWriter, r *http.Request) {
	k, err := strconv.Atoi(mux.Vars(r)["k"])
	if err != nil || k > svc.cfg.MaxK {
		svc.writeError(w, http.StatusBadRequest, "k must be between 0 and "+strconv.Itoa(svc.cfg.MaxK))
		return
	}

	svc.writeJSON(w, http.StatusOK, topPagesResponse{
		K:     k,
		Pages: svc.cfg.Results.RankedPages(k),
	})
}

func (svc *Service) pageScore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		svc.writeError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	score, found := svc.cfg.Results.Score(id)
	if !found {
		svc.writeError(w, http.StatusNotFound, "unknown page")
		return
	}
	svc.writeJSON(w, http.StatusOK, pageScoreResponse{ID: id, Score: score})
}

func (svc *Service) perplexity(w http.ResponseWriter, _ *http.Request) {
	trace := svc.cfg.Results.PerplexityTrace()
	if trace == nil {
		trace = []float64{}
	}
	svc.writeJSON(w, http.StatusOK, perplexityResponse{
		Pages:        svc.cfg.Results.PageCount(),
		Iterations:   len(trace),
		Perplexities: trace,
	})
}

func (svc *Service) writeError(w http.ResponseWriter, status int, msg string) {
	svc.writeJSON(w, status, errorResponse{Error: msg})
}

func (svc *Service) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to encode response")
	}
}
