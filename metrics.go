package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/fivemoreminix/qview/pkg/lexer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qview_tokens",
			Help: "How many tokens have been scanned, by class.",
		},
		[]string{"grammar", "class"},
	)
	metricScans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qview_scans",
			Help: "How many files have been scanned.",
		},
		[]string{"grammar"},
	)
	metricScanErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qview_scan_errors",
			Help: "How many scans stopped with an error, by kind.",
		},
		[]string{"grammar", "kind"},
	)
)

func init() {
	prometheus.MustRegister(metricTokens)
	prometheus.MustRegister(metricScans)
	prometheus.MustRegister(metricScanErrors)
}

// countTokens returns a token hook counting tokens of the named grammar.
func countTokens(grammar string) func(lexer.Token) {
	return func(tok lexer.Token) {
		metricTokens.WithLabelValues(grammar, string(tok.Class)).Inc()
	}
}

// countScan records a finished scan and its error, if any.
func countScan(grammar string, err error) {
	metricScans.WithLabelValues(grammar).Inc()
	if err != nil {
		metricScanErrors.WithLabelValues(grammar, errorKind(err)).Inc()
	}
}

func errorKind(err error) string {
	var depth *lexer.ModeDepthExceededError
	var illegal *lexer.IllegalModeEntryError
	var invariant *lexer.EngineInvariantError
	var invalid *lexer.InvalidGrammarError
	switch {
	case errors.As(err, &depth):
		return "depth"
	case errors.As(err, &illegal):
		return "illegal"
	case errors.As(err, &invariant):
		return "invariant"
	case errors.As(err, &invalid):
		return "grammar"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "match"
}

func metricsRouter() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return router
}

// serveMetrics serves the metrics on addr. It only returns on failure.
func serveMetrics(addr string) error {
	ilog.Printf("serving metrics on %s", addr)
	return http.ListenAndServe(addr, metricsRouter())
}
