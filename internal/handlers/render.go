package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/config"
	"github.com/jujuviz/core/internal/metrics"
	"github.com/jujuviz/core/internal/parser"
	"github.com/jujuviz/core/internal/render"
	"github.com/jujuviz/core/internal/viz"
)

const (
	maxStatusBytes = 16 << 20
	metricsSource  = "api"
	dotContentType = "text/vnd.graphviz; charset=utf-8"
)

// NewRenderHandler renders a POSTed juju status document. The include,
// exclude and title query parameters override the configured values;
// format=json returns the graph model instead of DOT.
func NewRenderHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxStatusBytes))
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		query := r.URL.Query()
		filter, err := parser.NewFilter(queryOr(query.Get("exclude"), cfg.Exclude), queryOr(query.Get("include"), cfg.Include))
		if err != nil {
			metrics.ObserveFailure(metricsSource, metrics.ResultFilterError)
			http.Error(w, "Invalid filter: "+err.Error(), http.StatusBadRequest)
			return
		}

		status, err := parser.ParseStatus(body)
		if err != nil {
			metrics.ObserveFailure(metricsSource, metrics.ResultParseError)
			http.Error(w, "Invalid juju status: "+err.Error(), http.StatusBadRequest)
			return
		}

		result := viz.Generate(status, viz.LoadAlerts(cfg.NagiosFile), viz.Options{
			Title:        queryOr(query.Get("title"), cfg.Title),
			NagiosURL:    cfg.NagiosURL,
			NagiosPrefix: cfg.NagiosPrefix,
			Filter:       filter,
		})
		metrics.ObserveGraph(metricsSource, result.Graph)

		if query.Get("format") == "json" {
			writeJSON(w, http.StatusOK, result.Graph, query.Get("pretty") == "true")
			return
		}

		var buf bytes.Buffer
		if err := render.WriteDot(&buf, result.Graph); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", dotContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logrus.WithError(err).Warn("writing dot response")
		}
	}
}

func queryOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
