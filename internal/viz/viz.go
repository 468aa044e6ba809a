// Package viz wires the parser and the renderers together for a single juju
// status document.
package viz

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/models"
	"github.com/jujuviz/core/internal/parser"
	"github.com/jujuviz/core/internal/render"
)

type Options struct {
	Title        string
	NagiosURL    string
	NagiosPrefix string
	Filter       *parser.Filter
}

type Result struct {
	Graph *models.Graph
	// Services is the filtered service set, including services without units.
	Services map[string]models.ServiceStatus
	// RawServices holds the same services as decoded from the document,
	// with every field juju reported.
	RawServices map[string]any
}

// Generate filters the services of status and builds their graph. alerts may
// be nil when no monitoring data is available.
func Generate(status *models.JujuStatus, alerts models.AlertIndex, opts Options) *Result {
	services := opts.Filter.Apply(status.ServiceMap())

	title := opts.Title
	if title == "" {
		title = opts.NagiosPrefix
	}

	resolver := parser.NewResolver(status.Machines, alerts, opts.NagiosPrefix, opts.NagiosURL)
	graph := parser.BuildGraph(services, resolver, title)

	logrus.WithFields(logrus.Fields{
		"services":  len(services),
		"nodes":     graph.Stats.TotalNodes,
		"edges":     graph.Stats.TotalEdges,
		"unhealthy": graph.Stats.UnhealthyUnits,
	}).Debug("graph built")

	return &Result{
		Graph:       graph,
		Services:    services,
		RawServices: opts.Filter.ApplyRaw(status.RawServiceMap()),
	}
}

// Render parses a status document and writes its DOT graph to w.
func Render(w io.Writer, data []byte, alerts models.AlertIndex, opts Options) (*Result, error) {
	status, err := parser.ParseStatus(data)
	if err != nil {
		return nil, err
	}

	result := Generate(status, alerts, opts)
	if err := render.WriteDot(w, result.Graph); err != nil {
		return nil, err
	}
	return result, nil
}
