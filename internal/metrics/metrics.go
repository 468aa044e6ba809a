// Package metrics exposes Prometheus counters for rendered graphs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jujuviz/core/internal/models"
)

const (
	ResultOK          = "ok"
	ResultParseError  = "parse_error"
	ResultFilterError = "filter_error"
)

var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "juju_dotty_renders_total",
		Help: "Number of juju status documents rendered, by source and result.",
	}, []string{"source", "result"})

	UnitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "juju_dotty_units_total",
		Help: "Number of units rendered, by health color.",
	}, []string{"color"})
)

// ObserveGraph records a successful render of graph.
func ObserveGraph(source string, graph *models.Graph) {
	RendersTotal.WithLabelValues(source, ResultOK).Inc()
	if graph.Stats == nil {
		return
	}
	for color, n := range graph.Stats.UnitsByColor {
		UnitsTotal.WithLabelValues(color).Add(float64(n))
	}
}

func ObserveFailure(source, result string) {
	RendersTotal.WithLabelValues(source, result).Inc()
}
