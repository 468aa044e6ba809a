package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jujuviz/core/internal/models"
)

func TestObserveGraph(t *testing.T) {
	before := testutil.ToFloat64(RendersTotal.WithLabelValues("test", ResultOK))
	beforeYellow := testutil.ToFloat64(UnitsTotal.WithLabelValues(models.ColorUnhealthy))

	graph := models.NewGraph("t", "")
	graph.Stats = &models.Stats{UnitsByColor: map[string]int{models.ColorUnhealthy: 3}}
	ObserveGraph("test", graph)

	assert.Equal(t, before+1, testutil.ToFloat64(RendersTotal.WithLabelValues("test", ResultOK)))
	assert.Equal(t, beforeYellow+3, testutil.ToFloat64(UnitsTotal.WithLabelValues(models.ColorUnhealthy)))
}

func TestObserveGraph_NoStats(t *testing.T) {
	before := testutil.ToFloat64(RendersTotal.WithLabelValues("nostats", ResultOK))

	ObserveGraph("nostats", models.NewGraph("t", ""))

	assert.Equal(t, before+1, testutil.ToFloat64(RendersTotal.WithLabelValues("nostats", ResultOK)))
}

func TestObserveFailure(t *testing.T) {
	before := testutil.ToFloat64(RendersTotal.WithLabelValues("test", ResultParseError))

	ObserveFailure("test", ResultParseError)

	assert.Equal(t, before+1, testutil.ToFloat64(RendersTotal.WithLabelValues("test", ResultParseError)))
}
