package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jujuviz/core/internal/models"
)

func started(names ...string) map[string]models.UnitStatus {
	units := make(map[string]models.UnitStatus, len(names))
	for _, name := range names {
		units[name] = models.UnitStatus{AgentState: HealthyState}
	}
	return units
}

func TestBuildGraph(t *testing.T) {
	resolver := NewResolver(nil, nil, "", "")

	t.Run("empty services returns empty graph", func(t *testing.T) {
		graph := BuildGraph(map[string]models.ServiceStatus{}, resolver, "prod")

		assert.NotNil(t, graph)
		assert.Equal(t, "prod", graph.Title)
		assert.Equal(t, AllServicesURL, graph.Extra)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
	})

	t.Run("single service creates single node", func(t *testing.T) {
		svcs := map[string]models.ServiceStatus{
			"web": {Charm: "cs:trusty/apache2-10", Units: started("web/0")},
		}

		graph := BuildGraph(svcs, resolver, "prod")

		require.Len(t, graph.Nodes, 1)
		assert.Equal(t, "web", graph.Nodes[0].ID)
		assert.Equal(t, "", graph.Nodes[0].Cluster)
		assert.Equal(t, []string{`tooltip="web"`}, graph.Nodes[0].Attrs)
		assert.Contains(t, graph.Nodes[0].Label, `<td bgcolor="white" tooltip="unit: web/0`)
		assert.Contains(t, graph.Nodes[0].Label, `<td bgcolor="lightgrey" id="web-0"`)
		assert.Contains(t, graph.Nodes[0].Label, `<font point-size="10">apache2-10</font>`)
		assert.Empty(t, graph.Edges)
	})

	t.Run("services without units are skipped", func(t *testing.T) {
		svcs := map[string]models.ServiceStatus{
			"web":  {Charm: "cs:trusty/apache2-10", Units: started("web/0")},
			"nrpe": {Charm: "cs:trusty/nrpe-2"},
		}

		graph := BuildGraph(svcs, resolver, "prod")

		require.Len(t, graph.Nodes, 1)
		assert.False(t, graph.HasNode("nrpe"))
	})

	t.Run("nodes are sorted by service name", func(t *testing.T) {
		svcs := map[string]models.ServiceStatus{
			"web":     {Charm: "apache2", Units: started("web/0")},
			"haproxy": {Charm: "haproxy", Units: started("haproxy/0")},
			"db":      {Charm: "mysql", Units: started("db/0")},
		}

		graph := BuildGraph(svcs, resolver, "prod")

		require.Len(t, graph.Nodes, 3)
		assert.Equal(t, "db", graph.Nodes[0].ID)
		assert.Equal(t, "haproxy", graph.Nodes[1].ID)
		assert.Equal(t, "web", graph.Nodes[2].ID)
	})

	t.Run("relations create edges", func(t *testing.T) {
		svcs := map[string]models.ServiceStatus{
			"web": {
				Charm: "apache2",
				Units: started("web/0"),
				Relations: map[string][]string{
					"db":      {"mysql"},
					"website": {"haproxy"},
				},
			},
			"mysql":   {Charm: "mysql", Units: started("mysql/0")},
			"haproxy": {Charm: "haproxy", Units: started("haproxy/0")},
		}

		graph := BuildGraph(svcs, resolver, "prod")

		require.Len(t, graph.Edges, 2)
		assert.Equal(t, models.Edge{Source: "web", Target: "mysql", Label: "db", Attrs: "fontsize=10"}, graph.Edges[0])
		assert.Equal(t, models.Edge{Source: "web", Target: "haproxy", Label: "website", Attrs: "fontsize=10"}, graph.Edges[1])
	})

	t.Run("edges to filtered targets are omitted", func(t *testing.T) {
		all := map[string]models.ServiceStatus{
			"web": {
				Charm:     "apache2",
				Units:     started("web/0"),
				Relations: map[string][]string{"website": {"haproxy"}},
			},
			"haproxy": {
				Charm:     "haproxy",
				Units:     started("haproxy/0"),
				Relations: map[string][]string{"website": {"web"}},
			},
		}
		f, err := NewFilter("hapro", "")
		require.NoError(t, err)

		graph := BuildGraph(f.Apply(all), resolver, "prod")

		assert.Len(t, graph.Nodes, 1)
		assert.Empty(t, graph.Edges)
	})

	t.Run("edges to services without units are omitted", func(t *testing.T) {
		svcs := map[string]models.ServiceStatus{
			"web":  {Charm: "apache2", Units: started("web/0"), Relations: map[string][]string{"juju-info": {"nrpe"}}},
			"nrpe": {Charm: "nrpe"},
		}

		graph := BuildGraph(svcs, resolver, "prod")

		assert.Empty(t, graph.Edges)
	})

	t.Run("stats", func(t *testing.T) {
		alerts := models.AlertIndex{}
		alerts.Record("web-1", "check_http", models.CriticalState, "down")
		svcs := map[string]models.ServiceStatus{
			"web": {
				Charm: "apache2",
				Units: map[string]models.UnitStatus{
					"web/0": {AgentState: "started"},
					"web/1": {AgentState: "error"},
				},
			},
		}

		graph := BuildGraph(svcs, NewResolver(nil, alerts, "", ""), "prod")

		require.NotNil(t, graph.Stats)
		assert.Equal(t, 1, graph.Stats.TotalNodes)
		assert.Equal(t, 0, graph.Stats.TotalEdges)
		assert.Equal(t, 1, graph.Stats.UnhealthyUnits)
		assert.Equal(t, 1, graph.Stats.CriticalAlerts)
		assert.Equal(t, map[string]int{"white": 1, "yellow": 1}, graph.Stats.UnitsByColor)
	})
}

func TestNodeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		charm    string
		exposed  bool
		expected []string
	}{
		{name: "plain service", charm: "apache2-10", expected: []string{`tooltip="svc"`}},
		{name: "exposed service", charm: "haproxy-12", exposed: true, expected: []string{"shape=house", `tooltip="svc"`}},
		{name: "sql charm", charm: "mysql-38", expected: []string{"shape=box", `tooltip="svc"`}},
		{name: "db charm", charm: "mongodb-20", expected: []string{"shape=box", `tooltip="svc"`}},
		{name: "exposed database", charm: "postgresql-1", exposed: true, expected: []string{"shape=house", "shape=box", `tooltip="svc"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nodeAttributes("svc", tt.charm, tt.exposed))
		})
	}
}

func TestCharmName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "charm store url", input: "cs:trusty/haproxy-12", expected: "haproxy-12"},
		{name: "local charm", input: "local:trusty/myapp-399012001", expected: "myapp-399012001"},
		{name: "user namespace keeps the rest", input: "cs:~user/trusty/app-1", expected: "trusty/app-1"},
		{name: "bare name", input: "mysql", expected: "mysql"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, charmName(tt.input))
		})
	}
}
