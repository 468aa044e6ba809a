package parser

import (
	"sort"
	"strings"

	"github.com/jujuviz/core/internal/models"
	"github.com/jujuviz/core/internal/render"
)

// AllServicesURL is the click target of the graph background.
const AllServicesURL = `URL="#service=__all__"`

const edgeAttrs = "fontsize=10"

// BuildGraph creates one node per service with deployed units and one edge
// per relation between two such services.
func BuildGraph(services map[string]models.ServiceStatus, resolver *Resolver, title string) *models.Graph {
	graph := models.NewGraph(title, AllServicesURL)
	stats := &models.Stats{UnitsByColor: map[string]int{}}
	retained := make(map[string]bool)

	for _, name := range sortedKeys(services) {
		svc := services[name]
		if len(svc.Units) == 0 {
			continue
		}

		charm := charmName(svc.Charm)
		units := make([]models.UnitState, 0, len(svc.Units))
		for _, unitName := range sortedKeys(svc.Units) {
			unit := resolver.Resolve(unitName, svc.Units[unitName])
			units = append(units, unit)

			stats.UnitsByColor[unit.Color]++
			if !unit.Healthy {
				stats.UnhealthyUnits++
			}
			if unit.Nagios != nil && unit.Nagios.Critical > 0 {
				stats.CriticalAlerts += unit.Nagios.Critical
			}
		}

		graph.AddNode(models.Node{
			ID:    name,
			Attrs: nodeAttributes(name, charm, svc.Exposed),
			Label: render.ServiceLabel(name, charm, units),
		})
		retained[name] = true
	}

	for _, name := range sortedKeys(services) {
		if !retained[name] {
			continue
		}
		relations := services[name].Relations
		for _, relation := range sortedKeys(relations) {
			for _, target := range relations[relation] {
				if retained[target] {
					graph.AddEdge(name, target, relation, edgeAttrs)
				}
			}
		}
	}

	stats.TotalNodes = len(graph.Nodes)
	stats.TotalEdges = len(graph.Edges)
	graph.Stats = stats

	return graph
}

// charmName strips the store/series prefix: "cs:trusty/mysql-38" gives
// "mysql-38".
func charmName(charm string) string {
	if _, name, found := strings.Cut(charm, "/"); found {
		return name
	}
	return charm
}

func nodeAttributes(name, charm string, exposed bool) []string {
	attrs := []string{}

	if exposed {
		attrs = append(attrs, "shape=house")
	}
	if strings.Contains(charm, "sql") || strings.Contains(charm, "db") {
		attrs = append(attrs, "shape=box")
	}

	return append(attrs, `tooltip="`+name+`"`)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
