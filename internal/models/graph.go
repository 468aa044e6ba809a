package models

type Graph struct {
	Title string `json:"title"`
	// Extra is emitted verbatim right after the graph header.
	Extra string `json:"extra,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats *Stats `json:"stats,omitempty"`
}

type Node struct {
	ID      string   `json:"id"`
	Cluster string   `json:"cluster,omitempty"`
	Attrs   []string `json:"attrs,omitempty"`
	Label   string   `json:"label,omitempty"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Attrs  string `json:"attrs,omitempty"`
}

type Stats struct {
	TotalNodes     int            `json:"total_nodes"`
	TotalEdges     int            `json:"total_edges"`
	UnhealthyUnits int            `json:"unhealthy_units"`
	CriticalAlerts int            `json:"critical_alerts"`
	UnitsByColor   map[string]int `json:"units_by_color,omitempty"`
}

func NewGraph(title, extra string) *Graph {
	return &Graph{
		Title: title,
		Extra: extra,
		Nodes: []Node{},
		Edges: []Edge{},
	}
}

func (g *Graph) AddNode(node Node) {
	g.Nodes = append(g.Nodes, node)
}

func (g *Graph) AddEdge(source, target, label, attrs string) {
	g.Edges = append(g.Edges, Edge{
		Source: source,
		Target: target,
		Label:  label,
		Attrs:  attrs,
	})
}

func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Clusters returns the cluster names in order of first appearance. The
// ungrouped cluster is reported as "".
func (g *Graph) Clusters() []string {
	seen := make(map[string]bool)
	clusters := []string{}
	for _, n := range g.Nodes {
		if seen[n.Cluster] {
			continue
		}
		seen[n.Cluster] = true
		clusters = append(clusters, n.Cluster)
	}
	return clusters
}

func (g *Graph) NodesIn(cluster string) []Node {
	nodes := []Node{}
	for _, n := range g.Nodes {
		if n.Cluster == cluster {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
