package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/jujuviz/core/internal/models"
)

// WriteDot serializes the graph as a DOT digraph. Node labels are written
// as HTML-like labels, verbatim.
func WriteDot(w io.Writer, g *models.Graph) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "digraph \"%s\" {\n", g.Title)
	fmt.Fprintf(&b, "labelloc=\"t\"\nlabel=\"%s\"\n", g.Title)
	if g.Extra != "" {
		b.WriteString(g.Extra + "\n")
	}

	for _, cluster := range g.Clusters() {
		if cluster != "" {
			fmt.Fprintf(&b, "subgraph cluster_%s {\n", cluster)
		}
		for _, node := range g.NodesIn(cluster) {
			fmt.Fprintf(&b, "  \"%s\"[id=\"%s\" %s];\n", node.ID, node.ID, nodeAttrs(node))
		}
		if cluster != "" {
			fmt.Fprintf(&b, "  label=\"%s\"\n}\n", cluster)
		}
	}

	for _, edge := range g.Edges {
		fmt.Fprintf(&b, "  \"%s\" -> \"%s\" [label=\"%s\" %s];\n", edge.Source, edge.Target, edge.Label, edge.Attrs)
	}
	b.WriteString("}\n")

	if _, err := w.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write dot graph")
	}
	return nil
}

func nodeAttrs(node models.Node) string {
	attrs := node.Attrs
	if node.Label != "" {
		attrs = append(attrs[:len(attrs):len(attrs)], "\nlabel=<"+node.Label+">")
	}
	return strings.Join(attrs, " ")
}
