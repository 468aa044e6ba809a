// Package render turns the service graph into its textual outputs: the
// HTML-like node labels, the DOT document and the companion JSON file.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/models"
)

var (
	unitCell = template.Must(template.New("unit").Parse(
		"\n" + `  <td bgcolor="{{.Color}}" tooltip="{{.Tooltip}}" href="#unit={{.Name}}">` +
			`<font point-size="10">{{.ShortLabel}}</font></td>`))

	nagiosCell = template.Must(template.New("nagios").Parse(
		`{{with .Nagios}}` + "\n" + `  <td bgcolor="{{.Color}}" id="{{.Hostname}}" tooltip="{{.Tooltip}}" ` +
			`href="{{.URL}}" target="nagios_tag"><font point-size="10">{{.Critical}}</font></td>{{end}}`))
)

// charmRevision decodes revisions built as printf("%d0%d%03d", code, charm, n),
// e.g. code revno 399 and charm revno 12 give 399012001.
var charmRevision = regexp.MustCompile(`^([1-9][0-9]*)0([1-9][0-9]*)([0-9]{3})$`)

// CharmRevision extracts the code and charm revisions packed in the numeric
// suffix of a charm name.
func CharmRevision(charm string) (code, rev string, ok bool) {
	parts := strings.Split(charm, "-")
	m := charmRevision.FindStringSubmatch(parts[len(parts)-1])
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ServiceLabel renders the HTML-like table label of a service node: service
// and unit health cells, then the charm and one monitoring cell per unit.
// A decodable charm revision gets a third row of its own, below the
// monitoring cells, as juju-dotty has always laid it out.
func ServiceLabel(service, charm string, units []models.UnitState) string {
	var b strings.Builder

	b.WriteString(`<TABLE BORDER="0" CELLBORDER="0">` + "\n")
	fmt.Fprintf(&b, `<TR><td href="#service=%s">%s</td>`+"\n", service, service)
	for _, unit := range units {
		b.WriteString(Cell(unitCell, unit))
	}
	b.WriteString("\n</TR>\n")

	fmt.Fprintf(&b, `<TR><td><font point-size="10">%s</font></td>`, charm)
	for _, unit := range units {
		b.WriteString(Cell(nagiosCell, unit))
	}
	if code, rev, ok := CharmRevision(charm); ok {
		fmt.Fprintf(&b, `</TR><TR><td><font point-size="10">code-r%s charm-r%s</font></td>`, code, rev)
	}
	b.WriteString("\n</TR></TABLE>")

	return b.String()
}

// Cell fills a cell template with the unit state. A template that cannot be
// filled yields an empty cell.
func Cell(tmpl *template.Template, unit models.UnitState) string {
	var b strings.Builder
	if err := tmpl.Execute(&b, unit); err != nil {
		logrus.WithField("unit", unit.Name).WithError(err).Debug("rendering empty cell")
		return ""
	}
	return b.String()
}
