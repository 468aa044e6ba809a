package models

import "strings"

const (
	ColorHealthy   = "white"
	ColorUnhealthy = "yellow"

	ColorCritical = "red"
	ColorClear    = "lightgreen"
	ColorNoData   = "lightgrey"
)

// NoData is the critical count reported for units no monitoring host matched.
const NoData = -1

// UnitState is the resolved, render-ready view of one juju unit.
type UnitState struct {
	Name       string
	AgentState string
	Healthy    bool
	Color      string
	// Flags holds one "!" per unhealthy agent (unit or subordinate).
	Flags   string
	Tooltip string
	// Nagios is nil when the unit has no monitoring cross-reference.
	Nagios *NagiosState
}

// Index returns the unit number, the part of "service/N" after the slash.
func (u UnitState) Index() string {
	_, index, found := strings.Cut(u.Name, "/")
	if !found {
		return u.Name
	}
	return index
}

// ShortLabel is the unit index prefixed by its failure markers, e.g. "!/2".
func (u UnitState) ShortLabel() string {
	return u.Flags + "/" + u.Index()
}

// NagiosState is the monitoring cross-reference of a unit.
type NagiosState struct {
	Hostname string
	Critical int
	Color    string
	URL      string
	Tooltip  string
}

func (n *NagiosState) Found() bool {
	return n.Critical != NoData
}

// AlertColor maps a critical alert count to its background color.
func AlertColor(critical int) string {
	switch {
	case critical > 0:
		return ColorCritical
	case critical == 0:
		return ColorClear
	default:
		return ColorNoData
	}
}
