package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jujuviz/core/internal/models"
)

// HealthyState is the agent state of a unit that needs no attention.
const HealthyState = "started"

const unknownState = "Unknown"

// AgentState derives a juju 1.x style agent state. Juju 2.x "idle" and
// "executing" agents count as started.
func AgentState(unit models.UnitStatus) string {
	if unit.AgentState != "" {
		return unit.AgentState
	}
	if unit.JujuStatus != nil {
		switch unit.JujuStatus.Current {
		case "idle", "executing":
			return HealthyState
		default:
			return unit.JujuStatus.Current
		}
	}
	return unknownState
}

// SubordinateStates returns the agent states of the unit's subordinates,
// ordered by subordinate name.
func SubordinateStates(unit models.UnitStatus) []string {
	names := make([]string, 0, len(unit.Subordinates))
	for name := range unit.Subordinates {
		names = append(names, name)
	}
	sort.Strings(names)

	states := make([]string, 0, len(names))
	for _, name := range names {
		states = append(states, AgentState(unit.Subordinates[name]))
	}
	return states
}

// Resolver computes the render-ready state of units, cross-referencing
// machines and nagios alerts.
type Resolver struct {
	machines  map[string]models.MachineStatus
	alerts    models.AlertIndex
	prefix    string
	nagiosURL string
}

func NewResolver(machines map[string]models.MachineStatus, alerts models.AlertIndex, prefix, nagiosURL string) *Resolver {
	if alerts == nil {
		alerts = models.AlertIndex{}
	}
	return &Resolver{
		machines:  machines,
		alerts:    alerts,
		prefix:    prefix,
		nagiosURL: nagiosURL,
	}
}

func (r *Resolver) Resolve(name string, unit models.UnitStatus) models.UnitState {
	agentState := AgentState(unit)
	states := append([]string{agentState}, SubordinateStates(unit)...)

	var flags strings.Builder
	for _, state := range states {
		if state != HealthyState {
			flags.WriteString("!")
		}
	}

	state := models.UnitState{
		Name:       name,
		AgentState: agentState,
		Healthy:    flags.Len() == 0,
		Color:      models.ColorHealthy,
		Flags:      flags.String(),
		Tooltip:    "unit: " + name + r.unitDetails(unit, agentState),
	}
	if !state.Healthy {
		state.Color = models.ColorUnhealthy
	}
	state.Nagios = r.crossReference(name, unit.PublicAddress)

	return state
}

func (r *Resolver) unitDetails(unit models.UnitStatus, agentState string) string {
	return fmt.Sprintf("&#10;machine: %s&#10;instance-id: %s&#10;public-address: %s&#10;open-ports: [%s]&#10;agent-state: %s",
		unit.Machine,
		r.machines[unit.Machine].InstanceID,
		unit.PublicAddress,
		strings.Join(unit.OpenPorts, ", "),
		agentState,
	)
}

// NagiosHostnames lists the monitoring hostnames a unit may be known by, in
// lookup order: its public address (physical hostname for MAAS units), then
// the name nrpe-external-master registers, e.g. ("web-prod", "haproxy/0")
// gives "web-prod-haproxy-0".
func (r *Resolver) NagiosHostnames(name, publicAddress string) []string {
	hostname := strings.ReplaceAll(name, "/", "-")
	if r.prefix != "" {
		hostname = r.prefix + "-" + hostname
	}
	if publicAddress == "" {
		return []string{hostname}
	}
	return []string{publicAddress, hostname}
}

func (r *Resolver) crossReference(name, publicAddress string) *models.NagiosState {
	candidates := r.NagiosHostnames(name, publicAddress)

	nagios := &models.NagiosState{
		Hostname: candidates[len(candidates)-1],
		Critical: models.NoData,
	}
	tooltip := models.HostTooltip(nagios.Hostname)

	if host, ok := r.alerts.Lookup(candidates...); ok {
		nagios.Hostname = host.Hostname
		nagios.Critical = host.Critical
		tooltip = host.Tooltip()
	}

	nagios.Color = models.AlertColor(nagios.Critical)
	nagios.URL = r.nagiosURL + "?host=" + nagios.Hostname
	nagios.Tooltip = tooltip
	return nagios
}
