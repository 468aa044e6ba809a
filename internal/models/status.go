// Package models defines the core data structures shared by the parser, the
// renderers and the API. It includes the juju status document, monitoring
// alerts, resolved unit state and the DOT graph model.
package models

type JujuStatus struct {
	Machines     map[string]MachineStatus `yaml:"machines" json:"machines,omitempty"`
	Services     map[string]ServiceStatus `yaml:"services" json:"services,omitempty"`
	Applications map[string]ServiceStatus `yaml:"applications" json:"applications,omitempty"`

	// Raw is the whole document as decoded, including the fields the typed
	// view above does not declare.
	Raw map[string]any `yaml:"-" json:"-"`
}

// ServiceMap returns the deployed services, preferring the juju 2.x
// "applications" key over the legacy "services" key.
func (s *JujuStatus) ServiceMap() map[string]ServiceStatus {
	if s.Applications != nil {
		return s.Applications
	}
	return s.Services
}

// RawServiceMap returns the untyped service entries under the same key
// ServiceMap reads.
func (s *JujuStatus) RawServiceMap() map[string]any {
	key := "services"
	if s.Applications != nil {
		key = "applications"
	}
	services, _ := s.Raw[key].(map[string]any)
	return services
}

type MachineStatus struct {
	InstanceID string `yaml:"instance-id" json:"instance-id,omitempty"`
	DNSName    string `yaml:"dns-name" json:"dns-name,omitempty"`
	Series     string `yaml:"series" json:"series,omitempty"`
}

type ServiceStatus struct {
	Charm     string                `yaml:"charm" json:"charm"`
	Exposed   bool                  `yaml:"exposed" json:"exposed"`
	Units     map[string]UnitStatus `yaml:"units" json:"units,omitempty"`
	Relations map[string][]string   `yaml:"relations" json:"relations,omitempty"`
}

type UnitStatus struct {
	Machine       string                `yaml:"machine" json:"machine,omitempty"`
	PublicAddress string                `yaml:"public-address" json:"public-address,omitempty"`
	OpenPorts     []string              `yaml:"open-ports" json:"open-ports,omitempty"`
	AgentState    string                `yaml:"agent-state" json:"agent-state,omitempty"`
	JujuStatus    *StatusInfo           `yaml:"juju-status" json:"juju-status,omitempty"`
	Subordinates  map[string]UnitStatus `yaml:"subordinates" json:"subordinates,omitempty"`
}

// StatusInfo is the nested status block juju 2.x reports per agent.
type StatusInfo struct {
	Current string `yaml:"current" json:"current"`
	Message string `yaml:"message" json:"message,omitempty"`
	Since   string `yaml:"since" json:"since,omitempty"`
	Version string `yaml:"version" json:"version,omitempty"`
}
