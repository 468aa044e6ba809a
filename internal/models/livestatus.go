package models

import (
	"fmt"
	"strings"
)

// CriticalState is the livestatus state code of a CRITICAL service.
const CriticalState = 2

// HostAlerts aggregates the livestatus rows of one monitored host.
type HostAlerts struct {
	Hostname string
	Critical int
	Details  []string
}

func NewHostAlerts(hostname string) *HostAlerts {
	return &HostAlerts{Hostname: hostname}
}

// Add records one livestatus row. Only critical rows contribute details.
func (h *HostAlerts) Add(service string, state int, output string) {
	if state != CriticalState {
		return
	}
	h.Critical++
	output = strings.ReplaceAll(output, "<", "&lt;")
	output = strings.ReplaceAll(output, ">", "&gt;")
	h.Details = append(h.Details, fmt.Sprintf("%s:&#10;%s", service, output))
}

func (h *HostAlerts) Tooltip() string {
	return HostTooltip(h.Hostname, h.Details...)
}

// HostTooltip joins a hostname header and alert details into a single
// tooltip attribute value.
func HostTooltip(hostname string, details ...string) string {
	parts := append([]string{hostname + ": "}, details...)
	return strings.ReplaceAll(strings.Join(parts, "&#10;* "), `"`, "_")
}

// AlertIndex maps a monitoring hostname to its alerts.
type AlertIndex map[string]*HostAlerts

func (a AlertIndex) Record(hostname, service string, state int, output string) {
	host, ok := a[hostname]
	if !ok {
		host = NewHostAlerts(hostname)
		a[hostname] = host
	}
	host.Add(service, state, output)
}

// Lookup returns the alerts of the first hostname present in the index.
func (a AlertIndex) Lookup(hostnames ...string) (*HostAlerts, bool) {
	for _, hostname := range hostnames {
		if host, ok := a[hostname]; ok {
			return host, true
		}
	}
	return nil, false
}

func (a AlertIndex) TotalCritical() int {
	total := 0
	for _, host := range a {
		total += host.Critical
	}
	return total
}
