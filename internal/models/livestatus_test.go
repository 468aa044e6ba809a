package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostAlertsAdd(t *testing.T) {
	t.Run("only critical rows are counted", func(t *testing.T) {
		host := NewHostAlerts("web-prod-haproxy-0")
		host.Add("check_http", 0, "HTTP OK")
		host.Add("check_disk", 1, "DISK WARNING")
		host.Add("check_load", CriticalState, "CRITICAL - load average: 12")

		assert.Equal(t, 1, host.Critical)
		assert.Equal(t, []string{"check_load:&#10;CRITICAL - load average: 12"}, host.Details)
	})

	t.Run("angle brackets are escaped", func(t *testing.T) {
		host := NewHostAlerts("h")
		host.Add("check_http", CriticalState, "<html>down</html>")

		require.Len(t, host.Details, 1)
		assert.Equal(t, "check_http:&#10;&lt;html&gt;down&lt;/html&gt;", host.Details[0])
	})
}

func TestHostTooltip(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		details  []string
		expected string
	}{
		{
			name:     "host without alerts",
			hostname: "web-prod-web-0",
			expected: "web-prod-web-0: ",
		},
		{
			name:     "alerts are bullet separated",
			hostname: "h",
			details:  []string{"a:&#10;x", "b:&#10;y"},
			expected: "h: &#10;* a:&#10;x&#10;* b:&#10;y",
		},
		{
			name:     "double quotes are replaced",
			hostname: "h",
			details:  []string{`a:&#10;"quoted"`},
			expected: "h: &#10;* a:&#10;_quoted_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HostTooltip(tt.hostname, tt.details...))
		})
	}
}

func TestAlertIndex(t *testing.T) {
	index := AlertIndex{}
	index.Record("10.0.0.1", "check_ssh", 0, "SSH OK")
	index.Record("prod-web-0", "check_http", CriticalState, "down")
	index.Record("prod-web-0", "check_disk", CriticalState, "full")

	t.Run("every host seen gets an entry", func(t *testing.T) {
		assert.Len(t, index, 2)
		assert.Equal(t, 0, index["10.0.0.1"].Critical)
		assert.Equal(t, 2, index["prod-web-0"].Critical)
	})

	t.Run("lookup returns the first match", func(t *testing.T) {
		host, ok := index.Lookup("10.0.0.1", "prod-web-0")
		require.True(t, ok)
		assert.Equal(t, "10.0.0.1", host.Hostname)
	})

	t.Run("lookup skips missing hostnames", func(t *testing.T) {
		host, ok := index.Lookup("", "10.9.9.9", "prod-web-0")
		require.True(t, ok)
		assert.Equal(t, "prod-web-0", host.Hostname)
	})

	t.Run("lookup without match", func(t *testing.T) {
		_, ok := index.Lookup("nope")
		assert.False(t, ok)
	})

	t.Run("total critical", func(t *testing.T) {
		assert.Equal(t, 2, index.TotalCritical())
	})
}
