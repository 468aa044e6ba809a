// Package parser turns juju status and nagios livestatus documents into the
// service graph. It handles decoding, unit health resolution, service
// filtering and graph construction.
package parser

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jujuviz/core/internal/models"
)

var (
	ErrEmptyStatus = errors.New("empty juju status data")
	ErrNoServices  = errors.New("no juju services found")
)

func ParseStatus(data []byte) (*models.JujuStatus, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyStatus
	}

	var status models.JujuStatus
	if err := yaml.Unmarshal(data, &status); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal juju status")
	}

	if len(status.ServiceMap()) == 0 {
		return nil, ErrNoServices
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal raw juju status")
	}
	status.Raw, _ = stringKeys(raw).(map[string]any)

	return &status, nil
}

// stringKeys converts the map[any]any values yaml produces for mappings with
// non-string keys, such as unquoted machine ids, so the document can be
// encoded as JSON.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = stringKeys(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = stringKeys(item)
		}
		return v
	default:
		return v
	}
}
