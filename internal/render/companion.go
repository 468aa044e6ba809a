package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidKeyValue = errors.New("key/value annotation must look like key=value")

// ParseKeyValues splits "key=value" annotations. Values may contain "=".
func ParseKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, errors.Wrapf(ErrInvalidKeyValue, "got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

// WriteCompanion writes the JSON file published next to the DOT output: the
// annotations plus the filtered services, as juju reported them, under
// "services".
func WriteCompanion(w io.Writer, services map[string]any, pairs []string) error {
	annotations, err := ParseKeyValues(pairs)
	if err != nil {
		return err
	}

	doc := make(map[string]any, len(annotations)+1)
	for k, v := range annotations {
		doc[k] = v
	}
	doc["services"] = services

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(err, "failed to encode companion json")
	}
	return nil
}
