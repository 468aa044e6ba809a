package parser

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/models"
)

// ParseLivestatus decodes a livestatus "GET services" JSON dump with the
// columns host_name, description, state and plugin_output.
func ParseLivestatus(data []byte) (models.AlertIndex, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal livestatus")
	}

	index := models.AlertIndex{}
	for i, row := range rows {
		if len(row) < 4 {
			logrus.WithField("row", i).Warnf("skipping livestatus row with %d columns", len(row))
			continue
		}

		var (
			hostname, service, output string
			state                     int
		)
		if err := decodeColumns(row, &hostname, &service, &state, &output); err != nil {
			logrus.WithField("row", i).WithError(err).Warn("skipping malformed livestatus row")
			continue
		}
		index.Record(hostname, service, state, output)
	}

	return index, nil
}

func decodeColumns(row []json.RawMessage, dest ...any) error {
	for i, d := range dest {
		if err := json.Unmarshal(row[i], d); err != nil {
			return errors.Wrapf(err, "column %d", i)
		}
	}
	return nil
}
