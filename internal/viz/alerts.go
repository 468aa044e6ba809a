package viz

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/models"
	"github.com/jujuviz/core/internal/parser"
)

// LoadAlerts reads a livestatus dump. Missing or malformed files are logged
// and yield no monitoring data, so every unit falls back to the no-data color.
func LoadAlerts(path string) models.AlertIndex {
	if path == "" {
		return nil
	}

	log := logrus.WithField("nagios_file", path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("cannot read nagios file, rendering without monitoring data")
		return nil
	}

	alerts, err := parser.ParseLivestatus(data)
	if err != nil {
		log.WithError(err).Warn("cannot parse nagios file, rendering without monitoring data")
		return nil
	}

	log.WithFields(logrus.Fields{
		"hosts":    len(alerts),
		"critical": alerts.TotalCritical(),
	}).Debug("loaded nagios alerts")
	return alerts
}
