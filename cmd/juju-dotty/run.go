package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/config"
	"github.com/jujuviz/core/internal/metrics"
	"github.com/jujuviz/core/internal/parser"
	"github.com/jujuviz/core/internal/render"
	"github.com/jujuviz/core/internal/viz"
)

const (
	stdinName     = "-"
	metricsSource = "cli"
)

type runner struct {
	cfg    *config.Config
	filter *parser.Filter
	stdin  io.Reader
	stdout io.Writer
}

// newRunner validates the filter patterns and companion annotations up
// front, so a bad flag fails before any file is read.
func newRunner(cfg *config.Config, stdin io.Reader, stdout io.Writer) (*runner, error) {
	filter, err := parser.NewFilter(cfg.Exclude, cfg.Include)
	if err != nil {
		return nil, err
	}
	if _, err := render.ParseKeyValues(cfg.KeyValues); err != nil {
		return nil, err
	}
	return &runner{cfg: cfg, filter: filter, stdin: stdin, stdout: stdout}, nil
}

// renderAll writes one graph per file to the output. Files that cannot be
// read or parsed are logged and skipped.
func (r *runner) renderAll(files []string) error {
	out, closeOut, err := r.openOutput()
	if err != nil {
		return err
	}
	if err := r.renderFiles(out, files); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func (r *runner) renderFiles(out io.Writer, files []string) error {
	alerts := viz.LoadAlerts(r.cfg.NagiosFile)
	opts := viz.Options{
		Title:        r.cfg.Title,
		NagiosURL:    r.cfg.NagiosURL,
		NagiosPrefix: r.cfg.NagiosPrefix,
		Filter:       r.filter,
	}

	for _, file := range files {
		log := logrus.WithField("file", file)

		data, err := r.read(file)
		if err != nil {
			log.WithError(err).Error("skipping unreadable file")
			continue
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, "\n// juju dot viz for %s:\n", file)
		result, err := viz.Render(&buf, data, alerts, opts)
		if err != nil {
			metrics.ObserveFailure(metricsSource, metrics.ResultParseError)
			log.WithError(err).Error("skipping file")
			continue
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
		metrics.ObserveGraph(metricsSource, result.Graph)

		if r.cfg.Output != "" {
			if err := r.writeCompanion(result); err != nil {
				return err
			}
		}
		log.WithField("nodes", result.Graph.Stats.TotalNodes).Info("rendered")
	}
	return nil
}

func (r *runner) read(file string) ([]byte, error) {
	if file == stdinName {
		data, err := io.ReadAll(r.stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(file)
	return data, errors.Wrapf(err, "failed to read %s", file)
}

func (r *runner) openOutput() (io.Writer, func() error, error) {
	if r.cfg.Output == "" {
		return r.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(r.cfg.Output)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create output file")
	}
	return f, func() error {
		return errors.Wrap(f.Close(), "failed to close output file")
	}, nil
}

// writeCompanion rewrites OUTPUT.json, so with several inputs it holds the
// services of the last one rendered.
func (r *runner) writeCompanion(result *viz.Result) error {
	path := r.cfg.Output + ".json"
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create companion file")
	}
	if err := render.WriteCompanion(f, result.RawServices, r.cfg.KeyValues); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close companion file")
}
