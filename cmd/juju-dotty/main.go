// Package main is the juju-dotty command line tool. It renders one DOT
// graph per juju status file, optionally cross-referenced with nagios
// alerts, and can keep re-rendering while its inputs change.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jujuviz/core/internal/config"
)

const example = `  juju status --format yaml > status.yaml
  unixcat /var/lib/nagios3/livestatus/socket > nagios.json <<EOF
  GET services
  Columns: host_name description state plugin_output
  OutputFormat: json
  EOF
  juju-dotty --nagios-file nagios.json --nagios-prefix web-prod \
    --nagios-url https://nagios.example.com/cgi-bin/nagios3/status.cgi \
    -x nrpe -o status.dot status.yaml`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:          "juju-dotty [flags] FILE...",
		Short:        "Render juju status documents as graphviz DOT graphs",
		Example:      example,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadPFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.SetupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}

			r, err := newRunner(cfg, stdin, stdout)
			if err != nil {
				return err
			}
			if !cfg.Watch {
				return r.renderAll(args)
			}
			return watch(cmd.Context(), r, args)
		},
	}

	flags := cmd.Flags()
	flags.String("nagios-file", "", "nagios livestatus JSON dump (host_name, description, state, plugin_output)")
	flags.String("nagios-url", "", "nagios status.cgi URL used for the monitoring cell links")
	flags.String("nagios-prefix", "", "environment prefix of nagios hostnames, e.g. web-prod")
	flags.StringP("exclude", "x", "", "drop services whose name matches this regexp")
	flags.StringP("include", "i", "", "keep only services whose name matches this regexp")
	flags.StringP("output", "o", "", "write DOT to this file and its companion JSON to FILE.json")
	flags.StringP("title", "t", "", "graph title, defaults to the nagios prefix")
	flags.StringArrayP("key-value", "k", nil, "key=value pair added to the companion JSON, repeatable")
	flags.Bool("watch", false, "re-render when an input or the nagios file changes")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	return cmd
}
