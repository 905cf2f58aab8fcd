package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"openf1telemetry/pkg/model"
	"openf1telemetry/pkg/openf1"
	"openf1telemetry/pkg/webserver"
)

func newEndpointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the endpoints of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(cmd, "endpoints", catalogResultSet())
		},
	}
}

func catalogResultSet() *model.ResultSet {
	fields := []string{"path", "params", "live", "description"}
	rs := model.NewResultSet()
	for _, e := range openf1.Catalog {
		rs.Append(fields, model.Record{
			"path":        model.String(e.Path),
			"params":      model.String(strings.Join(e.Params, ", ")),
			"live":        model.Bool(e.Live),
			"description": model.String(e.Description),
		})
	}
	return rs
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP with Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.WebserverAddress
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return webserver.NewManager(a.client, a.logger).Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides WEBSERVER_ADDRESS")
	return cmd
}
