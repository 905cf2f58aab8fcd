// Package cmd implements the openf1 command line: one subcommand per catalog
// endpoint, a generic fetch, the endpoint listing and the web server.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"openf1telemetry/pkg/config"
	"openf1telemetry/pkg/openf1"
	"openf1telemetry/pkg/render"
)

// app carries what the subcommands share. The configuration is resolved
// lazily so commands that never reach the network work without it.
type app struct {
	envFile  string
	format   string
	columns  []string
	limit    int
	sqlite   string
	table    string
	lapTimes bool

	cfg    *config.Config
	logger zerolog.Logger
	client *openf1.Client
}

// setup loads the configuration and builds the client on first use.
func (a *app) setup(cmd *cobra.Command) error {
	if a.client != nil {
		return nil
	}
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	a.client, err = cfg.NewClient(a.logger)
	return err
}

func (a *app) outputFormat() (render.Format, error) {
	return render.ParseFormat(a.format)
}

// NewRootCmd builds the whole command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "openf1",
		Short: "Query the OpenF1 Formula 1 data service",
		Long: `openf1 fetches Formula 1 timing, telemetry and session data from the OpenF1
service and prints it as a table, CSV, Markdown, HTML or JSON.

The service root is read from BASE_API_URL, either from the environment or
from a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.outputFormat()
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "read settings from this file instead of ./.env")
	flags.StringVarP(&a.format, "format", "f", string(render.FormatTable), "output format: table, csv, markdown, html or json")
	flags.StringSliceVarP(&a.columns, "columns", "c", nil, "only print these columns, in this order")
	flags.IntVarP(&a.limit, "limit", "n", 0, "print at most this many rows")
	flags.StringVar(&a.sqlite, "sqlite", "", "also append the rows to this SQLite database")
	flags.StringVar(&a.table, "table", "", "table name used with --sqlite (defaults to the endpoint)")
	flags.BoolVar(&a.lapTimes, "lap-times", false, "print lap and sector durations as mm:ss.mmm")

	root.AddCommand(endpointCommands(a)...)
	root.AddCommand(
		newFetchCmd(a),
		newEndpointsCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}
