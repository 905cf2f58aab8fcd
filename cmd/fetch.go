package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"openf1telemetry/pkg/model"
	"openf1telemetry/pkg/openf1"
)

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <endpoint> [key=value...]",
		Short: "Fetch any endpoint with arbitrary query parameters",
		Long: `fetch queries any OpenF1 endpoint, including ones this tool has no dedicated
command for. Values that look like integers are sent as numbers, and an empty
value drops the parameter.

  openf1 fetch laps session_key=9161 driver_number=63`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return &openf1.RequestError{Endpoint: args[0], Err: err}
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			rs, err := a.client.Fetch(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return a.emit(cmd, strings.Trim(args[0], "/ "), rs)
		},
	}
}

// parseParams turns key=value arguments into query parameters.
func parseParams(args []string) (model.Params, error) {
	params := model.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Errorf("parameter %q is not key=value", arg)
		}
		params[key] = model.Key(value)
	}
	return params, nil
}
