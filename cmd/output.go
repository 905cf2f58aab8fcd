package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"openf1telemetry/pkg/model"
	"openf1telemetry/pkg/render"
	"openf1telemetry/pkg/store"
)

// emit optionally stores rs and then prints it in the selected format.
func (a *app) emit(cmd *cobra.Command, endpoint string, rs *model.ResultSet) error {
	if a.sqlite != "" {
		if err := a.save(endpoint, rs); err != nil {
			return err
		}
	}

	f, err := a.outputFormat()
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), rs, f, render.Options{
		Title:    endpoint,
		Columns:  a.columns,
		Limit:    a.limit,
		LapTimes: a.lapTimes,
	})
}

func (a *app) save(endpoint string, rs *model.ResultSet) error {
	table := a.table
	if table == "" {
		table = endpoint
	}

	m, err := store.NewManager(a.sqlite)
	if err != nil {
		return err
	}
	defer m.Close()

	n, err := m.Save(table, rs)
	if err != nil {
		return errors.Wrapf(err, "save %s", endpoint)
	}
	a.logger.Info().Str("db", a.sqlite).Str("table", table).Int("rows", n).Msg("rows saved")
	return nil
}
