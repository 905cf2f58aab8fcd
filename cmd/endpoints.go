package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"openf1telemetry/pkg/model"
	"openf1telemetry/pkg/openf1"
)

// Method expressions such as (*openf1.Client).Laps take the client first.
type (
	sessionCall func(c *openf1.Client, ctx context.Context, sessionKey model.Value) (*model.ResultSet, error)
	driverCall  func(c *openf1.Client, ctx context.Context, sessionKey model.Value, driverNumber int) (*model.ResultSet, error)
)

// endpointCommands returns one subcommand per catalog endpoint.
func endpointCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newMeetingsCmd(a),
		newSessionsCmd(a),
		sessionCmd(a, openf1.PathDrivers, (*openf1.Client).Drivers),
		sessionCmd(a, openf1.PathLaps, (*openf1.Client).Laps),
		sessionCmd(a, openf1.PathPit, (*openf1.Client).PitStops),
		sessionCmd(a, openf1.PathPosition, (*openf1.Client).Positions),
		sessionCmd(a, openf1.PathSessionResult, (*openf1.Client).SessionResults),
		sessionCmd(a, openf1.PathStartingGrid, (*openf1.Client).StartingGrid),
		sessionCmd(a, openf1.PathStints, (*openf1.Client).Stints),
		driverCmd(a, openf1.PathCarData, (*openf1.Client).CarData),
		sessionCmd(a, openf1.PathIntervals, (*openf1.Client).Intervals),
		driverCmd(a, openf1.PathLocation, (*openf1.Client).Locations),
		newOvertakesCmd(a),
		sessionCmd(a, openf1.PathRaceControl, (*openf1.Client).RaceControl),
		sessionCmd(a, openf1.PathTeamRadio, (*openf1.Client).TeamRadio),
		sessionCmd(a, openf1.PathWeather, (*openf1.Client).Weather),
	}
}

func endpointCmd(path string) *cobra.Command {
	e, _ := openf1.LookupEndpoint(path)
	cmd := &cobra.Command{
		Use:   path,
		Short: e.Description,
		Args:  cobra.NoArgs,
	}
	if alias := strings.ReplaceAll(path, "_", "-"); alias != path {
		cmd.Aliases = []string{alias}
	}
	return cmd
}

func sessionKeyFlag(cmd *cobra.Command, key *string) {
	cmd.Flags().StringVarP(key, "session-key", "s", "latest", `session key, or "latest"`)
}

func sessionCmd(a *app, path string, call sessionCall) *cobra.Command {
	var sessionKey string
	cmd := endpointCmd(path)
	sessionKeyFlag(cmd, &sessionKey)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		rs, err := call(a.client, cmd.Context(), model.Key(sessionKey))
		if err != nil {
			return err
		}
		return a.emit(cmd, path, rs)
	}
	return cmd
}

func driverCmd(a *app, path string, call driverCall) *cobra.Command {
	var (
		sessionKey   string
		driverNumber int
	)
	cmd := endpointCmd(path)
	sessionKeyFlag(cmd, &sessionKey)
	cmd.Flags().IntVarP(&driverNumber, "driver-number", "d", 0, "car number of the driver")
	_ = cmd.MarkFlagRequired("driver-number")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		rs, err := call(a.client, cmd.Context(), model.Key(sessionKey), driverNumber)
		if err != nil {
			return err
		}
		return a.emit(cmd, path, rs)
	}
	return cmd
}

func newMeetingsCmd(a *app) *cobra.Command {
	var (
		year    int
		country string
	)
	cmd := endpointCmd(openf1.PathMeetings)
	cmd.Flags().IntVarP(&year, "year", "y", 0, "championship year")
	cmd.Flags().StringVar(&country, "country", "", "country name, e.g. Singapore")
	_ = cmd.MarkFlagRequired("year")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		rs, err := a.client.Meetings(cmd.Context(), year, country)
		if err != nil {
			return err
		}
		return a.emit(cmd, openf1.PathMeetings, rs)
	}
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	var meetingKey string
	cmd := endpointCmd(openf1.PathSessions)
	cmd.Flags().StringVarP(&meetingKey, "meeting-key", "m", "latest", `meeting key, or "latest"`)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		rs, err := a.client.Sessions(cmd.Context(), model.Key(meetingKey))
		if err != nil {
			return err
		}
		return a.emit(cmd, openf1.PathSessions, rs)
	}
	return cmd
}

func newOvertakesCmd(a *app) *cobra.Command {
	var (
		sessionKey string
		driver     int
	)
	cmd := endpointCmd(openf1.PathOvertakes)
	sessionKeyFlag(cmd, &sessionKey)
	cmd.Flags().IntVar(&driver, "overtaking-driver", 0, "only overtakes made by this car number")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		var overtaking *int
		if cmd.Flags().Changed("overtaking-driver") {
			overtaking = &driver
		}
		rs, err := a.client.Overtakes(cmd.Context(), model.Key(sessionKey), overtaking)
		if err != nil {
			return err
		}
		return a.emit(cmd, openf1.PathOvertakes, rs)
	}
	return cmd
}
