package openf1

import (
	"context"

	"openf1telemetry/pkg/model"
)

// Remote resource paths.
const (
	PathMeetings      = "meetings"
	PathSessions      = "sessions"
	PathDrivers       = "drivers"
	PathLaps          = "laps"
	PathPit           = "pit"
	PathPosition      = "position"
	PathSessionResult = "session_result"
	PathStartingGrid  = "starting_grid"
	PathStints        = "stints"
	PathCarData       = "car_data"
	PathIntervals     = "intervals"
	PathLocation      = "location"
	PathOvertakes     = "overtakes"
	PathRaceControl   = "race_control"
	PathTeamRadio     = "team_radio"
	PathWeather       = "weather"
)

// Query parameter names.
const (
	ParamYear             = "year"
	ParamCountryName      = "country_name"
	ParamMeetingKey       = "meeting_key"
	ParamSessionKey       = "session_key"
	ParamDriverNumber     = "driver_number"
	ParamOvertakingDriver = "overtaking_driver"
)

// Endpoint describes one catalog entry for collaborators that enumerate them.
type Endpoint struct {
	Path        string
	Params      []string
	Live        bool
	Description string
}

var Catalog = []Endpoint{
	{Path: PathMeetings, Params: []string{ParamYear, ParamCountryName}, Description: "Grand Prix or testing weekends, each grouping several sessions"},
	{Path: PathSessions, Params: []string{ParamMeetingKey}, Description: "Sessions of a meeting (practice, qualifying, sprint, race)"},
	{Path: PathDrivers, Params: []string{ParamSessionKey}, Description: "Drivers taking part in a session"},
	{Path: PathLaps, Params: []string{ParamSessionKey}, Description: "Individual laps with sector times and speed traps"},
	{Path: PathPit, Params: []string{ParamSessionKey}, Description: "Cars going through the pit lane"},
	{Path: PathPosition, Params: []string{ParamSessionKey}, Description: "Driver positions and their changes during a session"},
	{Path: PathSessionResult, Params: []string{ParamSessionKey}, Description: "Standings after a session"},
	{Path: PathStartingGrid, Params: []string{ParamSessionKey}, Description: "Starting grid of a race"},
	{Path: PathStints, Params: []string{ParamSessionKey}, Description: "Periods of continuous driving between pit stops"},
	{Path: PathCarData, Params: []string{ParamSessionKey, ParamDriverNumber}, Live: true, Description: "Car telemetry sampled at about 3.7 Hz"},
	{Path: PathIntervals, Params: []string{ParamSessionKey}, Live: true, Description: "Gaps to the car ahead and to the leader, races only, about every 4 s"},
	{Path: PathLocation, Params: []string{ParamSessionKey, ParamDriverNumber}, Live: true, Description: "Approximate car location at about 3.7 Hz; arbitrary origin, no lateral placement"},
	{Path: PathOvertakes, Params: []string{ParamSessionKey, ParamOvertakingDriver}, Live: true, Description: "Position exchanges between drivers, races only, may be incomplete"},
	{Path: PathRaceControl, Params: []string{ParamSessionKey}, Live: true, Description: "Race control messages: incidents, flags, safety car"},
	{Path: PathTeamRadio, Params: []string{ParamSessionKey}, Live: true, Description: "A selection of driver and team radio exchanges"},
	{Path: PathWeather, Params: []string{ParamSessionKey}, Live: true, Description: "Track weather, updated every minute"},
}

func LookupEndpoint(path string) (Endpoint, bool) {
	for _, e := range Catalog {
		if e.Path == path {
			return e, true
		}
	}
	return Endpoint{}, false
}

func optString(s string) model.Value {
	if s == "" {
		return model.Null()
	}
	return model.String(s)
}

func optInt(i *int) model.Value {
	if i == nil {
		return model.Null()
	}
	return model.Int(*i)
}

func (c *Client) bySession(ctx context.Context, path string, sessionKey model.Value) (*model.ResultSet, error) {
	return c.Fetch(ctx, path, model.Params{ParamSessionKey: sessionKey})
}

// Meetings lists meetings of a year in a country. An empty country is not sent.
func (c *Client) Meetings(ctx context.Context, year int, country string) (*model.ResultSet, error) {
	return c.Fetch(ctx, PathMeetings, model.Params{
		ParamYear:        model.Int(year),
		ParamCountryName: optString(country),
	})
}

func (c *Client) Sessions(ctx context.Context, meetingKey model.Value) (*model.ResultSet, error) {
	return c.Fetch(ctx, PathSessions, model.Params{ParamMeetingKey: meetingKey})
}

// Drivers accepts model.Latest as the session key.
func (c *Client) Drivers(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathDrivers, sessionKey)
}

func (c *Client) Laps(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathLaps, sessionKey)
}

func (c *Client) PitStops(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathPit, sessionKey)
}

func (c *Client) Positions(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathPosition, sessionKey)
}

func (c *Client) SessionResults(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathSessionResult, sessionKey)
}

func (c *Client) StartingGrid(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathStartingGrid, sessionKey)
}

func (c *Client) Stints(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathStints, sessionKey)
}

func (c *Client) CarData(ctx context.Context, sessionKey model.Value, driverNumber int) (*model.ResultSet, error) {
	return c.Fetch(ctx, PathCarData, model.Params{
		ParamSessionKey:   sessionKey,
		ParamDriverNumber: model.Int(driverNumber),
	})
}

// Intervals is only populated for race sessions.
func (c *Client) Intervals(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathIntervals, sessionKey)
}

func (c *Client) Locations(ctx context.Context, sessionKey model.Value, driverNumber int) (*model.ResultSet, error) {
	return c.Fetch(ctx, PathLocation, model.Params{
		ParamSessionKey:   sessionKey,
		ParamDriverNumber: model.Int(driverNumber),
	})
}

// Overtakes lists overtakes of a race, optionally only those made by one
// driver. The remote data may be incomplete.
func (c *Client) Overtakes(ctx context.Context, sessionKey model.Value, overtakingDriver *int) (*model.ResultSet, error) {
	return c.Fetch(ctx, PathOvertakes, model.Params{
		ParamSessionKey:       sessionKey,
		ParamOvertakingDriver: optInt(overtakingDriver),
	})
}

func (c *Client) RaceControl(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathRaceControl, sessionKey)
}

func (c *Client) TeamRadio(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathTeamRadio, sessionKey)
}

func (c *Client) Weather(ctx context.Context, sessionKey model.Value) (*model.ResultSet, error) {
	return c.bySession(ctx, PathWeather, sessionKey)
}
