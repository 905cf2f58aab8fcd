package openf1

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openf1telemetry/pkg/model"
)

func TestMeetings_EncodesYearAndCountry(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[{"meeting_key":1219,"country_name":"Singapore"}]`)

	rs, err := c.Meetings(context.Background(), 2023, "Singapore")
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Len())

	assert.Equal(t, "/v1/meetings", rec.last.Path)
	assert.Equal(t, "country_name=Singapore&year=2023", rec.last.RawQuery)
}

func TestMeetings_MultiWordCountry(t *testing.T) {
	testCases := []struct {
		country string
		encoded string
	}{
		{"Abu Dhabi", "country_name=Abu+Dhabi"},
		{"United States", "country_name=United+States"},
		{"São Paulo", "country_name=S%C3%A3o+Paulo"},
		{"Emilia-Romagna & Co", "country_name=Emilia-Romagna+%26+Co"},
	}

	for _, tc := range testCases {
		t.Run(tc.country, func(t *testing.T) {
			c, rec := newTestClient(t, http.StatusOK, `[]`)

			_, err := c.Meetings(context.Background(), 2024, tc.country)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(rec.last.RawQuery, tc.encoded+"&"), rec.last.RawQuery)
			assert.Equal(t, tc.country, rec.last.Query().Get("country_name"))
			assert.Equal(t, "2024", rec.last.Query().Get("year"))
		})
	}
}

func TestMeetings_EmptyCountryIsOmitted(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.Meetings(context.Background(), 2023, "")
	require.NoError(t, err)
	assert.Equal(t, "year=2023", rec.last.RawQuery)
}

func TestDrivers_LatestPassesVerbatim(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.Drivers(context.Background(), model.Latest)
	require.NoError(t, err)
	assert.Equal(t, "/v1/drivers", rec.last.Path)
	assert.Equal(t, "session_key=latest", rec.last.RawQuery)
}

func TestOvertakes_OptionalDriver(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.Overtakes(context.Background(), model.Int(9636), nil)
	require.NoError(t, err)
	assert.Equal(t, "session_key=9636", rec.last.RawQuery)

	driver := 63
	_, err = c.Overtakes(context.Background(), model.Int(9636), &driver)
	require.NoError(t, err)
	assert.Equal(t, "overtaking_driver=63&session_key=9636", rec.last.RawQuery)
}

func TestCatalogMethods(t *testing.T) {
	session := model.Int(9158)
	testCases := []struct {
		name  string
		call  func(c *Client) (*model.ResultSet, error)
		path  string
		query string
	}{
		{"Sessions", func(c *Client) (*model.ResultSet, error) { return c.Sessions(context.Background(), model.Int(1219)) }, "sessions", "meeting_key=1219"},
		{"Laps", func(c *Client) (*model.ResultSet, error) { return c.Laps(context.Background(), session) }, "laps", "session_key=9158"},
		{"PitStops", func(c *Client) (*model.ResultSet, error) { return c.PitStops(context.Background(), session) }, "pit", "session_key=9158"},
		{"Positions", func(c *Client) (*model.ResultSet, error) { return c.Positions(context.Background(), session) }, "position", "session_key=9158"},
		{"SessionResults", func(c *Client) (*model.ResultSet, error) { return c.SessionResults(context.Background(), session) }, "session_result", "session_key=9158"},
		{"StartingGrid", func(c *Client) (*model.ResultSet, error) { return c.StartingGrid(context.Background(), session) }, "starting_grid", "session_key=9158"},
		{"Stints", func(c *Client) (*model.ResultSet, error) { return c.Stints(context.Background(), session) }, "stints", "session_key=9158"},
		{"CarData", func(c *Client) (*model.ResultSet, error) { return c.CarData(context.Background(), session, 55) }, "car_data", "driver_number=55&session_key=9158"},
		{"Intervals", func(c *Client) (*model.ResultSet, error) { return c.Intervals(context.Background(), session) }, "intervals", "session_key=9158"},
		{"Locations", func(c *Client) (*model.ResultSet, error) { return c.Locations(context.Background(), session, 81) }, "location", "driver_number=81&session_key=9158"},
		{"RaceControl", func(c *Client) (*model.ResultSet, error) { return c.RaceControl(context.Background(), session) }, "race_control", "session_key=9158"},
		{"TeamRadio", func(c *Client) (*model.ResultSet, error) { return c.TeamRadio(context.Background(), session) }, "team_radio", "session_key=9158"},
		{"Weather", func(c *Client) (*model.ResultSet, error) { return c.Weather(context.Background(), session) }, "weather", "session_key=9158"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestClient(t, http.StatusOK, `[{"session_key":9158}]`)

			rs, err := tc.call(c)
			require.NoError(t, err)
			assert.Equal(t, 1, rs.Len())
			assert.Equal(t, 1, rec.hits)
			assert.Equal(t, "/v1/"+tc.path, rec.last.Path)
			assert.Equal(t, tc.query, rec.last.RawQuery)
		})
	}
}

func TestCatalogMethods_PropagateErrors(t *testing.T) {
	c, _ := newTestClient(t, http.StatusServiceUnavailable, `down`)

	rs, err := c.Weather(context.Background(), model.Latest)
	assert.Nil(t, rs)
	assert.Equal(t, KindRemoteStatus, Kind(err))
}

func TestCatalog(t *testing.T) {
	assert.Len(t, Catalog, 16)

	seen := map[string]bool{}
	for _, e := range Catalog {
		assert.False(t, seen[e.Path], "duplicate %s", e.Path)
		seen[e.Path] = true
		assert.NotEmpty(t, e.Params, e.Path)
		assert.NotEmpty(t, e.Description, e.Path)
	}

	e, ok := LookupEndpoint(PathCarData)
	require.True(t, ok)
	assert.Equal(t, []string{ParamSessionKey, ParamDriverNumber}, e.Params)
	assert.True(t, e.Live)

	_, ok = LookupEndpoint("championship")
	assert.False(t, ok)
}
