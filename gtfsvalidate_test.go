package gtfsguru

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func writeMinimalFeed(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"agency.txt":  "agency_id,agency_name,agency_url,agency_timezone\nA1,Example Transit,https://example.com,America/New_York\n",
		"stops.txt":   "stop_id,stop_name,stop_lat,stop_lon\nS1,Main St,40.0,-73.0\nS2,Oak Ave,40.01,-73.01\n",
		"routes.txt":  "route_id,agency_id,route_short_name,route_type\nR1,A1,1,3\n",
		"trips.txt":   "route_id,service_id,trip_id\nR1,WEEKDAY,T1\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,S1,1\nT1,08:10:00,08:10:00,S2,2\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"WEEKDAY,1,1,1,1,1,0,0,20230101,20231231\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestValidateRunsAgainstADirectoryFeed(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)

	r, err := Validate(Input{Directory: dir}, Options{})
	require.NoError(t, err)
	require.NotNil(t, r)
	require.NotEmpty(t, r.Summary.GeneratedAt)
}

func TestValidateRejectsNoInputSource(t *testing.T) {
	_, err := Validate(Input{}, Options{})
	require.Error(t, err)
}

func TestValidateRejectsInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)

	_, err := Validate(Input{Directory: dir}, Options{Options: config.Options{CountryCode: "USA"}})
	require.Error(t, err)
}

func TestValidateRejectsMissingEngineDefaultsFile(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)

	_, err := Validate(Input{Directory: dir}, Options{EngineDefaultsPath: "/nonexistent/defaults.yaml"})
	require.Error(t, err)
}

func TestNoticeSchemaIncludesWellKnownCodes(t *testing.T) {
	schema := NoticeSchema()
	found := false
	for _, e := range schema {
		if e.Code == "invalid_date" {
			found = true
		}
	}
	require.True(t, found)
}
