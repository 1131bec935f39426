package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestStopStationGraphValidatorFlagsWrongParentLocationType(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n"+
			"S1,Main St,40.0,-73.0,0,S2\nS2,Oak Ave,40.01,-73.01,0,\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	n, ok := findNotice(ctx, "wrong_parent_location_type")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "S1", v)
}

func TestStopStationGraphValidatorFlagsLocationWithoutParentStation(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,0\nS2,Oak Ave,40.01,-73.01,0\nE1,Entrance,40.02,-73.02,2\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	n, ok := findNotice(ctx, "location_without_parent_station")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "E1", v)
}

func TestStopStationGraphValidatorFlagsUnusedStation(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,0\nS2,Oak Ave,40.01,-73.01,0\nST1,Station,40.03,-73.03,1\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	n, ok := findNotice(ctx, "unused_station")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "ST1", v)
}

func TestStopStationGraphValidatorAllowsStationReferencedAsParent(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n"+
			"S1,Main St,40.0,-73.0,0,ST1\nS2,Oak Ave,40.01,-73.01,0,\nST1,Station,40.03,-73.03,1,\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "unused_station")
}

func TestStopStationGraphValidatorFlagsStopWithoutStopTime(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,0\nS2,Oak Ave,40.01,-73.01,0\nS3,Unused Stop,40.05,-73.05,0\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	n, ok := findNotice(ctx, "stop_without_stop_time")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "S3", v)
}

func TestStopStationGraphValidatorFlagsLocationWithUnexpectedStopTime(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,1\nS2,Oak Ave,40.01,-73.01,0\n")
	ctx := buildContext(t, files, config.Options{})
	stopStationGraphValidator().Run(ctx)
	n, ok := findNotice(ctx, "location_with_unexpected_stop_time")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "S1", v)
}
