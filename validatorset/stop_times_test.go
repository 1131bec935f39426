package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestStopTimeSanityValidatorFlagsArrivalBeforePreviousDeparture(t *testing.T) {
	files := withOverride(minimalFeed, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"T1,08:10:00,08:10:00,S1,1\nT1,08:05:00,08:12:00,S2,2\n")
	ctx := buildContext(t, files, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "stop_time_with_arrival_before_previous_departure_time")
}

func TestStopTimeSanityValidatorFlagsOnlyArrivalOrDeparture(t *testing.T) {
	files := withOverride(minimalFeed, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"T1,08:00:00,,S1,1\nT1,08:10:00,08:10:00,S2,2\n")
	ctx := buildContext(t, files, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	n, ok := findNotice(ctx, "stop_time_with_only_arrival_or_departure_time")
	require.True(t, ok)
	v, _ := n.Context.Get("fieldName")
	require.Equal(t, "departure_time", v)
}

func TestStopTimeSanityValidatorFlagsTimepointWithoutTimes(t *testing.T) {
	files := withOverride(minimalFeed, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence,timepoint\n"+
			"T1,08:00:00,08:00:00,S1,1,1\nT1,,,S2,2,1\n")
	ctx := buildContext(t, files, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "stop_time_timepoint_without_times")
}

func TestStopTimeSanityValidatorFlagsMissingTripEdge(t *testing.T) {
	files := withOverride(minimalFeed, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"T1,,,S1,1\nT1,08:10:00,08:10:00,S2,2\n")
	ctx := buildContext(t, files, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "missing_trip_edge")
}

func TestStopTimeSanityValidatorFlagsDecreasingShapeDistance(t *testing.T) {
	files := withOverride(minimalFeed, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence,shape_dist_traveled\n"+
			"T1,08:00:00,08:00:00,S1,1,100\nT1,08:10:00,08:10:00,S2,2,50\n")
	ctx := buildContext(t, files, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "decreasing_or_equal_stop_time_distance")
}

func TestStopTimeSanityValidatorCleanTripRaisesNothing(t *testing.T) {
	ctx := buildContext(t, minimalFeed, config.Options{})
	stopTimeSanityValidator().Run(ctx)
	require.Empty(t, codesIn(ctx))
}
