package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestCalendarExpirationValidatorSkippedWithoutDate(t *testing.T) {
	ctx := buildContext(t, minimalFeed, config.Options{})
	calendarExpirationValidator().Run(ctx)
	require.Empty(t, codesIn(ctx))
}

func TestCalendarExpirationValidatorFlagsExpiredService(t *testing.T) {
	ctx := buildContext(t, minimalFeed, config.Options{ValidationDate: "20240101"})
	calendarExpirationValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "expired_calendar")
}

func TestCalendarExpirationValidatorWarnsNearExpiration(t *testing.T) {
	files := withOverride(minimalFeed, "calendar.txt",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n"+
			"WEEKDAY,1,1,1,1,1,0,0,20230101,20230105\n")
	ctx := buildContext(t, files, config.Options{ValidationDate: "20230101"})
	calendarExpirationValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "feed_expiration_date7_days")
}

func TestFrequencyOverlapValidatorFlagsOverlappingWindows(t *testing.T) {
	files := withOverride(minimalFeed, "frequencies.txt",
		"trip_id,start_time,end_time,headway_secs\nT1,08:00:00,09:00:00,600\nT1,08:30:00,09:30:00,600\n")
	ctx := buildContext(t, files, config.Options{})
	frequencyOverlapValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "overlapping_frequency")
}

func TestFrequencyOverlapValidatorAllowsAdjacentWindows(t *testing.T) {
	files := withOverride(minimalFeed, "frequencies.txt",
		"trip_id,start_time,end_time,headway_secs\nT1,08:00:00,09:00:00,600\nT1,09:00:00,10:00:00,600\n")
	ctx := buildContext(t, files, config.Options{})
	frequencyOverlapValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "overlapping_frequency")
}
