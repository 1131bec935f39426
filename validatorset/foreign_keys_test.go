package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestForeignKeyValidatorFlagsDanglingReference(t *testing.T) {
	files := withOverride(minimalFeed, "trips.txt", "route_id,service_id,trip_id\nMISSING_ROUTE,WEEKDAY,T1\n")
	ctx := buildContext(t, files, config.Options{})
	foreignKeyValidator().Run(ctx)
	n, ok := findNotice(ctx, "foreign_key_violation")
	require.True(t, ok)
	filename, _ := n.Context.Get("childFilename")
	require.Equal(t, "trips.txt", filename)
	field, _ := n.Context.Get("childFieldName")
	require.Equal(t, "route_id", field)
}

func TestForeignKeyValidatorAcceptsValidFeed(t *testing.T) {
	ctx := buildContext(t, minimalFeed, config.Options{})
	foreignKeyValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "foreign_key_violation")
}

func TestForeignKeyValidatorServiceIDResolvesViaCalendarDates(t *testing.T) {
	files := withOverride(minimalFeed, "calendar.txt", "")
	files = withOverride(files, "calendar_dates.txt", "service_id,date,exception_type\nWEEKDAY,20230102,1\n")
	ctx := buildContext(t, files, config.Options{})
	foreignKeyValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "foreign_key_violation")
}
