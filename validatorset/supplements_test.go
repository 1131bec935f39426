package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestAgencyRouteConsistencyFlagsMissingAgencyIDWithMultipleAgencies(t *testing.T) {
	files := withOverride(minimalFeed, "agency.txt",
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"A1,Example Transit,https://example.com,America/New_York\n"+
			"A2,Other Transit,https://other.example,America/New_York\n")
	files = withOverride(files, "routes.txt", "route_id,route_short_name,route_type\nR1,1,3\n")
	ctx := buildContext(t, files, config.Options{})
	agencyRouteConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "missing_recommended_field")
}

func TestAgencyRouteConsistencyFlagsDuplicateRouteName(t *testing.T) {
	files := withOverride(minimalFeed, "routes.txt",
		"route_id,agency_id,route_short_name,route_type\nR1,A1,1,3\nR2,A1,1,3\n")
	ctx := buildContext(t, files, config.Options{})
	agencyRouteConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "duplicate_route_name")
}

func TestAgencyRouteConsistencyFlagsLowContrastColors(t *testing.T) {
	files := withOverride(minimalFeed, "routes.txt",
		"route_id,agency_id,route_short_name,route_type,route_color,route_text_color\n"+
			"R1,A1,1,3,FFFFFF,FEFEFE\n")
	ctx := buildContext(t, files, config.Options{})
	agencyRouteConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "route_color_contrast")
}

func TestAgencyRouteConsistencyAllowsHighContrastColors(t *testing.T) {
	files := withOverride(minimalFeed, "routes.txt",
		"route_id,agency_id,route_short_name,route_type,route_color,route_text_color\n"+
			"R1,A1,1,3,000000,FFFFFF\n")
	ctx := buildContext(t, files, config.Options{})
	agencyRouteConsistencyValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "route_color_contrast")
}

func TestAgencyRouteConsistencyFlagsFeedLangMismatch(t *testing.T) {
	files := withOverride(minimalFeed, "feed_info.txt",
		"feed_publisher_name,feed_publisher_url,feed_lang\nExample,https://example.com,fr\n")
	files = withOverride(files, "agency.txt",
		"agency_id,agency_name,agency_url,agency_timezone,agency_lang\nA1,Example Transit,https://example.com,America/New_York,en\n")
	ctx := buildContext(t, files, config.Options{})
	agencyRouteConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "feed_info_lang_and_agency_lang_mismatch")
}

func TestParseHexColorRejectsWrongLength(t *testing.T) {
	_, ok := parseHexColor("FFF")
	require.False(t, ok)
}

func TestParseHexColorAcceptsValidHex(t *testing.T) {
	rgb, ok := parseHexColor("FF0000")
	require.True(t, ok)
	require.InDelta(t, 1.0, rgb[0], 0.001)
	require.InDelta(t, 0.0, rgb[1], 0.001)
}

func TestLuminanceContrastRatioBlackOnWhiteIsMaximal(t *testing.T) {
	black, _ := parseHexColor("000000")
	white, _ := parseHexColor("FFFFFF")
	require.InDelta(t, 21.0, luminanceContrastRatio(black, white), 0.01)
}

func TestLuminanceContrastRatioIdenticalColorsIsOne(t *testing.T) {
	color, _ := parseHexColor("808080")
	require.InDelta(t, 1.0, luminanceContrastRatio(color, color), 0.0001)
}

func TestFareNetworkReferentialFlagsMissingMediaNameForContactlessCard(t *testing.T) {
	files := withOverride(minimalFeed, "fare_media.txt",
		"fare_media_id,fare_media_type\nM1,4\n")
	ctx := buildContext(t, files, config.Options{})
	fareNetworkReferentialValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "missing_required_field")
}

func TestFareNetworkReferentialAllowsUnnamedCashMedia(t *testing.T) {
	files := withOverride(minimalFeed, "fare_media.txt",
		"fare_media_id,fare_media_type\nM1,0\n")
	ctx := buildContext(t, files, config.Options{})
	fareNetworkReferentialValidator().Run(ctx)
	require.Empty(t, codesIn(ctx))
}

func TestPickupDropOffZoneValidatorFlagsUnusedLocationGroup(t *testing.T) {
	files := withOverride(minimalFeed, "location_groups.txt",
		"location_group_id,location_group_name\nLG1,Unused Group\n")
	ctx := buildContext(t, files, config.Options{})
	pickupDropOffZoneValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "unused_location_group")
}

func TestPickupDropOffZoneValidatorClearsReferencedLocationGroup(t *testing.T) {
	files := withOverride(minimalFeed, "location_groups.txt",
		"location_group_id,location_group_name\nLG1,Used Group\n")
	files = withOverride(files, "stop_times.txt",
		"trip_id,stop_sequence,location_group_id\nT1,1,LG1\n")
	ctx := buildContext(t, files, config.Options{})
	pickupDropOffZoneValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "unused_location_group")
}

func TestURLAgencyConsistencyFlagsMalformedURL(t *testing.T) {
	files := withOverride(minimalFeed, "routes.txt",
		"route_id,agency_id,route_short_name,route_type,route_url\nR1,A1,1,3,not-a-url\n")
	ctx := buildContext(t, files, config.Options{})
	urlAgencyConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "invalid_url")
}

func TestURLAgencyConsistencyFlagsSameRouteAndAgencyURL(t *testing.T) {
	files := withOverride(minimalFeed, "routes.txt",
		"route_id,agency_id,route_short_name,route_type,route_url\nR1,A1,1,3,https://example.com\n")
	ctx := buildContext(t, files, config.Options{})
	urlAgencyConsistencyValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "same_route_and_agency_url")
}
