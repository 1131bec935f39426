package validatorset

import (
	"math"
	"strconv"
	"strings"

	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "missing_recommended_field", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "fieldName"}},
		{Code: "duplicate_route_name", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "routeId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "feed_info_lang_and_agency_lang_mismatch", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "feedLang", "agencyLang"}},
		{Code: "route_color_contrast", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "routeId", "contrastRatio"}},
		{Code: "duplicate_fare_media_name", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "fareMediaId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "unused_location_group", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "locationGroupId"}},
		{Code: "same_route_and_agency_url", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "routeId", "url"}},
		{Code: "invalid_url", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
	} {
		notice.Register(e)
	}
}

// agencyRouteConsistencyValidator implements SPEC_FULL.md's
// agency/route/calendar consistency supplement.
func agencyRouteConsistencyValidator() Validator {
	return newValidator("agency_route_consistency", func(ctx *Context) {
		agencies := ctx.Feed.Table("agency.txt")
		routes := ctx.Feed.Table("routes.txt")
		feedInfo := ctx.Feed.Table("feed_info.txt")
		if routes == nil || !routes.Present {
			return
		}

		multiAgency := agencies != nil && len(agencies.Rows) > 1
		if multiAgency {
			for _, row := range routes.Rows {
				if _, hasAgency := row.Get("agency_id"); !hasAgency {
					ctx.Add(notice.New("missing_recommended_field", notice.SeverityWarning).
						With("filename", "routes.txt").With("csvRowNumber", row.RowNumber).With("fieldName", "agency_id"))
				}
			}
		}

		type nameKey struct{ agencyID, short, long string }
		seen := make(map[nameKey]feed.Row)
		for _, row := range routes.Rows {
			agencyID, _ := row.Get("agency_id")
			short, _ := row.Get("route_short_name")
			long, _ := row.Get("route_long_name")
			if short == "" && long == "" {
				continue
			}
			key := nameKey{agencyID, short, long}
			if prev, ok := seen[key]; ok {
				routeID, _ := row.Get("route_id")
				ctx.Add(notice.New("duplicate_route_name", notice.SeverityWarning).
					With("filename", "routes.txt").With("routeId", routeID).
					With("csvRowNumber", row.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
				continue
			}
			seen[key] = row
		}

		routeColor := func(row feed.Row, field string) (string, bool) {
			v, ok := row.Get(field)
			return v, ok && v != ""
		}
		for _, row := range routes.Rows {
			colorHex, hasColor := routeColor(row, "route_color")
			textHex, hasText := routeColor(row, "route_text_color")
			color, okColor := parseHexColor(colorHex)
			text, okText := parseHexColor(textHex)
			if !hasColor && !hasText {
				continue
			}
			if !okColor || !okText {
				continue
			}
			if luminanceContrastRatio(color, text) < ctx.Defaults.RouteColorContrastRatio {
				routeID, _ := row.Get("route_id")
				ctx.Add(notice.New("route_color_contrast", notice.SeverityWarning).
					With("filename", "routes.txt").With("routeId", routeID).
					With("contrastRatio", luminanceContrastRatio(color, text)))
			}
		}

		if feedInfo != nil && feedInfo.Present && agencies != nil && agencies.Present && len(feedInfo.Rows) > 0 {
			feedLang, hasFeedLang := feedInfo.Rows[0].Get("feed_lang")
			if hasFeedLang {
				matched := false
				for _, a := range agencies.Rows {
					agencyLang, _ := a.Get("agency_lang")
					if strings.EqualFold(agencyLang, feedLang) {
						matched = true
						break
					}
				}
				if !matched {
					agencyLang, _ := agencies.Rows[0].Get("agency_lang")
					ctx.Add(notice.New("feed_info_lang_and_agency_lang_mismatch", notice.SeverityInfo).
						With("filename", "feed_info.txt").With("feedLang", feedLang).With("agencyLang", agencyLang))
				}
			}
		}
	})
}

func parseHexColor(hex string) ([3]float64, bool) {
	if len(hex) != 6 {
		return [3]float64{}, false
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(hex[i*2:i*2+2], 16, 32)
		if err != nil {
			return [3]float64{}, false
		}
		rgb[i] = int(v)
	}
	return [3]float64{float64(rgb[0]) / 255, float64(rgb[1]) / 255, float64(rgb[2]) / 255}, true
}

// luminanceContrastRatio follows the WCAG relative-luminance contrast
// formula used by the original rule this supplement is grounded on.
func luminanceContrastRatio(a, b [3]float64) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c [3]float64) float64 {
	channel := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	r, g, b := channel(c[0]), channel(c[1]), channel(c[2])
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// fareNetworkReferentialValidator implements SPEC_FULL.md's fare/network
// referential-rules supplement. fare_leg_join_rules FK resolution against
// route_networks.txt/networks.txt is handled generically by
// foreignKeyValidator; this validator covers the checks that need more
// than a single FK edge at a time.
func fareNetworkReferentialValidator() Validator {
	return newValidator("fare_network_referential", func(ctx *Context) {
		media := ctx.Feed.Table("fare_media.txt")
		if media == nil || !media.Present {
			return
		}
		namesByID := make(map[string]feed.Row)
		for _, row := range media.Rows {
			mediaID, _ := row.Get("fare_media_id")
			name, hasName := row.Get("fare_media_name")
			mediaType, _ := row.Int("fare_media_type")
			requiresName := mediaType == 3 || mediaType == 4 // transit/mobile app, contactless card per GTFS fare media enum
			if requiresName && !hasName {
				ctx.Add(notice.New("missing_required_field", notice.SeverityError).
					With("filename", "fare_media.txt").With("csvRowNumber", row.RowNumber).With("fieldName", "fare_media_name"))
			}
			if prev, ok := namesByID[mediaID]; ok {
				prevName, _ := prev.Get("fare_media_name")
				if prevName != name {
					ctx.Add(notice.New("duplicate_fare_media_name", notice.SeverityWarning).
						With("filename", "fare_media.txt").With("fareMediaId", mediaID).
						With("csvRowNumber", row.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
				}
				continue
			}
			namesByID[mediaID] = row
		}
	})
}

// pickupDropOffZoneValidator implements SPEC_FULL.md's pickup/drop-off
// and zone-rules supplement.
func pickupDropOffZoneValidator() Validator {
	return newValidator("pickup_drop_off_zone", func(ctx *Context) {
		routes := ctx.Feed.Table("routes.txt")
		stopTimes := ctx.Feed.Table("stop_times.txt")
		if routes == nil || !routes.Present || stopTimes == nil || !stopTimes.Present {
			return
		}
		routeContinuous := make(map[string][2]int) // route_id -> [continuous_pickup, continuous_drop_off], -1 if unset
		for _, row := range routes.Rows {
			routeID, _ := row.Get("route_id")
			pickup, hasPickup := row.Int("continuous_pickup")
			if !hasPickup {
				pickup = -1
			}
			dropOff, hasDropOff := row.Int("continuous_drop_off")
			if !hasDropOff {
				dropOff = -1
			}
			routeContinuous[routeID] = [2]int{pickup, dropOff}
		}

		trips := ctx.Feed.Table("trips.txt")
		tripRoute := make(map[string]string)
		if trips != nil && trips.Present {
			for _, row := range trips.Rows {
				tripID, _ := row.Get("trip_id")
				routeID, _ := row.Get("route_id")
				tripRoute[tripID] = routeID
			}
		}

		checkOverride := func(row feed.Row, field, routeID string, routeDefaultIndex int) {
			value, has := row.Int(field)
			if !has {
				return
			}
			if value < 0 || value > 3 {
				routeDefault := routeContinuous[routeID][routeDefaultIndex]
				if routeDefault == -1 {
					ctx.Add(notice.New("unexpected_enum_value", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).
						With("fieldName", field).With("fieldValue", value))
				}
			}
		}
		for _, row := range stopTimes.Rows {
			tripID, _ := row.Get("trip_id")
			routeID := tripRoute[tripID]
			checkOverride(row, "continuous_pickup", routeID, 0)
			checkOverride(row, "continuous_drop_off", routeID, 1)
		}

		locationGroups := ctx.Feed.Table("location_groups.txt")
		if locationGroups == nil || !locationGroups.Present {
			return
		}
		referenced := newUsageSet(ctx.Feed.Interner)
		for _, row := range stopTimes.Rows {
			if zoneID, ok := row.Get("location_group_id"); ok {
				referenced.mark(zoneID)
			}
		}
		for _, row := range locationGroups.Rows {
			groupID, _ := row.Get("location_group_id")
			if !referenced.has(groupID) {
				ctx.Add(notice.New("unused_location_group", notice.SeverityInfo).
					With("filename", "location_groups.txt").With("locationGroupId", groupID))
			}
		}
	})
}

// urlAgencyConsistencyValidator implements SPEC_FULL.md's URL/agency
// consistency supplement, plus the cross-table malformed-URL check.
func urlAgencyConsistencyValidator() Validator {
	urlFields := map[string][]string{
		"agency.txt":    {"agency_url", "agency_fare_url"},
		"routes.txt":    {"route_url"},
		"stops.txt":     {"stop_url"},
		"trips.txt":     {},
		"feed_info.txt": {"feed_publisher_url", "feed_contact_url"},
		"attributions.txt": {"attribution_url"},
	}
	return newValidator("url_agency_consistency", func(ctx *Context) {
		for filename, fields := range urlFields {
			table := ctx.Feed.Table(filename)
			if table == nil || !table.Present {
				continue
			}
			for _, row := range table.Rows {
				for _, field := range fields {
					value, has := row.Get(field)
					if !has || value == "" {
						continue
					}
					if outcome := feed.ParseURL(value); outcome != feed.OK {
						ctx.Add(notice.New("invalid_url", notice.SeverityError).
							With("filename", filename).With("csvRowNumber", row.RowNumber).
							With("fieldName", field).With("fieldValue", value))
					}
				}
			}
		}

		routes := ctx.Feed.Table("routes.txt")
		agencies := ctx.Feed.Table("agency.txt")
		if routes == nil || !routes.Present || agencies == nil || !agencies.Present {
			return
		}
		agencyURL := make(map[string]string)
		for _, row := range agencies.Rows {
			agencyID, _ := row.Get("agency_id")
			url, _ := row.Get("agency_url")
			agencyURL[agencyID] = url
		}
		defaultAgencyURL := ""
		if len(agencies.Rows) == 1 {
			defaultAgencyURL, _ = agencies.Rows[0].Get("agency_url")
		}
		for _, row := range routes.Rows {
			routeURL, hasURL := row.Get("route_url")
			if !hasURL || routeURL == "" {
				continue
			}
			agencyID, hasAgency := row.Get("agency_id")
			expected := defaultAgencyURL
			if hasAgency {
				expected = agencyURL[agencyID]
			}
			if expected != "" && routeURL == expected {
				routeID, _ := row.Get("route_id")
				ctx.Add(notice.New("same_route_and_agency_url", notice.SeverityWarning).
					With("filename", "routes.txt").With("routeId", routeID).With("url", routeURL))
			}
		}
	})
}
