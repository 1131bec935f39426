package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "start_and_end_range_out_of_order", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "startFieldName", "endFieldName"}},
		{Code: "start_and_end_range_equal", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "startFieldName", "endFieldName"}},
		{Code: "near_origin", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "near_pole", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "stop_without_location", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "stopId"}},
		{Code: "location_without_parent_station", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "stopId", "locationType"}},
		{Code: "station_with_parent_station", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "stopId"}},
		{Code: "missing_stop_name", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "stopId"}},
		{Code: "route_both_short_and_long_name_missing", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "routeId"}},
		{Code: "route_short_name_too_long", Severity: notice.SeverityWarning, FieldOrder: []string{"csvRowNumber", "routeId", "routeShortName"}},
		{Code: "missing_recommended_field", Severity: notice.SeverityWarning, FieldOrder: []string{"csvRowNumber", "fieldName", "filename"}},
		{Code: "more_than_one_entity", Severity: notice.SeverityError, FieldOrder: []string{"filename"}},
		{Code: "attribution_without_role", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "timeframe_only_start_or_end_time_specified", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "timeframeGroupId"}},
		{Code: "timeframe_overlap", Severity: notice.SeverityError, FieldOrder: []string{"filename", "timeframeGroupId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "timeframe_start_or_end_time_greater_than_twenty_four_hours", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
	} {
		notice.Register(e)
	}
}

// dateRangeValidator checks start/end date ordering for every table that
// declares a start/end date pair (spec.md §4.8's range validators).
func dateRangeValidator() Validator {
	pairs := []struct {
		file, start, end string
	}{
		{"calendar.txt", "start_date", "end_date"},
		{"feed_info.txt", "feed_start_date", "feed_end_date"},
	}
	return newValidator("date_range", func(ctx *Context) {
		for _, p := range pairs {
			t := ctx.Feed.Table(p.file)
			if t == nil || !t.Present {
				continue
			}
			for _, row := range t.Rows {
				start, okS := row.Date(p.start)
				end, okE := row.Date(p.end)
				if !okS || !okE {
					continue
				}
				switch {
				case end.Before(start):
					ctx.Add(notice.New("start_and_end_range_out_of_order", notice.SeverityError).
						With("filename", p.file).With("csvRowNumber", row.RowNumber).
						With("startFieldName", p.start).With("endFieldName", p.end))
				case end.Equal(start):
					ctx.Add(notice.New("start_and_end_range_equal", notice.SeverityWarning).
						With("filename", p.file).With("csvRowNumber", row.RowNumber).
						With("startFieldName", p.start).With("endFieldName", p.end))
				}
			}
		}
	})
}

// coordinatePlausibilityValidator flags stops implausibly close to the
// equator/prime-meridian origin or to a geographic pole.
func coordinatePlausibilityValidator() Validator {
	return newValidator("coordinate_plausibility", func(ctx *Context) {
		stops := ctx.Feed.Table("stops.txt")
		if stops == nil || !stops.Present {
			return
		}
		for _, row := range stops.Rows {
			lat, okLat := row.Float("stop_lat")
			lon, okLon := row.Float("stop_lon")
			if !okLat || !okLon {
				continue
			}
			if feed.HaversineKM(lat, lon, 0, 0)*1000 < ctx.Defaults.NearOriginDistanceMeters {
				ctx.Add(notice.New("near_origin", notice.SeverityWarning).
					WithLocation("stops.txt", row.RowNumber, "stop_lat", row.Values["stop_lat"]))
			}
			poleLat := 90.0
			if lat < 0 {
				poleLat = -90.0
			}
			if feed.HaversineKM(lat, lon, poleLat, lon)*1000 < ctx.Defaults.NearPoleDistanceMeters {
				ctx.Add(notice.New("near_pole", notice.SeverityWarning).
					WithLocation("stops.txt", row.RowNumber, "stop_lat", row.Values["stop_lat"]))
			}
		}
	})
}

// stopStructuralFieldsValidator covers the single-table structural
// checks over stops.txt that don't require cross-table lookups (those
// live in stops_graph.go): missing names, a stop with no coordinates
// unless it is a boarding area (location_type 4), and a station that has
// a parent_station.
func stopStructuralFieldsValidator() Validator {
	return newValidator("stop_structural_fields", func(ctx *Context) {
		stops := ctx.Feed.Table("stops.txt")
		if stops == nil || !stops.Present {
			return
		}
		for _, row := range stops.Rows {
			locType, _ := row.Int("location_type")
			stopID, _ := row.Get("stop_id")
			if _, okName := row.Get("stop_name"); !okName && (locType == 0 || locType == 1 || locType == 2) {
				ctx.Add(notice.New("missing_stop_name", notice.SeverityWarning).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).With("stopId", stopID))
			}
			_, okLat := row.Get("stop_lat")
			_, okLon := row.Get("stop_lon")
			if (!okLat || !okLon) && locType != 4 {
				ctx.Add(notice.New("stop_without_location", notice.SeverityWarning).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).With("stopId", stopID))
			}
			if _, hasParent := row.Get("parent_station"); hasParent && locType == 1 {
				ctx.Add(notice.New("station_with_parent_station", notice.SeverityError).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).With("stopId", stopID))
			}
		}
	})
}

// routeNameValidator flags a route with neither a short nor a long name.
// Under the google_rules option it also flags a route_short_name long
// enough to be truncated by Google Maps' transit chips, the one
// platform-specific rule this engine enables for that toggle (spec.md
// §4.7); with google_rules off the check is skipped entirely rather
// than silently always-on, since it isn't part of the core GTFS ruleset.
func routeNameValidator() Validator {
	return newValidator("route_name", func(ctx *Context) {
		routes := ctx.Feed.Table("routes.txt")
		if routes == nil || !routes.Present {
			return
		}
		for _, row := range routes.Rows {
			shortName, okShort := row.Get("route_short_name")
			_, okLong := row.Get("route_long_name")
			routeID, _ := row.Get("route_id")
			if !okShort && !okLong {
				ctx.Add(notice.New("route_both_short_and_long_name_missing", notice.SeverityError).
					With("filename", "routes.txt").With("csvRowNumber", row.RowNumber).With("routeId", routeID))
				continue
			}
			if ctx.Options.GoogleRules && okShort && len(shortName) > 12 {
				ctx.Add(notice.New("route_short_name_too_long", notice.SeverityWarning).
					With("csvRowNumber", row.RowNumber).With("routeId", routeID).With("routeShortName", shortName))
			}
		}
	})
}

// recommendedFieldPresenceValidator runs the recommended-field-presence
// checks spec.md §4.7 says are "otherwise suppressed": missing_recommended_field
// for a pathways.txt row without length (unless it is an exit gate) and a
// stairway without stair_count, raised only when the caller opts into
// Options.Thorough. Both columns are Optional in the schema; no other file
// or column is checked. This mirrors this engine's own reference
// validator's thorough-mode rules.
func recommendedFieldPresenceValidator() Validator {
	return newValidator("recommended_field_presence", func(ctx *Context) {
		if !ctx.Options.Thorough {
			return
		}
		pathways := ctx.Feed.Table("pathways.txt")
		if pathways == nil || !pathways.Present {
			return
		}
		for _, row := range pathways.Rows {
			pathwayMode, _ := row.Int("pathway_mode")
			if _, hasLength := row.Get("length"); !hasLength && pathwayMode != pathwayModeExitGate {
				ctx.Add(notice.New("missing_recommended_field", notice.SeverityWarning).
					With("csvRowNumber", row.RowNumber).With("fieldName", "length").With("filename", "pathways.txt"))
			}
			if pathwayMode == pathwayModeStairs {
				if _, hasStairCount := row.Get("stair_count"); !hasStairCount {
					ctx.Add(notice.New("missing_recommended_field", notice.SeverityWarning).
						With("csvRowNumber", row.RowNumber).With("fieldName", "stair_count").With("filename", "pathways.txt"))
				}
			}
		}
	})
}

// singleEntityFileValidator flags files documented as holding at most one
// row (feed_info.txt) that contain more than one.
func singleEntityFileValidator() Validator {
	return newValidator("single_entity_file", func(ctx *Context) {
		for _, file := range []string{"feed_info.txt"} {
			t := ctx.Feed.Table(file)
			if t == nil || !t.Present {
				continue
			}
			if len(t.Rows) > 1 {
				ctx.Add(notice.New("more_than_one_entity", notice.SeverityError).With("filename", file))
			}
		}
	})
}

// attributionRoleValidator flags an attributions.txt row that claims no
// role at all (producer/operator/authority all absent or false).
func attributionRoleValidator() Validator {
	return newValidator("attribution_role", func(ctx *Context) {
		t := ctx.Feed.Table("attributions.txt")
		if t == nil || !t.Present {
			return
		}
		for _, row := range t.Rows {
			producer, _ := row.Int("is_producer")
			operator, _ := row.Int("is_operator")
			authority, _ := row.Int("is_authority")
			if producer != 1 && operator != 1 && authority != 1 {
				ctx.Add(notice.New("attribution_without_role", notice.SeverityError).
					With("filename", "attributions.txt").With("csvRowNumber", row.RowNumber))
			}
		}
	})
}

// timeframeValidator covers timeframes.txt's self-contained structural
// rules: a row must declare both start_time and end_time or neither,
// neither may exceed 24h, and two rows sharing a timeframe_group_id
// must not overlap; service_id is not part of the grouping.
func timeframeValidator() Validator {
	return newValidator("timeframe", func(ctx *Context) {
		t := ctx.Feed.Table("timeframes.txt")
		if t == nil || !t.Present {
			return
		}
		groups := make(map[string][]feed.Row)
		for _, row := range t.Rows {
			start, okStart := row.Get("start_time")
			end, okEnd := row.Get("end_time")
			if okStart != okEnd {
				groupID, _ := row.Get("timeframe_group_id")
				ctx.Add(notice.New("timeframe_only_start_or_end_time_specified", notice.SeverityError).
					With("filename", "timeframes.txt").With("csvRowNumber", row.RowNumber).With("timeframeGroupId", groupID))
			}
			for _, v := range []string{start, end} {
				if v == "" {
					continue
				}
				if ct, outcome := feed.ParseTime(v); outcome == feed.OK && ct.Hours >= 24 {
					field := "start_time"
					fieldVal := start
					if v == end {
						field = "end_time"
						fieldVal = end
					}
					ctx.Add(notice.New("timeframe_start_or_end_time_greater_than_twenty_four_hours", notice.SeverityWarning).
						WithLocation("timeframes.txt", row.RowNumber, field, fieldVal))
				}
			}
			groupID, _ := row.Get("timeframe_group_id")
			groups[groupID] = append(groups[groupID], row)
		}
		for groupID, rows := range groups {
			for i := 0; i < len(rows); i++ {
				si, oki := rows[i].Time("start_time")
				ei, okei := rows[i].Time("end_time")
				if !oki || !okei {
					continue
				}
				for j := i + 1; j < len(rows); j++ {
					sj, okj := rows[j].Time("start_time")
					ej, okej := rows[j].Time("end_time")
					if !okj || !okej {
						continue
					}
					if si.TotalSeconds() < ej.TotalSeconds() && sj.TotalSeconds() < ei.TotalSeconds() {
						ctx.Add(notice.New("timeframe_overlap", notice.SeverityError).
							With("filename", "timeframes.txt").With("timeframeGroupId", groupID).
							With("csvRowNumber", rows[j].RowNumber).With("prevCsvRowNumber", rows[i].RowNumber))
					}
				}
			}
		}
	})
}
