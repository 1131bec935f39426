package validatorset

import "github.com/abasis-ltd/gtfs.guru/notice"

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "wrong_parent_location_type", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "stopId", "parentStation", "parentLocationType"}},
		{Code: "location_with_unexpected_stop_time", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "stopId", "locationType"}},
		{Code: "stop_without_stop_time", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "stopId"}},
		{Code: "unused_station", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "csvRowNumber", "stopId"}},
	} {
		notice.Register(e)
	}
}

// locationTypeEntrance, generic node, and boarding area per GTFS's
// stops.txt location_type enum; station is 1, stop/platform is 0.
const (
	locStopOrPlatform = 0
	locStation        = 1
	locEntrance       = 2
	locGenericNode    = 3
	locBoardingArea   = 4
)

// stopStationGraphValidator implements spec.md §4.9's "Stop/station
// structural graph" invariants, reading stops.txt and the derived
// StopTrips index rather than re-deriving parent/child relationships.
func stopStationGraphValidator() Validator {
	return newValidator("stop_station_graph", func(ctx *Context) {
		stops := ctx.Feed.Table("stops.txt")
		if stops == nil || !stops.Present {
			return
		}

		referencedAsParent := newUsageSet(ctx.Feed.Interner)

		for _, row := range stops.Rows {
			stopID, _ := row.Get("stop_id")
			locType, _ := row.Int("location_type")
			parent, hasParent := row.Get("parent_station")

			if hasParent {
				referencedAsParent.mark(parent)
				parentRow, ok := stops.RowByKey(parent)
				if ok {
					parentType, _ := parentRow.Int("location_type")
					if parentType != locStation {
						ctx.Add(notice.New("wrong_parent_location_type", notice.SeverityError).
							With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).
							With("stopId", stopID).With("parentStation", parent).With("parentLocationType", parentType))
					}
				}
			} else if locType == locEntrance || locType == locGenericNode || locType == locBoardingArea {
				ctx.Add(notice.New("location_without_parent_station", notice.SeverityError).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).
					With("stopId", stopID).With("locationType", locType))
			}
		}

		for _, row := range stops.Rows {
			stopID, _ := row.Get("stop_id")
			locType, _ := row.Int("location_type")
			if locType == locStation && !referencedAsParent.has(stopID) {
				ctx.Add(notice.New("unused_station", notice.SeverityInfo).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).With("stopId", stopID))
			}
			if locType == locStopOrPlatform && len(ctx.Feed.StopTrips[stopID]) == 0 {
				ctx.Add(notice.New("stop_without_stop_time", notice.SeverityWarning).
					With("filename", "stops.txt").With("csvRowNumber", row.RowNumber).With("stopId", stopID))
			}
		}

		stopTimes := ctx.Feed.Table("stop_times.txt")
		if stopTimes == nil || !stopTimes.Present {
			return
		}
		for _, row := range stopTimes.Rows {
			stopID, ok := row.Get("stop_id")
			if !ok {
				continue
			}
			stopRow, found := stops.RowByKey(stopID)
			if !found {
				continue // foreignKeyValidator already reports the missing stop
			}
			locType, _ := stopRow.Int("location_type")
			if locType != locStopOrPlatform {
				ctx.Add(notice.New("location_with_unexpected_stop_time", notice.SeverityError).
					With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).
					With("stopId", stopID).With("locationType", locType))
			}
		}
	})
}
