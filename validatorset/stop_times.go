package validatorset

import "github.com/abasis-ltd/gtfs.guru/notice"

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "stop_time_with_arrival_before_previous_departure_time", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "stop_time_with_only_arrival_or_departure_time", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "tripId", "fieldName"}},
		{Code: "stop_time_timepoint_without_times", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "tripId"}},
		{Code: "missing_trip_edge", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "tripId"}},
		{Code: "decreasing_or_equal_stop_time_distance", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "csvRowNumber", "prevCsvRowNumber"}},
	} {
		notice.Register(e)
	}
}

// stopTimeSanityValidator implements spec.md §4.9's "Stop-times sanity",
// walking each trip's stop_times rows in the stop_sequence order the
// TripStopTimes index already sorted them into.
func stopTimeSanityValidator() Validator {
	return newValidator("stop_time_sanity", func(ctx *Context) {
		for tripID, rows := range ctx.Feed.TripStopTimes {
			for i, row := range rows {
				arr, okArr := row.Time("arrival_time")
				_, okDep := row.Time("departure_time")

				if okArr != okDep {
					field := "arrival_time"
					if okArr {
						field = "departure_time"
					}
					ctx.Add(notice.New("stop_time_with_only_arrival_or_departure_time", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).
						With("tripId", tripID).With("fieldName", field))
				}

				if timepoint, _ := row.Int("timepoint"); timepoint == 1 && !okArr && !okDep {
					ctx.Add(notice.New("stop_time_timepoint_without_times", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).With("tripId", tripID))
				}

				if (i == 0 || i == len(rows)-1) && !okArr && !okDep {
					ctx.Add(notice.New("missing_trip_edge", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).With("tripId", tripID))
				}

				if i > 0 {
					prev := rows[i-1]
					prevDep, okPrevDep := prev.Time("departure_time")
					if !okPrevDep {
						prevDep, okPrevDep = prev.Time("arrival_time")
					}
					if okArr && okPrevDep && arr.TotalSeconds() < prevDep.TotalSeconds() {
						ctx.Add(notice.New("stop_time_with_arrival_before_previous_departure_time", notice.SeverityError).
							With("filename", "stop_times.txt").With("tripId", tripID).
							With("csvRowNumber", row.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
					}

					dist, okDist := row.Float("shape_dist_traveled")
					prevDist, okPrevDist := prev.Float("shape_dist_traveled")
					if okDist && okPrevDist && dist <= prevDist {
						ctx.Add(notice.New("decreasing_or_equal_stop_time_distance", notice.SeverityError).
							With("filename", "stop_times.txt").With("tripId", tripID).
							With("csvRowNumber", row.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
					}
				}
			}
		}
	})
}
