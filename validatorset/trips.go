package validatorset

import (
	"sort"

	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "missing_stop_times_record", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "tripId"}},
		{Code: "unusable_trip", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "tripId"}},
		{Code: "unused_trip", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "tripId"}},
		{Code: "block_trips_with_overlapping_stop_times", Severity: notice.SeverityError, FieldOrder: []string{"filename", "blockId", "tripId1", "tripId2"}},
	} {
		notice.Register(e)
	}
}

// tripIntegrityValidator implements spec.md §4.9's "Trip integrity",
// reading the derived TripStopTimes and BlockTrips indexes rather than
// re-grouping stop_times.txt itself.
func tripIntegrityValidator() Validator {
	return newValidator("trip_integrity", func(ctx *Context) {
		trips := ctx.Feed.Table("trips.txt")
		if trips == nil || !trips.Present {
			return
		}
		for _, row := range trips.Rows {
			tripID, _ := row.Get("trip_id")
			stopTimes := ctx.Feed.TripStopTimes[tripID]
			switch len(stopTimes) {
			case 0:
				ctx.Add(notice.New("missing_stop_times_record", notice.SeverityError).
					With("filename", "trips.txt").With("csvRowNumber", row.RowNumber).With("tripId", tripID))
			case 1:
				ctx.Add(notice.New("unusable_trip", notice.SeverityWarning).
					With("filename", "trips.txt").With("csvRowNumber", row.RowNumber).With("tripId", tripID))
			}
		}

		serviceDays := buildServiceDayIndex(ctx)

		for blockID, tripIDs := range ctx.Feed.BlockTrips {
			if len(tripIDs) < 2 {
				continue
			}
			type blockTrip struct {
				tripID           string
				firstArr, lastDep feed.ClockTime
			}
			members := make([]blockTrip, 0, len(tripIDs))
			for _, tripID := range tripIDs {
				rows := ctx.Feed.TripStopTimes[tripID]
				if len(rows) == 0 {
					continue
				}
				first, okFirst := rows[0].Time("arrival_time")
				last, okLast := rows[len(rows)-1].Time("departure_time")
				if !okFirst {
					first, okFirst = rows[0].Time("departure_time")
				}
				if !okLast {
					last, okLast = rows[len(rows)-1].Time("arrival_time")
				}
				if !okFirst || !okLast {
					continue
				}
				members = append(members, blockTrip{tripID, first, last})
			}
			sort.SliceStable(members, func(i, j int) bool {
				return members[i].firstArr.TotalSeconds() < members[j].firstArr.TotalSeconds()
			})
			for i := 0; i+1 < len(members); i++ {
				a, b := members[i], members[i+1]
				if !serviceDays.share(a.tripID, b.tripID) {
					continue
				}
				if b.firstArr.TotalSeconds() < a.lastDep.TotalSeconds() {
					ctx.Add(notice.New("block_trips_with_overlapping_stop_times", notice.SeverityError).
						With("filename", "trips.txt").With("blockId", blockID).
						With("tripId1", a.tripID).With("tripId2", b.tripID))
				}
			}
		}

		usedTrips := newUsageSet(ctx.Feed.Interner)
		for tripID := range ctx.Feed.TripStopTimes {
			usedTrips.mark(tripID)
		}
		for _, row := range trips.Rows {
			tripID, _ := row.Get("trip_id")
			if !usedTrips.has(tripID) {
				ctx.Add(notice.New("unused_trip", notice.SeverityWarning).
					With("filename", "trips.txt").With("csvRowNumber", row.RowNumber).With("tripId", tripID))
			}
		}
	})
}

// serviceDayIndex answers whether two trips' service_id values may operate
// on a shared day, from calendar.txt's weekday masks (spec.md §4.9's
// block-overlap invariant); calendar_dates.txt removals are not applied.
type serviceDayIndex struct {
	tripService map[string]string
	serviceMask map[string]map[int]bool // service_id -> set of weekday ints (0=Mon..6=Sun) from calendar.txt
	hasAny      map[string]bool
}

func buildServiceDayIndex(ctx *Context) *serviceDayIndex {
	idx := &serviceDayIndex{
		tripService: make(map[string]string),
		serviceMask: make(map[string]map[int]bool),
		hasAny:      make(map[string]bool),
	}
	if trips := ctx.Feed.Table("trips.txt"); trips != nil && trips.Present {
		for _, row := range trips.Rows {
			tripID, _ := row.Get("trip_id")
			serviceID, _ := row.Get("service_id")
			idx.tripService[tripID] = serviceID
		}
	}
	weekdayCols := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	if cal := ctx.Feed.Table("calendar.txt"); cal != nil && cal.Present {
		for _, row := range cal.Rows {
			serviceID, _ := row.Get("service_id")
			mask := make(map[int]bool)
			for i, col := range weekdayCols {
				if v, _ := row.Int(col); v == 1 {
					mask[i] = true
				}
			}
			idx.serviceMask[serviceID] = mask
			idx.hasAny[serviceID] = len(mask) > 0
		}
	}
	if dates := ctx.Feed.Table("calendar_dates.txt"); dates != nil && dates.Present {
		for _, row := range dates.Rows {
			serviceID, _ := row.Get("service_id")
			exceptionType, _ := row.Int("exception_type")
			if exceptionType == 1 {
				idx.hasAny[serviceID] = true
			}
		}
	}
	return idx
}

// share approximates "operate on any shared service day" by comparing
// whether both trips' services have any active weekday in common, or
// either has calendar_dates-only service (exact date arithmetic is
// outside the cost this check is meant to bear; it errs toward flagging
// a potential overlap rather than missing one).
func (s *serviceDayIndex) share(tripA, tripB string) bool {
	sa, sb := s.tripService[tripA], s.tripService[tripB]
	if sa == "" || sb == "" {
		return true
	}
	maskA, okA := s.serviceMask[sa]
	maskB, okB := s.serviceMask[sb]
	if !okA || !okB {
		return true
	}
	for day := range maskA {
		if maskB[day] {
			return true
		}
	}
	return false
}
