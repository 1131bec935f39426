package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "expired_calendar", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "serviceId", "endDate"}},
		{Code: "feed_expiration_date7_days", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "currentDate", "feedEndDate"}},
		{Code: "feed_expiration_date30_days", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "currentDate", "feedEndDate"}},
		{Code: "overlapping_frequency", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "csvRowNumber", "prevCsvRowNumber"}},
	} {
		notice.Register(e)
	}
}

// calendarExpirationValidator implements spec.md §4.9's calendar
// validity-window checks. When no validation date was supplied, the
// checks are skipped rather than defaulting to the wall clock — the
// engine holds no process-wide notion of "now" (spec.md §5).
func calendarExpirationValidator() Validator {
	return newValidator("calendar_expiration", func(ctx *Context) {
		if ctx.Date.IsZero() {
			return
		}

		var maxEnd feed.Date
		haveMaxEnd := false
		noteLater := func(d feed.Date) {
			if !haveMaxEnd || maxEnd.Before(d) {
				maxEnd = d
				haveMaxEnd = true
			}
		}

		if cal := ctx.Feed.Table("calendar.txt"); cal != nil && cal.Present {
			for _, row := range cal.Rows {
				end, ok := row.Date("end_date")
				if !ok {
					continue
				}
				noteLater(end)
				if end.Before(ctx.Date) {
					serviceID, _ := row.Get("service_id")
					ctx.Add(notice.New("expired_calendar", notice.SeverityWarning).
						With("filename", "calendar.txt").With("csvRowNumber", row.RowNumber).
						With("serviceId", serviceID).With("endDate", row.Values["end_date"]))
				}
			}
		}
		if dates := ctx.Feed.Table("calendar_dates.txt"); dates != nil && dates.Present {
			for _, row := range dates.Rows {
				if exceptionType, _ := row.Int("exception_type"); exceptionType != 1 {
					continue
				}
				if d, ok := row.Date("date"); ok {
					noteLater(d)
				}
			}
		}

		if haveMaxEnd {
			daysRemaining := daysBetween(ctx.Date, maxEnd)
			switch {
			case daysRemaining < ctx.Defaults.FeedExpirationWarnDays7:
				ctx.Add(notice.New("feed_expiration_date7_days", notice.SeverityWarning).
					With("filename", "calendar.txt").With("currentDate", ctx.Date.ToTime().Format("20060102")).
					With("feedEndDate", maxEnd.ToTime().Format("20060102")))
			case daysRemaining < ctx.Defaults.FeedExpirationWarnDays30:
				ctx.Add(notice.New("feed_expiration_date30_days", notice.SeverityWarning).
					With("filename", "calendar.txt").With("currentDate", ctx.Date.ToTime().Format("20060102")).
					With("feedEndDate", maxEnd.ToTime().Format("20060102")))
			}
		}
	})
}

func daysBetween(a, b feed.Date) int {
	return int(b.ToTime().Sub(a.ToTime()).Hours() / 24)
}

// frequencyOverlapValidator implements spec.md §4.9's frequencies.txt
// overlap check: for a given trip_id, any two [start_time, end_time)
// windows that intersect.
func frequencyOverlapValidator() Validator {
	return newValidator("frequency_overlap", func(ctx *Context) {
		freq := ctx.Feed.Table("frequencies.txt")
		if freq == nil || !freq.Present {
			return
		}
		byTrip := make(map[string][]feed.Row)
		for _, row := range freq.Rows {
			tripID, _ := row.Get("trip_id")
			byTrip[tripID] = append(byTrip[tripID], row)
		}
		for tripID, rows := range byTrip {
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
						ctx.Add(notice.New("overlapping_frequency", notice.SeverityError).
							With("filename", "frequencies.txt").With("tripId", tripID).
							With("csvRowNumber", rows[j].RowNumber).With("prevCsvRowNumber", rows[i].RowNumber))
					}
				}
			}
		}
	})
}
