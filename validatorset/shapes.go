package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "decreasing_shape_distance", Severity: notice.SeverityError, FieldOrder: []string{"filename", "shapeId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "equal_shape_distance_same_coordinates", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "shapeId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "equal_shape_distance_diff_coordinates_distance_below_threshold", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "shapeId", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "single_shape_point", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "shapeId"}},
		{Code: "unused_shape", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "shapeId"}},
		{Code: "stop_too_far_from_shape", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "stopId", "csvRowNumber", "distanceMeters"}},
		{Code: "stop_has_too_many_matches_for_shape", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "tripId", "stopId", "csvRowNumber"}},
		{Code: "stops_match_shape_out_of_order", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "stopId", "csvRowNumber"}},
		{Code: "trip_distance_exceeds_shape_distance", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "shapeId"}},
		{Code: "trip_distance_exceeds_shape_distance_below_threshold", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "tripId", "shapeId"}},
		{Code: "fast_travel_between_consecutive_stops", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "csvRowNumber", "prevCsvRowNumber", "speedKph"}},
		{Code: "fast_travel_between_far_stops", Severity: notice.SeverityError, FieldOrder: []string{"filename", "tripId", "csvRowNumber", "prevCsvRowNumber", "speedKph"}},
	} {
		notice.Register(e)
	}
}

// shapeSelfConsistencyValidator implements spec.md §4.9's "Shapes"
// invariants over the ShapePoints index, which is already sorted by
// shape_pt_sequence.
func shapeSelfConsistencyValidator() Validator {
	return newValidator("shape_self_consistency", func(ctx *Context) {
		usedShapes := newUsageSet(ctx.Feed.Interner)
		if trips := ctx.Feed.Table("trips.txt"); trips != nil && trips.Present {
			for _, row := range trips.Rows {
				if shapeID, ok := row.Get("shape_id"); ok {
					usedShapes.mark(shapeID)
				}
			}
		}

		for shapeID, points := range ctx.Feed.ShapePoints {
			if len(points) == 1 {
				ctx.Add(notice.New("single_shape_point", notice.SeverityWarning).
					With("filename", "shapes.txt").With("shapeId", shapeID))
			}
			if !usedShapes.has(shapeID) {
				ctx.Add(notice.New("unused_shape", notice.SeverityInfo).
					With("filename", "shapes.txt").With("shapeId", shapeID))
			}
			for i := 1; i < len(points); i++ {
				cur, prev := points[i], points[i-1]
				dist, okDist := cur.Float("shape_dist_traveled")
				prevDist, okPrevDist := prev.Float("shape_dist_traveled")
				if !okDist || !okPrevDist {
					continue
				}
				if dist < prevDist {
					ctx.Add(notice.New("decreasing_shape_distance", notice.SeverityError).
						With("filename", "shapes.txt").With("shapeId", shapeID).
						With("csvRowNumber", cur.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
					continue
				}
				if dist != prevDist {
					continue
				}
				lat1, lon1 := mustLatLon(cur)
				lat2, lon2 := mustLatLon(prev)
				if lat1 == lat2 && lon1 == lon2 {
					ctx.Add(notice.New("equal_shape_distance_same_coordinates", notice.SeverityWarning).
						With("filename", "shapes.txt").With("shapeId", shapeID).
						With("csvRowNumber", cur.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
				} else if feed.HaversineKM(lat1, lon1, lat2, lon2)*1000 < ctx.Defaults.EqualShapeDistanceThresholdMeters {
					ctx.Add(notice.New("equal_shape_distance_diff_coordinates_distance_below_threshold", notice.SeverityWarning).
						With("filename", "shapes.txt").With("shapeId", shapeID).
						With("csvRowNumber", cur.RowNumber).With("prevCsvRowNumber", prev.RowNumber))
				}
			}
		}
	})
}

func mustLatLon(row feed.Row) (float64, float64) {
	lat, _ := row.Float("shape_pt_lat")
	lon, _ := row.Float("shape_pt_lon")
	return lat, lon
}

// shapeStopPlausibilityValidator implements spec.md §4.9's "Shape ↔
// stops plausibility": projecting each trip's stops onto its shape's
// polyline, in stop_sequence order.
func shapeStopPlausibilityValidator() Validator {
	return newValidator("shape_stop_plausibility", func(ctx *Context) {
		trips := ctx.Feed.Table("trips.txt")
		stops := ctx.Feed.Table("stops.txt")
		if trips == nil || !trips.Present || stops == nil || !stops.Present {
			return
		}
		for _, tripRow := range trips.Rows {
			tripID, _ := tripRow.Get("trip_id")
			shapeID, hasShape := tripRow.Get("shape_id")
			if !hasShape {
				continue
			}
			shapePoints := ctx.Feed.ShapePoints[shapeID]
			if len(shapePoints) < 2 {
				continue
			}
			polyline := make([][2]float64, len(shapePoints))
			for i, p := range shapePoints {
				polyline[i][0], polyline[i][1] = mustLatLon(p)
			}
			shapeLengthKM := feed.CumulativeDistancesKM(polyline)[len(polyline)-1]

			stopTimes := ctx.Feed.TripStopTimes[tripID]
			lastFraction := -1.0
			var cumulativeStopKM float64
			var prevStopLat, prevStopLon float64
			havePrev := false
			for _, st := range stopTimes {
				stopID, ok := st.Get("stop_id")
				if !ok {
					continue
				}
				stopRow, found := stops.RowByKey(stopID)
				if !found {
					continue
				}
				lat, okLat := stopRow.Float("stop_lat")
				lon, okLon := stopRow.Float("stop_lon")
				if !okLat || !okLon {
					continue
				}

				proj, ok := feed.ProjectOntoPolyline([2]float64{lat, lon}, polyline)
				if !ok {
					continue
				}
				if proj.DistanceM > ctx.Defaults.ShapeMatchDistanceMeters {
					ctx.Add(notice.New("stop_too_far_from_shape", notice.SeverityError).
						With("filename", "stop_times.txt").With("tripId", tripID).With("stopId", stopID).
						With("csvRowNumber", st.RowNumber).With("distanceMeters", proj.DistanceM))
				}
				if countCloseNonAdjacentSegments(polyline, [2]float64{lat, lon}, ctx.Defaults.ShapeMatchDistanceMeters) > 1 {
					ctx.Add(notice.New("stop_has_too_many_matches_for_shape", notice.SeverityWarning).
						With("filename", "stop_times.txt").With("tripId", tripID).With("stopId", stopID).
						With("csvRowNumber", st.RowNumber))
				}

				fraction := cumulativeFraction(polyline, proj)
				if fraction < lastFraction {
					ctx.Add(notice.New("stops_match_shape_out_of_order", notice.SeverityError).
						With("filename", "stop_times.txt").With("tripId", tripID).
						With("stopId", stopID).With("csvRowNumber", st.RowNumber))
				}
				lastFraction = fraction

				if havePrev {
					cumulativeStopKM += feed.HaversineKM(prevStopLat, prevStopLon, lat, lon)
				}
				prevStopLat, prevStopLon = lat, lon
				havePrev = true
			}

			if shapeLengthKM <= 0 {
				continue
			}
			ratio := cumulativeStopKM / shapeLengthKM
			switch {
			case ratio > ctx.Defaults.ShapeDistanceExceedsErrorRatio:
				ctx.Add(notice.New("trip_distance_exceeds_shape_distance", notice.SeverityError).
					With("filename", "trips.txt").With("tripId", tripID).With("shapeId", shapeID))
			case ratio > ctx.Defaults.ShapeDistanceExceedsWarningRatio:
				ctx.Add(notice.New("trip_distance_exceeds_shape_distance_below_threshold", notice.SeverityWarning).
					With("filename", "trips.txt").With("tripId", tripID).With("shapeId", shapeID))
			}
		}
	})
}

// cumulativeFraction turns a Projection back into a single monotonically
// comparable position along the whole polyline, for the "are stops
// matched in order" check.
func cumulativeFraction(polyline [][2]float64, proj feed.Projection) float64 {
	return float64(proj.SegmentIndex) + proj.T
}

// countCloseNonAdjacentSegments counts how many distinct, non-adjacent
// clusters of shape segments lie within thresholdMeters of point — a
// shape that loops back near itself can let a single stop match more
// than one plausible location along the polyline.
func countCloseNonAdjacentSegments(polyline [][2]float64, point [2]float64, thresholdMeters float64) int {
	close := make([]bool, len(polyline)-1)
	for i := 0; i < len(polyline)-1; i++ {
		proj, ok := feed.ProjectOntoPolyline(point, polyline[i:i+2])
		if ok && proj.DistanceM <= thresholdMeters {
			close[i] = true
		}
	}
	clusters := 0
	inCluster := false
	for _, c := range close {
		if c && !inCluster {
			clusters++
			inCluster = true
		} else if !c {
			inCluster = false
		}
	}
	return clusters
}

// travelSpeedValidator implements spec.md §4.9's "Travel speed":
// consecutive timed stop-time pairs whose implied ground speed exceeds a
// mode-dependent threshold.
func travelSpeedValidator() Validator {
	return newValidator("travel_speed", func(ctx *Context) {
		trips := ctx.Feed.Table("trips.txt")
		routes := ctx.Feed.Table("routes.txt")
		stops := ctx.Feed.Table("stops.txt")
		if trips == nil || !trips.Present || routes == nil || !routes.Present || stops == nil || !stops.Present {
			return
		}
		for tripID, stopTimes := range ctx.Feed.TripStopTimes {
			tripRow, ok := trips.RowByKey(tripID)
			if !ok {
				continue
			}
			routeID, _ := tripRow.Get("route_id")
			routeRow, ok := routes.RowByKey(routeID)
			if !ok {
				continue
			}
			routeType, _ := routeRow.Int("route_type")
			maxKPH := ctx.Defaults.SpeedThresholdKPHFor(routeType)

			for i := 1; i < len(stopTimes); i++ {
				prev, cur := stopTimes[i-1], stopTimes[i]
				prevStopID, okPrevStop := prev.Get("stop_id")
				curStopID, okCurStop := cur.Get("stop_id")
				if !okPrevStop || !okCurStop {
					continue
				}
				prevStop, okP := stops.RowByKey(prevStopID)
				curStop, okC := stops.RowByKey(curStopID)
				if !okP || !okC {
					continue
				}
				prevLat, okPLat := prevStop.Float("stop_lat")
				prevLon, okPLon := prevStop.Float("stop_lon")
				curLat, okCLat := curStop.Float("stop_lat")
				curLon, okCLon := curStop.Float("stop_lon")
				if !okPLat || !okPLon || !okCLat || !okCLon {
					continue
				}

				prevTime, okPrevTime := prev.Time("departure_time")
				if !okPrevTime {
					prevTime, okPrevTime = prev.Time("arrival_time")
				}
				curTime, okCurTime := cur.Time("arrival_time")
				if !okCurTime {
					curTime, okCurTime = cur.Time("departure_time")
				}
				if !okPrevTime || !okCurTime {
					continue
				}

				deltaSeconds := curTime.TotalSeconds() - prevTime.TotalSeconds()
				if deltaSeconds <= 0 {
					continue
				}
				distanceKM := feed.HaversineKM(prevLat, prevLon, curLat, curLon)
				speedKPH := distanceKM / (float64(deltaSeconds) / 3600.0)
				if speedKPH <= maxKPH {
					continue
				}

				code := "fast_travel_between_far_stops"
				if distanceKM*1000 <= ctx.Defaults.ShortTripDistanceMeters {
					code = "fast_travel_between_consecutive_stops"
				}
				ctx.Add(notice.New(code, notice.SeverityError).
					With("filename", "stop_times.txt").With("tripId", tripID).
					With("csvRowNumber", cur.RowNumber).With("prevCsvRowNumber", prev.RowNumber).
					With("speedKph", speedKPH))
			}
		}
	})
}
