package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "transfer_with_invalid_trip_and_route", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "transfer_with_invalid_stop_location_type", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "stopId", "locationType"}},
		{Code: "transfer_distance_too_large", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "distanceMeters"}},
		{Code: "transfer_distance_above_2_km", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "csvRowNumber", "distanceMeters"}},
		{Code: "in_seat_transfer_at_non_edge_stop", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "pathway_loop", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "pathwayId"}},
		{Code: "missing_level_id_for_pathway", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "pathwayId", "pathwayMode"}},
		{Code: "pathway_unexpected_bidirectional_exit_gate", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "pathwayId"}},
		{Code: "platform_without_boarding_area_pathway", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "stopId"}},
		{Code: "dangling_generic_node", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "stopId"}},
	} {
		notice.Register(e)
	}
}

const (
	pathwayModeStairs   = 2
	pathwayModeElevator = 5
	pathwayModeExitGate = 7
	transferTypeInSeat  = 4
)

// transferValidator implements spec.md §4.9's "Transfers" invariants.
// Referential integrity itself is covered by foreignKeyValidator; this
// validator covers the cross-consistency and distance-band checks that
// need more than one field at a time.
func transferValidator() Validator {
	return newValidator("transfers", func(ctx *Context) {
		transfers := ctx.Feed.Table("transfers.txt")
		stops := ctx.Feed.Table("stops.txt")
		if transfers == nil || !transfers.Present {
			return
		}
		for _, row := range transfers.Rows {
			_, hasFromTrip := row.Get("from_trip_id")
			_, hasToTrip := row.Get("to_trip_id")
			_, hasFromRoute := row.Get("from_route_id")
			_, hasToRoute := row.Get("to_route_id")
			if (hasFromTrip != hasToTrip) || (hasFromRoute && !hasFromTrip) || (hasToRoute && !hasToTrip) {
				ctx.Add(notice.New("transfer_with_invalid_trip_and_route", notice.SeverityError).
					With("filename", "transfers.txt").With("csvRowNumber", row.RowNumber))
			}

			fromStopID, hasFromStop := row.Get("from_stop_id")
			toStopID, hasToStop := row.Get("to_stop_id")
			if stops != nil && stops.Present {
				for _, sid := range []struct{ id string; present bool }{{fromStopID, hasFromStop}, {toStopID, hasToStop}} {
					if !sid.present {
						continue
					}
					stopRow, ok := stops.RowByKey(sid.id)
					if !ok {
						continue
					}
					locType, _ := stopRow.Int("location_type")
					if locType != locStopOrPlatform && locType != locStation {
						ctx.Add(notice.New("transfer_with_invalid_stop_location_type", notice.SeverityError).
							With("filename", "transfers.txt").With("csvRowNumber", row.RowNumber).
							With("stopId", sid.id).With("locationType", locType))
					}
				}
			}

			if hasFromStop && hasToStop && stops != nil && stops.Present {
				fromRow, okFrom := stops.RowByKey(fromStopID)
				toRow, okTo := stops.RowByKey(toStopID)
				if okFrom && okTo {
					fromLat, okFLat := fromRow.Float("stop_lat")
					fromLon, okFLon := fromRow.Float("stop_lon")
					toLat, okTLat := toRow.Float("stop_lat")
					toLon, okTLon := toRow.Float("stop_lon")
					if okFLat && okFLon && okTLat && okTLon {
						distanceM := haversineMeters(fromLat, fromLon, toLat, toLon)
						switch {
						case distanceM > ctx.Defaults.TransferDistanceTooLargeMeters:
							ctx.Add(notice.New("transfer_distance_too_large", notice.SeverityError).
								With("filename", "transfers.txt").With("csvRowNumber", row.RowNumber).With("distanceMeters", distanceM))
						case distanceM > ctx.Defaults.TransferDistanceInfoMeters:
							ctx.Add(notice.New("transfer_distance_above_2_km", notice.SeverityInfo).
								With("filename", "transfers.txt").With("csvRowNumber", row.RowNumber).With("distanceMeters", distanceM))
						}
					}
				}
			}

			transferType, _ := row.Int("transfer_type")
			if transferType == transferTypeInSeat && hasFromStop && hasToStop && fromStopID != toStopID {
				ctx.Add(notice.New("in_seat_transfer_at_non_edge_stop", notice.SeverityWarning).
					With("filename", "transfers.txt").With("csvRowNumber", row.RowNumber))
			}
		}
	})
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return feed.HaversineKM(lat1, lon1, lat2, lon2) * 1000
}

// pathwayValidator implements spec.md §4.9's "Pathways" invariants.
func pathwayValidator() Validator {
	return newValidator("pathways", func(ctx *Context) {
		pathways := ctx.Feed.Table("pathways.txt")
		stops := ctx.Feed.Table("stops.txt")
		if pathways == nil {
			return
		}
		genericNodeUsed := make(map[string]bool)
		platformHasBoardingPathway := make(map[string]bool)

		for _, row := range pathways.Rows {
			pathwayID, _ := row.Get("pathway_id")
			fromStopID, _ := row.Get("from_stop_id")
			toStopID, _ := row.Get("to_stop_id")
			pathwayMode, _ := row.Int("pathway_mode")
			bidirectional, _ := row.Int("is_bidirectional")

			if fromStopID == toStopID && fromStopID != "" {
				ctx.Add(notice.New("pathway_loop", notice.SeverityError).
					With("filename", "pathways.txt").With("csvRowNumber", row.RowNumber).With("pathwayId", pathwayID))
			}

			if (pathwayMode == pathwayModeStairs || pathwayMode == pathwayModeElevator) && stops != nil && stops.Present {
				for _, sid := range []string{fromStopID, toStopID} {
					stopRow, ok := stops.RowByKey(sid)
					if !ok {
						continue
					}
					if _, hasLevel := stopRow.Get("level_id"); !hasLevel {
						ctx.Add(notice.New("missing_level_id_for_pathway", notice.SeverityError).
							With("filename", "pathways.txt").With("csvRowNumber", row.RowNumber).
							With("pathwayId", pathwayID).With("pathwayMode", pathwayMode))
					}
				}
			}

			if stops != nil && stops.Present {
				if toRow, ok := stops.RowByKey(toStopID); ok {
					if locType, _ := toRow.Int("location_type"); locType == locBoardingArea {
						if fromRow, ok := stops.RowByKey(fromStopID); ok {
							if fromType, _ := fromRow.Int("location_type"); fromType == locStopOrPlatform {
								platformHasBoardingPathway[fromStopID] = true
							}
						}
					}
				}
				for _, sid := range []string{fromStopID, toStopID} {
					if stopRow, ok := stops.RowByKey(sid); ok {
						if locType, _ := stopRow.Int("location_type"); locType == locGenericNode {
							genericNodeUsed[sid] = true
						}
					}
				}
			}

			if bidirectional == 1 {
				// An "exit gate" pathway_mode isn't separately enumerated
				// in the base spec's pathway_mode values used here; this
				// engine's schema treats mode 7 (exit gate, per the GTFS
				// extension) as one-directional by convention.
				if pathwayMode == pathwayModeExitGate {
					ctx.Add(notice.New("pathway_unexpected_bidirectional_exit_gate", notice.SeverityError).
						With("filename", "pathways.txt").With("csvRowNumber", row.RowNumber).With("pathwayId", pathwayID))
				}
			}
		}

		if stops != nil && stops.Present {
			for _, row := range stops.Rows {
				stopID, _ := row.Get("stop_id")
				locType, _ := row.Int("location_type")
				if locType == locStopOrPlatform && pathways.Present && !platformHasBoardingPathway[stopID] && len(ctx.Feed.StopBoardingAreas[stopID]) > 0 {
					ctx.Add(notice.New("platform_without_boarding_area_pathway", notice.SeverityInfo).
						With("filename", "stops.txt").With("stopId", stopID))
				}
				if locType == locGenericNode && !genericNodeUsed[stopID] {
					ctx.Add(notice.New("dangling_generic_node", notice.SeverityWarning).
						With("filename", "stops.txt").With("stopId", stopID))
				}
			}
		}
	})
}
