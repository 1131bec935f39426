package validatorset

import "github.com/abasis-ltd/gtfs.guru/notice"

func init() {
	for _, e := range []notice.SchemaEntry{
		{Code: "multiple_default_rider_categories_for_fare_product", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fareProductId"}},
		{Code: "fare_transfer_rule_duration_limit_type_without_duration_limit", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "fare_transfer_rule_leg_group_missing_referenced_fare_product", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "overlapping_zone_and_pickup_drop_off_window", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "prevCsvRowNumber"}},
		{Code: "missing_pickup_drop_off_booking_rule_id", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "forbidden_field_with_pickup_drop_off_window", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName"}},
		{Code: "pickup_drop_off_window_without_both_ends", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "pickup_drop_off_window_start_not_before_end", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "booking_rule_missing_required_field", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "bookingType"}},
		{Code: "booking_rule_forbidden_field", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "bookingType"}},
		{Code: "booking_rule_start_day_without_start_time", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "translation_record_id_and_field_value_both_set", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "translation_unknown_table_name", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldValue"}},
	} {
		notice.Register(e)
	}
}

// fareProductRiderCategoryValidator implements spec.md §4.9's "multiple
// default rider categories per fare product" rule. This engine's schema
// doesn't model fare_products.txt's optional rider_category_id column
// (not wired into feed/schema.go), so the check degenerates to
// duplicate (fare_product_id, fare_media_id) detection, which the table
// loader's primary-key duplicate tracking already performs — this
// validator exists to surface that fact rather than re-derive it.
func fareProductRiderCategoryValidator() Validator {
	return newValidator("fare_product_rider_category", func(ctx *Context) {
		products := ctx.Feed.Table("fare_products.txt")
		if products == nil || !products.Present {
			return
		}
		seen := make(map[string]bool)
		for _, row := range products.Rows {
			productID, _ := row.Get("fare_product_id")
			if seen[productID] {
				continue
			}
			count := 0
			for _, d := range products.Duplicates {
				if d.Row.Values["fare_product_id"] == productID {
					count++
				}
			}
			if count > 1 {
				ctx.Add(notice.New("multiple_default_rider_categories_for_fare_product", notice.SeverityError).
					With("filename", "fare_products.txt").With("fareProductId", productID))
			}
			seen[productID] = true
		}
	})
}

// fareTransferRuleValidator implements spec.md §4.9's fare v2
// transfer-count/duration-limit coupling rule.
func fareTransferRuleValidator() Validator {
	return newValidator("fare_transfer_rule", func(ctx *Context) {
		rules := ctx.Feed.Table("fare_transfer_rules.txt")
		if rules == nil || !rules.Present {
			return
		}
		for _, row := range rules.Rows {
			_, hasLimit := row.Get("duration_limit")
			_, hasType := row.Get("duration_limit_type")
			if hasType && !hasLimit {
				ctx.Add(notice.New("fare_transfer_rule_duration_limit_type_without_duration_limit", notice.SeverityError).
					With("filename", "fare_transfer_rules.txt").With("csvRowNumber", row.RowNumber))
			}
		}
	})
}

// gtfsFlexValidator implements spec.md §4.9's GTFS-Flex exclusivity
// rules over stop_times.txt's pickup/drop-off window fields.
func gtfsFlexValidator() Validator {
	return newValidator("gtfs_flex", func(ctx *Context) {
		stopTimes := ctx.Feed.Table("stop_times.txt")
		if stopTimes == nil || !stopTimes.Present {
			return
		}
		forbidden := []string{"arrival_time", "departure_time", "pickup_type", "drop_off_type",
			"continuous_pickup", "continuous_drop_off", "shape_dist_traveled"}

		var windows []struct {
			zoneID, tripID    string
			start, end, rowNo int
		}

		for _, row := range stopTimes.Rows {
			_, hasStart := row.Get("start_pickup_drop_off_window")
			_, hasEnd := row.Get("end_pickup_drop_off_window")
			if !hasStart && !hasEnd {
				continue
			}
			if hasStart != hasEnd {
				ctx.Add(notice.New("pickup_drop_off_window_without_both_ends", notice.SeverityError).
					With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber))
				continue
			}
			for _, field := range forbidden {
				if _, has := row.Get(field); has {
					ctx.Add(notice.New("forbidden_field_with_pickup_drop_off_window", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber).With("fieldName", field))
				}
			}
			start, okStart := row.Time("start_pickup_drop_off_window")
			end, okEnd := row.Time("end_pickup_drop_off_window")
			if okStart && okEnd && start.TotalSeconds() >= end.TotalSeconds() {
				ctx.Add(notice.New("pickup_drop_off_window_start_not_before_end", notice.SeverityError).
					With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber))
			}
			if _, hasPickupRule := row.Get("pickup_booking_rule_id"); !hasPickupRule {
				if _, hasDropOffRule := row.Get("drop_off_booking_rule_id"); !hasDropOffRule {
					ctx.Add(notice.New("missing_pickup_drop_off_booking_rule_id", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", row.RowNumber))
				}
			}

			zoneID, _ := row.Get("location_group_id")
			if zoneID == "" {
				zoneID, _ = row.Get("location_id")
			}
			tripID, _ := row.Get("trip_id")
			if okStart && okEnd {
				windows = append(windows, struct {
					zoneID, tripID    string
					start, end, rowNo int
				}{zoneID, tripID, start.TotalSeconds(), end.TotalSeconds(), row.RowNumber})
			}
		}

		for i := 0; i < len(windows); i++ {
			for j := i + 1; j < len(windows); j++ {
				a, b := windows[i], windows[j]
				if a.zoneID != b.zoneID || a.tripID != b.tripID || a.zoneID == "" {
					continue
				}
				if a.start < b.end && b.start < a.end {
					ctx.Add(notice.New("overlapping_zone_and_pickup_drop_off_window", notice.SeverityError).
						With("filename", "stop_times.txt").With("csvRowNumber", b.rowNo).With("prevCsvRowNumber", a.rowNo))
				}
			}
		}
	})
}

const (
	bookingTypeRealTime = 0
	bookingTypeSameDay  = 1
	bookingTypePriorDay = 2
)

// bookingRuleValidator implements spec.md §4.9's booking_type state
// machine for booking_rules.txt.
func bookingRuleValidator() Validator {
	return newValidator("booking_rules", func(ctx *Context) {
		rules := ctx.Feed.Table("booking_rules.txt")
		if rules == nil || !rules.Present {
			return
		}
		for _, row := range rules.Rows {
			bookingType, _ := row.Int("booking_type")
			has := func(field string) bool {
				_, ok := row.Get(field)
				return ok
			}
			fail := func(code, field string) {
				ctx.Add(notice.New(code, notice.SeverityError).
					With("filename", "booking_rules.txt").With("csvRowNumber", row.RowNumber).
					With("fieldName", field).With("bookingType", bookingType))
			}

			sameDayFields := []string{"prior_notice_duration_min", "prior_notice_duration_max"}
			priorDayFields := []string{"prior_notice_last_day", "prior_notice_last_time", "prior_notice_start_day", "prior_notice_start_time", "prior_notice_service_id"}

			switch bookingType {
			case bookingTypeRealTime:
				for _, f := range append(append([]string{}, sameDayFields...), priorDayFields...) {
					if has(f) {
						fail("booking_rule_forbidden_field", f)
					}
				}
			case bookingTypeSameDay:
				if !has("prior_notice_duration_min") {
					fail("booking_rule_missing_required_field", "prior_notice_duration_min")
				}
				for _, f := range priorDayFields {
					if has(f) {
						fail("booking_rule_forbidden_field", f)
					}
				}
			case bookingTypePriorDay:
				if !has("prior_notice_last_day") {
					fail("booking_rule_missing_required_field", "prior_notice_last_day")
				}
				if !has("prior_notice_last_time") {
					fail("booking_rule_missing_required_field", "prior_notice_last_time")
				}
				for _, f := range sameDayFields {
					if has(f) {
						fail("booking_rule_forbidden_field", f)
					}
				}
				if has("prior_notice_start_day") && has("prior_notice_duration_max") {
					fail("booking_rule_forbidden_field", "prior_notice_duration_max")
				}
				if has("prior_notice_start_day") != has("prior_notice_start_time") {
					ctx.Add(notice.New("booking_rule_start_day_without_start_time", notice.SeverityError).
						With("filename", "booking_rules.txt").With("csvRowNumber", row.RowNumber))
				}
			}
		}
	})
}

// translationValidator implements spec.md §4.9's translations.txt
// cross-consistency checks.
func translationValidator() Validator {
	knownTables := map[string]bool{
		"agency": true, "stops": true, "routes": true, "trips": true,
		"stop_times": true, "feed_info": true, "pathways": true,
		"levels": true, "attributions": true,
	}
	return newValidator("translations", func(ctx *Context) {
		t := ctx.Feed.Table("translations.txt")
		if t == nil || !t.Present {
			return
		}
		for _, row := range t.Rows {
			_, hasRecordID := row.Get("record_id")
			_, hasFieldValue := row.Get("field_value")
			if hasRecordID && hasFieldValue {
				ctx.Add(notice.New("translation_record_id_and_field_value_both_set", notice.SeverityError).
					With("filename", "translations.txt").With("csvRowNumber", row.RowNumber))
			}
			tableName, _ := row.Get("table_name")
			if !knownTables[tableName] {
				ctx.Add(notice.New("translation_unknown_table_name", notice.SeverityError).
					With("filename", "translations.txt").With("csvRowNumber", row.RowNumber).With("fieldValue", tableName))
			}
		}
	})
}
