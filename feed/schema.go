package feed

// ColumnKind selects which value parser (feed/parse.go) applies to a
// column's cells.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindID
	KindDate
	KindTime
	KindColor
	KindLatitude
	KindLongitude
	KindInteger
	KindFloat
	KindURL
	KindEmail
	KindTimezone
	KindLanguage
	KindCurrency
	KindPhone
	KindEnum
)

// ColumnPresence is a column's per-row requirement.
type ColumnPresence int

const (
	Optional ColumnPresence = iota
	Recommended
	Required
)

// FilePresence is a file's requirement within the archive.
type FilePresence int

const (
	FileOptional FilePresence = iota
	FileRecommended
	FileConditional
	FileRequired
)

// ColumnSchema declares one column of a TableSchema.
type ColumnSchema struct {
	Name       string
	Kind       ColumnKind
	Presence   ColumnPresence
	EnumValues []int // only meaningful when Kind == KindEnum
}

// TableSchema is the static, per-file descriptor that replaces
// reflection-driven row construction (spec.md §9): every column's name,
// parser, and presence requirement is declared once, by hand, here.
type TableSchema struct {
	FileName   string
	Columns    []ColumnSchema
	PrimaryKey []string
	Presence   FilePresence
}

func (s TableSchema) column(name string) (ColumnSchema, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSchema{}, false
}

func col(name string, kind ColumnKind, presence ColumnPresence) ColumnSchema {
	return ColumnSchema{Name: name, Kind: kind, Presence: presence}
}

func enumCol(name string, presence ColumnPresence, values ...int) ColumnSchema {
	return ColumnSchema{Name: name, Kind: KindEnum, Presence: presence, EnumValues: values}
}

var schemas map[string]TableSchema

func init() {
	schemas = make(map[string]TableSchema)
	register := func(s TableSchema) { schemas[s.FileName] = s }

	register(TableSchema{
		FileName: "agency.txt",
		Presence: FileRequired,
		Columns: []ColumnSchema{
			col("agency_id", KindID, Optional),
			col("agency_name", KindText, Required),
			col("agency_url", KindURL, Required),
			col("agency_timezone", KindTimezone, Required),
			col("agency_lang", KindLanguage, Optional),
			col("agency_phone", KindPhone, Optional),
			col("agency_fare_url", KindURL, Optional),
			col("agency_email", KindEmail, Optional),
		},
		PrimaryKey: []string{"agency_id"},
	})

	register(TableSchema{
		FileName:   "stops.txt",
		Presence:   FileRequired,
		PrimaryKey: []string{"stop_id"},
		Columns: []ColumnSchema{
			col("stop_id", KindID, Required),
			col("stop_code", KindText, Optional),
			col("stop_name", KindText, Recommended),
			col("tts_stop_name", KindText, Optional),
			col("stop_desc", KindText, Optional),
			col("stop_lat", KindLatitude, Recommended),
			col("stop_lon", KindLongitude, Recommended),
			col("zone_id", KindID, Optional),
			col("stop_url", KindURL, Optional),
			enumCol("location_type", Optional, 0, 1, 2, 3, 4),
			col("parent_station", KindID, Optional),
			col("stop_timezone", KindTimezone, Optional),
			enumCol("wheelchair_boarding", Optional, 0, 1, 2),
			col("level_id", KindID, Optional),
			col("platform_code", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName:   "routes.txt",
		Presence:   FileRequired,
		PrimaryKey: []string{"route_id"},
		Columns: []ColumnSchema{
			col("route_id", KindID, Required),
			col("agency_id", KindID, Optional),
			col("route_short_name", KindText, Optional),
			col("route_long_name", KindText, Optional),
			col("route_desc", KindText, Optional),
			enumCol("route_type", Required, 0, 1, 2, 3, 4, 5, 6, 7, 11, 12, 100, 200),
			col("route_url", KindURL, Optional),
			col("route_color", KindColor, Optional),
			col("route_text_color", KindColor, Optional),
			col("route_sort_order", KindInteger, Optional),
			enumCol("continuous_pickup", Optional, 0, 1, 2, 3),
			enumCol("continuous_drop_off", Optional, 0, 1, 2, 3),
			col("network_id", KindID, Optional),
		},
	})

	register(TableSchema{
		FileName:   "trips.txt",
		Presence:   FileRequired,
		PrimaryKey: []string{"trip_id"},
		Columns: []ColumnSchema{
			col("route_id", KindID, Required),
			col("service_id", KindID, Required),
			col("trip_id", KindID, Required),
			col("trip_headsign", KindText, Optional),
			col("trip_short_name", KindText, Optional),
			enumCol("direction_id", Optional, 0, 1),
			col("block_id", KindID, Optional),
			col("shape_id", KindID, Optional),
			enumCol("wheelchair_accessible", Optional, 0, 1, 2),
			enumCol("bikes_allowed", Optional, 0, 1, 2),
		},
	})

	register(TableSchema{
		FileName:   "stop_times.txt",
		Presence:   FileRequired,
		PrimaryKey: []string{"trip_id", "stop_sequence"},
		Columns: []ColumnSchema{
			col("trip_id", KindID, Required),
			col("arrival_time", KindTime, Optional),
			col("departure_time", KindTime, Optional),
			col("stop_id", KindID, Optional),
			col("location_group_id", KindID, Optional),
			col("location_id", KindID, Optional),
			col("stop_sequence", KindInteger, Required),
			col("stop_headsign", KindText, Optional),
			col("start_pickup_drop_off_window", KindTime, Optional),
			col("end_pickup_drop_off_window", KindTime, Optional),
			enumCol("pickup_type", Optional, 0, 1, 2, 3),
			enumCol("drop_off_type", Optional, 0, 1, 2, 3),
			enumCol("continuous_pickup", Optional, 0, 1, 2, 3),
			enumCol("continuous_drop_off", Optional, 0, 1, 2, 3),
			col("shape_dist_traveled", KindFloat, Optional),
			enumCol("timepoint", Optional, 0, 1),
			col("pickup_booking_rule_id", KindID, Optional),
			col("drop_off_booking_rule_id", KindID, Optional),
		},
	})

	register(TableSchema{
		FileName:   "calendar.txt",
		Presence:   FileConditional,
		PrimaryKey: []string{"service_id"},
		Columns: []ColumnSchema{
			col("service_id", KindID, Required),
			enumCol("monday", Required, 0, 1),
			enumCol("tuesday", Required, 0, 1),
			enumCol("wednesday", Required, 0, 1),
			enumCol("thursday", Required, 0, 1),
			enumCol("friday", Required, 0, 1),
			enumCol("saturday", Required, 0, 1),
			enumCol("sunday", Required, 0, 1),
			col("start_date", KindDate, Required),
			col("end_date", KindDate, Required),
		},
	})

	register(TableSchema{
		FileName:   "calendar_dates.txt",
		Presence:   FileConditional,
		PrimaryKey: []string{"service_id", "date"},
		Columns: []ColumnSchema{
			col("service_id", KindID, Required),
			col("date", KindDate, Required),
			enumCol("exception_type", Required, 1, 2),
		},
	})

	register(TableSchema{
		FileName:   "shapes.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"shape_id", "shape_pt_sequence"},
		Columns: []ColumnSchema{
			col("shape_id", KindID, Required),
			col("shape_pt_lat", KindLatitude, Required),
			col("shape_pt_lon", KindLongitude, Required),
			col("shape_pt_sequence", KindInteger, Required),
			col("shape_dist_traveled", KindFloat, Optional),
		},
	})

	register(TableSchema{
		FileName:   "frequencies.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"trip_id", "start_time"},
		Columns: []ColumnSchema{
			col("trip_id", KindID, Required),
			col("start_time", KindTime, Required),
			col("end_time", KindTime, Required),
			col("headway_secs", KindInteger, Required),
			enumCol("exact_times", Optional, 0, 1),
		},
	})

	register(TableSchema{
		FileName: "transfers.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("from_stop_id", KindID, Optional),
			col("to_stop_id", KindID, Optional),
			col("from_route_id", KindID, Optional),
			col("to_route_id", KindID, Optional),
			col("from_trip_id", KindID, Optional),
			col("to_trip_id", KindID, Optional),
			enumCol("transfer_type", Required, 0, 1, 2, 3, 4, 5),
			col("min_transfer_time", KindInteger, Optional),
		},
	})

	register(TableSchema{
		FileName:   "pathways.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"pathway_id"},
		Columns: []ColumnSchema{
			col("pathway_id", KindID, Required),
			col("from_stop_id", KindID, Required),
			col("to_stop_id", KindID, Required),
			enumCol("pathway_mode", Required, 1, 2, 3, 4, 5, 6, 7),
			enumCol("is_bidirectional", Required, 0, 1),
			col("length", KindFloat, Optional),
			col("traversal_time", KindInteger, Optional),
			col("stair_count", KindInteger, Optional),
			col("max_slope", KindFloat, Optional),
			col("min_width", KindFloat, Optional),
			col("signposted_as", KindText, Optional),
			col("reversed_signposted_as", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName:   "levels.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"level_id"},
		Columns: []ColumnSchema{
			col("level_id", KindID, Required),
			col("level_index", KindFloat, Required),
			col("level_name", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName: "feed_info.txt",
		Presence: FileRecommended,
		Columns: []ColumnSchema{
			col("feed_publisher_name", KindText, Required),
			col("feed_publisher_url", KindURL, Required),
			col("feed_lang", KindLanguage, Required),
			col("default_lang", KindLanguage, Optional),
			col("feed_start_date", KindDate, Optional),
			col("feed_end_date", KindDate, Optional),
			col("feed_version", KindText, Optional),
			col("feed_contact_email", KindEmail, Optional),
			col("feed_contact_url", KindURL, Optional),
		},
	})

	register(TableSchema{
		FileName: "translations.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("table_name", KindText, Required),
			col("field_name", KindText, Required),
			col("language", KindLanguage, Required),
			col("translation", KindText, Required),
			col("record_id", KindID, Optional),
			col("record_sub_id", KindID, Optional),
			col("field_value", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName: "attributions.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("attribution_id", KindID, Optional),
			col("agency_id", KindID, Optional),
			col("route_id", KindID, Optional),
			col("trip_id", KindID, Optional),
			col("organization_name", KindText, Required),
			enumCol("is_producer", Optional, 0, 1),
			enumCol("is_operator", Optional, 0, 1),
			enumCol("is_authority", Optional, 0, 1),
			col("attribution_url", KindURL, Optional),
			col("attribution_email", KindEmail, Optional),
			col("attribution_phone", KindPhone, Optional),
		},
	})

	register(TableSchema{
		FileName:   "areas.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"area_id"},
		Columns: []ColumnSchema{
			col("area_id", KindID, Required),
			col("area_name", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName: "stop_areas.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("area_id", KindID, Required),
			col("stop_id", KindID, Required),
		},
	})

	register(TableSchema{
		FileName:   "networks.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"network_id"},
		Columns: []ColumnSchema{
			col("network_id", KindID, Required),
			col("network_name", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName: "route_networks.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("network_id", KindID, Required),
			col("route_id", KindID, Required),
		},
	})

	register(TableSchema{
		FileName:   "fare_attributes.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"fare_id"},
		Columns: []ColumnSchema{
			col("fare_id", KindID, Required),
			col("price", KindFloat, Required),
			col("currency_type", KindCurrency, Required),
			enumCol("payment_method", Required, 0, 1),
			enumCol("transfers", Required, 0, 1, 2),
			col("agency_id", KindID, Optional),
			col("transfer_duration", KindInteger, Optional),
		},
	})

	register(TableSchema{
		FileName: "fare_rules.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("fare_id", KindID, Required),
			col("route_id", KindID, Optional),
			col("origin_id", KindID, Optional),
			col("destination_id", KindID, Optional),
			col("contains_id", KindID, Optional),
		},
	})

	register(TableSchema{
		FileName:   "fare_media.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"fare_media_id"},
		Columns: []ColumnSchema{
			col("fare_media_id", KindID, Required),
			col("fare_media_name", KindText, Optional),
			enumCol("fare_media_type", Required, 0, 1, 2, 3, 4),
		},
	})

	register(TableSchema{
		FileName:   "fare_products.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"fare_product_id", "fare_media_id"},
		Columns: []ColumnSchema{
			col("fare_product_id", KindID, Required),
			col("fare_product_name", KindText, Optional),
			col("fare_media_id", KindID, Optional),
			col("amount", KindFloat, Required),
			col("currency", KindCurrency, Required),
		},
	})

	register(TableSchema{
		FileName: "fare_leg_rules.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("leg_group_id", KindID, Optional),
			col("network_id", KindID, Optional),
			col("from_area_id", KindID, Optional),
			col("to_area_id", KindID, Optional),
			col("from_timeframe_group_id", KindID, Optional),
			col("to_timeframe_group_id", KindID, Optional),
			col("fare_product_id", KindID, Required),
			col("rule_priority", KindInteger, Optional),
		},
	})

	register(TableSchema{
		FileName: "fare_transfer_rules.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("from_leg_group_id", KindID, Optional),
			col("to_leg_group_id", KindID, Optional),
			col("transfer_count", KindInteger, Optional),
			col("duration_limit", KindInteger, Optional),
			enumCol("duration_limit_type", Optional, 0, 1, 2, 3),
			enumCol("fare_transfer_type", Required, 0, 1, 2),
			col("fare_product_id", KindID, Optional),
		},
	})

	register(TableSchema{
		FileName: "fare_leg_join_rules.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("from_network_id", KindID, Required),
			col("to_network_id", KindID, Required),
			col("from_stop_id", KindID, Optional),
			col("to_stop_id", KindID, Optional),
		},
	})

	register(TableSchema{
		FileName: "timeframes.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("timeframe_group_id", KindID, Required),
			col("start_time", KindTime, Optional),
			col("end_time", KindTime, Optional),
			col("service_id", KindID, Required),
		},
	})

	register(TableSchema{
		FileName:   "booking_rules.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"booking_rule_id"},
		Columns: []ColumnSchema{
			col("booking_rule_id", KindID, Required),
			enumCol("booking_type", Required, 0, 1, 2),
			col("prior_notice_duration_min", KindInteger, Optional),
			col("prior_notice_duration_max", KindInteger, Optional),
			col("prior_notice_last_day", KindInteger, Optional),
			col("prior_notice_last_time", KindTime, Optional),
			col("prior_notice_start_day", KindInteger, Optional),
			col("prior_notice_start_time", KindTime, Optional),
			col("prior_notice_service_id", KindID, Optional),
			col("message", KindText, Optional),
			col("pickup_message", KindText, Optional),
			col("drop_off_message", KindText, Optional),
			col("phone_number", KindPhone, Optional),
			col("info_url", KindURL, Optional),
			col("booking_url", KindURL, Optional),
		},
	})

	register(TableSchema{
		FileName:   "location_groups.txt",
		Presence:   FileOptional,
		PrimaryKey: []string{"location_group_id"},
		Columns: []ColumnSchema{
			col("location_group_id", KindID, Required),
			col("location_group_name", KindText, Optional),
		},
	})

	register(TableSchema{
		FileName: "location_group_stops.txt",
		Presence: FileOptional,
		Columns: []ColumnSchema{
			col("location_group_id", KindID, Required),
			col("stop_id", KindID, Required),
		},
	})
}

// Schema returns the static schema for a GTFS file name, if known.
func Schema(fileName string) (TableSchema, bool) {
	s, ok := schemas[fileName]
	return s, ok
}

// AllSchemas returns every registered table schema, for driving the
// required/recommended-file presence check.
func AllSchemas() []TableSchema {
	out := make([]TableSchema, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, s)
	}
	return out
}
