package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/notice"
)

func init() {
	notice.Register(notice.SchemaEntry{
		Code:       "foreign_key_violation",
		Severity:   notice.SeverityError,
		FieldOrder: []string{"childFilename", "csvRowNumber", "childFieldName", "fieldValue", "parentFilename", "parentFieldName"},
	})
}

// fkResolver reports whether value exists as a key in whatever table or
// derived index a foreign key edge targets. Most edges resolve via a
// table's primary-key index; shape_id and service_id resolve via derived
// sets since shapes.txt and calendar_dates.txt have composite keys.
type fkResolver func(ctx *Context, value string) bool

func byPrimaryKey(tableName string) fkResolver {
	return func(ctx *Context, value string) bool {
		t := ctx.Feed.Table(tableName)
		if t == nil || !t.Present {
			return false
		}
		_, ok := t.ByKey[value]
		return ok
	}
}

func byShapeID(ctx *Context, value string) bool {
	_, ok := ctx.Feed.ShapePoints[value]
	return ok
}

func byServiceID(ctx *Context, value string) bool {
	if t := ctx.Feed.Table("calendar.txt"); t != nil && t.Present {
		if _, ok := t.ByKey[value]; ok {
			return true
		}
	}
	if t := ctx.Feed.Table("calendar_dates.txt"); t != nil && t.Present {
		for _, row := range t.Rows {
			if v, _ := row.Get("service_id"); v == value {
				return true
			}
		}
	}
	return false
}

func byLocationID(ctx *Context, value string) bool {
	if ctx.Feed.Locations == nil {
		return false
	}
	_, ok := ctx.Feed.Locations.ByID[value]
	return ok
}

type fkEdge struct {
	childFile   string
	childField  string
	resolve     fkResolver
	parentFile  string
	parentField string
}

// documentedForeignKeys is the FK edge table spec.md §4.9 describes
// generically ("for every documented FK edge"); this repository's edges
// are the ones GTFS itself documents across the files this engine loads.
var documentedForeignKeys = []fkEdge{
	{"stops.txt", "parent_station", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"stops.txt", "level_id", byPrimaryKey("levels.txt"), "levels.txt", "level_id"},
	{"routes.txt", "agency_id", byPrimaryKey("agency.txt"), "agency.txt", "agency_id"},
	{"routes.txt", "network_id", byPrimaryKey("networks.txt"), "networks.txt", "network_id"},
	{"trips.txt", "route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"trips.txt", "service_id", byServiceID, "calendar.txt/calendar_dates.txt", "service_id"},
	{"trips.txt", "shape_id", byShapeID, "shapes.txt", "shape_id"},
	{"stop_times.txt", "trip_id", byPrimaryKey("trips.txt"), "trips.txt", "trip_id"},
	{"stop_times.txt", "stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"stop_times.txt", "location_group_id", byPrimaryKey("location_groups.txt"), "location_groups.txt", "location_group_id"},
	{"stop_times.txt", "location_id", byLocationID, "locations.geojson", "id"},
	{"stop_times.txt", "pickup_booking_rule_id", byPrimaryKey("booking_rules.txt"), "booking_rules.txt", "booking_rule_id"},
	{"stop_times.txt", "drop_off_booking_rule_id", byPrimaryKey("booking_rules.txt"), "booking_rules.txt", "booking_rule_id"},
	{"fare_attributes.txt", "agency_id", byPrimaryKey("agency.txt"), "agency.txt", "agency_id"},
	{"fare_rules.txt", "fare_id", byPrimaryKey("fare_attributes.txt"), "fare_attributes.txt", "fare_id"},
	{"fare_rules.txt", "route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"fare_leg_rules.txt", "network_id", byPrimaryKey("networks.txt"), "networks.txt", "network_id"},
	{"fare_leg_rules.txt", "from_area_id", byPrimaryKey("areas.txt"), "areas.txt", "area_id"},
	{"fare_leg_rules.txt", "to_area_id", byPrimaryKey("areas.txt"), "areas.txt", "area_id"},
	{"fare_leg_rules.txt", "fare_product_id", byPrimaryKey("fare_products.txt"), "fare_products.txt", "fare_product_id"},
	{"fare_transfer_rules.txt", "fare_product_id", byPrimaryKey("fare_products.txt"), "fare_products.txt", "fare_product_id"},
	{"fare_products.txt", "fare_media_id", byPrimaryKey("fare_media.txt"), "fare_media.txt", "fare_media_id"},
	{"stop_areas.txt", "area_id", byPrimaryKey("areas.txt"), "areas.txt", "area_id"},
	{"stop_areas.txt", "stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"route_networks.txt", "network_id", byPrimaryKey("networks.txt"), "networks.txt", "network_id"},
	{"route_networks.txt", "route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"pathways.txt", "from_stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"pathways.txt", "to_stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"transfers.txt", "from_stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"transfers.txt", "to_stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"transfers.txt", "from_route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"transfers.txt", "to_route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"transfers.txt", "from_trip_id", byPrimaryKey("trips.txt"), "trips.txt", "trip_id"},
	{"transfers.txt", "to_trip_id", byPrimaryKey("trips.txt"), "trips.txt", "trip_id"},
	{"attributions.txt", "agency_id", byPrimaryKey("agency.txt"), "agency.txt", "agency_id"},
	{"attributions.txt", "route_id", byPrimaryKey("routes.txt"), "routes.txt", "route_id"},
	{"attributions.txt", "trip_id", byPrimaryKey("trips.txt"), "trips.txt", "trip_id"},
	{"location_group_stops.txt", "location_group_id", byPrimaryKey("location_groups.txt"), "location_groups.txt", "location_group_id"},
	{"location_group_stops.txt", "stop_id", byPrimaryKey("stops.txt"), "stops.txt", "stop_id"},
	{"booking_rules.txt", "prior_notice_service_id", byServiceID, "calendar.txt/calendar_dates.txt", "service_id"},
	{"timeframes.txt", "service_id", byServiceID, "calendar.txt/calendar_dates.txt", "service_id"},
	{"fare_leg_join_rules.txt", "from_network_id", byPrimaryKey("networks.txt"), "networks.txt", "network_id"},
	{"fare_leg_join_rules.txt", "to_network_id", byPrimaryKey("networks.txt"), "networks.txt", "network_id"},
}

// foreignKeyValidator walks every documented edge and every row of the
// child file, emitting foreign_key_violation for a non-empty field whose
// value resolves to nothing in the parent (spec.md §4.9 "Foreign keys").
// A referenced-but-parse-failed parent counts as missing because
// byPrimaryKey/byShapeID/byServiceID only ever see successfully indexed
// rows.
func foreignKeyValidator() Validator {
	return newValidator("foreign_key", func(ctx *Context) {
		for _, edge := range documentedForeignKeys {
			child := ctx.Feed.Table(edge.childFile)
			if child == nil || !child.Present {
				continue
			}
			for _, row := range child.Rows {
				value, ok := row.Get(edge.childField)
				if !ok {
					continue
				}
				if edge.resolve(ctx, value) {
					continue
				}
				ctx.Add(notice.New("foreign_key_violation", notice.SeverityError).
					With("childFilename", edge.childFile).
					With("csvRowNumber", row.RowNumber).
					With("childFieldName", edge.childField).
					With("fieldValue", value).
					With("parentFilename", edge.parentFile).
					With("parentFieldName", edge.parentField))
			}
		}
	})
}
