package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

// LocationGeometryType is the subset of GeoJSON geometry types GTFS-Flex
// locations.geojson permits.
type LocationGeometryType string

const (
	GeometryPolygon      LocationGeometryType = "Polygon"
	GeometryMultiPolygon LocationGeometryType = "MultiPolygon"
)

// Ring is a closed polygon ring as a sequence of (lon, lat) pairs.
type Ring [][2]float64

// Location is one parsed GeoJSON Feature from locations.geojson, keyed
// by its location_id for use as a GTFS-Flex stop_times.location_id
// referent.
type Location struct {
	ID         string
	Properties map[string]any
	Geometry   LocationGeometryType
	Polygons   [][]Ring // each polygon: exterior ring first, holes after
}

// LocationCollection is the parsed contents of locations.geojson.
type LocationCollection struct {
	ByID map[string]Location
	IDs  []string // insertion order, for deterministic iteration
}

type geoJSONRoot struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id"`
	Properties map[string]any  `json:"properties"`
	Geometry   geoJSONGeometry `json:"geometry"`
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParseLocationsGeoJSON parses locations.geojson, emitting the notices
// spec.md §4.4 assigns to the GeoJSON reader. Parsing is permissive: a
// malformed feature is skipped (with a notice) rather than aborting the
// whole file, matching the CSV loader's row-skip philosophy.
func ParseLocationsGeoJSON(data []byte, notices *notice.Container) *LocationCollection {
	const filename = "locations.geojson"
	lc := &LocationCollection{ByID: make(map[string]Location)}

	for _, key := range detectDuplicateKeys(data) {
		notices.Add(notice.New("duplicate_geo_json_key", notice.SeverityWarning).
			With("filename", filename).With("fieldName", key))
	}

	var rawTop map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawTop); err == nil {
		for k := range rawTop {
			switch k {
			case "type", "features", "name", "crs":
			default:
				notices.Add(notice.New("geo_json_unknown_element", notice.SeverityInfo).
					With("filename", filename).With("fieldName", k))
			}
		}
	}

	var root geoJSONRoot
	if err := json.Unmarshal(data, &root); err != nil {
		notices.Add(notice.New("malformed_json", notice.SeverityError).With("filename", filename))
		return lc
	}
	if root.Type != "FeatureCollection" {
		notices.Add(notice.New("unsupported_geo_json_type", notice.SeverityError).
			With("filename", filename).With("fieldValue", root.Type))
		return lc
	}
	if root.Features == nil {
		notices.Add(notice.New("missing_required_element", notice.SeverityError).
			With("filename", filename).With("fieldName", "features"))
		return lc
	}

	for _, raw := range root.Features {
		var f geoJSONFeature
		if err := json.Unmarshal(raw, &f); err != nil {
			notices.Add(notice.New("malformed_json", notice.SeverityError).With("filename", filename))
			continue
		}
		if f.Type != "Feature" {
			notices.Add(notice.New("unsupported_feature_type", notice.SeverityError).
				With("filename", filename).With("fieldValue", f.Type))
			continue
		}
		id := decodeGeoJSONID(f.ID)
		if id == "" {
			notices.Add(notice.New("missing_required_element", notice.SeverityError).
				With("filename", filename).With("fieldName", "id"))
			continue
		}
		if _, exists := lc.ByID[id]; exists {
			notices.Add(notice.New("duplicate_geography_id", notice.SeverityError).
				With("filename", filename).With("fieldValue", id))
			continue
		}

		geomType := LocationGeometryType(f.Geometry.Type)
		if geomType != GeometryPolygon && geomType != GeometryMultiPolygon {
			notices.Add(notice.New("unsupported_geometry_type", notice.SeverityError).
				With("filename", filename).With("fieldValue", f.Geometry.Type))
			continue
		}
		polygons, err := decodePolygons(geomType, f.Geometry.Coordinates)
		if err != nil {
			notices.Add(notice.New("invalid_geometry", notice.SeverityError).
				With("filename", filename).With("fieldValue", id))
			continue
		}

		lc.ByID[id] = Location{ID: id, Properties: f.Properties, Geometry: geomType, Polygons: polygons}
		lc.IDs = append(lc.IDs, id)
	}
	return lc
}

func decodeGeoJSONID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%v", n)
	}
	return ""
}

func decodePolygons(geomType LocationGeometryType, raw json.RawMessage) ([][]Ring, error) {
	switch geomType {
	case GeometryPolygon:
		var rings []Ring
		if err := json.Unmarshal(raw, &rings); err != nil {
			return nil, err
		}
		return [][]Ring{rings}, nil
	case GeometryMultiPolygon:
		var polys [][]Ring
		if err := json.Unmarshal(raw, &polys); err != nil {
			return nil, err
		}
		return polys, nil
	}
	return nil, fmt.Errorf("feed: unsupported geometry %q", geomType)
}

// detectDuplicateKeys walks the raw JSON token stream looking for object
// keys repeated within the same object, at any nesting depth.
// encoding/json silently keeps the last occurrence, so this is the only
// way to surface spec.md's duplicate_geo_json_key notice.
func detectDuplicateKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dups []string
	var walk func() error
	walk = func() error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		delim, isDelim := tok.(json.Delim)
		if !isDelim {
			return nil
		}
		switch delim {
		case '{':
			seen := make(map[string]bool)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				if key, ok := keyTok.(string); ok {
					if seen[key] {
						dups = append(dups, key)
					}
					seen[key] = true
				}
				if err := walk(); err != nil {
					return err
				}
			}
			_, err := dec.Token() // consume '}'
			return err
		case '[':
			for dec.More() {
				if err := walk(); err != nil {
					return err
				}
			}
			_, err := dec.Token() // consume ']'
			return err
		}
		return nil
	}
	_ = walk()
	return dups
}
