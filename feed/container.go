package feed

import (
	"sort"

	"github.com/abasis-ltd/gtfs.guru/notice"
	"github.com/rs/zerolog"
)

// Container owns every loaded table plus the derived cross-table
// indexes built once, eagerly, after load (spec.md §3, §4.5).
type Container struct {
	Tables   map[string]*Table
	Locations *LocationCollection
	Interner *Interner

	// Derived indexes.
	StopChildren      map[string][]string // station stop_id -> child stop_ids
	StopBoardingAreas map[string][]string // stop_id -> boarding_area stop_ids
	ParentChain       map[string][]string // stop_id -> ancestor chain, nearest first
	TripStopTimes     map[string][]Row    // trip_id -> stop_times rows, sorted by stop_sequence
	ShapePoints       map[string][]Row    // shape_id -> shapes rows, sorted by shape_pt_sequence
	BlockTrips        map[string][]string // block_id -> trip_ids, in trips.txt order
	StopTrips         map[string]map[string]bool
	LevelStops        map[string][]string // level_id -> stop_ids
}

// Table returns the named table. A recognized file absent from the
// archive yields a Table with Present false (the "absent" marker of
// spec.md §3); a name with no registered schema yields nil.
func (c *Container) Table(name string) *Table {
	return c.Tables[name]
}

// HasTable reports whether name was present and loaded.
func (c *Container) HasTable(name string) bool {
	t, ok := c.Tables[name]
	return ok && t != nil && t.Present
}

// Build loads every recognized GTFS file out of archive and constructs
// the feed container, emitting every notice spec.md §4.4-§4.5 assigns to
// file presence and table loading. It never returns an error: archive
// I/O failures are input-level (handled before Build is called);
// anything else becomes a notice.
func Build(archive *Archive, notices *notice.Container, log zerolog.Logger) *Container {
	c := &Container{
		Tables:            make(map[string]*Table),
		Interner:          NewInterner(),
		StopChildren:      make(map[string][]string),
		StopBoardingAreas: make(map[string][]string),
		ParentChain:       make(map[string][]string),
		TripStopTimes:     make(map[string][]Row),
		ShapePoints:       make(map[string][]Row),
		BlockTrips:        make(map[string][]string),
		StopTrips:         make(map[string]map[string]bool),
		LevelStops:        make(map[string][]string),
	}

	if archive.HadSubfolder {
		notices.Add(notice.New("invalid_input_files_in_subfolder", notice.SeverityWarning).
			With("subfolderName", archive.SubfolderName))
	}

	known := AllSchemas()
	knownNames := make(map[string]bool, len(known))
	for _, s := range known {
		knownNames[s.FileName] = true
	}
	knownNames["locations.geojson"] = true

	for name := range archive.Files {
		if !knownNames[name] {
			notices.Add(notice.New("unknown_file", notice.SeverityInfo).With("filename", name))
		}
	}

	for _, schema := range known {
		data, present := archive.Files[schema.FileName]
		if !present {
			switch schema.Presence {
			case FileRequired:
				notices.Add(notice.New("missing_required_file", notice.SeverityError).
					With("filename", schema.FileName))
			case FileRecommended:
				notices.Add(notice.New("missing_recommended_file", notice.SeverityWarning).
					With("filename", schema.FileName))
			}
			c.Tables[schema.FileName] = &Table{Schema: schema, Present: false}
			continue
		}
		reader, ok := ReadCSV(data, schema.FileName, notices)
		if !ok {
			c.Tables[schema.FileName] = &Table{Schema: schema, Present: false}
			continue
		}
		c.Tables[schema.FileName] = LoadTable(schema, reader, notices)
	}

	if !c.HasTable("calendar.txt") && !c.HasTable("calendar_dates.txt") {
		notices.Add(notice.New("missing_calendar_and_calendar_date_files", notice.SeverityError))
	}

	if data, present := archive.Files["locations.geojson"]; present {
		c.Locations = ParseLocationsGeoJSON(data, notices)
	}

	c.buildIndexes(log)
	return c
}

func (c *Container) buildIndexes(log zerolog.Logger) {
	if stops := c.Table("stops.txt"); stops != nil && stops.Present {
		for _, row := range stops.Rows {
			stopID, _ := row.Get("stop_id")
			if parent, ok := row.Get("parent_station"); ok {
				locType, _ := row.Int("location_type")
				if locType == 4 {
					c.StopBoardingAreas[parent] = append(c.StopBoardingAreas[parent], stopID)
				} else {
					c.StopChildren[parent] = append(c.StopChildren[parent], stopID)
				}
				c.ParentChain[stopID] = buildParentChain(stops, stopID)
			}
			if level, ok := row.Get("level_id"); ok {
				c.LevelStops[level] = append(c.LevelStops[level], stopID)
			}
		}
	}

	if stopTimes := c.Table("stop_times.txt"); stopTimes != nil && stopTimes.Present {
		grouped := make(map[string][]Row)
		for _, row := range stopTimes.Rows {
			tripID, _ := row.Get("trip_id")
			grouped[tripID] = append(grouped[tripID], row)
			if stopID, ok := row.Get("stop_id"); ok {
				if c.StopTrips[stopID] == nil {
					c.StopTrips[stopID] = make(map[string]bool)
				}
				c.StopTrips[stopID][tripID] = true
			}
		}
		for tripID, rows := range grouped {
			sort.SliceStable(rows, func(i, j int) bool {
				si, _ := rows[i].Int("stop_sequence")
				sj, _ := rows[j].Int("stop_sequence")
				return si < sj
			})
			c.TripStopTimes[tripID] = rows
		}
	}

	if shapes := c.Table("shapes.txt"); shapes != nil && shapes.Present {
		grouped := make(map[string][]Row)
		for _, row := range shapes.Rows {
			shapeID, _ := row.Get("shape_id")
			grouped[shapeID] = append(grouped[shapeID], row)
		}
		for shapeID, rows := range grouped {
			sort.SliceStable(rows, func(i, j int) bool {
				si, _ := rows[i].Int("shape_pt_sequence")
				sj, _ := rows[j].Int("shape_pt_sequence")
				return si < sj
			})
			c.ShapePoints[shapeID] = rows
		}
	}

	if trips := c.Table("trips.txt"); trips != nil && trips.Present {
		for _, row := range trips.Rows {
			tripID, _ := row.Get("trip_id")
			if blockID, ok := row.Get("block_id"); ok {
				c.BlockTrips[blockID] = append(c.BlockTrips[blockID], tripID)
			}
		}
	}

	log.Debug().
		Int("stops", len(c.StopChildren)+len(c.ParentChain)).
		Int("trips_with_stop_times", len(c.TripStopTimes)).
		Int("shapes", len(c.ShapePoints)).
		Msg("feed indexes built")
}

func buildParentChain(stops *Table, stopID string) []string {
	var chain []string
	seen := map[string]bool{stopID: true}
	current := stopID
	for i := 0; i < 8; i++ {
		row, ok := stops.RowByKey(current)
		if !ok {
			break
		}
		parent, ok := row.Get("parent_station")
		if !ok || seen[parent] {
			break
		}
		chain = append(chain, parent)
		seen[parent] = true
		current = parent
	}
	return chain
}
