package feed

import (
	"testing"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

func loadRows(t *testing.T, schema TableSchema, filename, csvData string) (*Table, *notice.Container) {
	t.Helper()
	notices := notice.NewContainer()
	reader, ok := ReadCSV([]byte(csvData), filename, notices)
	if !ok {
		t.Fatalf("ReadCSV returned ok=false for %q", filename)
	}
	return LoadTable(schema, reader, notices), notices
}

func stopsSchema(t *testing.T) TableSchema {
	t.Helper()
	s, ok := Schema("stops.txt")
	if !ok {
		t.Fatal("expected stops.txt to have a registered schema")
	}
	return s
}

func TestLoadTableBasicRows(t *testing.T) {
	table, notices := loadRows(t, stopsSchema(t), "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon\nS1,Main St,40.0,-73.0\n")
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if v, ok := table.Rows[0].Get("stop_name"); !ok || v != "Main St" {
		t.Errorf("expected stop_name Main St, got %q, %v", v, ok)
	}
	if notices.Len() != 0 {
		t.Errorf("expected no notices, got %v", codesOf(notices))
	}
}

func TestLoadTableMissingRequiredColumn(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_name\nMain St\n")
	if !containsCode(codesOf(notices), "missing_required_column") {
		t.Errorf("expected missing_required_column, got %v", codesOf(notices))
	}
}

func TestLoadTableMissingRequiredField(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,stop_name\n,Main St\n")
	codes := codesOf(notices)
	if !containsCode(codes, "missing_required_field") {
		t.Errorf("expected missing_required_field, got %v", codes)
	}
}

func TestLoadTableUnknownColumn(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,bogus_column\nS1,x\n")
	if !containsCode(codesOf(notices), "unknown_column") {
		t.Errorf("expected unknown_column, got %v", codesOf(notices))
	}
}

func TestLoadTableDuplicateKey(t *testing.T) {
	table, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id\nS1\nS1\n")
	if !containsCode(codesOf(notices), "duplicate_key") {
		t.Errorf("expected duplicate_key, got %v", codesOf(notices))
	}
	if len(table.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate ref, got %d", len(table.Duplicates))
	}
	if table.Duplicates[0].FirstSeen != 2 {
		t.Errorf("expected first occurrence at row 2, got %d", table.Duplicates[0].FirstSeen)
	}
	if _, ok := table.RowByKey("S1"); !ok {
		t.Error("expected RowByKey to resolve to the first occurrence")
	}
}

func TestLoadTableEmptyFile(t *testing.T) {
	notices := notice.NewContainer()
	reader := &CSVReader{Filename: "stops.txt", Header: []string{"stop_id"}}
	table := LoadTable(stopsSchema(t), reader, notices)
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
	if !containsCode(codesOf(notices), "empty_file") {
		t.Errorf("expected empty_file, got %v", codesOf(notices))
	}
}

func TestLoadTableInvalidLatitudeOutOfRange(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,stop_lat,stop_lon\nS1,95,0\n")
	if !containsCode(codesOf(notices), "number_out_of_range") {
		t.Errorf("expected number_out_of_range, got %v", codesOf(notices))
	}
}

func TestLoadTableInvalidLatitudeMalformed(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,stop_lat,stop_lon\nS1,north,0\n")
	if !containsCode(codesOf(notices), "invalid_float") {
		t.Errorf("expected invalid_float, got %v", codesOf(notices))
	}
}

func TestLoadTableEnumValidation(t *testing.T) {
	_, notices := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,location_type\nS1,9\n")
	if !containsCode(codesOf(notices), "unexpected_enum_value") {
		t.Errorf("expected unexpected_enum_value, got %v", codesOf(notices))
	}
}

func TestRowTypedAccessors(t *testing.T) {
	table, _ := loadRows(t, stopsSchema(t), "stops.txt", "stop_id,stop_lat,stop_lon\nS1,40.5,-73.5\n")
	row := table.Rows[0]
	if lat, ok := row.Float("stop_lat"); !ok || lat != 40.5 {
		t.Errorf("expected 40.5, got %v, %v", lat, ok)
	}
	if _, ok := row.Float("missing_column"); ok {
		t.Error("expected ok=false for a missing column")
	}
}
