package feed

import (
	"strconv"
	"strings"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

// Row is a typed GTFS record: every declared column's raw cell value (or
// absence, standing in for spec.md §3's "missing" marker), the original
// 1-indexed CSV row number, and a stable in-file ordinal.
type Row struct {
	Values    map[string]string
	RowNumber int
	Ordinal   int
}

// Get returns col's value and whether it was present (header declared
// the column and the cell was non-empty; cells are not trimmed).
func (r Row) Get(col string) (string, bool) {
	v, ok := r.Values[col]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// DuplicateRef records a row that shared a primary key with an
// earlier-seen row; reachable only through Table.Duplicates, never
// through the primary key index (spec.md §3 invariant).
type DuplicateRef struct {
	Row       Row
	KeyValue  string
	FirstSeen int // row number of the original occurrence
}

// Table holds every row loaded for one file, plus its primary-key index.
type Table struct {
	Schema     TableSchema
	Present    bool
	Rows       []Row
	ByKey      map[string]int // primary key -> index into Rows, first occurrence wins
	Duplicates []DuplicateRef
}

// RowByKey resolves a primary-key value to its first-occurrence row.
func (t *Table) RowByKey(key string) (Row, bool) {
	if t == nil || !t.Present {
		return Row{}, false
	}
	i, ok := t.ByKey[key]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// LoadTable drives a tokenized CSVReader with schema, producing a Table
// and emitting every schema-aware notice spec.md §4.4 assigns to the
// table loader: unknown columns, missing required columns/fields,
// duplicate keys, and per-cell format failures.
func LoadTable(schema TableSchema, reader *CSVReader, notices *notice.Container) *Table {
	t := &Table{Schema: schema, Present: true, ByKey: make(map[string]int)}

	declared := make(map[string]ColumnSchema, len(schema.Columns))
	for _, c := range schema.Columns {
		declared[c.Name] = c
	}

	headerSet := make(map[string]bool, len(reader.Header))
	for _, h := range reader.Header {
		headerSet[h] = true
		if _, ok := declared[h]; !ok {
			notices.Add(notice.New("unknown_column", notice.SeverityInfo).
				With("filename", reader.Filename).With("fieldName", h))
		}
	}
	for _, c := range schema.Columns {
		if c.Presence != Required {
			continue
		}
		if !headerSet[c.Name] {
			notices.Add(notice.New("missing_required_column", notice.SeverityError).
				With("filename", reader.Filename).With("fieldName", c.Name))
		}
	}

	if len(reader.Rows) == 0 {
		notices.Add(notice.New("empty_file", notice.SeverityWarning).With("filename", reader.Filename))
		return t
	}

	for ordinal, raw := range reader.Rows {
		row := Row{Values: make(map[string]string, len(reader.Header)), RowNumber: raw.RowNumber, Ordinal: ordinal}
		for i, name := range reader.Header {
			if i >= len(raw.Cells) {
				continue
			}
			cell := raw.Cells[i]
			col, known := declared[name]
			if !known {
				row.Values[name] = cell
				continue
			}
			validateCell(col, cell, reader.Filename, raw.RowNumber, notices)
			row.Values[name] = cell
		}
		for _, c := range schema.Columns {
			if c.Presence != Required {
				continue
			}
			if v, ok := row.Values[c.Name]; !ok || v == "" {
				notices.Add(notice.New("missing_required_field", notice.SeverityError).
					With("filename", reader.Filename).With("csvRowNumber", raw.RowNumber).With("fieldName", c.Name))
			}
		}

		t.Rows = append(t.Rows, row)
		if len(schema.PrimaryKey) == 0 {
			continue
		}
		key := primaryKeyValue(row, schema.PrimaryKey)
		if key == "" {
			continue
		}
		if firstIdx, exists := t.ByKey[key]; exists {
			first := t.Rows[firstIdx]
			notices.Add(notice.New("duplicate_key", notice.SeverityError).
				With("filename", reader.Filename).With("csvRowNumber", raw.RowNumber).
				With("fieldName", strings.Join(schema.PrimaryKey, ",")).With("fieldValue", key).
				With("prevCsvRowNumber", first.RowNumber))
			t.Duplicates = append(t.Duplicates, DuplicateRef{Row: row, KeyValue: key, FirstSeen: first.RowNumber})
			continue
		}
		t.ByKey[key] = len(t.Rows) - 1
	}
	return t
}

func primaryKeyValue(row Row, keyCols []string) string {
	parts := make([]string, len(keyCols))
	for i, c := range keyCols {
		v, _ := row.Get(c)
		parts[i] = v
	}
	return strings.Join(parts, "\x1f")
}

// validateCell parses cell against col's declared kind, emitting the
// notice spec.md §4.1 assigns to that failure mode. IDs additionally get
// the non-ASCII/non-printable check.
func validateCell(col ColumnSchema, cell, filename string, rowNumber int, notices *notice.Container) {
	if cell == "" {
		return
	}
	fail := func(code string) {
		notices.Add(notice.New(code, notice.SeverityError).
			WithLocation(filename, rowNumber, col.Name, cell))
	}
	switch col.Kind {
	case KindID:
		for _, r := range cell {
			if !isIDChar(r) {
				notices.Add(notice.New("non_ascii_or_non_printable_char", notice.SeverityWarning).
					WithLocation(filename, rowNumber, col.Name, cell))
				break
			}
		}
	case KindDate:
		if _, outcome := ParseDate(cell); outcome != OK {
			fail("invalid_date")
		}
	case KindTime:
		if _, outcome := ParseTime(cell); outcome != OK {
			fail("invalid_time")
		}
	case KindColor:
		if _, outcome := ParseColor(cell); outcome != OK {
			fail("invalid_color")
		}
	case KindLatitude:
		if _, outcome := ParseLatitude(cell); outcome == Malformed {
			fail("invalid_float")
		} else if outcome == OutOfRange {
			fail("number_out_of_range")
		}
	case KindLongitude:
		if _, outcome := ParseLongitude(cell); outcome == Malformed {
			fail("invalid_float")
		} else if outcome == OutOfRange {
			fail("number_out_of_range")
		}
	case KindInteger:
		if _, outcome := ParseInteger(cell); outcome != OK {
			fail("invalid_integer")
		}
	case KindFloat:
		if _, outcome := ParseFloat(cell); outcome != OK {
			fail("invalid_float")
		}
	case KindURL:
		if ParseURL(cell) != OK {
			fail("invalid_url")
		}
	case KindEmail:
		if ParseEmail(cell) != OK {
			fail("invalid_email")
		}
	case KindTimezone:
		if ParseTimezone(cell) != OK {
			fail("invalid_timezone")
		}
	case KindLanguage:
		if ParseLanguage(cell) != OK {
			fail("invalid_language_code")
		}
	case KindCurrency:
		if ParseCurrency(cell) != OK {
			fail("invalid_currency")
		}
	case KindPhone:
		_ = ParsePhone(cell)
	case KindEnum:
		n, outcome := ParseInteger(cell)
		if outcome != OK || ParseEnum(n, col.EnumValues...) != OK {
			fail("unexpected_enum_value")
		}
	case KindText:
		// no format constraint
	}
}

// Float parses col as a float cell, returning false when absent or
// malformed. Exported for cross-file validators that need typed access
// without re-deriving the schema's column kind.
func (r Row) Float(col string) (float64, bool) {
	v, ok := r.Get(col)
	if !ok {
		return 0, false
	}
	f, outcome := ParseFloat(v)
	return f, outcome == OK
}

// Int parses col as an integer cell.
func (r Row) Int(col string) (int, bool) {
	v, ok := r.Get(col)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// Time parses col as a GTFS clock time.
func (r Row) Time(col string) (ClockTime, bool) {
	v, ok := r.Get(col)
	if !ok {
		return ClockTime{}, false
	}
	t, outcome := ParseTime(v)
	return t, outcome == OK
}

// Date parses col as a GTFS calendar date.
func (r Row) Date(col string) (Date, bool) {
	v, ok := r.Get(col)
	if !ok {
		return Date{}, false
	}
	d, outcome := ParseDate(v)
	return d, outcome == OK
}
