package feed

import (
	"strings"
	"unicode"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

// RawRow is one tokenized CSV data row, before any schema is applied.
type RawRow struct {
	Cells              []string
	RowNumber          int // 1-indexed; header is row 1, first data row is row 2
	HasEmbeddedNewline bool
}

// CSVReader holds one logical file's tokenized header and data rows. It
// knows nothing about GTFS table schemas — only generic CSV structure —
// so that schema-driven notices (unknown_column, missing_required_field,
// …) stay in the table loader per spec.md §4.2 vs §4.4.
type CSVReader struct {
	Filename string
	Header   []string // trimmed, in file order
	Rows     []RawRow
}

// ReadCSV tokenizes data as one GTFS CSV file and reports every
// structural anomaly spec.md §4.2 assigns to the CSV reader. ok is false
// when the file is empty (no header row at all); the caller should treat
// that as empty_file and load no rows.
func ReadCSV(data []byte, filename string, notices *notice.Container) (*CSVReader, bool) {
	data = stripBOM(data)
	rawRows, newlines := tokenizeCSV(data)
	if len(rawRows) == 0 {
		notices.Add(notice.New("empty_file", notice.SeverityWarning).With("filename", filename))
		return nil, false
	}

	header, headerCells := canonicalizeHeader(rawRows[0], filename, notices)

	r := &CSVReader{Filename: filename, Header: header}
	for i, cells := range rawRows[1:] {
		rowNumber := i + 2
		if isBlankRow(cells) {
			notices.Add(notice.New("empty_row", notice.SeverityWarning).
				With("filename", filename).With("csvRowNumber", rowNumber))
			continue
		}
		if len(cells) != len(headerCells) {
			notices.Add(notice.New("invalid_row_length", notice.SeverityError).
				With("filename", filename).With("csvRowNumber", rowNumber).
				With("expectedColumnCount", len(headerCells)).With("actualColumnCount", len(cells)))
		}
		if newlines[i+1] {
			notices.Add(notice.New("new_line_in_value", notice.SeverityError).
				With("filename", filename).With("csvRowNumber", rowNumber))
		}
		r.Rows = append(r.Rows, RawRow{Cells: cells, RowNumber: rowNumber, HasEmbeddedNewline: newlines[i+1]})
	}
	return r, true
}

// canonicalizeHeader trims each header cell, reporting the structural
// anomalies that apply only to the header row.
func canonicalizeHeader(raw []string, filename string, notices *notice.Container) ([]string, []string) {
	seen := make(map[string]bool, len(raw))
	header := make([]string, len(raw))
	for i, cell := range raw {
		trimmed := strings.TrimSpace(cell)
		if trimmed != cell {
			notices.Add(notice.New("leading_or_trailing_whitespaces", notice.SeverityWarning).
				With("filename", filename).With("fieldName", trimmed))
		}
		if trimmed == "" {
			notices.Add(notice.New("empty_column_name", notice.SeverityError).
				With("filename", filename).With("index", i))
		} else if seen[trimmed] {
			notices.Add(notice.New("duplicated_column", notice.SeverityError).
				With("filename", filename).With("fieldName", trimmed))
		}
		seen[trimmed] = true
		header[i] = trimmed
	}
	return header, raw
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// tokenizeCSV parses RFC 4180-ish CSV content into rows of raw (not yet
// trimmed) cells, tolerating \r\n, \n and bare \r row terminators.
// newlineInRow[i] reports whether row i contained a terminator inside a
// quoted field, used to emit new_line_in_value.
func tokenizeCSV(data []byte) (rows [][]string, newlineInRow []bool) {
	var (
		field        strings.Builder
		row          []string
		inQuotes     bool
		rowHadNL     bool
		sawAnyInLine bool
	)
	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	flushRow := func() {
		flushField()
		rows = append(rows, row)
		newlineInRow = append(newlineInRow, rowHadNL)
		row = nil
		rowHadNL = false
		sawAnyInLine = false
	}

	n := len(data)
	for i := 0; i < n; i++ {
		c := data[i]
		if inQuotes {
			if c == '"' {
				if i+1 < n && data[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			if c == '\n' || c == '\r' {
				rowHadNL = true
			}
			field.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			flushField()
			sawAnyInLine = true
		case '\r':
			flushRow()
			if i+1 < n && data[i+1] == '\n' {
				i++
			}
		case '\n':
			flushRow()
		default:
			field.WriteByte(c)
			sawAnyInLine = true
		}
	}
	if field.Len() > 0 || len(row) > 0 || sawAnyInLine {
		flushRow()
	}
	return rows, newlineInRow
}

// isIDChar reports whether r is acceptable in an ID-typed cell; used by
// the table loader to emit non_ascii_or_non_printable_char.
func isIDChar(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsPrint(r)
}
