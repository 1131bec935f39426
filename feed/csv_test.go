package feed

import (
	"testing"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

func codesOf(notices *notice.Container) []string {
	var codes []string
	for _, n := range notices.Sorted() {
		codes = append(codes, n.Code)
	}
	return codes
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func TestReadCSVBasic(t *testing.T) {
	data := []byte("stop_id,stop_name\nS1,Main St\nS2,Oak Ave\n")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(r.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(r.Rows))
	}
	if r.Rows[0].RowNumber != 2 || r.Rows[1].RowNumber != 3 {
		t.Errorf("unexpected row numbers: %d, %d", r.Rows[0].RowNumber, r.Rows[1].RowNumber)
	}
	if notices.Len() != 0 {
		t.Errorf("expected no notices, got %v", codesOf(notices))
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	notices := notice.NewContainer()
	_, ok := ReadCSV([]byte{}, "stops.txt", notices)
	if ok {
		t.Fatal("expected ok=false for an empty file")
	}
	if !containsCode(codesOf(notices), "empty_file") {
		t.Errorf("expected empty_file, got %v", codesOf(notices))
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("stop_id\nS1\n")...)
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if r.Header[0] != "stop_id" {
		t.Errorf("expected header stop_id without BOM, got %q", r.Header[0])
	}
}

func TestReadCSVBlankRowSkipped(t *testing.T) {
	data := []byte("stop_id,stop_name\nS1,Main St\n,\nS2,Oak Ave\n")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(r.Rows) != 2 {
		t.Fatalf("expected the blank row to be skipped, got %d rows", len(r.Rows))
	}
	if !containsCode(codesOf(notices), "empty_row") {
		t.Errorf("expected empty_row, got %v", codesOf(notices))
	}
}

func TestReadCSVRowLengthMismatch(t *testing.T) {
	data := []byte("stop_id,stop_name\nS1\n")
	notices := notice.NewContainer()
	_, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if !containsCode(codesOf(notices), "invalid_row_length") {
		t.Errorf("expected invalid_row_length, got %v", codesOf(notices))
	}
}

func TestReadCSVDuplicatedAndEmptyColumnNames(t *testing.T) {
	data := []byte("stop_id,stop_id,\nS1,S2,S3\n")
	notices := notice.NewContainer()
	_, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	codes := codesOf(notices)
	if !containsCode(codes, "duplicated_column") {
		t.Errorf("expected duplicated_column, got %v", codes)
	}
	if !containsCode(codes, "empty_column_name") {
		t.Errorf("expected empty_column_name, got %v", codes)
	}
}

func TestReadCSVWhitespaceHeader(t *testing.T) {
	data := []byte(" stop_id ,stop_name\nS1,Main St\n")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if r.Header[0] != "stop_id" {
		t.Errorf("expected trimmed header, got %q", r.Header[0])
	}
	if !containsCode(codesOf(notices), "leading_or_trailing_whitespaces") {
		t.Errorf("expected leading_or_trailing_whitespaces, got %v", codesOf(notices))
	}
}

func TestReadCSVQuotedFieldWithEmbeddedNewline(t *testing.T) {
	data := []byte("stop_id,stop_desc\nS1,\"line one\nline two\"\n")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(r.Rows) != 1 || !r.Rows[0].HasEmbeddedNewline {
		t.Fatal("expected one row flagged with an embedded newline")
	}
	if !containsCode(codesOf(notices), "new_line_in_value") {
		t.Errorf("expected new_line_in_value, got %v", codesOf(notices))
	}
}

func TestReadCSVQuotedCommaAndEscapedQuote(t *testing.T) {
	data := []byte("stop_id,stop_name\nS1,\"Main St, near \"\"the\"\" park\"\n")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(r.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(r.Rows))
	}
	got := r.Rows[0].Cells[1]
	want := `Main St, near "the" park`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	_ = notices
}

func TestReadCSVNoTrailingNewline(t *testing.T) {
	data := []byte("stop_id\nS1")
	notices := notice.NewContainer()
	r, ok := ReadCSV(data, "stops.txt", notices)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(r.Rows) != 1 || r.Rows[0].Cells[0] != "S1" {
		t.Fatalf("expected one row with value S1, got %+v", r.Rows)
	}
}
