package feed

import "github.com/abasis-ltd/gtfs.guru/notice"

// init registers every notice code this package can raise directly —
// CSV structural anomalies, schema-driven table-loading diagnostics, and
// the GeoJSON reader's codes — so NoticeSchema() lists them regardless
// of whether a feed was ever loaded.
func init() {
	entries := []notice.SchemaEntry{
		{Code: "empty_file", Severity: notice.SeverityWarning, FieldOrder: []string{"filename"}},
		{Code: "empty_row", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "invalid_row_length", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "expectedColumnCount", "actualColumnCount"}},
		{Code: "new_line_in_value", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber"}},
		{Code: "duplicated_column", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "empty_column_name", Severity: notice.SeverityError, FieldOrder: []string{"filename", "index"}},
		{Code: "leading_or_trailing_whitespaces", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "non_ascii_or_non_printable_char", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "unknown_column", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "unknown_file", Severity: notice.SeverityInfo, FieldOrder: []string{"filename"}},
		{Code: "missing_required_column", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "missing_required_field", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName"}},
		{Code: "missing_required_file", Severity: notice.SeverityError, FieldOrder: []string{"filename"}},
		{Code: "missing_recommended_file", Severity: notice.SeverityWarning, FieldOrder: []string{"filename"}},
		{Code: "missing_calendar_and_calendar_date_files", Severity: notice.SeverityError},
		{Code: "duplicate_key", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue", "prevCsvRowNumber"}},
		{Code: "invalid_input_files_in_subfolder", Severity: notice.SeverityWarning, FieldOrder: []string{"subfolderName"}},

		{Code: "invalid_date", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_time", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_color", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_float", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "number_out_of_range", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_integer", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_url", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_email", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_timezone", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_language_code", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "invalid_currency", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},
		{Code: "unexpected_enum_value", Severity: notice.SeverityError, FieldOrder: []string{"filename", "csvRowNumber", "fieldName", "fieldValue"}},

		{Code: "malformed_json", Severity: notice.SeverityError, FieldOrder: []string{"filename"}},
		{Code: "missing_required_element", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "unsupported_geo_json_type", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldValue"}},
		{Code: "unsupported_feature_type", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldValue"}},
		{Code: "unsupported_geometry_type", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldValue"}},
		{Code: "duplicate_geo_json_key", Severity: notice.SeverityWarning, FieldOrder: []string{"filename", "fieldName"}},
		{Code: "duplicate_geography_id", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldValue"}},
		{Code: "invalid_geometry", Severity: notice.SeverityError, FieldOrder: []string{"filename", "fieldValue"}},
		{Code: "geo_json_unknown_element", Severity: notice.SeverityInfo, FieldOrder: []string{"filename", "fieldName"}},
	}
	for _, e := range entries {
		notice.Register(e)
	}
}
