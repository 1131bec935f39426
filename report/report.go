// Package report turns an accumulated notice.Container into the three
// artifacts spec.md §4.10 names: canonical JSON, a self-contained HTML
// view, and a system-error report.
package report

import (
	"github.com/google/uuid"

	"github.com/abasis-ltd/gtfs.guru/notice"
	"github.com/abasis-ltd/gtfs.guru/validatorset"
)

// ValidatorVersion is stamped into every report's summary. It tracks the
// engine's notice schema, not the go.mod module version.
const ValidatorVersion = "1.0.0"

// Summary is the report's feed-info stub and rule-count tally.
type Summary struct {
	RunID           string  `json:"runId"`
	ValidatorVersion string `json:"validatorVersion"`
	GeneratedAt     string  `json:"generatedAt,omitempty"`
	ValidationDate  string  `json:"validationDate,omitempty"`
	CountryCode     string  `json:"countryCode,omitempty"`
	FeedInfo        *FeedInfoStub `json:"feedInfo,omitempty"`
	ErrorCount      int     `json:"errorCount"`
	WarningCount    int     `json:"warningCount"`
	InfoCount       int     `json:"infoCount"`
}

// FeedInfoStub mirrors the first feed_info.txt row, when present.
type FeedInfoStub struct {
	PublisherName string `json:"feedPublisherName,omitempty"`
	PublisherURL  string `json:"feedPublisherUrl,omitempty"`
	Lang          string `json:"feedLang,omitempty"`
	Version       string `json:"feedVersion,omitempty"`
	StartDate     string `json:"feedStartDate,omitempty"`
	EndDate       string `json:"feedEndDate,omitempty"`
}

// NoticeGroup is every notice sharing one code, as emitted in the report.
type NoticeGroup struct {
	Code     string           `json:"code"`
	Severity notice.Severity  `json:"severity"`
	Total    int              `json:"totalNotices"`
	Entries  []notice.Context `json:"notices"`
}

// SystemError is one validator's unhandled panic, carried through
// verbatim from validatorset.SystemError.
type SystemError struct {
	Validator string `json:"validator"`
	Message   string `json:"message"`
}

// Report is the canonical, emittable validation result.
type Report struct {
	Summary      Summary         `json:"summary"`
	Notices      []NoticeGroup   `json:"notices"`
	SystemErrors SystemErrorList `json:"systemErrors"`
}

// Options controls what Build includes, separately from the engine's
// config.Options (report.Options is about emission, not validation).
type Options struct {
	CountryCode       string
	ValidationDate    string
	StripRuntimeFields bool
	MaxNoticesPerCode int
}

// Build assembles a Report from a finalized notice.Container and the
// system errors the registry collected, applying MaxNoticesPerCode
// truncation and strip_runtime_fields compatibility mode.
func Build(notices *notice.Container, systemErrors []validatorset.SystemError, feedInfo *FeedInfoStub, opts Options, nowRFC3339 string) *Report {
	sorted := notices.Sorted()

	groups := make([]NoticeGroup, 0)
	var current *NoticeGroup
	counts := map[notice.Severity]int{}
	perCodeSeen := map[string]int{}

	for _, n := range sorted {
		counts[n.Severity]++
		if opts.MaxNoticesPerCode > 0 {
			perCodeSeen[n.Code]++
			if perCodeSeen[n.Code] > opts.MaxNoticesPerCode {
				continue
			}
		}
		if current == nil || current.Code != n.Code {
			groups = append(groups, NoticeGroup{Code: n.Code, Severity: n.Severity})
			current = &groups[len(groups)-1]
		}
		current.Entries = append(current.Entries, n.Context)
		current.Total++
	}

	sysErrs := make(SystemErrorList, 0, len(systemErrors))
	for _, e := range systemErrors {
		sysErrs = append(sysErrs, SystemError{Validator: e.Validator, Message: e.Error})
	}

	summary := Summary{
		RunID:            uuid.New().String(),
		ValidatorVersion: ValidatorVersion,
		ValidationDate:   opts.ValidationDate,
		CountryCode:      opts.CountryCode,
		FeedInfo:         feedInfo,
		ErrorCount:       counts[notice.SeverityError],
		WarningCount:     counts[notice.SeverityWarning],
		InfoCount:        counts[notice.SeverityInfo],
	}
	if !opts.StripRuntimeFields {
		summary.GeneratedAt = nowRFC3339
	} else {
		summary.ValidatorVersion = ""
		summary.RunID = ""
	}

	return &Report{Summary: summary, Notices: groups, SystemErrors: sysErrs}
}

// NoticeSchemaEntry is the public shape of notice_schema()'s elements.
type NoticeSchemaEntry struct {
	Code         string   `json:"code"`
	Severity     notice.Severity `json:"severity"`
	ContextFields []string `json:"contextFields"`
}

// NoticeSchema exposes every registered notice code, per spec.md §6's
// notice_schema() surface.
func NoticeSchema() []NoticeSchemaEntry {
	entries := notice.Schema()
	out := make([]NoticeSchemaEntry, len(entries))
	for i, e := range entries {
		out[i] = NoticeSchemaEntry{Code: e.Code, Severity: e.Severity, ContextFields: e.FieldOrder}
	}
	return out
}
