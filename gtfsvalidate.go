// Package gtfsguru implements the GTFS validation engine: feed loader,
// notice model, validator registry, and report emitter described by
// this repository's specification documents. Validate is the single
// library entry point host front-ends call.
package gtfsguru

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abasis-ltd/gtfs.guru/config"
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/internal"
	"github.com/abasis-ltd/gtfs.guru/notice"
	"github.com/abasis-ltd/gtfs.guru/report"
	"github.com/abasis-ltd/gtfs.guru/validatorset"
)

// Report and NoticeSchemaEntry are re-exported at the package root so
// callers of Validate don't need a separate import for the report
// package, matching spec.md §6's flat library surface.
type Report = report.Report
type NoticeSchemaEntry = report.NoticeSchemaEntry

// Input selects how the feed archive is read. Exactly one field is set.
type Input struct {
	ZipPath string
	Directory string
	ZipBytes []byte
}

func (i Input) open() (*feed.Archive, error) {
	switch {
	case i.ZipPath != "":
		return feed.OpenZipPath(i.ZipPath)
	case i.Directory != "":
		return feed.OpenDirectory(i.Directory)
	case i.ZipBytes != nil:
		return feed.OpenZipBytes(i.ZipBytes)
	default:
		return nil, fmt.Errorf("gtfsguru: no input source set")
	}
}

// Options configures one Validate call. It combines the engine's own
// caller-facing knobs (config.Options) with an optional EngineDefaults
// override file path and an optional injected logger. The emission-time
// report.Options are derived from the embedded config.Options fields.
type Options struct {
	config.Options
	EngineDefaultsPath string
	Logger             *zerolog.Logger
}

// Validate runs the full pipeline — open archive, load feed, build
// indexes, run every registered validator, emit the report — and
// returns the finished report. It never panics: validator-internal
// panics are caught per spec.md §7 and surfaced as system errors
// instead, but input-level failures (unreadable archive) do return an
// error with no report, per spec.md §7 channel 1.
func Validate(input Input, opts Options) (*report.Report, error) {
	if err := config.ValidateOptions(opts.Options); err != nil {
		return nil, err
	}
	if opts.Options.ValidationDate == "" {
		opts.Options.ValidationDate = time.Now().Format("20060102")
	}
	defaults, err := config.LoadEngineDefaults(opts.EngineDefaultsPath)
	if err != nil {
		return nil, err
	}

	log := internal.NopLogger()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	archive, err := input.open()
	if err != nil {
		return nil, fmt.Errorf("gtfsguru: %w", err)
	}

	notices := notice.NewContainer()
	container := feed.Build(archive, notices, log)

	ctx := validatorset.NewContext(container, defaults, opts.Options, notices, log)
	threads := opts.Options.Threads
	if threads <= 0 {
		threads = defaults.DefaultThreads
	}

	registry := validatorset.NewRegistry(validatorset.Default()...)
	systemErrors := registry.Run(ctx, threads)

	feedInfo := buildFeedInfoStub(container)
	reportOpts := report.Options{
		CountryCode:        opts.Options.CountryCode,
		ValidationDate:     opts.Options.ValidationDate,
		StripRuntimeFields: opts.Options.StripRuntimeFields,
		MaxNoticesPerCode:  opts.Options.MaxNoticesPerCode,
	}
	return report.Build(notices, systemErrors, feedInfo, reportOpts, time.Now().UTC().Format(time.RFC3339)), nil
}

// NoticeSchema exposes every notice code this engine can raise, for
// host front-ends that want to render a rule catalog without running a
// validation (spec.md §6's notice_schema()).
func NoticeSchema() []report.NoticeSchemaEntry {
	return report.NoticeSchema()
}

func buildFeedInfoStub(c *feed.Container) *report.FeedInfoStub {
	t := c.Table("feed_info.txt")
	if t == nil || !t.Present || len(t.Rows) == 0 {
		return nil
	}
	row := t.Rows[0]
	get := func(col string) string {
		v, _ := row.Get(col)
		return v
	}
	return &report.FeedInfoStub{
		PublisherName: get("feed_publisher_name"),
		PublisherURL:  get("feed_publisher_url"),
		Lang:          get("feed_lang"),
		Version:       get("feed_version"),
		StartDate:     get("feed_start_date"),
		EndDate:       get("feed_end_date"),
	}
}
