package validatorset

import (
	"github.com/abasis-ltd/gtfs.guru/config"
	"github.com/abasis-ltd/gtfs.guru/feed"
	"github.com/abasis-ltd/gtfs.guru/notice"
	"github.com/rs/zerolog"
)

// Context bundles everything a validator needs to read: the loaded
// feed, the injectable constant set, the caller's run options, the
// shared notice sink, and the validation date parsed from
// Options.ValidationDate (Validate fills an empty ValidationDate with the
// host's local date before building the Context). Validators never construct one
// themselves — the root library builds exactly one per Validate call.
type Context struct {
	Feed     *feed.Container
	Defaults config.EngineDefaults
	Options  config.Options
	Notices  *notice.Container
	Date     feed.Date
	Log      zerolog.Logger
}

// Add is a convenience wrapper over ctx.Notices.Add, so rule files read
// "ctx.Add(...)" instead of reaching into the nested field everywhere.
func (ctx *Context) Add(n notice.Notice) { ctx.Notices.Add(n) }

// NewContext resolves the validation date from Options.ValidationDate, or
// the zero Date if it is unset or unparseable. It never reads the clock
// itself; Validate supplies the host's local date when the caller leaves
// ValidationDate empty.
func NewContext(f *feed.Container, defaults config.EngineDefaults, opts config.Options, notices *notice.Container, log zerolog.Logger) *Context {
	var date feed.Date
	if opts.ValidationDate != "" {
		if d, outcome := feed.ParseDate(opts.ValidationDate); outcome == feed.OK {
			date = d
		}
	}
	return &Context{
		Feed:     f,
		Defaults: defaults,
		Options:  opts,
		Notices:  notices,
		Date:     date,
		Log:      log,
	}
}
