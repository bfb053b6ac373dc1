// Package status turns account and sync events into what the account screen
// shows: a small DisplayState and the human summary of the last sync.
//
// Everything here is pure. Time comes from an injected clock and locale
// data from a compiled message catalog.
package status

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mrz1836/syncstatus/internal/clock"
	"github.com/mrz1836/syncstatus/internal/domain"
)

const (
	day        = 24 * time.Hour
	week       = 7 * day
	yearOfWeek = 52 * week
)

// Summarizer renders sync outcomes for the reducer.
type Summarizer interface {
	// Summary returns one of the four summary shapes for o.
	Summary(o domain.SyncOutcome) string

	// SyncingLabel is the text announced when a sync starts.
	SyncingLabel() string
}

// Formatter is the locale-aware Summarizer.
type Formatter struct {
	clock   clock.Clock
	loc     *time.Location
	tag     language.Tag
	printer *message.Printer
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithClock sets the clock relative times are measured against.
func WithClock(c clock.Clock) FormatterOption {
	return func(f *Formatter) { f.clock = c }
}

// WithLocale sets the language. Unsupported languages fall back to the
// closest catalog language, English by default.
func WithLocale(tag language.Tag) FormatterOption {
	return func(f *Formatter) { f.tag = matchLocale(tag) }
}

// WithLocation sets the time zone used for absolute dates.
func WithLocation(loc *time.Location) FormatterOption {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// NewFormatter returns an English, local-time Formatter on the real clock
// unless options say otherwise.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		clock: clock.RealClock{},
		loc:   time.Local,
		tag:   language.English,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.printer = message.NewPrinter(f.tag, message.Catalog(summaryCatalog))
	return f
}

// Locale returns the catalog language in use.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Summary implements Summarizer. Negative timestamps count as never synced.
func (f *Formatter) Summary(o domain.SyncOutcome) string {
	o = o.Normalize()
	switch {
	case !o.Failed && o.NeverSynced():
		return f.printer.Sprintf(keyNeverSynced)
	case o.Failed && o.NeverSynced():
		return f.printer.Sprintf(keyFailedNeverSynced)
	case !o.Failed:
		return f.printer.Sprintf(keySynced, f.Relative(o.LastSyncedAt()))
	default:
		return f.printer.Sprintf(keyFailedLastSuccess, f.Relative(o.LastSyncedAt()))
	}
}

// SyncingLabel implements Summarizer.
func (f *Formatter) SyncingLabel() string {
	return f.printer.Sprintf(keySyncing)
}

// Relative renders t relative to now. Timestamps in the future, or less
// than a minute old, are "just now"; anything older than 52 weeks is an
// absolute date in the formatter's time zone. Later inputs never render
// as older than earlier ones.
func (f *Formatter) Relative(t time.Time) string {
	diff := f.clock.Now().Sub(t)

	switch {
	case diff < time.Minute:
		return f.printer.Sprintf(keyJustNow)
	case diff < time.Hour:
		return f.printer.Sprintf(keyMinutesAgo, int(diff/time.Minute))
	case diff < day:
		return f.printer.Sprintf(keyHoursAgo, int(diff/time.Hour))
	case diff < week:
		return f.printer.Sprintf(keyDaysAgo, int(diff/day))
	case diff < yearOfWeek:
		return f.printer.Sprintf(keyWeeksAgo, int(diff/week))
	default:
		return t.In(f.loc).Format(dateLayouts[f.tag])
	}
}
