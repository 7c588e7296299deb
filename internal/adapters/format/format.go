// Package format reshapes tagged source records into canonical attendance
// events, injecting resolved identity ids.
package format

import (
	"context"
	"time"

	"github.com/okian/rollcall/internal/adapters/source"
	"github.com/okian/rollcall/internal/domain/identity"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/namekey"
	"github.com/okian/rollcall/pkg/logger"
	"github.com/okian/rollcall/pkg/metrics"
)

// timestampLayouts are tried in order when parsing source timestamps.
var timestampLayouts = []string{ //nolint:gochecknoglobals // static parse table
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01/02/2006",
}

// Formatter converts tagged rows into model.AttendanceEvent values. It calls
// the resolver exactly once per surviving row, event-log rows before
// service-log rows, matching the resolution context's precedence.
type Formatter struct {
	res *identity.Context
	loc *time.Location
	log logger.Logger

	skipped int
}

// Option applies a configuration option to the Formatter.
type Option func(*Formatter)

// WithLocation sets the timezone used to parse source timestamps.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the formatter.
func WithLogger(log logger.Logger) Option {
	return func(f *Formatter) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a formatter bound to one run's resolution context.
func New(res *identity.Context, opts ...Option) *Formatter {
	f := &Formatter{
		res: res,
		loc: time.Local,
		log: logger.Get().Named("format"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format converts the snapshot's attendance rows into canonical events.
// Rows with an empty normalized name or an unparseable timestamp are
// skipped, counted, and logged individually. Only allocation exhaustion is
// fatal.
func (f *Formatter) Format(ctx context.Context, tables *source.Tables) ([]model.AttendanceEvent, error) {
	events := make([]model.AttendanceEvent, 0, len(tables.Events)+len(tables.Services))

	for i, rec := range tables.Events {
		e, ok, err := f.formatEventRow(ctx, i, rec)
		if err != nil {
			return nil, err
		}
		if ok {
			events = append(events, e)
		}
	}

	for i, rec := range tables.Services {
		e, ok, err := f.formatServiceRow(ctx, i, rec)
		if err != nil {
			return nil, err
		}
		if ok {
			events = append(events, e)
		}
	}

	return events, nil
}

// SkippedRows reports how many rows this formatter has dropped.
func (f *Formatter) SkippedRows() int {
	return f.skipped
}

func (f *Formatter) formatEventRow(ctx context.Context, row int, rec source.EventRecord) (model.AttendanceEvent, bool, error) {
	key := namekey.Normalize(rec.FullName)
	if key == "" {
		f.skip(ctx, source.KindEventLog, row, "missing_name")
		return model.AttendanceEvent{}, false, nil
	}

	ts, ok := f.parseTimestamp(rec.Timestamp)
	if !ok {
		f.skip(ctx, source.KindEventLog, row, "bad_timestamp")
		return model.AttendanceEvent{}, false, nil
	}

	id, err := f.res.Resolve(key)
	if err != nil {
		return model.AttendanceEvent{}, false, err
	}

	metrics.RecordEventFormatted()
	return model.AttendanceEvent{
		IdentityID:      id,
		FullName:        rec.FullName,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Email:           rec.Email,
		Phone:           rec.Phone,
		EventName:       rec.EventName,
		EventID:         rec.EventID,
		Role:            rec.Role,
		FormSheetOrigin: rec.FormSheetOrigin,
		Timestamp:       ts,
	}, true, nil
}

func (f *Formatter) formatServiceRow(ctx context.Context, row int, rec source.ServiceRecord) (model.AttendanceEvent, bool, error) {
	key := namekey.Normalize(rec.FullName)
	if key == "" {
		f.skip(ctx, source.KindServiceLog, row, "missing_name")
		return model.AttendanceEvent{}, false, nil
	}

	ts, ok := f.parseTimestamp(rec.Timestamp)
	if !ok {
		f.skip(ctx, source.KindServiceLog, row, "bad_timestamp")
		return model.AttendanceEvent{}, false, nil
	}

	id, err := f.res.Resolve(key)
	if err != nil {
		return model.AttendanceEvent{}, false, err
	}

	metrics.RecordEventFormatted()
	return model.AttendanceEvent{
		IdentityID: id,
		FullName:   rec.FullName,
		FirstName:  rec.FirstName,
		LastName:   rec.LastName,
		Email:      rec.Email,
		EventName:  model.RecurringServiceName,
		EventID:    model.RecurringServiceID,
		Timestamp:  ts,
	}, true, nil
}

func (f *Formatter) parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, f.loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (f *Formatter) skip(ctx context.Context, kind source.Kind, row int, reason string) {
	f.skipped++
	metrics.RecordRowSkipped(kind.String(), reason)
	f.log.Warn(ctx, "skipping row",
		logger.String("source", kind.String()),
		logger.Int("row", row),
		logger.String("reason", reason))
}
