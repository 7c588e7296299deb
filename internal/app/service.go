// Package service provides the core reconciliation service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rollcall/internal/adapters/export"
	"github.com/okian/rollcall/internal/adapters/format"
	"github.com/okian/rollcall/internal/adapters/repository"
	"github.com/okian/rollcall/internal/adapters/source"
	"github.com/okian/rollcall/internal/domain/activity"
	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/identity"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/namekey"
	"github.com/okian/rollcall/pkg/logger"
	"github.com/okian/rollcall/pkg/metrics"
)

// wireDateLayout matches the stats table's serialized dates (MM/dd/yyyy).
const wireDateLayout = "01/02/2006"

// Service runs the reconciliation pipeline and serves its results.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	classifier *activity.Classifier
	rosterRule *activity.RosterRule

	// Configuration
	directoryPath  string
	eventLogPath   string
	serviceLogPath string
	statsPath      string
	outputPath     string
	loc            *time.Location
	clock          func() time.Time
	scanLimit      int

	// Run state
	lastRunID    string
	lastRun      time.Time
	eventCount   int
	skippedRows  int
	summaryCount int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSourcePaths sets the three required input table paths.
func WithSourcePaths(directory, eventLog, serviceLog string) Option {
	return func(s *Service) {
		s.directoryPath = directory
		s.eventLogPath = eventLog
		s.serviceLogPath = serviceLog
	}
}

// WithStatsPath sets the optional downstream stats table used for roster
// filtering.
func WithStatsPath(path string) Option {
	return func(s *Service) {
		s.statsPath = path
	}
}

// WithOutputPath sets where the summary table is exported. Empty skips
// export.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		s.outputPath = path
	}
}

// WithLocation sets the timezone for calendar windows and wire dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock injects the reference-time source. Runs must be reproducible
// under test, so "now" is never read implicitly.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithScanLimit bounds identifier allocation collisions.
func WithScanLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.scanLimit = limit
		}
	}
}

// WithClassifier sets a custom activity classifier.
func WithClassifier(c *activity.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithRosterRule sets a custom roster inclusion rule.
func WithRosterRule(r *activity.RosterRule) Option {
	return func(s *Service) {
		if r != nil {
			s.rosterRule = r
		}
	}
}

// WithStore sets a custom summary store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a Service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		store:      repository.NewMemStore(),
		classifier: activity.NewClassifier(),
		rosterRule: activity.NewRosterRule(),
		loc:        time.Local,
		clock:      time.Now,
		logger:     logger.Get().Named("service"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one full reconciliation pass: load the source snapshot,
// resolve identities, format events, aggregate, classify, store, export.
// Resolution state is built fresh each run; nothing carries over.
func (s *Service) Run(ctx context.Context) error {
	runID := uuid.New().String()
	started := time.Now()
	s.logger.Info(ctx, "reconciliation run starting",
		logger.String("run_id", runID))

	tables, err := source.LoadTables(ctx, s.directoryPath, s.eventLogPath, s.serviceLogPath)
	if err != nil {
		metrics.RecordRunError("missing_source")
		return err
	}

	res := identity.NewContext(identityOptions(s.scanLimit)...)
	res.Seed(
		directoryObservations(tables),
		eventObservations(tables),
		serviceObservations(tables),
	)

	fmtr := format.New(res,
		format.WithLocation(s.loc),
		format.WithLogger(s.logger),
	)
	events, err := fmtr.Format(ctx, tables)
	if err != nil {
		metrics.RecordRunError("allocation_exhausted")
		return err
	}

	now := s.clock()
	agg := aggregate.New(aggregate.WithLocation(s.loc))
	summaries := agg.Aggregate(ctx, events, now)

	// The classifier consumes externally supplied counters; feeding it the
	// aggregator's quarter and month windows is this service's explicit
	// wiring choice, not classifier behavior.
	for i := range summaries {
		summaries[i].ActivityLevel = s.classifier.Classify(
			strconv.Itoa(summaries[i].QuarterEventCount),
			strconv.Itoa(summaries[i].MonthEventCount),
		)
	}

	s.store.Replace(ctx, summaries)

	if s.outputPath != "" {
		if err := export.WriteSummariesFile(s.outputPath, summaries, s.loc); err != nil {
			metrics.RecordRunError("export")
			return err
		}
	}

	elapsed := time.Since(started)
	metrics.RecordRunDuration(elapsed.Seconds())
	metrics.UpdateLastRunUnix(now.Unix())

	s.mu.Lock()
	s.lastRunID = runID
	s.lastRun = now
	s.eventCount = len(events)
	s.skippedRows = fmtr.SkippedRows()
	s.summaryCount = len(summaries)
	s.mu.Unlock()

	s.logger.Info(ctx, "reconciliation run complete",
		logger.String("run_id", runID),
		logger.Int("events", len(events)),
		logger.Int("skipped_rows", fmtr.SkippedRows()),
		logger.Int("summaries", len(summaries)),
		logger.Int("identities", res.MappedCount()),
		logger.Duration("elapsed", elapsed))

	return nil
}

// Summaries returns every summary from the most recent run in identity-id
// order.
func (s *Service) Summaries(ctx context.Context) []model.AttendanceSummary {
	return s.store.List(ctx)
}

// Summary returns the summary for one identity.
func (s *Service) Summary(ctx context.Context, identityID int) (model.AttendanceSummary, error) {
	return s.store.Get(ctx, identityID)
}

// Roster returns the summaries passing the roster inclusion rule. When a
// stats table is configured the roster reads it back; otherwise the run's
// own summaries feed the rule.
func (s *Service) Roster(ctx context.Context) ([]model.AttendanceSummary, error) {
	now := s.clock()

	if s.statsPath != "" {
		stats, err := source.LoadStats(ctx, s.statsPath)
		if err != nil {
			return nil, err
		}
		roster := make([]model.AttendanceSummary, 0, len(stats))
		for _, rec := range stats {
			sum := s.statsSummary(rec)
			if s.rosterRule.Include(sum, now) {
				roster = append(roster, sum)
			}
		}
		return roster, nil
	}

	roster := make([]model.AttendanceSummary, 0)
	for _, sum := range s.store.List(ctx) {
		if s.rosterRule.Include(sum, now) {
			roster = append(roster, sum)
		}
	}
	return roster, nil
}

// GetStats exposes run counters for observability.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"lastRunID":   s.lastRunID,
		"lastRun":     s.lastRun,
		"events":      s.eventCount,
		"skippedRows": s.skippedRows,
		"summaries":   s.summaryCount,
	}
}

// statsSummary converts a stats-table row back into the summary shape the
// roster rule filters. A blank activity level is reclassified from the
// row's own window counters.
func (s *Service) statsSummary(rec source.StatsRecord) model.AttendanceSummary {
	id, _ := identity.ExtractID(rec.RawID)
	month, _ := strconv.Atoi(rec.MonthCount)

	level := rec.ActivityLevel
	if level == "" {
		level = s.classifier.Classify(rec.QuarterCount, rec.MonthCount)
	}

	var lastAttended time.Time
	if ts, err := time.ParseInLocation(wireDateLayout, rec.LastAttendedDate, s.loc); err == nil {
		lastAttended = ts
	}

	return model.AttendanceSummary{
		IdentityID:       id,
		DisplayName:      rec.FullName,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		MonthEventCount:  month,
		LastAttendedDate: lastAttended,
		LastEventName:    rec.LastEventName,
		ActivityLevel:    level,
	}
}

func identityOptions(scanLimit int) []identity.Option {
	if scanLimit > 0 {
		return []identity.Option{identity.WithScanLimit(scanLimit)}
	}
	return nil
}

// Observation extraction per source, in the resolver's precedence order:
// directory first, then the event log, then the service log.

func directoryObservations(t *source.Tables) []identity.Observation {
	obs := make([]identity.Observation, 0, len(t.Directory))
	for _, r := range t.Directory {
		obs = append(obs, identity.Observation{
			MatchKey: namekey.Normalize(r.FullName),
			RawID:    r.RawID,
		})
	}
	return obs
}

func eventObservations(t *source.Tables) []identity.Observation {
	obs := make([]identity.Observation, 0, len(t.Events))
	for _, r := range t.Events {
		obs = append(obs, identity.Observation{
			MatchKey: namekey.Normalize(r.FullName),
			RawID:    r.RawID,
		})
	}
	return obs
}

func serviceObservations(t *source.Tables) []identity.Observation {
	obs := make([]identity.Observation, 0, len(t.Services))
	for _, r := range t.Services {
		obs = append(obs, identity.Observation{
			MatchKey: namekey.Normalize(r.FullName),
			RawID:    r.RawID,
		})
	}
	return obs
}
