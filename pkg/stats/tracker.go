// Package stats provides a [Tracker] that durably records how many times each media track
// has been played, and ranks the most played ones.
//
// Tracking is best effort: the tracker never returns errors to its caller. When the storage
// engine can't be loaded or the database can't be opened, the tracker runs in degraded mode
// where every operation is a no-op returning false, zero or an empty ranking.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zapstore/playstats/pkg/stats/store"
	_ "modernc.org/sqlite"
)

const (
	// FileName is the name of the database file inside the tracker directory.
	FileName = "stats_tracker.db"

	// DefaultTopN is the default length of the most played ranking.
	DefaultTopN = 10
)

// TrackStat is a track identifier paired with its play count.
type TrackStat = store.TrackStat

// Tracker records play counts of tracks in a sqlite database.
// The zero value is a closed tracker; use [New] or [Tracker.Initialize] to open it.
type Tracker struct {
	mu    sync.Mutex
	store *store.Store
	dir   string
	err   error // why store is nil, if it is

	config  Config
	log     *slog.Logger
	metrics *Metrics
}

type Option func(*Tracker)

// WithMetrics makes the tracker update the given metrics.
func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// New creates a tracker and initializes it in the directory of the config.
// A nil logger defaults to [slog.Default].
func New(c Config, logger *slog.Logger, opts ...Option) *Tracker {
	if c.Driver == "" {
		c.Driver = DriverCgo
	}
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		config: c,
		log:    logger.With("component", "stats"),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.Initialize(c.Dir)
	return t
}

// Initialize opens the database in the given directory, creating both if they don't exist.
// Any previously open database is closed first.
// If the database can't be opened, the tracker enters degraded mode and the reason is logged.
func (t *Tracker) Initialize(dir string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.close()
	t.dir = dir

	s, err := t.open(dir)
	if err != nil {
		t.err = err
		t.metrics.setDegraded(true)
		t.logger().Error("stats: tracking disabled", "dir", dir, "err", err)
		return
	}

	t.store = s
	t.err = nil
	t.metrics.setDegraded(false)
	t.logger().Info("stats: database opened", "path", s.Path(), "created", s.Created())
}

func (t *Tracker) open(dir string) (*store.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %w", ErrConnectionFailure, err)
	}

	driver := t.config.Driver
	if driver == "" {
		driver = DriverCgo
	}

	s, err := store.New(driver, filepath.Join(dir, FileName), t.config.BusyTimeout)
	switch {
	case errors.Is(err, store.ErrDriverNotRegistered), errors.Is(err, store.ErrDriverUnavailable):
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	return s, nil
}

// Close closes the database. It's safe to call multiple times, and on a tracker
// that was never opened.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.close()
}

func (t *Tracker) close() {
	if t.store != nil {
		if err := t.store.Close(); err != nil {
			t.logger().Error("stats: failed to close database", "path", t.store.Path(), "err", err)
		}
	}
	t.store = nil
	t.err = ErrClosed
}

// Degraded reports whether the tracker is running without a database.
func (t *Tracker) Degraded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store == nil
}

// Err returns the reason the tracker is degraded, or nil if it isn't.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store != nil {
		return nil
	}
	if t.err == nil {
		return ErrClosed
	}
	return t.err
}

// Path returns the path of the database file.
func (t *Tracker) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dir == "" {
		return ""
	}
	return filepath.Join(t.dir, FileName)
}

// HasCount reports whether the track has ever been played.
func (t *Tracker) HasCount(track string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.hasCount(track)
	t.report("has count", r.Err, "track", track)
	return r.Value
}

// GetCount returns the number of times the track has been played.
func (t *Tracker) GetCount(track string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.getCount(track)
	t.report("get count", r.Err, "track", track)
	return r.Value
}

// IncrementCount records one play of the track.
func (t *Tracker) IncrementCount(track string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.incrementCount(track)
	t.report("increment count", r.Err, "track", track)
	if r.Err == nil {
		t.logger().Debug("stats: play recorded", "track", track, "count", r.Value)
	}
}

// TopN returns up to n of the most played tracks, highest count first.
// Tracks with the same count are in the order they were first played.
func (t *Tracker) TopN(n int) []TrackStat {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.topN(n)
	t.report("top n", r.Err, "n", n)
	return r.Value
}

// Top10 returns the [DefaultTopN] most played tracks.
func (t *Tracker) Top10() []TrackStat {
	return t.TopN(DefaultTopN)
}

// ResetAll removes the play counts of all tracks.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.resetAll()
	t.report("reset all", r.Err)
	if r.Err == nil {
		t.logger().Info("stats: reset all play counts", "removed", r.Value)
	}
}

func (t *Tracker) hasCount(track string) Result[bool] {
	s, err := t.available()
	if err != nil {
		return fail[bool](err)
	}

	ctx, cancel := t.context()
	defer cancel()

	has, err := s.Has(ctx, track)
	if err != nil {
		return fail[bool](fmt.Errorf("%w: %w", ErrQueryFailure, err))
	}
	return ok(has)
}

func (t *Tracker) getCount(track string) Result[int] {
	s, err := t.available()
	if err != nil {
		return fail[int](err)
	}

	ctx, cancel := t.context()
	defer cancel()

	count, err := s.Count(ctx, track)
	if err != nil {
		return fail[int](fmt.Errorf("%w: %w", ErrQueryFailure, err))
	}
	return ok(count)
}

func (t *Tracker) incrementCount(track string) Result[int] {
	s, err := t.available()
	if err != nil {
		return fail[int](err)
	}

	ctx, cancel := t.context()
	defer cancel()

	count, err := s.Increment(ctx, track)
	if err != nil {
		return fail[int](fmt.Errorf("%w: %w", ErrQueryFailure, err))
	}

	t.metrics.play()
	return ok(count)
}

func (t *Tracker) topN(n int) Result[[]TrackStat] {
	s, err := t.available()
	if err != nil {
		return fail[[]TrackStat](err)
	}

	ctx, cancel := t.context()
	defer cancel()

	top, err := s.Top(ctx, n)
	if err != nil {
		return fail[[]TrackStat](fmt.Errorf("%w: %w", ErrQueryFailure, err))
	}
	return ok(top)
}

func (t *Tracker) resetAll() Result[int64] {
	s, err := t.available()
	if err != nil {
		return fail[int64](err)
	}

	ctx, cancel := t.context()
	defer cancel()

	removed, err := s.Reset(ctx)
	if err != nil {
		return fail[int64](fmt.Errorf("%w: %w", ErrQueryFailure, err))
	}

	t.metrics.reset()
	return ok(removed)
}

// available returns the open store, or the reason there is none.
func (t *Tracker) available() (*store.Store, error) {
	if t.store != nil {
		return t.store, nil
	}
	if t.err != nil {
		return nil, t.err
	}
	return nil, ErrClosed
}

func (t *Tracker) context() (context.Context, context.CancelFunc) {
	if t.config.QueryTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), t.config.QueryTimeout)
}

// report logs the error of an operation. Degraded mode is only logged once, on initialization.
func (t *Tracker) report(op string, err error, args ...any) {
	switch {
	case err == nil:
		return

	case errors.Is(err, ErrQueryFailure):
		t.metrics.failure(op)
		t.logger().Error("stats: failed to "+op, append(args, "err", err)...)

	case errors.Is(err, ErrClosed):
		t.logger().Debug("stats: "+op+" on closed tracker", args...)
	}
}

func (t *Tracker) logger() *slog.Logger {
	if t.log == nil {
		return slog.Default()
	}
	return t.log
}
