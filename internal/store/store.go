package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/stats"
)

// Record is an entity a store can cache.
type Record interface {
	RecordID() uuid.UUID
	RecordCreatedAt() time.Time
}

// Source is the remote side of a store: the table this collection mirrors.
// Insert and Update return the server-canonical record; the store always
// caches that, never the caller's input.
type Source[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Config wires one store instance.
type Config[T Record] struct {
	Table  string
	Source Source[T]
	// Bus is optional. When set, local mutations are published on it and the
	// store reconciles its own table's feed events into the collection.
	Bus     *realtime.Bus
	Logger  *slog.Logger
	Metrics *metrics.Metrics // optional
	// SearchFields extracts the free-text-searchable strings of a record.
	SearchFields func(T) []string
}

// Store keeps a locally cached, ordered collection of one entity type,
// synchronized with the table that owns it. The collection is never
// authoritative: it is replaced by fetches, patched by confirmed mutations
// and reconciled with change-feed events. Every applied change bumps a
// monotonically increasing version; an async completion that raced a newer
// change is discarded instead of clobbering it.
type Store[T Record] struct {
	table        string
	source       Source[T]
	bus          *realtime.Bus
	logger       *slog.Logger
	m            *metrics.Metrics
	searchFields func(T) []string

	mu      sync.RWMutex
	records []T
	version uint64
	lastErr string
	loading bool
}

func New[T Record](cfg Config[T]) *Store[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store[T]{
		table:        cfg.Table,
		source:       cfg.Source,
		bus:          cfg.Bus,
		logger:       logger.With("table", cfg.Table),
		m:            cfg.Metrics,
		searchFields: cfg.SearchFields,
	}
	if s.bus != nil {
		// Reconcile this table's feed. The store's own published mutations
		// come back through here too; Apply tolerates them. A malformed
		// event means the channel can no longer be trusted.
		s.bus.Subscribe(s.table, func(ev realtime.Event) {
			if err := s.Apply(ev); err != nil {
				s.OnChannelError(context.Background(), err)
			}
		})
	}
	return s
}

func (s *Store[T]) Table() string { return s.table }

// Refresh replaces the collection with the table's current contents.
// A refresh that completes after the collection moved on (newer fetch,
// confirmed mutation or applied event) is discarded; the newer state wins
// and the next refresh is authoritative. Foreground refreshes report their
// error to the caller; background refreshes only record it.
func (s *Store[T]) Refresh(ctx context.Context, foreground bool) error {
	s.mu.Lock()
	startVersion := s.version
	if foreground {
		s.loading = true
	}
	s.mu.Unlock()

	records, err := s.source.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		s.count("refresh", "error")
		if foreground {
			return err
		}
		s.logger.Warn("background refresh failed", "err", err)
		return nil
	}

	if s.version != startVersion {
		s.count("refresh", "stale")
		s.logger.Debug("discarding stale fetch result", "fetched_at_version", startVersion, "current_version", s.version)
		return nil
	}

	s.records = records
	s.lastErr = ""
	s.version++
	s.count("refresh", "ok")
	return nil
}

// Create sends the record to the table and prepends the server-canonical
// result. Validation belongs to the caller; by the time Create runs the
// record is, as far as the client can tell, well formed.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	canonical, err := s.source.Insert(ctx, rec)
	if err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	s.records = append([]T{canonical}, s.records...)
	s.version++
	s.mu.Unlock()

	s.publish(realtime.EventInsert, canonical.RecordID(), canonical)
	return canonical, nil
}

// Update requires the id to exist locally (NotFound without a network call),
// runs the caller's mutate step (sanitization and field validation happen
// there, before any network traffic) and replaces the local record with the
// server response.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, mutate func(T) (T, error)) (T, error) {
	var zero T

	existing, ok := s.Find(id)
	if !ok {
		return zero, apperr.NotFound(s.table+".update", "record is not in the local collection")
	}

	updated, err := mutate(existing)
	if err != nil {
		return zero, err
	}

	canonical, err := s.source.Update(ctx, updated)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.records {
		if s.records[i].RecordID() == id {
			s.records[i] = canonical
			replaced = true
			break
		}
	}
	if !replaced {
		// The record vanished while the write was in flight; the server
		// response is still authoritative.
		s.records = append([]T{canonical}, s.records...)
	}
	s.version++
	s.mu.Unlock()

	s.publish(realtime.EventUpdate, id, canonical)
	return canonical, nil
}

// Delete requires local existence, then removes the record only after the
// table confirms.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.Find(id); !ok {
		return apperr.NotFound(s.table+".delete", "record is not in the local collection")
	}

	if err := s.source.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.version++
	s.mu.Unlock()

	s.publish(realtime.EventDelete, id, nil)
	return nil
}

var errBadPayload = errors.New("event payload has the wrong type")

// Apply reconciles one change-feed event into the collection. Duplicate
// inserts and events for unknown ids are tolerated: the feed may race a
// fetch or deliver changes this store already made. A payload of the wrong
// type is a channel-level failure and is returned to the caller.
func (s *Store[T]) Apply(ev realtime.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case realtime.EventInsert:
		rec, ok := ev.Record.(T)
		if !ok {
			return apperr.Realtime(s.table+".apply", errBadPayload)
		}
		for i := range s.records {
			if s.records[i].RecordID() == rec.RecordID() {
				return nil // already present, e.g. our own optimistic insert
			}
		}
		s.records = append([]T{rec}, s.records...)

	case realtime.EventUpdate:
		rec, ok := ev.Record.(T)
		if !ok {
			return apperr.Realtime(s.table+".apply", errBadPayload)
		}
		found := false
		for i := range s.records {
			if s.records[i].RecordID() == rec.RecordID() {
				s.records[i] = rec
				found = true
				break
			}
		}
		if !found {
			// Out-of-order delivery for a record we never fetched. Safe to
			// drop: the next refresh is authoritative.
			s.logger.Debug("update event for unknown record ignored", "id", rec.RecordID())
			return nil
		}

	case realtime.EventDelete:
		s.removeLocked(ev.ID)
	}

	s.version++
	if s.m != nil {
		s.m.StoreEvents.WithLabelValues(s.table, string(ev.Type)).Inc()
	}
	return nil
}

// OnChannelError restores consistency after a subscription failure with a
// full silent re-fetch; the cache is non-authoritative, so incremental
// repair is never attempted.
func (s *Store[T]) OnChannelError(ctx context.Context, cause error) {
	s.logger.Warn("realtime channel error, re-fetching collection", "err", cause)
	if s.m != nil {
		s.m.Errors.WithLabelValues("realtime").Inc()
	}
	_ = s.Refresh(ctx, false)
}

// Snapshot returns a copy of the collection and its version.
func (s *Store[T]) Snapshot() ([]T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out, s.version
}

// Find returns the locally cached record with the given id.
func (s *Store[T]) Find(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].RecordID() == id {
			return s.records[i], true
		}
	}
	var zero T
	return zero, false
}

// FilterFunc returns the records matching pred, preserving order.
func (s *Store[T]) FilterFunc(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.records))
	for i := range s.records {
		if pred(s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}

// Search matches q case-insensitively against the configured string fields.
func (s *Store[T]) Search(q string) []T {
	if s.searchFields == nil || q == "" {
		records, _ := s.Snapshot()
		return records
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	return s.FilterFunc(func(rec T) bool {
		for _, f := range s.searchFields(rec) {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	})
}

// CreatedCounts buckets the collection by creation time: today, this week
// (Sunday start), this month.
type CreatedCounts struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

func (s *Store[T]) CountCreated(now time.Time) CreatedCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := stats.StartOfDay(now)
	week := stats.StartOfWeek(now)
	month := stats.StartOfMonth(now)

	counts := CreatedCounts{Total: len(s.records)}
	for i := range s.records {
		created := s.records[i].RecordCreatedAt()
		if !created.Before(day) {
			counts.Today++
		}
		if !created.Before(week) {
			counts.ThisWeek++
		}
		if !created.Before(month) {
			counts.ThisMonth++
		}
	}
	return counts
}

// Loading reports whether a foreground fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent fetch error message, empty after a
// successful fetch.
func (s *Store[T]) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Version returns the current collection version.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// StartRefreshLoop refreshes the collection in the background on a fixed
// interval until ctx is cancelled.
func (s *Store[T]) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Refresh(ctx, false)
			}
		}
	}()
}

func (s *Store[T]) removeLocked(id uuid.UUID) {
	for i := range s.records {
		if s.records[i].RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

func (s *Store[T]) publish(typ realtime.EventType, id uuid.UUID, rec any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(realtime.Event{Table: s.table, Type: typ, ID: id, Record: rec})
}

func (s *Store[T]) count(op, status string) {
	if s.m == nil {
		return
	}
	switch op {
	case "refresh":
		s.m.StoreRefreshes.WithLabelValues(s.table, status).Inc()
	}
}
