// Package recent keeps the bounded list of recently searched city names.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"weather-now/internal/storage"
)

const (
	// Key is the storage key holding the serialized list
	Key = "recentSearches"

	// MaxEntries bounds the list; older entries are dropped silently
	MaxEntries = 5
)

// Store is an ordered, most-recent-first list of city names, unique ignoring case
type Store struct {
	mu      sync.RWMutex
	writeMu sync.Mutex // serializes Record so writes reach kv in order
	kv      storage.KV
	entries []string
	logger  *slog.Logger
}

// Open loads the persisted list. A read failure or corrupt value yields an
// empty list rather than an error so startup never fails on it.
func Open(ctx context.Context, kv storage.KV, logger *slog.Logger) *Store {
	s := &Store{
		kv:     kv,
		logger: logger.With("component", "recent-searches"),
	}
	s.entries = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []string {
	raw, found, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.logger.Warn("failed to read recent searches, starting empty", "error", err)
		return []string{}
	}
	if !found {
		return []string{}
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("recent searches are corrupt, starting empty", "error", err)
		return []string{}
	}

	// normalize whatever was on disk through the same rules as Record
	normalized := []string{}
	for i := len(entries) - 1; i >= 0; i-- {
		normalized = Add(normalized, entries[i])
	}

	s.logger.Debug("loaded recent searches", "count", len(normalized))
	return normalized
}

// Entries returns a copy of the list, most recent first
func (s *Store) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Record moves city to the front of the list and persists it. The in-memory
// list is updated even when the write fails; the write error is returned.
func (s *Store) Record(ctx context.Context, city string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.entries = Add(s.entries, city)
	snapshot := make([]string, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode recent searches: %w", err)
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		s.logger.Warn("failed to persist recent searches", "error", err)
		return fmt.Errorf("failed to persist recent searches: %w", err)
	}
	return nil
}

// Add returns a new list with city at the front, any case-insensitive
// duplicate removed, truncated to MaxEntries. Blank names are ignored.
func Add(entries []string, city string) []string {
	city = strings.TrimSpace(city)
	if city == "" {
		return entries
	}

	next := make([]string, 0, MaxEntries)
	next = append(next, city)
	for _, existing := range entries {
		if len(next) == MaxEntries {
			break
		}
		if strings.EqualFold(existing, city) {
			continue
		}
		next = append(next, existing)
	}
	return next
}
