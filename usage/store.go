package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/nullmedium/exek/model"
)

// Record is the launch history of one key. A missing key reads as the zero
// Record.
type Record struct {
	LaunchCount  uint32     `json:"launch_count"`
	LastLaunched *time.Time `json:"last_launched"`
}

// document is the on-disk layout.
type document struct {
	Usage map[string]Record `json:"usage"`
}

// Store keeps launch counts per key and rewrites its file on every change.
// It is not safe for concurrent use.
type Store struct {
	path  string
	usage map[string]Record
	now   func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the store at path. A missing file is an empty store; a file
// that cannot be read or decoded is an error.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:  path,
		usage: make(map[string]Record),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read usage store: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse usage store %s: %w", path, err)
	}
	if doc.Usage != nil {
		s.usage = doc.Usage
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Record counts one launch of key and persists the store. The in-memory
// update stands even when the write fails.
func (s *Store) Record(key string) error {
	rec := s.usage[key]
	rec.LaunchCount++
	now := s.now().UTC()
	rec.LastLaunched = &now
	s.usage[key] = rec
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.MarshalIndent(document{Usage: s.usage}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode usage store: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write usage store: %w", err)
	}
	return nil
}

// Get returns the record for key, or the zero Record.
func (s *Store) Get(key string) Record {
	return s.usage[key]
}

// Frecency scores key by launch count weighted by how long ago it was last
// launched. Keys never launched score 0.
func (s *Store) Frecency(key string) float64 {
	return frecency(s.usage[key], s.now())
}

func frecency(rec Record, now time.Time) float64 {
	if rec.LastLaunched == nil {
		return 0
	}
	days := int(now.Sub(*rec.LastLaunched) / (24 * time.Hour))
	return float64(rec.LaunchCount) * RecencyMultiplier(days)
}

// RecencyMultiplier maps whole days since the last launch to a weight.
// The breakpoints match existing history files and must not change.
func RecencyMultiplier(days int) float64 {
	switch {
	case days < 1:
		return 2.0
	case days < 7:
		return 1.5
	case days < 30:
		return 1.0
	case days < 90:
		return 0.5
	default:
		return 0.25
	}
}

// IsPathKey reports whether key belongs to the filesystem namespace.
func IsPathKey(key string) bool {
	return strings.HasPrefix(key, model.PathKeyPrefix)
}

// Entry is one key of the store with its computed frecency.
type Entry struct {
	Key      string
	Record   Record
	Frecency float64
}

// Entries lists every key, highest frecency first, then by key.
func (s *Store) Entries() []Entry {
	now := s.now()
	out := make([]Entry, 0, len(s.usage))
	for k, rec := range s.usage {
		out = append(out, Entry{Key: k, Record: rec, Frecency: frecency(rec, now)})
	}
	sortEntries(out)
	return out
}

// PathUsage is a filesystem entry from the history.
type PathUsage struct {
	Path     string
	Record   Record
	Frecency float64
}

// FrequentPaths lists the path: keys with the prefix removed, ordered like
// Entries.
func (s *Store) FrequentPaths() []PathUsage {
	var out []PathUsage
	for _, e := range s.Entries() {
		if !IsPathKey(e.Key) {
			continue
		}
		out = append(out, PathUsage{
			Path:     strings.TrimPrefix(e.Key, model.PathKeyPrefix),
			Record:   e.Record,
			Frecency: e.Frecency,
		})
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frecency != entries[j].Frecency {
			return entries[i].Frecency > entries[j].Frecency
		}
		return entries[i].Key < entries[j].Key
	})
}
