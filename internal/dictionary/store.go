package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrEmptyEntry is returned when either side of an entry is blank.
	ErrEmptyEntry = errors.New("both english and katakana are required")
	// ErrNotFound is returned when removing a key that is not registered.
	ErrNotFound = errors.New("entry not found")
)

// Entry is a single pronunciation mapping. Key is always lowercase.
type Entry struct {
	Key     string
	Reading string
}

// Store keeps the custom pronunciation dictionary in memory and mirrors it to a
// two-column CSV file. The file may be edited by other processes; call
// ReloadIfStale before a batch of lookups to pick those edits up.
//
// Writes rewrite the whole file in place and are not transactional, so a crash
// in the middle of a write can leave a truncated file behind.
type Store struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
	modTime time.Time
}

// NewStore creates a store backed by path and loads it if the file exists.
// A missing file is an empty dictionary.
func NewStore(path string) *Store {
	store := &Store{
		path:    path,
		entries: make(map[string]string),
	}
	store.ReloadIfStale()
	return store
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the reading for key, ignoring case.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reading, ok := s.entries[strings.ToLower(key)]
	return reading, ok
}

// Len returns the number of entries in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ReloadIfStale re-reads the backing file when its modification time differs
// from the one observed by the last load or write. Read failures are logged
// and leave the in-memory entries untouched.
func (s *Store) ReloadIfStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadIfStaleLocked(); err != nil {
		slog.Default().Warn("could not load custom dictionary", "path", s.path, "error", err)
	}
}

// reloadIfStaleLocked returns an error when the file exists but cannot be
// read. A missing file is not an error.
func (s *Store) reloadIfStaleLocked() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("os.Stat > %w", err)
	}
	if info.ModTime().Equal(s.modTime) {
		return nil
	}

	rows, err := s.readRows()
	if err != nil {
		return fmt.Errorf("readRows > %w", err)
	}
	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		// Rows with an empty reading are not entries.
		if row[1] == "" {
			continue
		}
		entries[strings.ToLower(row[0])] = row[1]
	}
	s.entries = entries
	s.modTime = info.ModTime()
	slog.Default().Debug("custom dictionary loaded", "path", s.path, "entries", len(entries))
	return nil
}

// Upsert adds or overwrites an entry and rewrites the file sorted by key.
// It reports whether an existing entry was overwritten. Nothing is written
// when the current file cannot be read.
func (s *Store) Upsert(key, reading string) (bool, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	reading = strings.TrimSpace(reading)
	if key == "" || reading == "" {
		return false, ErrEmptyEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadIfStaleLocked(); err != nil {
		return false, fmt.Errorf("reloadIfStale > %w", err)
	}

	_, updated := s.entries[key]
	rows := make([][]string, 0, len(s.entries)+1)
	for k, v := range s.entries {
		if k != key {
			rows = append(rows, []string{k, v})
		}
	}
	rows = append(rows, []string{key, reading})
	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})
	if err := s.writeRowsLocked(rows); err != nil {
		return updated, fmt.Errorf("writeRows > %w", err)
	}
	s.entries[key] = reading
	return updated, nil
}

// Remove deletes an entry. The remaining rows of the file keep their order.
// On error the store and the file are left as they were.
func (s *Store) Remove(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadIfStaleLocked(); err != nil {
		return fmt.Errorf("reloadIfStale > %w", err)
	}

	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("%q: %w", key, ErrNotFound)
	}

	rows, err := s.readRows()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("readRows > %w", err)
	}
	remaining := rows[:0]
	for _, row := range rows {
		if strings.ToLower(row[0]) != key {
			remaining = append(remaining, row)
		}
	}
	if err := s.writeRowsLocked(remaining); err != nil {
		return fmt.Errorf("writeRows > %w", err)
	}
	delete(s.entries, key)
	return nil
}

// List returns all entries sorted by key.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for k, v := range s.entries {
		entries = append(entries, Entry{Key: k, Reading: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// readRows returns every row with at least two columns, trimmed to two.
func (s *Store) readRows() ([][]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return parseRows(file)
}

func parseRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Accept quotes inside unquoted fields, e.g. `say "hi",セイハイ`.
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv.Read > %w", err)
		}
		if len(record) < 2 {
			continue
		}
		rows = append(rows, record[:2])
	}
	return rows, nil
}

func (s *Store) writeRowsLocked(rows [][]string) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("csv.WriteAll > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("os.Stat > %w", err)
	}
	s.modTime = info.ModTime()
	return nil
}
