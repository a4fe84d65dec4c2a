// SPDX-License-Identifier: MIT

// Package store persists the site's JSON collections (portfolio cards,
// settings, color history, comments) under named keys. Reads never fail:
// a missing or malformed document reads as empty. Writes are whole-document
// and serialized, so read-modify-write operations never lose an update.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/logging"
)

// Logical keys
const (
	KeyPortfolio    = "portfolio"
	KeySettings     = "settings"
	KeyColorHistory = "colorHistory"
	KeyComments     = "comments"
)

var (
	// ErrQuotaExceeded is returned when a document is larger than the configured quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrSerialize is returned when a value cannot be encoded as JSON
	ErrSerialize = errors.New("failed to serialize value")
)

// Store is the only component that touches durable state
type Store struct {
	backend Backend
	quota   int
	logger  *zap.Logger

	// mu is held for every write, including the read half of a
	// read-modify-write. Plain reads do not take it.
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithQuota limits the encoded size of a single key. Zero disables the limit.
func WithQuota(bytes int) Option {
	return func(s *Store) {
		s.quota = bytes
	}
}

// WithLogger sets the logger used for swallowed read errors and failed writes
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store over the given backend
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// Has reports whether key was ever written, regardless of its content
func (s *Store) Has(key string) bool {
	_, ok, err := s.backend.Load(key)
	if err != nil {
		s.logger.Error("failed to read key", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

// raw returns the stored document, or nil when it is absent, unreadable or
// not valid JSON
func (s *Store) raw(key string) []byte {
	data, ok, err := s.backend.Load(key)
	if err != nil {
		s.logger.Error("failed to read key", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	if !gjson.ValidBytes(data) {
		s.logger.Warn("discarding malformed JSON", zap.String("key", key), zap.Int("bytes", len(data)))
		return nil
	}
	return data
}

// List decodes the array stored under key. It returns an empty slice when
// the key is absent or its document does not decode as []T.
func List[T any](s *Store, key string) []T {
	data := s.raw(key)
	if data == nil {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("discarding undecodable collection", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Record decodes the object stored under key. ok is false when the key is
// absent or malformed, in which case the zero value is returned.
func Record[T any](s *Store, key string) (value T, ok bool) {
	data := s.raw(key)
	if data == nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("discarding undecodable record", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return value, true
}

// Set replaces the document under key. On failure the previous document is
// left untouched.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(key, value)
}

func (s *Store) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to serialize value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return s.write(key, data)
}

// Add appends item to the array under key, creating the array if needed
func (s *Store) Add(key string, item any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(key, item)
}

func (s *Store) add(key string, item any) error {
	itemJSON, err := json.Marshal(item)
	if err != nil {
		s.logger.Error("failed to serialize item", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	data := s.raw(key)
	if data == nil || !gjson.ParseBytes(data).IsArray() {
		data = []byte("[]")
	}

	updated, err := sjson.SetRawBytes(data, "-1", itemJSON)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return s.write(key, updated)
}

// Remove drops every element of the array under key whose "id" loosely
// equals id: 42, "42" and 42.0 all match. Removing an absent id is a no-op.
func (s *Store) Remove(key string, id any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(key, id)
}

func (s *Store) remove(key string, id any) error {
	data := s.raw(key)
	if data == nil {
		return nil
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil
	}

	want := fmt.Sprint(id)
	var matches []int
	index := 0
	doc.ForEach(func(_, value gjson.Result) bool {
		if looseEqual(value.Get("id"), want) {
			matches = append(matches, index)
		}
		index++
		return true
	})
	if len(matches) == 0 {
		return nil
	}

	updated := data
	var err error
	for i := len(matches) - 1; i >= 0; i-- {
		updated, err = sjson.DeleteBytes(updated, strconv.Itoa(matches[i]))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSerialize, err)
		}
	}
	return s.write(key, updated)
}

// Delete removes key entirely
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(key); err != nil {
		s.logger.Error("failed to delete key", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Snapshot returns every valid document keyed by name
func (s *Store) Snapshot() (map[string]json.RawMessage, error) {
	keys, err := s.backend.Keys()
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if data := s.raw(key); data != nil {
			snapshot[key] = json.RawMessage(data)
		}
	}
	return snapshot, nil
}

// Restore writes every document of a snapshot. Keys not in the snapshot are
// kept. A snapshot with any invalid or oversized document writes nothing.
func (s *Store) Restore(snapshot map[string]json.RawMessage) error {
	keys := make([]string, 0, len(snapshot))
	for key, data := range snapshot {
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("%w: snapshot key %s is not valid JSON", ErrSerialize, key)
		}
		if s.quota > 0 && len(data) > s.quota {
			return fmt.Errorf("%w: snapshot key %s needs %d bytes, limit is %d", ErrQuotaExceeded, key, len(data), s.quota)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if err := s.write(key, snapshot[key]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) write(key string, data []byte) error {
	if s.quota > 0 && len(data) > s.quota {
		s.logger.Error("storage quota exceeded",
			zap.String("key", key),
			zap.Int("bytes", len(data)),
			zap.Int("quota", s.quota),
		)
		return fmt.Errorf("%w: %s needs %d bytes, limit is %d", ErrQuotaExceeded, key, len(data), s.quota)
	}
	if err := s.backend.Save(key, data); err != nil {
		s.logger.Error("failed to write key", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// looseEqual compares a JSON id with a string form of the wanted id,
// treating numeric spellings of the same number as equal
func looseEqual(field gjson.Result, want string) bool {
	if !field.Exists() || field.Type == gjson.Null {
		return false
	}
	got := field.String()
	if got == want {
		return true
	}
	a, errA := strconv.ParseFloat(strings.TrimSpace(got), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(want), 64)
	return errA == nil && errB == nil && a == b
}
