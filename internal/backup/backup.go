// SPDX-License-Identifier: MIT

// Package backup writes snapshots of every store key to JSON files, restores
// them, and prunes old ones on a schedule.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/logging"
)

// FormatVersion is written into every backup file
const FormatVersion = 1

// ErrNotFound is returned for an unknown backup id
var ErrNotFound = errors.New("backup not found")

// Snapshotter is the part of the store a backup needs
type Snapshotter interface {
	Snapshot() (map[string]json.RawMessage, error)
	Restore(map[string]json.RawMessage) error
}

// Metadata describes one backup file
type Metadata struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Note      string    `json:"note,omitempty"`
	Version   int       `json:"version"`
	Keys      []string  `json:"keys"`
	Size      int64     `json:"size"`
	File      string    `json:"-"`
}

// Snapshot is the on-disk document
type Snapshot struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"createdAt"`
	Note      string                     `json:"note,omitempty"`
	Version   int                        `json:"version"`
	Data      map[string]json.RawMessage `json:"data"`
}

// Manager handles all backup operations
type Manager struct {
	BackupPath string
	store      Snapshotter
	logger     *zap.Logger
	now        func() time.Time
}

// NewManager creates a backup manager writing into backupPath
func NewManager(backupPath string, store Snapshotter, logger *zap.Logger) *Manager {
	return &Manager{
		BackupPath: backupPath,
		store:      store,
		logger:     logging.OrNop(logger),
		now:        time.Now,
	}
}

// Create writes a snapshot of the store to a new file
func (m *Manager) Create(note string) (Metadata, error) {
	data, err := m.store.Snapshot()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to snapshot store: %w", err)
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: m.now().UTC(),
		Note:      note,
		Version:   FormatVersion,
		Data:      data,
	}

	if err := os.MkdirAll(m.BackupPath, 0755); err != nil {
		return Metadata{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to encode backup: %w", err)
	}

	name := fmt.Sprintf("backup-%s-%s.json", snap.CreatedAt.Format("20060102-150405"), snap.ID[:8])
	path := filepath.Join(m.BackupPath, name)

	// Written under a temp name, then renamed into place
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return Metadata{}, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Metadata{}, fmt.Errorf("failed to finalize backup: %w", err)
	}

	meta := metadataFor(snap, path, int64(len(encoded)))
	m.logger.Info("backup created",
		zap.String("id", meta.ID),
		zap.String("file", name),
		zap.Int("keys", len(meta.Keys)),
	)
	return meta, nil
}

// List returns every backup, newest first. Unreadable files are skipped.
func (m *Manager) List() ([]Metadata, error) {
	entries, err := os.ReadDir(m.BackupPath)
	if errors.Is(err, os.ErrNotExist) {
		return []Metadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Metadata{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup-") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(m.BackupPath, entry.Name())
		snap, size, err := readSnapshot(path)
		if err != nil {
			m.logger.Warn("skipping unreadable backup", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		backups = append(backups, metadataFor(snap, path, size))
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Find resolves a backup by full id or unique id prefix
func (m *Manager) Find(id string) (Metadata, error) {
	if id == "" {
		return Metadata{}, ErrNotFound
	}
	backups, err := m.List()
	if err != nil {
		return Metadata{}, err
	}

	var found []Metadata
	for _, b := range backups {
		if b.ID == id {
			return b, nil
		}
		if strings.HasPrefix(b.ID, id) {
			found = append(found, b)
		}
	}
	if len(found) != 1 {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found[0], nil
}

// Restore writes every key of a backup back into the store
func (m *Manager) Restore(id string) (Metadata, error) {
	meta, err := m.Find(id)
	if err != nil {
		return Metadata{}, err
	}
	snap, _, err := readSnapshot(meta.File)
	if err != nil {
		return Metadata{}, err
	}
	if err := m.store.Restore(snap.Data); err != nil {
		return Metadata{}, fmt.Errorf("failed to restore backup: %w", err)
	}
	m.logger.Info("backup restored", zap.String("id", meta.ID), zap.Int("keys", len(meta.Keys)))
	return meta, nil
}

// Delete removes a backup file
func (m *Manager) Delete(id string) error {
	meta, err := m.Find(id)
	if err != nil {
		return err
	}
	if err := os.Remove(meta.File); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	m.logger.Info("backup deleted", zap.String("id", meta.ID))
	return nil
}

// Prune keeps the newest keep backups and deletes the rest
func (m *Manager) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, b := range backups[min(keep, len(backups)):] {
		if err := os.Remove(b.File); err != nil {
			return removed, fmt.Errorf("failed to prune backup %s: %w", b.ID, err)
		}
		removed++
	}
	if removed > 0 {
		m.logger.Info("pruned old backups", zap.Int("removed", removed), zap.Int("kept", keep))
	}
	return removed, nil
}

func readSnapshot(path string) (Snapshot, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, 0, fmt.Errorf("failed to read backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if snap.ID == "" || snap.Data == nil {
		return Snapshot{}, 0, errors.New("backup file has no id or data")
	}
	return snap, int64(len(data)), nil
}

func metadataFor(snap Snapshot, path string, size int64) Metadata {
	keys := make([]string, 0, len(snap.Data))
	for k := range snap.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Metadata{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		Note:      snap.Note,
		Version:   snap.Version,
		Keys:      keys,
		Size:      size,
		File:      path,
	}
}
