package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cover-photo/compose"
)

// Manager handles loading, saving, and serving the breakpoint table.
type Manager struct {
	mu       sync.RWMutex
	filePath string
	table    Table
}

// NewManager loads the table from filePath, or falls back to Default if the
// file does not exist. A file that exists but does not hold a valid table is
// an error.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{filePath: filePath, table: Default()}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, err
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", filePath, err)
	}
	m.table = t
	return m, nil
}

// Get returns a snapshot of the current table.
func (m *Manager) Get() Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyTable(m.table)
}

// Select picks the preset for a viewport width.
func (m *Manager) Select(width int) compose.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.Select(width)
}

// Save validates and atomically writes t to disk, then updates in-memory state.
func (m *Manager) Save(t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t = copyTable(t)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeAtomic(t); err != nil {
		return err
	}
	m.table = t
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath.
func (m *Manager) writeAtomic(t Table) error {
	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := m.filePath + ".tmp"
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.filePath)
}
