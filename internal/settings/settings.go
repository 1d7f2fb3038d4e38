// Package settings persists user preferences between runs. Scan results
// are never stored here.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Settings holds persistent preferences
type Settings struct {
	LastRoot string `json:"last_root,omitempty"` // root of the most recent scan
	Depth    *int   `json:"depth,omitempty"`     // truncation depth, nil for default
	Workers  int    `json:"workers,omitempty"`   // worker pool size, 0 for one per CPU
	SizeMode string `json:"size_mode,omitempty"` // "apparent" or "allocated"
}

// Manager handles loading and saving settings
type Manager struct {
	path         string
	settings     Settings
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager backed by the file at path.
// An empty path uses DefaultPath.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// DefaultPath returns the default settings file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".diskviz-settings.json"
	}
	return filepath.Join(home, ".diskviz", "settings.json")
}

// Path returns the file the manager reads and writes
func (m *Manager) Path() string {
	return m.path
}

// Load loads settings from disk. A missing file leaves the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.settings = Settings{}
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse settings %s: %w", m.path, err)
	}
	m.settings = s
	return nil
}

// Get returns a copy of the current settings
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Save saves settings to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves settings without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// SetLastRoot records the most recently scanned root and schedules a save
func (m *Manager) SetLastRoot(path string) {
	m.Update(func(s *Settings) {
		s.LastRoot = path
	})
}

// Update applies fn to the settings and schedules a debounced save if
// anything changed
func (m *Manager) Update(fn func(s *Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.settings
	fn(&m.settings)
	if equal(before, m.settings) {
		return
	}
	m.dirty = true

	// Cancel any pending save timer
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}

func equal(a, b Settings) bool {
	if a.LastRoot != b.LastRoot || a.Workers != b.Workers || a.SizeMode != b.SizeMode {
		return false
	}
	if (a.Depth == nil) != (b.Depth == nil) {
		return false
	}
	return a.Depth == nil || *a.Depth == *b.Depth
}
