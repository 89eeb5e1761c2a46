package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// SourceConfig describes one VOD search backend. The list is ordered; the
// aggregator fans out in this order and trending mode takes the first entries.
type SourceConfig struct {
	Key        string            `json:"key"`
	Name       string            `json:"name"`
	API        string            `json:"api"`
	SearchPath string            `json:"searchPath"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Settings holds server-level configuration.
type Settings struct {
	ListenAddr     string `json:"listenAddr"`
	SourcesFile    string `json:"sourcesFile"`
	FetchTimeoutMs int    `json:"fetchTimeoutMs"`
	LogFile        string `json:"logFile"`
}

const (
	defaultListenAddr     = ":8080"
	defaultSourcesFile    = "sources.json"
	defaultFetchTimeoutMs = 8000
)

// Manager loads and serves configuration. The filesystem is injected so tests
// can run against an in-memory fs.
type Manager struct {
	fs           afero.Fs
	settingsPath string

	mu       sync.RWMutex
	settings Settings
	sources  []SourceConfig
}

// NewManager reads the settings file (missing file falls back to defaults),
// applies environment overrides, then loads the sources file.
func NewManager(fs afero.Fs, settingsPath string) (*Manager, error) {
	m := &Manager{fs: fs, settingsPath: settingsPath}
	if err := m.loadSettings(); err != nil {
		return nil, err
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) loadSettings() error {
	s := Settings{
		ListenAddr:     defaultListenAddr,
		SourcesFile:    defaultSourcesFile,
		FetchTimeoutMs: defaultFetchTimeoutMs,
	}

	data, err := afero.ReadFile(m.fs, m.settingsPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parse settings %s: %w", m.settingsPath, err)
		}
	case os.IsNotExist(err):
		// No settings file is fine; defaults + env apply.
	default:
		return fmt.Errorf("read settings %s: %w", m.settingsPath, err)
	}

	if v := strings.TrimSpace(os.Getenv("VODMESH_LISTEN_ADDR")); v != "" {
		s.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("VODMESH_SOURCES_FILE")); v != "" {
		s.SourcesFile = v
	}
	if v := strings.TrimSpace(os.Getenv("VODMESH_FETCH_TIMEOUT_MS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			s.FetchTimeoutMs = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("VODMESH_LOG_FILE")); v != "" {
		s.LogFile = v
	}
	if s.FetchTimeoutMs <= 0 {
		s.FetchTimeoutMs = defaultFetchTimeoutMs
	}

	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	return nil
}

// Reload re-reads the sources file. A missing file yields an empty source
// list, which is a valid state (the API reports it, it is not an error).
func (m *Manager) Reload() error {
	m.mu.RLock()
	path := m.settings.SourcesFile
	m.mu.RUnlock()

	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			m.mu.Lock()
			m.sources = nil
			m.mu.Unlock()
			return nil
		}
		return fmt.Errorf("read sources %s: %w", path, err)
	}

	var raw []SourceConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse sources %s: %w", path, err)
	}

	sources := make([]SourceConfig, 0, len(raw))
	seen := make(map[string]bool)
	for _, src := range raw {
		src.Key = strings.TrimSpace(src.Key)
		src.API = strings.TrimSpace(src.API)
		if src.Key == "" || src.API == "" || seen[src.Key] {
			continue
		}
		seen[src.Key] = true
		if src.Name == "" {
			src.Name = src.Key
		}
		sources = append(sources, src)
	}

	m.mu.Lock()
	m.sources = sources
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Sources returns the current ordered source list.
func (m *Manager) Sources() []SourceConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SourceConfig, len(m.sources))
	copy(out, m.sources)
	return out
}
