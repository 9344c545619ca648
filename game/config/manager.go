package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"battleship-server/game/engine"
)

var (
	ErrRulesNotFound = errors.New("rules configuration not found")
)

// Manager handles rules configuration loading and caching.
type Manager struct {
	configDir    string
	defaultRules *engine.Rules
	rules        map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a configuration manager. The directory is optional:
// when empty or missing, only the compiled-in default rules are available.
func NewManager(configDir string) (*Manager, error) {
	if configDir != "" {
		if _, err := os.Stat(configDir); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to stat config directory: %w", err)
			}
			configDir = ""
		}
	}

	return &Manager{
		configDir:    configDir,
		defaultRules: engine.DefaultRules(),
		rules:        make(map[string]*engine.Rules),
	}, nil
}

// Default returns the compiled-in classic rules.
func (m *Manager) Default() *engine.Rules {
	return m.defaultRules
}

// Load returns the rules configuration with the given name. The name
// "classic" (or "") always resolves to the default; anything else is read
// from <configDir>/<name>.json, validated, and cached.
func (m *Manager) Load(name string) (*engine.Rules, error) {
	if name == "" || name == m.defaultRules.Name {
		return m.defaultRules, nil
	}

	m.mu.RLock()
	if rules, exists := m.rules[name]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	if m.configDir == "" {
		return nil, ErrRulesNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if rules, exists := m.rules[name]; exists {
		return rules, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", filename, err)
	}
	if rules.Name == "" {
		rules.Name = name
	}
	if err := engine.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", filename, err)
	}

	m.rules[name] = &rules
	return &rules, nil
}

// List returns the names of the available rules configurations: the default
// plus any *.json files in the configuration directory.
func (m *Manager) List() ([]string, error) {
	names := []string{m.defaultRules.Name}
	if m.configDir == "" {
		return names, nil
	}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}
