// Package manifest handles rant.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/chazu/rant/vm"
)

// FileName is the name of the project configuration file.
const FileName = "rant.toml"

// DefaultStorePath is used when [store] path is not set.
const DefaultStorePath = ".rant/vars.db"

// Manifest represents a rant.toml project configuration.
type Manifest struct {
	Project Project        `toml:"project"`
	Store   StoreConfig    `toml:"store"`
	Log     LogConfig      `toml:"log"`
	Vars    map[string]any `toml:"vars"`

	// Dir is the directory containing the rant.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// StoreConfig configures the persistent variable store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Load parses a rant.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// Parse decodes manifest TOML and applies defaults. Dir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	// Defaults
	if m.Store.Path == "" {
		m.Store.Path = DefaultStorePath
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a rant.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// StorePath returns the store database path, resolved against the manifest
// directory when relative.
func (m *Manifest) StorePath() string {
	if filepath.IsAbs(m.Store.Path) {
		return m.Store.Path
	}
	return filepath.Join(m.Dir, m.Store.Path)
}

// LogFile returns the log file path, or nil to log to stderr.
func (m *Manifest) LogFile() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}

// VarNames returns the names of the [vars] table in sorted order.
func (m *Manifest) VarNames() []string {
	names := make([]string, 0, len(m.Vars))
	for name := range m.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Var returns a [vars] entry as a value. TOML strings, booleans, numbers
// and arrays map to the matching kinds; tables and dates have no value
// representation and read as No. ok is false if the name is not declared.
func (m *Manifest) Var(name string) (v vm.Value, ok bool) {
	raw, ok := m.Vars[name]
	if !ok {
		return vm.No, false
	}
	return vm.FromNative(raw), true
}
