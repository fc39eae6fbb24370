package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"uregex/internal/escape"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "uregex.toml"

// ErrNoManifest is returned when no manifest is found above the start
// directory.
var ErrNoManifest = errors.New("no " + ManifestName + " found\nplease pass one explicitly, e.g.:\n  uregex batch --manifest path/to/" + ManifestName)

// Manifest is a loaded uregex.toml.
type Manifest struct {
	Path   string
	Root   string
	Config ManifestConfig
}

// ManifestConfig mirrors the TOML layout.
type ManifestConfig struct {
	Defaults Defaults    `toml:"defaults"`
	Sets     []SetConfig `toml:"set"`
}

// Defaults apply to every [[set]] that does not override them.
type Defaults struct {
	Dialect  string `toml:"dialect"`
	OnlyBMP  bool   `toml:"only_bmp"`
	DontCare string `toml:"dont_care"`
	Verify   bool   `toml:"verify"`
}

// SetConfig is one [[set]] entry. Nil pointers inherit from Defaults.
type SetConfig struct {
	Name     string  `toml:"name"`
	Members  string  `toml:"members"`
	Dialect  *string `toml:"dialect"`
	OnlyBMP  *bool   `toml:"only_bmp"`
	DontCare *string `toml:"dont_care"`
	Verify   *bool   `toml:"verify"`
}

// FindManifest walks up from startDir looking for ManifestName.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and loads the manifest governing startDir.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifestFile(path)
}

// LoadManifestFile decodes and validates the manifest at path.
func LoadManifestFile(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg ManifestConfig
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", abs, keys[0])
	}
	if !meta.IsDefined("set") || len(cfg.Sets) == 0 {
		return nil, fmt.Errorf("%s: missing [[set]]", abs)
	}
	if meta.IsDefined("defaults", "dialect") {
		if _, err := escape.Dialect(cfg.Defaults.Dialect); err != nil {
			return nil, fmt.Errorf("%s: [defaults].dialect: %w", abs, err)
		}
	}
	seen := make(map[string]int, len(cfg.Sets))
	for i, s := range cfg.Sets {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: [[set]] #%d: missing name", abs, i+1)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: [[set]] #%d: name %q already used by #%d", abs, i+1, name, prev)
		}
		seen[name] = i + 1
		if strings.TrimSpace(s.Members) == "" {
			return nil, fmt.Errorf("%s: [[set]] %q: missing members", abs, name)
		}
		if s.Dialect != nil {
			if _, err := escape.Dialect(*s.Dialect); err != nil {
				return nil, fmt.Errorf("%s: [[set]] %q: %w", abs, name, err)
			}
		}
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}
