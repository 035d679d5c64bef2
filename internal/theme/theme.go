// Package theme loads curated basket themes from disk. A theme is a
// named list of legs that a basket spec can be built from directly or
// after per-leg overrides.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rickgao/kalshi-baskets/internal/model"
)

// Theme is a curated basket: a stable ID, a display name and the legs.
type Theme struct {
	ID          string      `json:"theme_id" yaml:"theme_id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Legs        []model.Leg `json:"legs" yaml:"legs"`
}

// Load reads a theme file. The format follows the extension: .json is a
// JSON array of themes, .yaml/.yml a YAML sequence.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read themes: %w", err)
	}

	var themes []Theme
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &themes)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &themes)
	default:
		return nil, fmt.Errorf("unsupported theme file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse themes %s: %w", path, err)
	}

	return NewStore(themes)
}

// Store is an immutable collection of themes with ID lookup.
type Store struct {
	themes []Theme
	byID   map[string]*Theme
}

// NewStore builds a Store, rejecting empty and duplicate theme IDs.
func NewStore(themes []Theme) (*Store, error) {
	s := &Store{
		themes: themes,
		byID:   make(map[string]*Theme, len(themes)),
	}
	for i := range themes {
		t := &s.themes[i]
		if t.ID == "" {
			return nil, fmt.Errorf("theme %q has no theme_id", t.Name)
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate theme_id %q", t.ID)
		}
		s.byID[t.ID] = t
	}
	return s, nil
}

// ByID returns the theme with the given ID.
func (s *Store) ByID(id string) (*Theme, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// All returns every theme, sorted by ID.
func (s *Store) All() []Theme {
	out := make([]Theme, len(s.themes))
	copy(out, s.themes)
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Len returns the number of themes.
func (s *Store) Len() int { return len(s.themes) }
