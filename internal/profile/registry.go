package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Registry holds the loaded profile catalog. It is built once at startup
// and read-only afterwards.
type Registry struct {
	profiles []FormatProfile
	byName   map[string]FormatProfile
}

// NewRegistry builds a registry from a list of profiles.
func NewRegistry(profiles []FormatProfile) (*Registry, error) {
	byName := make(map[string]FormatProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if _, ok := byName[key]; ok {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		byName[key] = p
	}
	return &Registry{profiles: profiles, byName: byName}, nil
}

// Default returns a registry with the built-in catalog.
func Default() *Registry {
	r, err := NewRegistry(builtin)
	if err != nil {
		// The built-in catalog is validated by tests; a bad entry is a
		// programming error.
		panic(err)
	}
	return r
}

// Load returns the built-in catalog extended with profiles from a YAML
// file. An empty path yields the built-ins only.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}
	var extra []FormatProfile
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	return NewRegistry(append(append([]FormatProfile{}, builtin...), extra...))
}

// Get returns a profile by name, case-insensitively.
func (r *Registry) Get(name string) (FormatProfile, bool) {
	p, ok := r.byName[strings.ToLower(name)]
	return p, ok
}

// All returns every profile in catalog order.
func (r *Registry) All() []FormatProfile {
	return r.profiles
}

// ByShape returns the non-generic profiles for a document shape, in
// catalog order.
func (r *Registry) ByShape(shape model.DocumentShape) []FormatProfile {
	var out []FormatProfile
	for _, p := range r.profiles {
		if p.Shape == shape && !p.Generic {
			out = append(out, p)
		}
	}
	return out
}

// Generic returns the fallback profile for a shape.
func (r *Registry) Generic(shape model.DocumentShape) (FormatProfile, bool) {
	for _, p := range r.profiles {
		if p.Shape == shape && p.Generic {
			return p, true
		}
	}
	return FormatProfile{}, false
}
