// Package materials provides the optical and mechanical material models a
// coating is built from, and the name-keyed library that resolves them.
//
// A Library is populated once (from YAML definitions, a SQLite catalog or
// programmatically) and then handed to coating constructors as a Resolver.
// Materials are immutable after they are added; coatings keep the resolved
// pointer and never look a name up twice.
//
// Example usage:
//
//	lib := materials.NewLibrary(nil)
//	if err := lib.LoadFile("materials.yaml"); err != nil {
//		return err
//	}
//	silica, err := lib.Material("Silica Coating")
package materials

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/internal/logging"
)

// Material is an optical and mechanical material description. Libraries and
// coatings share the pointer, so a Material must not be modified once it has
// been added to a Library.
type Material struct {
	Name  string
	Index RefractiveIndex
	// Y is Young's modulus in Pa.
	Y float64
	// Sigma is Poisson's ratio.
	Sigma float64
	// Phi is the mechanical loss angle.
	Phi float64
}

// N returns the complex refractive index at the vacuum wavelength lambda (m).
func (m *Material) N(lambda float64) complex128 {
	if m.Index == nil {
		return 1
	}
	return m.Index.At(lambda)
}

// Resolver resolves material names. Coatings and layers take a Resolver
// instead of reaching for a global registry.
type Resolver interface {
	Material(name string) (*Material, error)
}

// Library is an in-memory Resolver. It is safe for concurrent reads once
// populated.
type Library struct {
	mu        sync.RWMutex
	materials map[string]*Material
	logger    logrus.FieldLogger
}

// NewLibrary creates an empty library. A nil logger discards output.
func NewLibrary(logger logrus.FieldLogger) *Library {
	return &Library{
		materials: make(map[string]*Material),
		logger:    logging.Component(logger, "materials"),
	}
}

// Add registers m, replacing any material with the same name.
func (l *Library) Add(m *Material) error {
	if err := validate("add_material", m); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.materials[m.Name] = m
	return nil
}

func validate(operation string, m *Material) error {
	if m == nil || m.Name == "" {
		return cerrors.NewValidationError(operation, "material name is required", nil)
	}
	if math.IsNaN(m.Y) || math.IsNaN(m.Sigma) || math.IsNaN(m.Phi) {
		return cerrors.NewValidationError(operation,
			fmt.Sprintf("material %q has NaN mechanical properties", m.Name), nil)
	}
	return nil
}

// Material implements Resolver.
func (l *Library) Material(name string) (*Material, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.materials[name]
	if !ok {
		return nil, cerrors.NewLookupError("get_material", name)
	}
	return m, nil
}

// Names returns the registered material names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of materials.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.materials)
}

// Load converts and registers every definition. Nothing is registered if any
// definition is invalid.
func (l *Library) Load(defs []Definition) error {
	converted := make([]*Material, 0, len(defs))
	for _, def := range defs {
		m, err := def.Material()
		if err != nil {
			return err
		}
		converted = append(converted, m)
	}

	for _, m := range converted {
		if err := l.Add(m); err != nil {
			return err
		}
	}

	l.logger.WithField("count", len(converted)).Debug("Loaded material definitions")
	return nil
}

// Definitions returns the definitions for the named materials, in the given
// order. Materials that were added programmatically with an index model other
// than ConstantIndex or SellmeierIndex cannot be described and return an error.
func (l *Library) Definitions(names ...string) ([]Definition, error) {
	defs := make([]Definition, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		m, err := l.Material(name)
		if err != nil {
			return nil, err
		}
		def, err := DefinitionOf(m)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
