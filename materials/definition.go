package materials

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
)

// Sellmeier holds dispersion coefficients, see SellmeierIndex.
type Sellmeier struct {
	B []float64 `yaml:"b"`
	C []float64 `yaml:"c"`
}

// Definition is the persisted form of a Material.
type Definition struct {
	Name      string     `yaml:"name"`
	N         float64    `yaml:"n,omitempty"`
	K         float64    `yaml:"k,omitempty"`
	Sellmeier *Sellmeier `yaml:"sellmeier,omitempty"`
	Young     float64    `yaml:"young,omitempty"`
	Sigma     float64    `yaml:"sigma,omitempty"`
	Phi       float64    `yaml:"phi,omitempty"`
}

// definitionFile is the top-level shape of a materials YAML file.
type definitionFile struct {
	Materials []Definition `yaml:"materials"`
}

// Material converts the definition. A definition without a Sellmeier block and
// without n is treated as n = 1.
func (d Definition) Material() (*Material, error) {
	if d.Name == "" {
		return nil, cerrors.NewValidationError("load_materials", "material name is required", nil)
	}

	var index RefractiveIndex
	if d.Sellmeier != nil {
		if len(d.Sellmeier.B) != len(d.Sellmeier.C) {
			return nil, cerrors.NewValidationError("load_materials",
				fmt.Sprintf("material %q: sellmeier b and c must have equal length", d.Name),
				cerrors.ErrLengthMismatch)
		}
		index = SellmeierIndex{B: d.Sellmeier.B, C: d.Sellmeier.C, K: d.K}
	} else {
		n := d.N
		if n == 0 {
			n = 1
		}
		index = ConstantIndex{N: complex(n, d.K)}
	}

	if math.IsNaN(d.N) || math.IsNaN(d.K) {
		return nil, cerrors.NewValidationError("load_materials",
			fmt.Sprintf("material %q has a NaN refractive index", d.Name), nil)
	}

	m := &Material{
		Name:  d.Name,
		Index: index,
		Y:     d.Young,
		Sigma: d.Sigma,
		Phi:   d.Phi,
	}
	if err := validate("load_materials", m); err != nil {
		return nil, err
	}
	return m, nil
}

// DefinitionOf describes m as a Definition.
func DefinitionOf(m *Material) (Definition, error) {
	def := Definition{
		Name:  m.Name,
		Young: m.Y,
		Sigma: m.Sigma,
		Phi:   m.Phi,
	}

	switch index := m.Index.(type) {
	case nil:
		def.N = 1
	case ConstantIndex:
		def.N = real(index.N)
		def.K = imag(index.N)
	case SellmeierIndex:
		def.Sellmeier = &Sellmeier{B: index.B, C: index.C}
		def.K = index.K
	default:
		return Definition{}, cerrors.NewValidationError("describe_material",
			fmt.Sprintf("material %q uses an index model that cannot be persisted (%T)", m.Name, m.Index), nil)
	}
	return def, nil
}

// ParseDefinitions decodes a materials YAML document.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, cerrors.NewConfigurationError("parse_materials", "invalid materials yaml", err)
	}
	return file.Materials, nil
}

// LoadFile reads a materials YAML file (a top-level `materials` list) into the
// library.
func (l *Library) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cerrors.NewFilesystemError("load_materials", fmt.Sprintf("failed to read %s", path), err)
	}

	defs, err := ParseDefinitions(data)
	if err != nil {
		return err
	}

	if err := l.Load(defs); err != nil {
		return err
	}
	l.logger.WithField("source", path).WithField("count", len(defs)).Debug("Loaded materials file")
	return nil
}
