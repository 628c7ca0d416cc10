package manifest

import (
	"math"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
)

// Validate checks a coating document for missing names and out-of-range
// numbers. All problems are reported together.
func Validate(file *File) error {
	collector := cerrors.NewErrorCollector("validate_manifest")
	if file == nil {
		collector.Addf("coating document is empty")
		return collector.ToError()
	}

	c := file.Coating
	if c.Superstrate == "" {
		collector.Addf("coating.superstrate is required")
	}
	if c.Substrate == "" {
		collector.Addf("coating.substrate is required")
	}
	if !isFinite(c.Lambda0) || c.Lambda0 < 0 {
		collector.Addf("coating.lambda0 must be a non-negative wavelength in m, got %v", c.Lambda0)
	}
	if !(c.AOI >= 0 && c.AOI < 90) {
		collector.Addf("coating.AOI must be in range 0..90 degrees, got %v", c.AOI)
	}
	for i, l := range c.Layers {
		if l.Material == "" {
			collector.Addf("coating.layers[%d] has no material", i)
		}
		if !isFinite(l.Thickness) || l.Thickness < 0 {
			collector.Addf("coating.layers[%d] (%s) has invalid thickness %v", i, l.Material, l.Thickness)
		}
	}

	seen := make(map[string]bool, len(file.Materials))
	for i, m := range file.Materials {
		if m.Name == "" {
			collector.Addf("materials[%d] has no name", i)
			continue
		}
		if seen[m.Name] {
			collector.Addf("material %q is defined more than once", m.Name)
		}
		seen[m.Name] = true
	}

	return collector.ToError()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
