// Package manifest defines the persisted coating document and reads and
// writes it as YAML.
//
// A document carries the coating itself and, optionally, the definitions of
// the materials it references:
//
//	materials:
//	  - name: Silica Coating
//	    n: 1.45
//	    young: 7.2e10
//	    sigma: 0.17
//	    phi: 4e-5
//	coating:
//	  superstrate: Vacuum
//	  substrate: Silica Substrate
//	  lambda0: 1.064e-06
//	  AOI: 0
//	  layers:
//	    - [Silica Coating, 183.448]
package manifest

import (
	"github.com/bibin-skaria/coatingtk/layers"
	"github.com/bibin-skaria/coatingtk/materials"
)

// File is a coating document.
type File struct {
	Materials []materials.Definition `yaml:"materials,omitempty"`
	Coating   CoatingSection         `yaml:"coating"`
}

// CoatingSection describes the layer stack. Layer thicknesses are physical
// thicknesses in nm; Lambda0 is in m and AOI in degrees.
type CoatingSection struct {
	Superstrate string        `yaml:"superstrate"`
	Substrate   string        `yaml:"substrate"`
	Lambda0     float64       `yaml:"lambda0"`
	AOI         float64       `yaml:"AOI"`
	Layers      []layers.Spec `yaml:"layers"`
}

// MaterialNames returns the distinct material names the section references,
// boundary media first, in order of first use.
func (s CoatingSection) MaterialNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	add(s.Superstrate)
	add(s.Substrate)
	for _, l := range s.Layers {
		add(l.Material)
	}
	return names
}
