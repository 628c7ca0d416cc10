package layers

import (
	"github.com/bibin-skaria/coatingtk/materials"
	"github.com/bibin-skaria/coatingtk/physical"
)

// Layer is one physical layer of a coating.
type Layer struct {
	material  *materials.Material
	thickness float64
	d         float64
}

// New resolves the material by name and creates a layer of the given
// thickness in nm.
func New(resolver materials.Resolver, material string, thickness float64) (Layer, error) {
	m, err := resolver.Material(material)
	if err != nil {
		return Layer{}, err
	}
	return Of(m, thickness), nil
}

// Of creates a layer from an already resolved material.
func Of(m *materials.Material, thickness float64) Layer {
	l := Layer{material: m}
	l.SetThickness(thickness)
	return l
}

// Material returns the layer's material.
func (l Layer) Material() *materials.Material {
	return l.material
}

// Thickness returns the physical thickness in nm.
func (l Layer) Thickness() float64 {
	return l.thickness
}

// D returns the physical thickness in m.
func (l Layer) D() float64 {
	return l.d
}

// SetThickness sets the thickness in nm and updates the thickness in m.
func (l *Layer) SetThickness(thickness float64) {
	l.thickness = thickness
	l.d = thickness * physical.MetersPerNanometer
}

// Spec returns the unresolved form of the layer. A zero Layer has no
// material and yields an empty material name.
func (l Layer) Spec() Spec {
	spec := Spec{Thickness: l.thickness}
	if l.material != nil {
		spec.Material = l.material.Name
	}
	return spec
}

// Spec names a material and a thickness.
type Spec struct {
	Material  string
	Thickness float64
}

// Repeat returns specs repeated n times.
func Repeat(specs []Spec, n int) []Spec {
	out := make([]Spec, 0, len(specs)*n)
	for i := 0; i < n; i++ {
		out = append(out, specs...)
	}
	return out
}
