// Package layers provides the single-layer building block of a dielectric
// coating.
//
// A Layer pairs a resolved material with a physical thickness. Thickness is
// set in nanometres only; the value in metres is derived in the same
// assignment, so the two never disagree:
//
//	l, err := layers.New(lib, "Silica Coating", 183.4)
//	if err != nil {
//		return err
//	}
//	l.SetThickness(200)
//	_ = l.D() // 2e-7
//
// # Specs
//
// A Spec is the unresolved form of a layer, a material name and a number. In
// coating files a spec is written as a two-element list:
//
//	layers:
//	  - [Silica Coating, 183.4]
//	  - [Titanium Tantala Coating, 118.5]
//
// Depending on the call, the number is a physical thickness in nanometres or
// an optical thickness given as a fraction of the wavelength (0.25 for a
// quarter-wave layer).
//
// Layers are plain values. Copying a Layer copies its thicknesses and shares
// only the immutable material.
package layers
