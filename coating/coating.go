// Package coating models a multilayer dielectric coating: an ordered stack of
// layers between a superstrate and a substrate.
//
// A Coating manages its layer sequence, builds the optical stack for the
// transfer-matrix engine and evaluates the homogenized mechanical properties
// and Brownian thermal noise of the layered structure. Layers are listed from
// the superstrate side to the substrate side.
//
// Materials are resolved once, at construction or when layers are added,
// through the Resolver passed in; the coating holds the resolved materials
// and never looks a name up again.
//
// A Coating is not safe for concurrent mutation.
package coating

import (
	"fmt"

	"github.com/sirupsen/logrus"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/internal/logging"
	"github.com/bibin-skaria/coatingtk/layers"
	"github.com/bibin-skaria/coatingtk/materials"
	"github.com/bibin-skaria/coatingtk/physical"
	"github.com/bibin-skaria/coatingtk/stacks"
)

// Coating is an ordered sequence of layers bounded by a superstrate and a
// substrate.
type Coating struct {
	superstrate *materials.Material
	substrate   *materials.Material
	layers      []layers.Layer

	// Lambda0 is the reference wavelength in m. Zero means unset.
	Lambda0 float64
	// AOI is the design angle of incidence in degrees.
	AOI float64

	thickness float64
	d         float64

	resolver materials.Resolver
	engine   stacks.Engine
	logger   logrus.FieldLogger
}

// Option configures a Coating.
type Option func(*Coating)

// WithEngine replaces the transfer-matrix engine used by CreateStack.
func WithEngine(engine stacks.Engine) Option {
	return func(c *Coating) {
		c.engine = engine
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Coating) {
		c.logger = logging.Component(logger, "coating")
	}
}

// WithAOI sets the design angle of incidence in degrees.
func WithAOI(aoi float64) Option {
	return func(c *Coating) {
		c.AOI = aoi
	}
}

// New resolves the boundary media and builds one layer per spec, in order.
// Spec thicknesses are physical thicknesses in nm.
func New(resolver materials.Resolver, superstrate, substrate string, specs []layers.Spec, lambda0 float64, opts ...Option) (*Coating, error) {
	c := &Coating{
		Lambda0:  lambda0,
		resolver: resolver,
		engine:   stacks.TransferMatrix{},
		logger:   logging.Component(nil, "coating"),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.superstrate, err = resolver.Material(superstrate); err != nil {
		return nil, err
	}
	if c.substrate, err = resolver.Material(substrate); err != nil {
		return nil, err
	}

	c.layers = make([]layers.Layer, 0, len(specs))
	for _, spec := range specs {
		l, err := layers.New(resolver, spec.Material, spec.Thickness)
		if err != nil {
			return nil, err
		}
		c.layers = append(c.layers, l)
	}
	c.UpdateThickness()

	c.logger.WithFields(logrus.Fields{
		"superstrate": superstrate,
		"substrate":   substrate,
		"layers":      len(c.layers),
		"thickness":   c.thickness,
	}).Debug("Constructed coating")
	return c, nil
}

// Superstrate returns the incident-side medium.
func (c *Coating) Superstrate() *materials.Material {
	return c.superstrate
}

// Substrate returns the transmission-side medium.
func (c *Coating) Substrate() *materials.Material {
	return c.substrate
}

// Layers returns a copy of the layer sequence. Mutating the copy does not
// affect the coating; use SetLayerThickness or AdjustLayers.
func (c *Coating) Layers() []layers.Layer {
	return append([]layers.Layer(nil), c.layers...)
}

// Layer returns layer i.
func (c *Coating) Layer(i int) (layers.Layer, error) {
	if i < 0 || i >= len(c.layers) {
		return layers.Layer{}, cerrors.NewValidationError("get_layer",
			fmt.Sprintf("layer index %d out of range [0, %d)", i, len(c.layers)), nil)
	}
	return c.layers[i], nil
}

// Len returns the number of layers.
func (c *Coating) Len() int {
	return len(c.layers)
}

// Specs returns the material/thickness pairs of the layer sequence.
func (c *Coating) Specs() []layers.Spec {
	specs := make([]layers.Spec, len(c.layers))
	for i, l := range c.layers {
		specs[i] = l.Spec()
	}
	return specs
}

// Thickness returns the total physical thickness in nm.
func (c *Coating) Thickness() float64 {
	return c.thickness
}

// D returns the total physical thickness in m.
func (c *Coating) D() float64 {
	return c.d
}

// UpdateThickness recomputes the total thickness from the layers. Every
// mutator calls it before returning.
func (c *Coating) UpdateThickness() {
	total := 0.0
	for _, l := range c.layers {
		total += l.Thickness()
	}
	c.thickness = total
	c.d = total * physical.MetersPerNanometer
}

// AddLayers appends layers given by optical thickness: each spec's number is a
// fraction of wavelength (m), so 0.25 gives a quarter-wave layer of physical
// thickness 0.25 * wavelength / n(wavelength). The block is appended repeat
// times.
func (c *Coating) AddLayers(specs []layers.Spec, wavelength float64, repeat int) error {
	if !(wavelength > 0) {
		return cerrors.NewValidationError("add_layers",
			fmt.Sprintf("wavelength must be positive, got %v", wavelength), nil)
	}

	block := make([]layers.Layer, 0, len(specs))
	for _, spec := range specs {
		m, err := c.resolver.Material(spec.Material)
		if err != nil {
			return err
		}
		n := real(m.N(wavelength))
		thickness := spec.Thickness * (wavelength * physical.NanometersPerMeter) / n
		block = append(block, layers.Of(m, thickness))
	}

	return c.AddLayersDirect(block, repeat)
}

// AddLayersDirect appends repeat copies of ls, in order.
func (c *Coating) AddLayersDirect(ls []layers.Layer, repeat int) error {
	if repeat < 0 {
		return cerrors.NewValidationError("add_layers",
			fmt.Sprintf("repeat must not be negative, got %d", repeat), nil)
	}
	for _, l := range ls {
		if l.Material() == nil {
			return cerrors.NewValidationError("add_layers", "layer has no material", nil)
		}
	}

	grown := make([]layers.Layer, len(c.layers), len(c.layers)+len(ls)*repeat)
	copy(grown, c.layers)
	for i := 0; i < repeat; i++ {
		grown = append(grown, ls...)
	}
	c.layers = grown
	c.UpdateThickness()
	return nil
}

// AdjustLayers overwrites every layer's thickness (nm) positionally. The
// coating is left unchanged if len(thicknesses) != Len().
func (c *Coating) AdjustLayers(thicknesses []float64) error {
	if len(thicknesses) != len(c.layers) {
		return cerrors.NewValidationError("adjust_layers",
			fmt.Sprintf("given %d thicknesses do not match %d layers", len(thicknesses), len(c.layers)),
			cerrors.ErrLengthMismatch)
	}

	for i, t := range thicknesses {
		c.layers[i].SetThickness(t)
	}
	c.UpdateThickness()
	return nil
}

// SetLayerThickness sets the thickness (nm) of layer i.
func (c *Coating) SetLayerThickness(i int, thickness float64) error {
	if i < 0 || i >= len(c.layers) {
		return cerrors.NewValidationError("set_layer_thickness",
			fmt.Sprintf("layer index %d out of range [0, %d)", i, len(c.layers)), nil)
	}
	c.layers[i].SetThickness(thickness)
	c.UpdateThickness()
	return nil
}
