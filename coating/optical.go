package coating

import (
	"github.com/sirupsen/logrus"

	"github.com/bibin-skaria/coatingtk/stacks"
)

// CreateStack builds the optical model at lambda0 (m) and angle of incidence
// aoi (degrees). A zero lambda0 selects the coating's reference wavelength.
// The index array holds the superstrate, every layer in order and the
// substrate; the thickness array holds every layer's thickness in nm.
func (c *Coating) CreateStack(lambda0, aoi float64) (stacks.Reflector, error) {
	if lambda0 == 0 {
		lambda0 = c.Lambda0
	}

	n := make([]complex128, len(c.layers)+2)
	d := make([]float64, len(c.layers))
	n[0] = c.superstrate.N(lambda0)
	n[len(n)-1] = c.substrate.N(lambda0)
	for i, l := range c.layers {
		n[i+1] = l.Material().N(lambda0)
		d[i] = l.Thickness()
	}

	c.logger.WithFields(logrus.Fields{
		"media":   len(n),
		"lambda0": lambda0,
		"aoi":     aoi,
	}).Debug("Constructing optical stack")
	return c.engine.Construct(n, d, lambda0, aoi)
}

// R returns the s and p power reflectivity at lambda0 (m) and aoi (degrees).
// A reflectivity that is not finite, as at the critical angle of a dense
// superstrate, is reported as a numeric error.
func (c *Coating) R(lambda0, aoi float64) (rs, rp float64, err error) {
	stack, err := c.CreateStack(lambda0, aoi)
	if err != nil {
		return 0, 0, err
	}
	rs, rp = stack.Reflectivity()
	if rs, err = checkFinite("reflectivity", rs); err != nil {
		return 0, 0, err
	}
	if rp, err = checkFinite("reflectivity", rp); err != nil {
		return 0, 0, err
	}
	return rs, rp, nil
}

// Rs returns the s-polarisation reflectivity.
func (c *Coating) Rs(lambda0, aoi float64) (float64, error) {
	rs, _, err := c.R(lambda0, aoi)
	return rs, err
}

// Rp returns the p-polarisation reflectivity.
func (c *Coating) Rp(lambda0, aoi float64) (float64, error) {
	_, rp, err := c.R(lambda0, aoi)
	return rp, err
}
