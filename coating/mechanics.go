package coating

import (
	"math"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/physical"
)

// The mechanical model treats the layer stack as a homogeneous, transversely
// isotropic film: "para" quantities act in the plane of the layers, "perp"
// quantities across them. Results that come out NaN or infinite, such as for
// an empty or zero-thickness stack, are reported as numeric errors wrapping
// ErrInvalidOperation instead of being returned.

func checkFinite(operation string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, cerrors.NewNumericError(operation, v)
	}
	return v, nil
}

// YPara is the effective parallel Young's modulus, (1/D) * sum(d_i * Y_i).
func (c *Coating) YPara() (float64, error) {
	sum := 0.0
	for _, l := range c.layers {
		sum += l.D() * l.Material().Y
	}
	return checkFinite("y_para", 1/c.d*sum)
}

// YPerp is the effective perpendicular Young's modulus, D / sum(d_i / Y_i).
func (c *Coating) YPerp() (float64, error) {
	sum := 0.0
	for _, l := range c.layers {
		sum += l.D() / l.Material().Y
	}
	return checkFinite("y_perp", c.d/sum)
}

// PhiPara is the parallel loss angle, sum(Y_i * phi_i * d_i) / (D * YPara).
func (c *Coating) PhiPara() (float64, error) {
	yPara, err := c.YPara()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, l := range c.layers {
		m := l.Material()
		sum += m.Y * m.Phi * l.D()
	}
	return checkFinite("phi_para", 1/(c.d*yPara)*sum)
}

// PhiPerp is the perpendicular loss angle, YPerp / D * sum(d_i * phi_i / Y_i).
func (c *Coating) PhiPerp() (float64, error) {
	yPerp, err := c.YPerp()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, l := range c.layers {
		m := l.Material()
		sum += l.D() * m.Phi / m.Y
	}
	return checkFinite("phi_perp", yPerp/c.d*sum)
}

// SigmaPara is the parallel Poisson ratio: the plain mean of the layer
// ratios, not weighted by thickness.
func (c *Coating) SigmaPara() (float64, error) {
	sum := 0.0
	for _, l := range c.layers {
		sum += l.Material().Sigma
	}
	return checkFinite("sigma_para", sum/float64(len(c.layers)))
}

// SigmaPerp is the perpendicular Poisson ratio,
// sum(sigma_i * Y_i * d_i) / sum(Y_i * d_i).
func (c *Coating) SigmaPerp() (float64, error) {
	num, den := 0.0, 0.0
	for _, l := range c.layers {
		m := l.Material()
		num += m.Sigma * m.Y * l.D()
	}
	for _, l := range c.layers {
		m := l.Material()
		den += m.Y * l.D()
	}
	return checkFinite("sigma_perp", num/den)
}

// Mechanics holds the homogenized properties of the layer stack.
type Mechanics struct {
	YPara     float64 `yaml:"y_para"`
	YPerp     float64 `yaml:"y_perp"`
	PhiPara   float64 `yaml:"phi_para"`
	PhiPerp   float64 `yaml:"phi_perp"`
	SigmaPara float64 `yaml:"sigma_para"`
	SigmaPerp float64 `yaml:"sigma_perp"`
}

// Mechanics evaluates all homogenized properties.
func (c *Coating) Mechanics() (Mechanics, error) {
	var m Mechanics
	var err error
	if m.YPara, err = c.YPara(); err != nil {
		return Mechanics{}, err
	}
	if m.YPerp, err = c.YPerp(); err != nil {
		return Mechanics{}, err
	}
	if m.PhiPara, err = c.PhiPara(); err != nil {
		return Mechanics{}, err
	}
	if m.PhiPerp, err = c.PhiPerp(); err != nil {
		return Mechanics{}, err
	}
	if m.SigmaPara, err = c.SigmaPara(); err != nil {
		return Mechanics{}, err
	}
	if m.SigmaPerp, err = c.SigmaPerp(); err != nil {
		return Mechanics{}, err
	}
	return m, nil
}

// Phi is the effective loss angle of the coating seen by a Gaussian beam of
// radius beamSize (m) on the substrate, for an anisotropic coating on an
// isotropic substrate. A zero beam size yields a numeric error.
func (c *Coating) Phi(beamSize float64) (float64, error) {
	m, err := c.Mechanics()
	if err != nil {
		return 0, err
	}
	ys := c.substrate.Y
	ss := c.substrate.Sigma

	phi := c.d / (math.Sqrt(math.Pi) * beamSize * m.YPerp) *
		(m.PhiPerp*
			(ys/(1-ss*ss)-
				2*(m.SigmaPerp*m.SigmaPerp)*ys*m.YPara/
					(m.YPerp*(1-ss*ss)*(1-m.SigmaPara))) +
			m.YPara*m.SigmaPerp*(1-2*ss)/((1-m.SigmaPara)*(1-ss))*(m.PhiPara-m.PhiPerp) +
			m.YPara*m.YPerp*(1+ss)*(m.PhiPara*((1-2*ss)*(1-2*ss)))/
				(ys*(1-m.SigmaPara*m.SigmaPara)*(1-ss)))

	return checkFinite("phi", phi)
}

// BrownianNoise returns the one-sided displacement noise power spectral
// density (m^2/Hz) of coating Brownian noise at frequency freq (Hz) for a beam
// of radius beamSize (m) at temperature (K).
func (c *Coating) BrownianNoise(freq, beamSize, temperature float64) (float64, error) {
	phi, err := c.Phi(beamSize)
	if err != nil {
		return 0, err
	}
	ys := c.substrate.Y
	ss := c.substrate.Sigma

	psd := 2 * physical.Boltzmann * temperature /
		(math.Sqrt(math.Pow(math.Pi, 3)) * freq * beamSize * ys) *
		(1 - ss*ss) * phi
	return checkFinite("brownian_noise", psd)
}
