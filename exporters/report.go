package exporters

import (
	"github.com/bibin-skaria/coatingtk/coating"
	"github.com/bibin-skaria/coatingtk/physical"
)

// ReportOptions selects the operating point of a report. Zero Wavelength
// means the coating's reference wavelength. Noise is only evaluated when
// Frequency, BeamSize and Temperature are all set.
type ReportOptions struct {
	Wavelength  float64 // m
	AOI         float64 // degrees
	Frequency   float64 // Hz
	BeamSize    float64 // m
	Temperature float64 // K
}

// LayerRow is one line of the layer table.
type LayerRow struct {
	Index     int     `yaml:"index"`
	Material  string  `yaml:"material"`
	Thickness float64 `yaml:"thickness_nm"`
	N         float64 `yaml:"n"`
	// Optical is the optical thickness as a fraction of the wavelength.
	Optical float64 `yaml:"optical_thickness"`
}

// Noise is the Brownian noise figure at one frequency.
type Noise struct {
	Frequency   float64 `yaml:"frequency"`
	BeamSize    float64 `yaml:"beam_size"`
	Temperature float64 `yaml:"temperature"`
	Phi         float64 `yaml:"phi"`
	PSD         float64 `yaml:"psd"`
}

// Report is a flat summary of a coating design.
type Report struct {
	Superstrate string     `yaml:"superstrate"`
	Substrate   string     `yaml:"substrate"`
	Wavelength  float64    `yaml:"wavelength"`
	AOI         float64    `yaml:"AOI"`
	Layers      []LayerRow `yaml:"layers"`
	Thickness   float64    `yaml:"thickness_nm"`

	Rs float64 `yaml:"rs"`
	Rp float64 `yaml:"rp"`

	Mechanics *coating.Mechanics `yaml:"mechanics,omitempty"`
	Noise     *Noise             `yaml:"noise,omitempty"`
}

// BuildReport evaluates c at the operating point in opts. Mechanics are
// omitted for a coating without layers.
func BuildReport(c *coating.Coating, opts ReportOptions) (*Report, error) {
	wavelength := opts.Wavelength
	if wavelength == 0 {
		wavelength = c.Lambda0
	}

	report := &Report{
		Superstrate: c.Superstrate().Name,
		Substrate:   c.Substrate().Name,
		Wavelength:  wavelength,
		AOI:         opts.AOI,
		Thickness:   c.Thickness(),
	}

	for i, l := range c.Layers() {
		n := real(l.Material().N(wavelength))
		report.Layers = append(report.Layers, LayerRow{
			Index:     i,
			Material:  l.Material().Name,
			Thickness: l.Thickness(),
			N:         n,
			Optical:   l.Thickness() * n / (wavelength * physical.NanometersPerMeter),
		})
	}

	rs, rp, err := c.R(wavelength, opts.AOI)
	if err != nil {
		return nil, err
	}
	report.Rs, report.Rp = rs, rp

	if c.Len() == 0 {
		return report, nil
	}

	m, err := c.Mechanics()
	if err != nil {
		return nil, err
	}
	report.Mechanics = &m

	if opts.Frequency > 0 && opts.BeamSize > 0 && opts.Temperature > 0 {
		phi, err := c.Phi(opts.BeamSize)
		if err != nil {
			return nil, err
		}
		psd, err := c.BrownianNoise(opts.Frequency, opts.BeamSize, opts.Temperature)
		if err != nil {
			return nil, err
		}
		report.Noise = &Noise{
			Frequency:   opts.Frequency,
			BeamSize:    opts.BeamSize,
			Temperature: opts.Temperature,
			Phi:         phi,
			PSD:         psd,
		}
	}

	return report, nil
}
