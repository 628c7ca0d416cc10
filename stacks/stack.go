// Package stacks implements the transfer-matrix model of a multilayer stack at
// a single wavelength and angle of incidence.
//
// A Stack is built from the refractive index of every medium (incident medium
// first, substrate last) and the physical thickness of every layer in between:
//
//	n := []complex128{1, 2.065, 1.45, 1.45}
//	d := []float64{128.8, 183.4} // nm
//	s, err := stacks.New(n, d, 1064e-9, 0)
//	rs, rp := s.Reflectivity()
//
// Thicknesses are in nanometres, the wavelength in metres and the angle of
// incidence in degrees.
package stacks

import (
	"fmt"
	"math"
	"math/cmplx"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/physical"
)

// Stack is a coating evaluated at one wavelength. It caches the propagation
// angles and interface coefficients; changing the angle of incidence
// invalidates them.
type Stack struct {
	n       []complex128
	d       []float64
	lambda0 float64
	alpha0  float64

	angles      []complex128
	rhos        [][2]complex128
	valid       bool
	anglesValid bool
}

// New creates a stack. len(n) must be len(d)+2.
func New(n []complex128, d []float64, lambda0 float64, aoi float64) (*Stack, error) {
	if len(n) < 2 {
		return nil, cerrors.NewOpticalError("create_stack",
			fmt.Sprintf("a stack needs at least two media, got %d", len(n)), cerrors.ErrLengthMismatch)
	}
	if len(n) != len(d)+2 {
		return nil, cerrors.NewOpticalError("create_stack",
			fmt.Sprintf("got %d indices for %d layers, want %d", len(n), len(d), len(d)+2), cerrors.ErrLengthMismatch)
	}
	if !(lambda0 > 0) || math.IsInf(lambda0, 0) {
		return nil, cerrors.NewOpticalError("create_stack",
			fmt.Sprintf("wavelength must be positive, got %v", lambda0), nil)
	}
	for i, ni := range n {
		if ni == 0 || cmplx.IsNaN(ni) || cmplx.IsInf(ni) {
			return nil, cerrors.NewOpticalError("create_stack",
				fmt.Sprintf("medium %d has invalid refractive index %v", i, ni), nil)
		}
	}

	s := &Stack{
		n:       append([]complex128(nil), n...),
		d:       append([]float64(nil), d...),
		lambda0: lambda0,
	}
	if err := s.SetAOI(aoi); err != nil {
		return nil, err
	}
	return s, nil
}

// SetAOI sets the angle of incidence in degrees, 0 <= aoi < 90.
func (s *Stack) SetAOI(aoi float64) error {
	if !(aoi >= 0 && aoi < 90) {
		return cerrors.NewOpticalError("set_aoi",
			fmt.Sprintf("angle of incidence %v not in range 0..90 degrees", aoi), nil)
	}
	s.alpha0 = aoi * math.Pi / 180
	s.anglesValid = false
	s.valid = false
	return nil
}

// AOI returns the angle of incidence in degrees.
func (s *Stack) AOI() float64 {
	return s.alpha0 * 180 / math.Pi
}

// Wavelength returns the vacuum wavelength in m.
func (s *Stack) Wavelength() float64 {
	return s.lambda0
}

// Indices returns a copy of the refractive indices, incident medium first.
func (s *Stack) Indices() []complex128 {
	return append([]complex128(nil), s.n...)
}

// Thicknesses returns a copy of the layer thicknesses in nm.
func (s *Stack) Thicknesses() []float64 {
	return append([]float64(nil), s.d...)
}

func (s *Stack) update() {
	if s.valid && s.anglesValid {
		return
	}
	if !s.anglesValid {
		s.angles = angles(s.alpha0, s.n[0], s.n[1:])
		s.anglesValid = true
	}

	s.rhos = make([][2]complex128, len(s.n)-1)
	n1, a1 := s.n[0], complex(s.alpha0, 0)
	for i, n2 := range s.n[1:] {
		a2 := s.angles[i]
		rs, rp := rho(a1, n1, a2, n2)
		s.rhos[i] = [2]complex128{rs, rp}
		n1, a1 = n2, a2
	}
	s.valid = true
}

// propagate multiplies the interface matrices in stacking order. The phase
// after the last interface is zero since the substrate is semi-infinite.
func (s *Stack) propagate() (ms, mp matrix2) {
	s.update()

	ms, mp = identity, identity
	for i, r := range s.rhos {
		var delta complex128
		if i < len(s.d) {
			delta = s.phaseThickness(i)
		}
		ms = ms.mul(interfaceMatrix(r[0], delta))
		mp = mp.mul(interfaceMatrix(r[1], delta))
	}
	return ms, mp
}

// phaseThickness is k*d*cos(alpha) for layer i.
func (s *Stack) phaseThickness(i int) complex128 {
	k := s.n[i+1] * complex(2*math.Pi/s.lambda0, 0)
	d := complex(s.d[i]*physical.MetersPerNanometer, 0)
	return k * d * cmplx.Cos(s.angles[i])
}

// Reflectivity returns the power reflectivity for s and p polarisation.
func (s *Stack) Reflectivity() (rs, rp float64) {
	ms, mp := s.propagate()

	as := cmplx.Abs(ms[1][0] / ms[0][0])
	ap := cmplx.Abs(mp[1][0] / mp[0][0])
	return as * as, ap * ap
}

// Phase returns the reflection phase for s and p polarisation and their
// difference, in radians. The p phase is offset by pi so both agree at normal
// incidence.
func (s *Stack) Phase() (phis, phip, diff float64) {
	ms, mp := s.propagate()

	phis = -cmplx.Phase(ms[1][0] / ms[0][0])
	p := -cmplx.Phase(mp[1][0] / mp[0][0])
	return phis, p + math.Pi, p - phis
}

// Reflector is a constructed optical model that reports reflectivity.
type Reflector interface {
	Reflectivity() (rs, rp float64)
}

// Engine constructs optical models from media indices and layer thicknesses.
type Engine interface {
	Construct(n []complex128, d []float64, lambda0, aoi float64) (Reflector, error)
}

// TransferMatrix is the default Engine; it builds a *Stack.
type TransferMatrix struct{}

// Construct implements Engine.
func (TransferMatrix) Construct(n []complex128, d []float64, lambda0, aoi float64) (Reflector, error) {
	s, err := New(n, d, lambda0, aoi)
	if err != nil {
		return nil, err
	}
	return s, nil
}
