package materials

import (
	"math"
	"math/cmplx"
)

// RefractiveIndex gives the complex refractive index n + ik at a vacuum
// wavelength in metres.
type RefractiveIndex interface {
	At(lambda float64) complex128
}

// ConstantIndex is a dispersion-free index.
type ConstantIndex struct {
	N complex128
}

func (c ConstantIndex) At(lambda float64) complex128 {
	return c.N
}

// SellmeierIndex evaluates n^2 = 1 + sum B_i*l^2/(l^2 - C_i) with l in
// micrometres and C_i in square micrometres. K is a constant extinction
// coefficient added as the imaginary part.
type SellmeierIndex struct {
	B []float64
	C []float64
	K float64
}

func (s SellmeierIndex) At(lambda float64) complex128 {
	l2 := math.Pow(lambda*1e6, 2)
	n2 := 1.0
	for i := range s.B {
		n2 += s.B[i] * l2 / (l2 - s.C[i])
	}
	return complex(real(cmplx.Sqrt(complex(n2, 0))), s.K)
}
