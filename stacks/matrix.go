package stacks

import "math/cmplx"

// matrix2 is a 2x2 complex matrix in row-major order.
type matrix2 [2][2]complex128

var identity = matrix2{{1, 0}, {0, 1}}

func (a matrix2) mul(b matrix2) matrix2 {
	return matrix2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

// interfaceMatrix is the transfer matrix of a surface with amplitude
// reflectivity r followed by a propagation phase delta:
//
//	1/t * [[1, r], [r, 1]] * [[exp(-i delta), 0], [0, exp(i delta)]]
//
// with t = sqrt(1 - r^2).
func interfaceMatrix(r complex128, delta complex128) matrix2 {
	tau := cmplx.Sqrt(1 - r*r)
	forward := cmplx.Exp(-1i * delta)
	backward := cmplx.Exp(1i * delta)
	return matrix2{
		{forward / tau, r * backward / tau},
		{r * forward / tau, backward / tau},
	}
}
