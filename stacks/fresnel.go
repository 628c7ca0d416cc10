package stacks

import "math/cmplx"

// angles returns the propagation angle in every medium after the first for a
// beam entering from medium n0 at angle alpha0 (radians), by Snell's law. The
// invariant n0*sin(alpha0) holds across every interface, so each angle follows
// from the incident medium directly.
func angles(alpha0 float64, n0 complex128, n []complex128) []complex128 {
	out := make([]complex128, len(n))
	if alpha0 == 0 {
		return out
	}
	s := n0 * cmplx.Sin(complex(alpha0, 0))
	for i, ni := range n {
		out[i] = cmplx.Asin(s / ni)
	}
	return out
}

// rho returns the s and p amplitude reflection coefficients of the interface
// from medium (n1, a1) to medium (n2, a2).
func rho(a1 complex128, n1 complex128, a2 complex128, n2 complex128) (rs, rp complex128) {
	c1 := cmplx.Cos(a1)
	c2 := cmplx.Cos(a2)
	rs = (n1*c1 - n2*c2) / (n1*c1 + n2*c2)
	rp = (n2*c1 - n1*c2) / (n2*c1 + n1*c2)
	return rs, rp
}
