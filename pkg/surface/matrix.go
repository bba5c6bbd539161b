package surface

import "math"

// Matrix is a 2-D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns m followed (in local space) by a translation.
func (m Matrix) Translate(tx, ty float64) Matrix {
	m.E += m.A*tx + m.C*ty
	m.F += m.B*tx + m.D*ty
	return m
}

// Rotate returns m followed (in local space) by a rotation of angle radians.
func (m Matrix) Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: m.A*cos + m.C*sin,
		B: m.B*cos + m.D*sin,
		C: -m.A*sin + m.C*cos,
		D: -m.B*sin + m.D*cos,
		E: m.E,
		F: m.F,
	}
}

// Scale returns m followed (in local space) by a scale.
func (m Matrix) Scale(sx, sy float64) Matrix {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Apply maps a local point to device space.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	inv.A = m.D / det
	inv.B = -m.B / det
	inv.C = -m.C / det
	inv.D = m.A / det
	inv.E = (m.C*m.F - m.D*m.E) / det
	inv.F = (m.B*m.E - m.A*m.F) / det
	return inv, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
