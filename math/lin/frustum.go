package lin

// Frustum culling primitives, built on top of the M4 projection matrices
// produced by Persp/PerspLH/Ortho. These operate entirely in camera space:
// callers are expected to have already reduced a point to the camera-relative
// frame before testing it against a Frustum.

import "math"

// Plane is a half-space boundary A*x + B*y + C*z + D >= 0. A point satisfies
// the plane (is on the positive/inside side) when the above holds.
type Plane struct {
	A, B, C, D float64
}

// Dist returns the signed distance from p to the plane, positive on the
// inside. The plane normal (A,B,C) is assumed to already be normalized.
func (p *Plane) Dist(v *V3) float64 { return p.A*v.X + p.B*v.Y + p.C*v.Z + p.D }

func (p *Plane) normalize() {
	len := math.Sqrt(p.A*p.A + p.B*p.B + p.C*p.C)
	if len > Epsilon {
		inv := 1 / len
		p.A, p.B, p.C, p.D = p.A*inv, p.B*inv, p.C*inv, p.D*inv
	}
}

// Frustum is the six half-spaces of a projection matrix, Left, Right,
// Bottom, Top, Near, Far, in camera space.
type Frustum struct {
	Left, Right, Bottom, Top, Near, Far Plane
}

// ExtractFrustum builds the six clipping planes of the given camera-space
// projection matrix m. math/lin uses row-vector convention (v' = v*M), so
// each output clip-space coordinate is a column of m: the column for output
// axis i is the set of fields (Xi, Yi, Zi, Wi) across m's four rows. The
// standard column-vector extraction (Gribb/Hartmann) therefore transposes
// here into a sum/difference of m's named fields row by row:
//
//	Left   = col_w + col_x    Right = col_w - col_x
//	Bottom = col_w + col_y    Top   = col_w - col_y
//	Near   = col_w + col_z    Far   = col_w - col_z
func ExtractFrustum(m *M4) *Frustum {
	f := &Frustum{
		Left:   Plane{m.Xx + m.Xw, m.Yx + m.Yw, m.Zx + m.Zw, m.Wx + m.Ww},
		Right:  Plane{m.Xw - m.Xx, m.Yw - m.Yx, m.Zw - m.Zx, m.Ww - m.Wx},
		Bottom: Plane{m.Xy + m.Xw, m.Yy + m.Yw, m.Zy + m.Zw, m.Wy + m.Ww},
		Top:    Plane{m.Xw - m.Xy, m.Yw - m.Yy, m.Zw - m.Zy, m.Ww - m.Wy},
		Near:   Plane{m.Xz + m.Xw, m.Yz + m.Yw, m.Zz + m.Zw, m.Wz + m.Ww},
		Far:    Plane{m.Xw - m.Xz, m.Yw - m.Yz, m.Zw - m.Zz, m.Ww - m.Wz},
	}
	f.Left.normalize()
	f.Right.normalize()
	f.Bottom.normalize()
	f.Top.normalize()
	f.Near.normalize()
	f.Far.normalize()
	return f
}

// planes returns the six planes as a slice for iteration.
func (f *Frustum) planes() [6]*Plane {
	return [6]*Plane{&f.Left, &f.Right, &f.Bottom, &f.Top, &f.Near, &f.Far}
}

// Sphere is a bounding sphere given by a camera-space center and radius.
type Sphere struct {
	Center V3
	Radius float64
}

// Intersects reports whether the sphere is at least partially inside the
// frustum. A sphere entirely on the outside (negative) side of any one
// plane cannot be visible; it is otherwise treated as visible, including
// spheres that straddle a plane.
func (f *Frustum) Intersects(s *Sphere) bool {
	for _, p := range f.planes() {
		if p.Dist(&s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// Contains reports whether the point v lies inside all six planes of f.
func (f *Frustum) Contains(v *V3) bool {
	for _, p := range f.planes() {
		if p.Dist(v) < 0 {
			return false
		}
	}
	return true
}

// Union returns the smallest sphere enclosing both s and o, used to fold a
// shadow receiver set into a single receiver-bounds sphere (spec §4.5 step 1).
func (s *Sphere) Union(o *Sphere) *Sphere {
	d := V3{X: o.Center.X - s.Center.X, Y: o.Center.Y - s.Center.Y, Z: o.Center.Z - s.Center.Z}
	dist := d.Len()
	if dist+o.Radius <= s.Radius {
		return &Sphere{Center: s.Center, Radius: s.Radius}
	}
	if dist+s.Radius <= o.Radius {
		return &Sphere{Center: o.Center, Radius: o.Radius}
	}
	newRadius := (dist + s.Radius + o.Radius) / 2
	if dist < Epsilon {
		return &Sphere{Center: s.Center, Radius: newRadius}
	}
	t := (newRadius - s.Radius) / dist
	return &Sphere{Center: V3{X: s.Center.X + d.X*t, Y: s.Center.Y + d.Y*t, Z: s.Center.Z + d.Z*t}, Radius: newRadius}
}
