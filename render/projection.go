package render

import "github.com/skyforge/orrery/math/lin"

// planarProjection is the concrete PlanarProjection, grounded on
// gazed-vu/camera.go's SetPerspective/SetOrthographic pairing of a
// lin.M4 projection matrix with its frustum, extended with PerspLH for
// the cube-map passes and the Slice reprojection spec §4.3/§4.4 need.
type planarProjection struct {
	chirality    Chirality
	fov          float64 // degrees; meaningless for orthographic.
	aspect       float64
	near, far    float64
	ortho        bool
	left, right  float64 // orthographic extents; unused for perspective.
	bottom, top  float64
	matrix       *lin.M4
	frustum      *lin.Frustum
}

// NewPerspective builds a right-handed perspective PlanarProjection.
func NewPerspective(fov, aspect, near, far float64) PlanarProjection {
	p := &planarProjection{chirality: RightHanded, fov: fov, aspect: aspect, near: near, far: far}
	p.matrix = lin.NewM4().Persp(fov, aspect, near, far)
	p.frustum = lin.ExtractFrustum(p.matrix)
	return p
}

// NewPerspectiveLH builds a left-handed perspective PlanarProjection, used
// for the six cube-map faces of OmniShadowPass and CubeMapViewDriver.
func NewPerspectiveLH(fov, aspect, near, far float64) PlanarProjection {
	p := &planarProjection{chirality: LeftHanded, fov: fov, aspect: aspect, near: near, far: far}
	p.matrix = lin.NewM4().PerspLH(fov, aspect, near, far)
	p.frustum = lin.ExtractFrustum(p.matrix)
	return p
}

// NewOrthographic builds an orthographic PlanarProjection for
// DirectionalShadowPass's light-space projection (spec §4.5 step 3).
func NewOrthographic(left, right, bottom, top, near, far float64) PlanarProjection {
	p := &planarProjection{chirality: RightHanded, near: near, far: far, ortho: true,
		left: left, right: right, bottom: bottom, top: top}
	p.matrix = lin.NewM4().Ortho(left, right, bottom, top, near, far)
	p.frustum = lin.ExtractFrustum(p.matrix)
	return p
}

func (p *planarProjection) Chirality() Chirality  { return p.chirality }
func (p *planarProjection) Near() float64         { return p.near }
func (p *planarProjection) Far() float64          { return p.far }
func (p *planarProjection) Fov() float64          { return p.fov }
func (p *planarProjection) Frustum() *lin.Frustum { return p.frustum }
func (p *planarProjection) Matrix() *lin.M4       { return p.matrix }

// Slice returns a new projection sharing fov/aspect/chirality/ortho extents
// but with the given near/far range (spec §4.3/§4.4: each depth span is
// rendered through its own sliced projection).
func (p *planarProjection) Slice(near, far float64) PlanarProjection {
	if p.ortho {
		return NewOrthographic(p.left, p.right, p.bottom, p.top, near, far)
	}
	if p.chirality == LeftHanded {
		return NewPerspectiveLH(p.fov, p.aspect, near, far)
	}
	return NewPerspective(p.fov, p.aspect, near, far)
}
