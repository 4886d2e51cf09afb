// Package render declares the graphics collaborator contract the view
// orchestrator drives: a RenderContext for shader/uniform state, depth-only
// and cube-map framebuffers for shadow passes, and a planar-projection
// wrapper around math/lin's matrix construction. A GL-backed implementation
// of each interface lives alongside the interfaces in this package.
package render

import "github.com/skyforge/orrery/math/lin"

// Output selects what a shader's fragment stage writes: shaded color for
// the ordinary render path, or linear camera distance for the omni-shadow
// pass (spec §4.6 step 3).
type Output int

const (
	FragmentColor Output = iota
	CameraDistance
)

// Pass selects the opaque/translucent sub-pass a draw call belongs to
// (spec §4.4 step 6).
type Pass int

const (
	OpaquePass Pass = iota
	TranslucentPass
)

// Context is the RenderContext collaborator of spec §6: the one surface
// through which the view package drives GPU state. It never allocates
// GPU resources itself beyond what New*Framebuffer calls return.
type Context interface {
	PushProjection(p PlanarProjection)
	PopProjection()

	SetProjection(p PlanarProjection)
	SetModelview(m *lin.M4)
	SetCameraOrientation(q *lin.Q)
	SetModelTranslation(v *lin.V3)
	SetPixelSize(pixels float64)
	SetViewportSize(width, height int)

	// SetDepthRange maps the hardware depth range [0,1] to the given
	// fraction, used to give each depth-buffer span its own non-overlapping
	// slice of the hardware depth buffer (spec §4.4 step 1).
	SetDepthRange(near, far float64)
	// SetCullFace selects front-face culling (shadow pass acne mitigation,
	// spec §4.5 step 4) when cullFront is true, back-face culling (the
	// ordinary default) otherwise.
	SetCullFace(cullFront bool)
	// SetFrontFaceCW flips triangle winding to clockwise (spec §4.6 step 2,
	// left-handed cube-map faces) when cw is true, counter-clockwise
	// (the ordinary default) otherwise.
	SetFrontFaceCW(cw bool)
	SetColorWrite(enabled bool)
	SetClearColor(r, g, b, a float64)
	// ClearDepth clears the currently bound framebuffer's depth attachment,
	// and its color attachment too when color is true.
	ClearDepth(color bool)

	SetActiveLightCount(n int)
	SetLight(slot int, camRelPos lin.V3, r, g, b float64)
	SetAmbientLight(r, g, b float64)

	SetShadowMapCount(n int)
	SetOmniShadowMapCount(n int)
	SetShadowMapMatrix(slot int, m *lin.M4)
	SetShadowMapTexture(slot int, fb Framebuffer)
	SetOmniShadowMapTexture(slot int, fb CubeMapFramebuffer)

	SetEnvironmentMap(fb CubeMapFramebuffer)

	SetOutput(o Output)
	SetPass(p Pass)
	UnbindShader()

	// Current returns the state last pushed via SetProjection/SetModelview/
	// SetCameraOrientation, and the shader capability bits negotiated at
	// context creation (e.g. shadow-map slot limits).
	CurrentFrustum() *lin.Frustum
	CurrentModelview() *lin.M4
	CurrentCameraOrientation() *lin.Q
	ShaderCapability() Capability
}

// Capability reports negotiated shader limits, queried once at
// initialize_graphics time and held fixed for the engine's lifetime.
type Capability struct {
	MaxShadowMaps     int
	MaxOmniShadowMaps int
}

// Framebuffer is a depth-only render target, used by DirectionalShadowPass
// (spec §6).
type Framebuffer interface {
	Bind()
	Valid() bool
	DepthTexture() uint32
}

// CubeMapFramebuffer is a six-face render target; the color attachment of
// each face is a single-channel float used by OmniShadowPass to store
// world-space distance (spec §4.6, §6).
type CubeMapFramebuffer interface {
	BindFace(face int)
	Valid() bool
	ColorTexture() uint32
}

// UnbindFramebuffer restores the default (on-screen) framebuffer binding.
// Declared as a package function, not a Context method, because it is a
// GPU-global operation independent of any one Context's tracked state.
var UnbindFramebuffer func()

// Chirality distinguishes right-handed (default) from left-handed
// (cube-map face) perspective projections.
type Chirality int

const (
	RightHanded Chirality = iota
	LeftHanded
)

// PlanarProjection is the projection-construction collaborator of spec §6:
// perspective (right- or left-handed) or orthographic, with a Slice
// operation that restricts an existing projection to a narrower near/far
// range without altering its fov/aspect/chirality.
type PlanarProjection interface {
	Chirality() Chirality
	Near() float64
	Far() float64
	Fov() float64
	Frustum() *lin.Frustum
	Matrix() *lin.M4

	// Slice returns a new PlanarProjection sharing this one's fov, aspect
	// and chirality but with the given near/far range (spec §4.3/§4.4).
	Slice(near, far float64) PlanarProjection
}
