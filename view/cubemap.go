package view

// cubemap.go implements CubeMapViewDriver (spec §4.7), reusing the same
// six fixed face rotations omni_shadow.go derives for OmniShadowPass, driven
// through the ordinary SpanRenderer pipeline rather than the distance-only
// shadow path.

import (
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// CubeMapViewDriver renders a reflection cube map by invoking renderOneView
// six times, once per face, composing the fixed face rotation with an
// optional caller-supplied base rotation (spec §4.7). renderOneView is
// expected to run the full SpanRenderer pipeline for the given camera
// orientation and projection, returning false on failure. The cube-map
// framebuffer is unbound on every exit path.
func CubeMapViewDriver(fb render.CubeMapFramebuffer, near, far float64, baseRotation lin.Q, renderOneView func(face int, proj render.PlanarProjection, faceRotation lin.Q) bool) Status {
	if fb == nil || !fb.Valid() {
		return BadParameter
	}
	defer func() {
		if render.UnbindFramebuffer != nil {
			render.UnbindFramebuffer()
		}
	}()

	proj := render.NewPerspectiveLH(90, 1, near, far)
	for face := 0; face < 6; face++ {
		fb.BindFace(face)
		composed := lin.NewQ().Mult(&baseRotation, &cubeFaceRotations[face])
		if !renderOneView(face, proj, *composed) {
			return BadParameter
		}
	}
	return Ok
}
