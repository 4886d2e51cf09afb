package view

// omni_shadow.go implements OmniShadowPass (spec §4.6), grounded on the same
// avatar29A-midgard-ro state-save discipline as directional_shadow.go,
// generalized to the six-cube-face distance-to-fragment protocol and the
// left-handed winding flip spec §4.6 calls out.

import (
	"math"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// cubeFaceRotations are the fixed six ±X/±Y/±Z look directions, each
// composed with a 180° Z roll so every face shares a consistent up axis
// (spec §4.6 final paragraph).
var cubeFaceRotations = func() [6]lin.Q {
	looks := [6]*lin.Q{
		lin.NewQ().SetAa(0, 1, 0, -math.Pi/2), // +X
		lin.NewQ().SetAa(0, 1, 0, math.Pi/2),  // -X
		lin.NewQ().SetAa(1, 0, 0, math.Pi/2),  // +Y
		lin.NewQ().SetAa(1, 0, 0, -math.Pi/2), // -Y
		lin.NewQ().SetAa(0, 1, 0, 0),          // +Z
		lin.NewQ().SetAa(0, 1, 0, math.Pi),    // -Z
	}
	roll := lin.NewQ().SetAa(0, 0, 1, math.Pi)
	var faces [6]lin.Q
	for i, look := range looks {
		faces[i] = *lin.NewQ().Mult(roll, look) // roll first, about the face's own view axis.
	}
	return faces
}()

const omniUnshadowedDistance = 1e15

// OmniShadowPass renders span's casters into each of fb's six faces, storing
// world-space distance to the light in the red channel, and publishes the
// cube map into ctx at slot (spec §4.6). lightCamRel is the point light's
// camera-relative position for this frame. Returns false (spec §7 category
// 3) when there is no receiver or no caster in the span.
func OmniShadowPass(ctx render.Context, fb render.CubeMapFramebuffer, shadowMapSize int, slot int, lightRange float64, span DepthBufferSpan, items []VisibleItem, lightCamRel lin.V3, t float64) bool {
	bounds, hasCaster := receiverCasterBounds(items)
	if bounds == nil || !hasCaster {
		return false
	}

	saved := saveGLState()
	defer saved.restore()

	near := lightRange * 1e-4
	far := lightRange
	proj := render.NewPerspectiveLH(90, 1, near, far)

	ctx.SetOutput(render.CameraDistance)
	ctx.SetFrontFaceCW(true)
	ctx.SetViewportSize(shadowMapSize, shadowMapSize)

	for face := 0; face < 6; face++ {
		fb.BindFace(face)
		ctx.SetClearColor(omniUnshadowedDistance, 0, 0, 0)
		ctx.ClearDepth(true)
		ctx.SetProjection(proj)

		faceRot := cubeFaceRotations[face]
		invFaceRot := lin.NewQ().Inv(&faceRot)

		faceFrustum := proj.Frustum()
		for i := range items {
			it := &items[i]
			if it.Geometry == nil || !it.Geometry.ShadowCaster() {
				continue
			}
			rel := lin.V3{X: it.CamRelative.X - lightCamRel.X, Y: it.CamRelative.Y - lightCamRel.Y, Z: it.CamRelative.Z - lightCamRel.Z}
			faceRel := lin.NewV3().MultvQ(&rel, invFaceRot)
			sphere := &lin.Sphere{Center: *faceRel, Radius: it.BoundingRadius + lightRange}
			if faceFrustum != nil && !faceFrustum.Intersects(sphere) {
				continue
			}
			ctx.SetModelview(buildModelview(&it.Orientation, &rel))
			ctx.SetModelTranslation(&rel)
			it.Geometry.RenderShadow(ctx, t)
		}
	}

	ctx.SetOutput(render.FragmentColor)
	ctx.SetOmniShadowMapTexture(slot, fb)
	return true
}
