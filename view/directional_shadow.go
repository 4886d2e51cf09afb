package view

// directional_shadow.go implements DirectionalShadowPass (spec §4.5),
// grounded on avatar29A-midgard-ro's shadow_map.go Bind/Unbind state
// discipline for the GL side and gazed-vu/layer.go's bm bias matrix for the
// shadow-space bias, generalized to span-scoped receiver/caster bounds.

import (
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// shadowBias maps clip-space [-1,1]^3 to texture-space [0,1]^3, the same
// constant gazed-vu/layer.go calls bm.
var shadowBias = &lin.M4{
	Xx: 0.5, Yy: 0.5, Zz: 0.5,
	Wx: 0.5, Wy: 0.5, Wz: 0.5, Ww: 1,
}

// receiverCasterBounds folds a span's items into a union receiver-bounds
// sphere and reports whether any shadow caster is present (spec §4.5 step 1).
func receiverCasterBounds(items []VisibleItem) (bounds *lin.Sphere, hasCaster bool) {
	for i := range items {
		it := &items[i]
		if it.Geometry == nil {
			continue
		}
		if it.Geometry.ShadowCaster() {
			hasCaster = true
		}
		if !it.Geometry.ShadowReceiver() {
			continue
		}
		s := &lin.Sphere{Center: it.CamRelative, Radius: it.BoundingRadius}
		if bounds == nil {
			bounds = s
		} else {
			bounds = bounds.Union(s)
		}
	}
	return bounds, hasCaster
}

// lightSpaceBasis builds a stable unit-orthogonal basis (right, up, forward)
// from a light direction, used to construct the light-space view matrix
// (spec §4.5 step 3).
func lightSpaceBasis(forward *lin.V3) (right, up, fwd lin.V3) {
	f := *forward
	if l := f.Len(); l > lin.Epsilon {
		f = lin.V3{X: f.X / l, Y: f.Y / l, Z: f.Z / l}
	} else {
		f = lin.V3{X: 0, Y: 0, Z: -1}
	}
	worldUp := lin.V3{X: 0, Y: 1, Z: 0}
	if abs(f.Dot(&worldUp)) > 0.999 {
		worldUp = lin.V3{X: 1, Y: 0, Z: 0}
	}
	r := lin.NewV3().Cross(&worldUp, &f)
	r.Unit()
	u := lin.NewV3().Cross(&f, r)
	return *r, *u, f
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DirectionalShadowPass renders span's shadow casters into fb from the
// sun/light's point of view and publishes the shadow_transform and texture
// into ctx at slot (spec §4.5). lightCamRel is the light's camera-relative
// position for this frame (VisibleLightSourceItem.CamRelative). Returns
// false (a per-frame degeneracy, spec §7 category 3) when there is no
// receiver or no caster in the span.
func DirectionalShadowPass(ctx render.Context, fb render.Framebuffer, shadowMapSize int, slot int, span DepthBufferSpan, items []VisibleItem, lightCamRel lin.V3, t float64) bool {
	bounds, hasCaster := receiverCasterBounds(items)
	if bounds == nil || !hasCaster {
		return false
	}

	center := bounds.Center
	r := bounds.Radius

	lightDir := lin.V3{X: lightCamRel.X + center.X, Y: lightCamRel.Y + center.Y, Z: lightCamRel.Z + center.Z}
	right, up, forward := lightSpaceBasis(&lightDir)

	lightView := &lin.M4{
		Xx: right.X, Yx: right.Y, Zx: right.Z,
		Xy: up.X, Yy: up.Y, Zy: up.Z,
		Xz: forward.X, Yz: forward.Y, Zz: forward.Z,
		Ww: 1,
	}
	lightProj := render.NewOrthographic(-r, r, -r, r, -r, r).Matrix()

	translate := lin.NewM4I().TranslateMT(-center.X, -center.Y, -center.Z)
	shadowTransform := lin.NewM4().Mult(translate, lightView)
	shadowTransform.Mult(shadowTransform, lightProj)
	shadowTransform.Mult(shadowTransform, shadowBias)

	saved := saveGLState()
	defer saved.restore()

	ctx.SetColorWrite(false)
	ctx.SetCullFace(true) // front-face culling: shadow acne mitigation (spec §4.5 step 4).
	fb.Bind()
	ctx.SetViewportSize(shadowMapSize, shadowMapSize)
	ctx.ClearDepth(false)

	ctx.SetProjection(render.NewOrthographic(-r, r, -r, r, -r, r))
	for i := range items {
		it := &items[i]
		if it.Geometry == nil || !it.Geometry.ShadowCaster() {
			continue
		}
		itemRel := lin.V3{X: it.CamRelative.X - center.X, Y: it.CamRelative.Y - center.Y, Z: it.CamRelative.Z - center.Z}
		ctx.SetModelview(buildModelview(&it.Orientation, &itemRel))
		ctx.SetModelTranslation(&itemRel)
		it.Geometry.RenderShadow(ctx, t)
	}

	if render.UnbindFramebuffer != nil {
		render.UnbindFramebuffer()
	}

	ctx.SetShadowMapMatrix(slot, shadowTransform)
	ctx.SetShadowMapTexture(slot, fb)
	return true
}
