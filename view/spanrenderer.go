package view

// spanrenderer.go implements SpanRenderer (spec §4.4), grounded on
// gazed-vu/target.go's per-layer draw loop and gazed-vu/render/pass.go's
// opaque/translucent pass split, generalized to the depth-range slicing and
// shadow-pass invocation ordering spec §4.4 specifies.

import (
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// spanItems returns the contiguous slice of the ascending-far-sorted item
// array contained by span (split-phase spans are built by walking items
// back to front without skipping any, so every span's membership is a
// contiguous index range).
func spanItems(items []VisibleItem, span DepthBufferSpan) []VisibleItem {
	if span.ItemCount == 0 {
		return nil
	}
	start := span.BackItemIndex - span.ItemCount + 1
	if start < 0 {
		start = 0
	}
	return items[start : span.BackItemIndex+1]
}

func overlapsSpan(it *VisibleItem, span DepthBufferSpan) bool {
	return it.Near < span.Far && it.Far > span.Near
}

func buildModelview(orientation *lin.Q, camRel *lin.V3) *lin.M4 {
	return lin.NewM4().SetQ(orientation).TranslateMT(camRel.X, camRel.Y, camRel.Z)
}

// spanRenderDeps bundles the per-frame state SpanRenderer needs beyond the
// items/spans already computed: the sliced base projection, the visible
// light list, and engine configuration.
type spanRenderDeps struct {
	ctx            render.Context
	projection     render.PlanarProjection
	lights         []VisibleLightSourceItem
	shadowsEnabled bool
	omniCapacity   int
	shadows        *shadowResources
	environment    render.CubeMapFramebuffer
	t              float64
}

// RenderSpans iterates spans far-first (spec §4.4), allocating each its own
// fractional hardware depth range so earlier (farther) spans never
// depth-test against later (nearer) ones.
func RenderSpans(deps spanRenderDeps, spans []DepthBufferSpan, normal, splittable []VisibleItem) {
	n := len(spans)
	if n == 0 {
		return
	}
	for i, span := range spans {
		rangeNear := float64(i) / float64(n)
		rangeFar := float64(i+1) / float64(n)
		deps.ctx.SetDepthRange(rangeNear, rangeFar)

		near := deps.projection.Near()
		if span.Near > near {
			near = span.Near
		}
		far := deps.projection.Far()
		if span.Far < far {
			far = span.Far
		}
		far *= farPlaneSafetyEpsilon
		if far <= near {
			continue // per-frame degeneracy (spec §7 category 3): skip, don't abort.
		}

		items := spanItems(normal, span)

		var directionalCount, omniCount int
		if deps.shadowsEnabled && len(deps.lights) > 0 && deps.shadows != nil {
			directionalCount, omniCount = runShadowPasses(deps, span, items)
		}
		deps.ctx.SetShadowMapCount(directionalCount)
		deps.ctx.SetOmniShadowMapCount(omniCount)

		sliced := deps.projection.Slice(near, far)
		deps.ctx.SetProjection(sliced)

		renderSubPass(deps.ctx, deps.environment, items, splittable, span, deps.t, true, directionalCount)
		renderSubPass(deps.ctx, deps.environment, items, splittable, span, deps.t, false, directionalCount)

		deps.ctx.SetShadowMapCount(0)
		deps.ctx.SetOmniShadowMapCount(0)
	}
}

// renderSubPass draws items back_item_index downward (back to front) plus
// overlapping splittable items, restricted to opaque or translucent
// geometry per opaquePass (spec §4.4 step 6).
func renderSubPass(ctx render.Context, environment render.CubeMapFramebuffer, items []VisibleItem, splittable []VisibleItem, span DepthBufferSpan, t float64, opaquePass bool, directionalCount int) {
	if opaquePass {
		ctx.SetPass(render.OpaquePass)
	} else {
		ctx.SetPass(render.TranslucentPass)
	}

	for i := len(items) - 1; i >= 0; i-- {
		drawItem(ctx, environment, &items[i], t, opaquePass, directionalCount)
	}
	for i := range splittable {
		it := &splittable[i]
		if overlapsSpan(it, span) {
			drawItem(ctx, environment, it, t, opaquePass, directionalCount)
		}
	}
}

// drawItem publishes the per-item shadow-map slot count before drawing:
// directionalCount is this span's actual DirectionalShadowPass outcome (0
// or 1), never the shader's static capability ceiling, since a span with no
// receiver/caster leaves slot 0 unpublished (spec §4.5 step 1).
func drawItem(ctx render.Context, environment render.CubeMapFramebuffer, it *VisibleItem, t float64, opaquePass bool, directionalCount int) {
	if it.OutsideFrustum {
		return
	}
	if it.Geometry.Opaque() != opaquePass {
		return
	}
	if it.Geometry.ShadowReceiver() {
		ctx.SetShadowMapCount(directionalCount)
	} else {
		ctx.SetShadowMapCount(0)
	}
	if environment != nil {
		ctx.SetEnvironmentMap(environment)
	}
	ctx.SetModelview(buildModelview(&it.Orientation, &it.CamRelative))
	ctx.SetModelTranslation(&it.CamRelative)
	it.Geometry.Render(ctx, t)
}
