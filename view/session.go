package view

// session.go implements ViewSetSession / Engine (spec §4.8), the public
// entry point tying LightVisibilityFilter, VisibleItemCollector,
// DepthSpanPartitioner and SpanRenderer together. Grounded on gazed-vu's
// own top-level pov/camera/target wiring, generalized to the begin/end
// view-set scoping and shadow-resource lifecycle spec §4.8 and §5 require.

import (
	"sort"

	"github.com/google/uuid"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
	"github.com/skyforge/orrery/scene"
)

// shadowResources bundles the shadow/cube-map framebuffers an Engine owns
// across its lifetime (spec §5: process-wide, exclusively owned during a
// render, restored on every exit path).
type shadowResources struct {
	directional       render.Framebuffer
	omni              []render.CubeMapFramebuffer
	shadowMapSize     int
	omniShadowMapSize int
}

// Engine is the per-view render orchestrator (spec §1). It holds the
// process-wide render context and shadow resources; scene/light state is
// scoped to the current view set (spec §4.8).
type Engine struct {
	cfg     engineConfig
	ctx     render.Context
	ids     entityIDs
	shadows *shadowResources

	environment EnvironmentSource

	viewSetActive bool
	snapScene     scene.Scene
	snapLights    []LightSourceItem
	snapEntityIDs []entityID
	snapTime      float64
}

// NewEngine wraps an already-initialized render.Context (spec §5:
// initialize_graphics must precede this call) and, unless
// WithShadowsDisabled was given, attempts to allocate shadow resources
// immediately.
func NewEngine(ctx render.Context, opts ...Option) *Engine {
	cfg := engineConfigDefaults
	for _, o := range opts {
		o(&cfg)
	}
	e := &Engine{cfg: cfg, ctx: ctx, shadows: &shadowResources{
		shadowMapSize:     cfg.shadowMapSize,
		omniShadowMapSize: cfg.omniShadowMapSize,
	}}
	if cfg.shadowsEnabled {
		e.InitializeShadowMaps()
		e.InitializeOmniShadowMaps()
	}
	return e
}

// InitializeShadowMaps allocates the directional shadow framebuffer. On
// allocation failure the feature is silently disabled (spec §7 category 2):
// shadowsEnabled is cleared and a Warn line is emitted, never a Status.
func (e *Engine) InitializeShadowMaps() {
	fb := render.NewDepthFramebuffer(e.shadows.shadowMapSize)
	if !fb.Valid() {
		e.cfg.shadowsEnabled = false
		e.shadows.directional = nil
		warnResourceFailure("directional shadow map allocation failed", render.ErrNoGPUSupport())
		return
	}
	e.shadows.directional = fb
}

// InitializeOmniShadowMaps allocates omniShadowCapacity cube-map
// framebuffers. Any single allocation failure disables shadows entirely and
// discards whatever cube maps were already allocated (spec §7 category 2).
func (e *Engine) InitializeOmniShadowMaps() {
	fbs := make([]render.CubeMapFramebuffer, 0, e.cfg.omniShadowCapacity)
	for i := 0; i < e.cfg.omniShadowCapacity; i++ {
		fb := render.NewCubeDepthFramebuffer(e.shadows.omniShadowMapSize)
		if !fb.Valid() {
			e.cfg.shadowsEnabled = false
			e.shadows.omni = nil
			warnResourceFailure("omni shadow map allocation failed", render.ErrNoGPUSupport())
			return
		}
		fbs = append(fbs, fb)
	}
	e.shadows.omni = fbs
}

// BeginViewSet snapshots sc's light list (Sun sentinel first, spec §3) and
// the current time, opening a view set within which render_view/
// render_cube_map calls are valid (spec §4.8).
func (e *Engine) BeginViewSet(sc scene.Scene, t float64) Status {
	if e.viewSetActive {
		return ViewSetAlreadyStarted
	}
	if sc == nil {
		return BadParameter
	}
	lights := []LightSourceItem{{Handle: uuid.Nil, Source: nil, WorldPos: lin.V3{}, ShadowCaster: true}}
	for _, ent := range sc.Entities() {
		ls, ok := ent.Light()
		if !ok {
			continue
		}
		lights = append(lights, LightSourceItem{
			Handle:       uuid.New(),
			Source:       ls,
			WorldPos:     ent.Position(t),
			ShadowCaster: ls.ShadowCaster(),
		})
	}
	e.ids.reset()
	entities := sc.Entities()
	ids := make([]entityID, len(entities))
	for i := range entities {
		ids[i] = e.ids.create()
	}

	e.snapScene = sc
	e.snapLights = lights
	e.snapEntityIDs = ids
	e.snapTime = t
	e.viewSetActive = true
	return Ok
}

// EndViewSet clears the current view-set snapshot.
func (e *Engine) EndViewSet() Status {
	if !e.viewSetActive {
		return NoViewSet
	}
	e.snapScene = nil
	e.snapLights = nil
	e.snapEntityIDs = nil
	e.viewSetActive = false
	return Ok
}

// pixelSize approximates the angular size subtended by one viewport pixel,
// the metric spec §4.1/§4.2's subpixel culling tests divide by.
func pixelSize(fovDegrees float64, viewportHeight int) float64 {
	if viewportHeight <= 0 {
		return 1
	}
	return lin.Rad(fovDegrees) / float64(viewportHeight)
}

func sortByFar(items []VisibleItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Far < items[j].Far })
}

// RenderView renders the scene snapshotted at BeginViewSet from observer's
// pose through projection into the currently bound framebuffer (spec §4.4
// end to end, via LightVisibilityFilter, VisibleItemCollector,
// DepthSpanPartitioner and SpanRenderer).
func (e *Engine) RenderView(observer scene.Observer, projection render.PlanarProjection, viewportW, viewportH int) Status {
	if e.ctx == nil {
		return Uninitialized
	}
	if !e.viewSetActive {
		return NoViewSet
	}
	if projection == nil || viewportW <= 0 || viewportH <= 0 {
		return BadParameter
	}

	cameraPos := observer.Position(e.snapTime)
	cameraRot := observer.Orientation(e.snapTime)
	px := pixelSize(projection.Fov(), viewportH)
	aspect := float64(viewportW) / float64(viewportH)
	fovAdj := fovAdjustment(lin.Rad(projection.Fov()), aspect)
	frustum := projection.Frustum()

	e.ctx.SetViewportSize(viewportW, viewportH)
	e.ctx.SetPixelSize(px)
	e.ctx.SetCameraOrientation(&cameraRot)
	e.ctx.SetProjection(projection)

	visibleLights := LightVisibilityFilter(e.snapLights, cameraPos, cameraRot, frustum, px)
	e.ctx.SetActiveLightCount(len(visibleLights))
	for i, l := range visibleLights {
		var r, g, b float64
		if l.Source != nil {
			r, g, b = l.Source.Spectrum()
		}
		e.ctx.SetLight(i, l.CamRelative, r, g, b)
	}

	normal, splittable := VisibleItemCollector(e.snapScene.Entities(), e.snapEntityIDs, e.snapTime, cameraPos, cameraRot, frustum, px, fovAdj)
	if len(normal) == 0 && len(splittable) == 0 {
		debugDegenerate("render_view: no visible items") // spec §7 category 3.
	}
	sortByFar(normal)
	sortByFar(splittable)

	spans := DepthSpanPartitioner(normal, splittable, projection.Near(), projection.Far())

	var environment render.CubeMapFramebuffer
	if e.environment != nil {
		environment = e.environment()
	}

	deps := spanRenderDeps{
		ctx:            e.ctx,
		projection:     projection,
		lights:         visibleLights,
		shadowsEnabled: e.cfg.shadowsEnabled,
		omniCapacity:   e.cfg.omniShadowCapacity,
		shadows:        e.shadows,
		environment:    environment,
		t:              e.snapTime,
	}
	RenderSpans(deps, spans, normal, splittable)
	return Ok
}

// runShadowPasses drives DirectionalShadowPass for the sun (slot 0) and
// OmniShadowPass for up to omniCapacity further shadow-casting point lights
// (spec §4.4 step 4). It returns the shadow/omni-shadow map counts actually
// populated for this span, since a span with no receiver or no caster
// leaves some or all slots unpublished (spec §4.5/§4.6 step 1) — callers
// must publish these counts, not a static capability ceiling, or the shader
// samples stale/unset shadow state.
func runShadowPasses(deps spanRenderDeps, span DepthBufferSpan, items []VisibleItem) (directionalCount, omniCount int) {
	if len(deps.lights) == 0 || deps.shadows.directional == nil {
		return 0, 0
	}
	sun := deps.lights[0]
	if DirectionalShadowPass(deps.ctx, deps.shadows.directional, deps.shadows.shadowMapSize, 0, span, items, sun.CamRelative, deps.t) {
		directionalCount = 1
	}

	casters := make([]VisibleLightSourceItem, 0, len(deps.lights)-1)
	for _, l := range deps.lights[1:] {
		if l.ShadowCaster && l.Source != nil {
			casters = append(casters, l)
		}
	}
	// "Up to the omni-shadow-map capacity" (spec §4.4 step 4) doesn't specify
	// a selection rule beyond capacity; nearest-by-camera-distance is
	// recomputed here for each span from the frame's light list, which does
	// not change within a frame, so every span of a frame selects the same
	// lights (DESIGN.md Open Question decisions).
	sort.Slice(casters, func(i, j int) bool { return casters[i].CamRelative.Len() < casters[j].CamRelative.Len() })
	if len(casters) > len(deps.shadows.omni) {
		casters = casters[:len(deps.shadows.omni)]
	}

	for slot, l := range casters {
		if OmniShadowPass(deps.ctx, deps.shadows.omni[slot], deps.shadows.omniShadowMapSize, slot, l.Source.Range(), span, items, l.CamRelative, deps.t) {
			omniCount++
		}
	}
	return directionalCount, omniCount
}

// RenderCubeMap captures a reflection cube map into fb from observer's
// position with the given base rotation, reusing RenderView's per-face
// machinery through CubeMapViewDriver (spec §4.7).
func (e *Engine) RenderCubeMap(observer scene.Observer, fb render.CubeMapFramebuffer, near, far float64, baseRotation lin.Q) Status {
	if e.ctx == nil {
		return Uninitialized
	}
	if !e.viewSetActive {
		return NoViewSet
	}
	cameraPos := observer.Position(e.snapTime)

	return CubeMapViewDriver(fb, near, far, baseRotation, func(face int, proj render.PlanarProjection, faceRotation lin.Q) bool {
		px := pixelSize(proj.Fov(), e.shadows.omniShadowMapSize)
		frustum := proj.Frustum()

		e.ctx.SetCameraOrientation(&faceRotation)
		e.ctx.SetProjection(proj)
		e.ctx.SetViewportSize(e.shadows.omniShadowMapSize, e.shadows.omniShadowMapSize)
		e.ctx.SetPixelSize(px)

		visibleLights := LightVisibilityFilter(e.snapLights, cameraPos, faceRotation, frustum, px)
		normal, splittable := VisibleItemCollector(e.snapScene.Entities(), e.snapEntityIDs, e.snapTime, cameraPos, faceRotation, frustum, px, 1)
		sortByFar(normal)
		sortByFar(splittable)
		spans := DepthSpanPartitioner(normal, splittable, proj.Near(), proj.Far())

		deps := spanRenderDeps{
			ctx:            e.ctx,
			projection:     proj,
			lights:         visibleLights,
			shadowsEnabled: e.cfg.shadowsEnabled,
			omniCapacity:   e.cfg.omniShadowCapacity,
			shadows:        e.shadows,
			t:              e.snapTime,
		}
		RenderSpans(deps, spans, normal, splittable)
		return true
	})
}
