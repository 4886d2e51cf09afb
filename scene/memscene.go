package scene

// memscene.go is a minimal in-memory reference Scene, grounded on
// gazed-vu/scene.go's flat parts-list scene graph but simplified to a plain
// slice since acceleration structures are explicitly out of scope (spec.md
// §1). It exists so view package tests and cmd/orrery-demo have a concrete
// Scene/Entity/Geometry/LightSource to drive without a full asset pipeline.

import (
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// MemScene is a flat, in-memory Scene: an ordered entity list plus keyed sky
// layers, both fixed at construction time (spec §3's "external; held by
// reference during a view set").
type MemScene struct {
	entities []Entity
	skies    []SkyLayer
}

// NewMemScene builds a MemScene from the given entities and sky layers.
func NewMemScene(entities []Entity, skies []SkyLayer) *MemScene {
	return &MemScene{entities: entities, skies: skies}
}

func (s *MemScene) Entities() []Entity   { return s.entities }
func (s *MemScene) SkyLayers() []SkyLayer { return s.skies }

// StaticPose is a fixed (time-independent) position/orientation/visibility,
// the common case for planets, spacecraft, and lights in a demo scene.
type StaticPose struct {
	Pos  lin.V3
	Rot  lin.Q
	Vis  bool
}

func (p StaticPose) Position(t float64) lin.V3    { return p.Pos }
func (p StaticPose) Orientation(t float64) lin.Q  { return p.Rot }
func (p StaticPose) Visible(t float64) bool       { return p.Vis }

// StaticEntity pairs a StaticPose with optional geometry, light, and
// visualizers (spec §3's SceneEntity: "visibility at time t; position at
// time t; orientation at time t; optional geometry; optional light source;
// optional visualizer table").
type StaticEntity struct {
	StaticPose
	Geom  Geometry
	Lite  LightSource
	Visls []Visualizer
}

func (e *StaticEntity) Geometry() (Geometry, bool) {
	return e.Geom, e.Geom != nil
}

func (e *StaticEntity) Light() (LightSource, bool) {
	return e.Lite, e.Lite != nil
}

func (e *StaticEntity) Visualizers() []Visualizer { return e.Visls }

// SphereGeometry is the simplest possible Geometry: a uniform sphere with no
// backing mesh, used by tests and the demo path where the draw call itself
// (mesh upload, shader selection) is irrelevant to the orchestrator's
// behavior. DrawFunc/DrawShadowFunc, if set, are invoked after the
// orchestrator has configured ctx's modelview/shadow state; a nil func is a
// no-op, matching geometry that contributes no visible mesh (e.g. a
// shadow-only occluder stand-in in a test scene).
type SphereGeometry struct {
	Radius                     float64
	Policy                     ClippingPolicy
	IsOpaque, Caster, Receiver bool
	DrawFunc                   func(ctx render.Context, t float64)
	DrawShadowFunc             func(ctx render.Context, t float64)
}

func (g *SphereGeometry) BoundingRadius() float64 { return g.Radius }

// NearPlaneDistance returns the sphere's radius regardless of view
// direction, since a sphere's silhouette distance along any axis from its
// center is constant.
func (g *SphereGeometry) NearPlaneDistance(viewVector *lin.V3) float64 { return g.Radius }

func (g *SphereGeometry) ClippingPolicy() ClippingPolicy { return g.Policy }
func (g *SphereGeometry) Opaque() bool                   { return g.IsOpaque }
func (g *SphereGeometry) ShadowCaster() bool              { return g.Caster }
func (g *SphereGeometry) ShadowReceiver() bool            { return g.Receiver }

func (g *SphereGeometry) Render(ctx render.Context, t float64) {
	if g.DrawFunc != nil {
		g.DrawFunc(ctx, t)
	}
}

func (g *SphereGeometry) RenderShadow(ctx render.Context, t float64) {
	if g.DrawShadowFunc != nil {
		g.DrawShadowFunc(ctx, t)
	}
}

// StaticLight is a fixed-range, fixed-color point or directional light
// source (spec §9: "Light source is polymorphic over {range, spectrum,
// is_shadow_caster}").
type StaticLight struct {
	LightRange         float64
	R, G, B            float64
	IsShadowCaster bool
}

func (l StaticLight) Range() float64               { return l.LightRange }
func (l StaticLight) Spectrum() (r, g, b float64)   { return l.R, l.G, l.B }
func (l StaticLight) ShadowCaster() bool            { return l.IsShadowCaster }
