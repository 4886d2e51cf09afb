// Package scene describes the external collaborators the view orchestrator
// pulls visible items from: scenes, entities, geometry, lights, and the
// observer (camera) viewing them. The orchestrator never mutates these
// types; it only reads position/orientation/geometry at a given time.
package scene

import (
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

// ClippingPolicy controls how VisibleItemCollector computes an item's near
// plane distance (spec §3, §4.2).
type ClippingPolicy int

const (
	// PreserveDepthPrecision floors the near distance relative to the
	// item's bounding diameter, trading a little precision for a near
	// plane that tracks the object.
	PreserveDepthPrecision ClippingPolicy = iota
	// PreventClipping floors the near distance at MinimumNearPlaneDistance,
	// for geometry that must never be clipped regardless of precision cost.
	PreventClipping
	// SplitToPreventClipping routes the item into the splittable list so
	// it is redrawn in every depth span it overlaps (e.g. long trajectories).
	SplitToPreventClipping
)

// Geometry is the renderable shape attached to an entity.
type Geometry interface {
	BoundingRadius() float64

	// NearPlaneDistance returns the distance from the item's own position
	// to its nearest point along the given view vector (camera position
	// minus item position, rotated into the item's local frame; not
	// normalized).
	NearPlaneDistance(viewVector *lin.V3) float64

	ClippingPolicy() ClippingPolicy
	Opaque() bool
	ShadowCaster() bool
	ShadowReceiver() bool

	Render(ctx render.Context, t float64)
	RenderShadow(ctx render.Context, t float64)
}

// LightSource is the light-specific capability set of an entity (spec §9:
// "Light source is polymorphic over {range, spectrum, is_shadow_caster}").
type LightSource interface {
	// Range is the influence radius used both for subpixel light culling
	// (§4.1) and omni-shadow far-plane placement (§4.6).
	Range() float64
	Spectrum() (r, g, b float64)
	ShadowCaster() bool
}

// Visualizer is an auxiliary renderable attached to an entity: a billboard,
// a label, or similar, whose orientation is resolved against its host (spec
// §9's back-reference note — visualizers never retain the host, they're
// just handed it when queried).
type Visualizer interface {
	Geometry() Geometry
	// Orientation resolves this visualizer's world orientation given its
	// host entity's orientation at the same time t.
	Orientation(host Entity, t float64) lin.Q
	// AdjustToFront reports whether this visualizer should be pulled
	// toward the camera so it renders in front of its host (spec §4.2).
	AdjustToFront() bool
}

// Entity is a positioned, optionally-visible thing in the scene: a planet,
// a spacecraft, a light, or a label holder.
type Entity interface {
	Visible(t float64) bool
	Position(t float64) lin.V3
	Orientation(t float64) lin.Q

	// Geometry returns the entity's renderable shape, if any.
	Geometry() (Geometry, bool)
	// Light returns the entity's light-source facet, if any.
	Light() (LightSource, bool)
	Visualizers() []Visualizer
}

// SkyLayer is a keyed, ordered background layer (star fields, nebulae) that
// renders behind everything else in its draw-order slot.
type SkyLayer struct {
	Key       string
	DrawOrder int
	Visible   bool
	Geometry  Geometry
}

// Scene is the read-only collaborator enumerated once per begin_view_set
// (spec §3, §6).
type Scene interface {
	Entities() []Entity
	SkyLayers() []SkyLayer
}

// Observer is the camera: absolute position and orientation at time t
// (spec §6, narrowed from the teacher's Camera interface to the read-only
// subset the orchestrator needs).
type Observer interface {
	Position(t float64) lin.V3
	Orientation(t float64) lin.Q
}
