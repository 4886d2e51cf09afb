package view

// collector.go implements VisibleItemCollector (spec §4.2), grounded on
// gazed-vu/culler.go's frontCull/radiusCull shape for the size/near-far
// culling tests, generalized to the double-to-single narrowing point and
// clipping-policy/visualizer handling spec §4.2 and §9 describe.

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/scene"
)

// VisibleItem is rebuilt on every render_view (spec §3). CamRelative keeps
// the double-precision camera-relative position required to resolve
// astronomically large coordinates without catastrophic cancellation;
// CamSpace narrows to single precision only once the value is small enough
// (bounded by the view frustum) to be safe for the GPU pipeline.
type VisibleItem struct {
	EntityID       entityID
	Entity         scene.Entity
	Geometry       scene.Geometry // nil for a visualizer-only item.
	Visualizer     scene.Visualizer
	WorldPos       lin.V3
	CamRelative    lin.V3
	CamSpace       mgl32.Vec3
	Orientation    lin.Q
	BoundingRadius float64
	Near           float64
	Far            float64
	OutsideFrustum bool
	Splittable     bool
}

// fovAdjustment computes the near-plane FOV adjustment factor A = cos(fov/2)
// / sqrt(1 + aspect^2) (spec §4.2).
func fovAdjustment(fovRadians, aspect float64) float64 {
	return math.Cos(fovRadians/2) / math.Sqrt(1+aspect*aspect)
}

// VisibleItemCollector walks entities visible at t, culls by projected
// pixel size, and produces the normal and splittable item lists consumed
// by DepthSpanPartitioner (spec §4.2). frustum is in camera space.
func VisibleItemCollector(entities []scene.Entity, ids []entityID, t float64, cameraPos lin.V3, cameraRot lin.Q, frustum *lin.Frustum, pixelSize float64, fovAdj float64) (normal, splittable []VisibleItem) {
	invRot := lin.NewQ().Inv(&cameraRot)

	for i, e := range entities {
		if !e.Visible(t) {
			continue
		}
		worldPos := e.Position(t)
		camRel := lin.V3{X: worldPos.X - cameraPos.X, Y: worldPos.Y - cameraPos.Y, Z: worldPos.Z - cameraPos.Z}
		camSpaceD := lin.NewV3().MultvQ(&camRel, invRot)
		camSpace := mgl32.Vec3{float32(camSpaceD.X), float32(camSpaceD.Y), float32(camSpaceD.Z)}

		orientation := e.Orientation(t)
		eid := entityID(i)
		if i < len(ids) {
			eid = ids[i]
		}

		if geom, ok := e.Geometry(); ok {
			if item, ok := collectGeometry(geom, eid, e, worldPos, camRel, camSpaceD, camSpace, orientation, frustum, pixelSize, fovAdj); ok {
				if item.Splittable {
					splittable = append(splittable, item)
				} else {
					normal = append(normal, item)
				}
			}
		}

		for _, vis := range e.Visualizers() {
			geom := vis.Geometry()
			if geom == nil {
				continue
			}
			visOrientation := vis.Orientation(e, t)
			visCamRel := camRel
			visCamSpaceD := camSpaceD
			if vis.AdjustToFront() {
				z := -camSpaceD.Z
				f := (z - geom.BoundingRadius()) / z
				if z > 0 && f > 0 && f < 1 {
					visCamRel = lin.V3{X: camRel.X * f, Y: camRel.Y * f, Z: camRel.Z * f}
					visCamSpaceD = lin.NewV3().MultvQ(&visCamRel, invRot)
				}
			}
			visCamSpace := mgl32.Vec3{float32(visCamSpaceD.X), float32(visCamSpaceD.Y), float32(visCamSpaceD.Z)}
			if item, ok := collectGeometry(geom, eid, e, worldPos, visCamRel, visCamSpaceD, visCamSpace, visOrientation, frustum, pixelSize, fovAdj); ok {
				item.Visualizer = vis
				if item.Splittable {
					splittable = append(splittable, item)
				} else {
					normal = append(normal, item)
				}
			}
		}
	}
	return normal, splittable
}

func collectGeometry(geom scene.Geometry, eid entityID, host scene.Entity, worldPos, camRel lin.V3, camSpaceD *lin.V3, camSpace mgl32.Vec3, orientation lin.Q, frustum *lin.Frustum, pixelSize, fovAdj float64) (VisibleItem, bool) {
	dist := camRel.Len()
	radius := geom.BoundingRadius()
	if dist == 0 || (radius/dist)/pixelSize < sizeCullThresholdPixels {
		return VisibleItem{}, false
	}

	far := -camSpaceD.Z + radius
	negCamRel := lin.V3{X: -camRel.X, Y: -camRel.Y, Z: -camRel.Z}
	viewVector := lin.NewV3().MultvQ(&negCamRel, lin.NewQ().Inv(&orientation))
	near := geom.NearPlaneDistance(viewVector)

	policy := geom.ClippingPolicy()
	switch policy {
	case scene.PreserveDepthPrecision:
		if min := radius * 2 * MinimumNearFarRatio; near < min {
			near = min
		}
	case scene.PreventClipping, scene.SplitToPreventClipping:
		if near < MinimumNearPlaneDistance {
			near = MinimumNearPlaneDistance
		}
	}
	near *= fovAdj

	if !(far > 0 && near < far) {
		return VisibleItem{}, false
	}

	outside := true
	if frustum != nil {
		sphere := &lin.Sphere{Center: lin.V3{X: float64(camSpace.X()), Y: float64(camSpace.Y()), Z: float64(camSpace.Z())}, Radius: radius}
		outside = !frustum.Intersects(sphere)
	}

	return VisibleItem{
		EntityID:       eid,
		Entity:         host,
		Geometry:       geom,
		WorldPos:       worldPos,
		CamRelative:    camRel,
		CamSpace:       camSpace,
		Orientation:    orientation,
		BoundingRadius: radius,
		Near:           near,
		Far:            far,
		OutsideFrustum: outside,
		Splittable:     policy == scene.SplitToPreventClipping,
	}, true
}
