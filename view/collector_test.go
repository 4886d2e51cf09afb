package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/scene"
)

func sphereEntity(pos lin.V3, radius float64, policy scene.ClippingPolicy) scene.Entity {
	return &scene.StaticEntity{
		StaticPose: scene.StaticPose{Pos: pos, Rot: *lin.NewQI(), Vis: true},
		Geom:       &scene.SphereGeometry{Radius: radius, Policy: policy, IsOpaque: true},
	}
}

func TestVisibleItemCollectorCullsSubpixelGeometry(t *testing.T) {
	entities := []scene.Entity{sphereEntity(lin.V3{X: 0, Y: 0, Z: -1e9}, 1, scene.PreserveDepthPrecision)}
	normal, splittable := VisibleItemCollector(entities, nil, 0, lin.V3{}, *lin.NewQI(), nil, 0.001, 1)
	assert.Empty(t, normal)
	assert.Empty(t, splittable)
}

func TestVisibleItemCollectorKeepsLargeNearbyGeometry(t *testing.T) {
	entities := []scene.Entity{sphereEntity(lin.V3{X: 0, Y: 0, Z: -100}, 10, scene.PreserveDepthPrecision)}
	normal, splittable := VisibleItemCollector(entities, nil, 0, lin.V3{}, *lin.NewQI(), nil, 0.001, 1)
	assert.Empty(t, splittable)
	if assert.Len(t, normal, 1) {
		it := normal[0]
		assert.False(t, it.Splittable)
		assert.Less(t, it.Near, it.Far)
		assert.Equal(t, entityID(0), it.EntityID)
	}
}

func TestVisibleItemCollectorRoutesSplitToPreventClippingAsSplittable(t *testing.T) {
	entities := []scene.Entity{sphereEntity(lin.V3{X: 0, Y: 0, Z: -100}, 10, scene.SplitToPreventClipping)}
	normal, splittable := VisibleItemCollector(entities, nil, 0, lin.V3{}, *lin.NewQI(), nil, 0.001, 1)
	assert.Empty(t, normal)
	if assert.Len(t, splittable, 1) {
		assert.True(t, splittable[0].Splittable)
	}
}

func TestVisibleItemCollectorPreventClippingFloorsNearPlane(t *testing.T) {
	entities := []scene.Entity{sphereEntity(lin.V3{X: 0, Y: 0, Z: -1000}, 10, scene.PreventClipping)}
	normal, _ := VisibleItemCollector(entities, nil, 0, lin.V3{}, *lin.NewQI(), nil, 0.001, 1)
	if assert.Len(t, normal, 1) {
		// NearPlaneDistance returns the sphere radius (10); PreventClipping
		// only raises near to MinimumNearPlaneDistance, which is far below
		// 10, so near should remain ~radius*fovAdj.
		assert.InDelta(t, 10, normal[0].Near, 0.001)
	}
}

func TestVisibleItemCollectorFlagsOutsideFrustum(t *testing.T) {
	entities := []scene.Entity{sphereEntity(lin.V3{X: 0, Y: 0, Z: -100}, 10, scene.PreserveDepthPrecision)}
	// A camera-space frustum whose near plane sits beyond the sphere excludes it.
	frustum := &lin.Frustum{
		Left:   lin.Plane{A: 1, D: 1e6},
		Right:  lin.Plane{A: -1, D: 1e6},
		Bottom: lin.Plane{B: 1, D: 1e6},
		Top:    lin.Plane{B: -1, D: 1e6},
		Near:   lin.Plane{C: 1, D: -1e9}, // everything near the origin fails this plane.
		Far:    lin.Plane{C: -1, D: 1e9},
	}
	normal, _ := VisibleItemCollector(entities, nil, 0, lin.V3{}, *lin.NewQI(), frustum, 0.001, 1)
	if assert.Len(t, normal, 1) {
		assert.True(t, normal[0].OutsideFrustum)
	}
}

func TestFovAdjustmentMatchesKnownValues(t *testing.T) {
	// At fov=90deg, aspect=1: cos(45deg)/sqrt(2) = (sqrt(2)/2)/sqrt(2) = 0.5.
	got := fovAdjustment(lin.Rad(90), 1)
	assert.InDelta(t, 0.5, got, 1e-9)
}
