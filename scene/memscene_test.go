package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
)

func TestStaticEntityFacets(t *testing.T) {
	geom := &SphereGeometry{Radius: 10, Policy: PreventClipping, IsOpaque: true, Caster: true, Receiver: false}
	light := &StaticLight{LightRange: 100, R: 1, G: 0.5, B: 0.25, IsShadowCaster: true}
	e := &StaticEntity{
		StaticPose: StaticPose{Pos: lin.V3{X: 1, Y: 2, Z: 3}, Rot: *lin.NewQI(), Vis: true},
		Geom:       geom,
		Lite:       light,
	}

	g, ok := e.Geometry()
	assert.True(t, ok)
	assert.Equal(t, Geometry(geom), g)

	l, ok := e.Light()
	assert.True(t, ok)
	assert.Equal(t, LightSource(light), l)

	assert.True(t, e.Visible(0))
	assert.Equal(t, lin.V3{X: 1, Y: 2, Z: 3}, e.Position(0))
}

func TestStaticEntityWithoutGeometryOrLight(t *testing.T) {
	e := &StaticEntity{StaticPose: StaticPose{Vis: true}}
	_, ok := e.Geometry()
	assert.False(t, ok)
	_, ok = e.Light()
	assert.False(t, ok)
}

func TestSphereGeometryDrawHooksAreOptional(t *testing.T) {
	bare := &SphereGeometry{Radius: 5}
	assert.NotPanics(t, func() { bare.Render(nil, 0) })
	assert.NotPanics(t, func() { bare.RenderShadow(nil, 0) })

	var drawn, shadowDrawn bool
	wired := &SphereGeometry{
		Radius:         5,
		DrawFunc:       func(ctx render.Context, t float64) { drawn = true },
		DrawShadowFunc: func(ctx render.Context, t float64) { shadowDrawn = true },
	}
	wired.Render(nil, 0)
	wired.RenderShadow(nil, 0)
	assert.True(t, drawn)
	assert.True(t, shadowDrawn)
}

func TestMemSceneEntities(t *testing.T) {
	a := &StaticEntity{StaticPose: StaticPose{Vis: true}}
	b := &StaticEntity{StaticPose: StaticPose{Vis: false}}
	sc := NewMemScene([]Entity{a, b}, nil)
	assert.Len(t, sc.Entities(), 2)
	assert.Empty(t, sc.SkyLayers())
}
