package view

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/scene"
)

func sunLight() LightSourceItem {
	return LightSourceItem{Handle: uuid.Nil, Source: nil, ShadowCaster: true}
}

func TestLightVisibilityFilterSunNeverCulled(t *testing.T) {
	lights := []LightSourceItem{sunLight()}
	visible := LightVisibilityFilter(lights, lin.V3{}, *lin.NewQI(), nil, 1)
	if assert.Len(t, visible, 1) {
		assert.True(t, visible[0].isSun())
	}
}

func TestLightVisibilityFilterCullsSubpixelLight(t *testing.T) {
	lights := []LightSourceItem{
		sunLight(),
		{
			Handle:   uuid.New(),
			Source:   &scene.StaticLight{LightRange: 1},
			WorldPos: lin.V3{X: 1e9, Y: 0, Z: 0}, // far enough that range/dist is subpixel.
		},
	}
	visible := LightVisibilityFilter(lights, lin.V3{}, *lin.NewQI(), nil, 0.001)
	assert.Len(t, visible, 1) // only the Sun survives.
}

func TestLightVisibilityFilterKeepsNearbyLight(t *testing.T) {
	lights := []LightSourceItem{
		sunLight(),
		{
			Handle:   uuid.New(),
			Source:   &scene.StaticLight{LightRange: 100},
			WorldPos: lin.V3{X: 50, Y: 0, Z: 0},
		},
	}
	visible := LightVisibilityFilter(lights, lin.V3{}, *lin.NewQI(), nil, 0.001)
	assert.Len(t, visible, 2)
}

func TestLightVisibilityFilterOrdersShadowCastersFirst(t *testing.T) {
	lights := []LightSourceItem{
		sunLight(),
		{
			Handle:       uuid.New(),
			Source:       &scene.StaticLight{LightRange: 100},
			WorldPos:     lin.V3{X: 10, Y: 0, Z: 0},
			ShadowCaster: false,
		},
		{
			Handle:       uuid.New(),
			Source:       &scene.StaticLight{LightRange: 100},
			WorldPos:     lin.V3{X: 20, Y: 0, Z: 0},
			ShadowCaster: true,
		},
	}
	visible := LightVisibilityFilter(lights, lin.V3{}, *lin.NewQI(), nil, 0.001)
	if assert.Len(t, visible, 3) {
		assert.True(t, visible[0].isSun())
		assert.True(t, visible[1].ShadowCaster)
		assert.False(t, visible[2].ShadowCaster)
	}
}
