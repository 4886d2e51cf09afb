package view

// lightfilter.go implements LightVisibilityFilter (spec §4.1), grounded on
// gazed-vu/culler.go's angular/radius cull shape and gazed-vu/light.go's
// light-list bookkeeping, generalized to the stable shadow-caster-first
// reordering spec §3/§4.1 require.

import (
	"sort"

	"github.com/google/uuid"

	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/scene"
)

// LightHandle externally identifies a light source across a view set's
// lifetime. The zero value denotes the Sun sentinel (spec §3, §9).
type LightHandle = uuid.UUID

// LightSourceItem is built once per begin_view_set and cleared at
// end_view_set (spec §3). Index 0 is always the Sun sentinel.
type LightSourceItem struct {
	Handle       LightHandle // zero value for the Sun sentinel.
	Source       scene.LightSource
	WorldPos     lin.V3
	ShadowCaster bool
}

func (l *LightSourceItem) isSun() bool { return l.Source == nil }

// VisibleLightSourceItem is rebuilt on every render_view: a LightSourceItem
// that survived LightVisibilityFilter, with its camera-relative position
// resolved for this frame.
type VisibleLightSourceItem struct {
	LightSourceItem
	CamRelative lin.V3
}

// LightVisibilityFilter reduces lights to camera, filtering by subpixel
// influence and frustum intersection, then stably reorders shadow casters
// first (spec §4.1). cameraPos/cameraRot are the observer's pose for this
// frame; frustum is the camera-space view frustum; pixelSize is the render
// context's per-pixel angular/linear metric used for the subpixel test.
func LightVisibilityFilter(lights []LightSourceItem, cameraPos lin.V3, cameraRot lin.Q, frustum *lin.Frustum, pixelSize float64) []VisibleLightSourceItem {
	survivors := make([]VisibleLightSourceItem, 0, len(lights))
	for i := range lights {
		l := &lights[i]
		camRel := lin.V3{X: l.WorldPos.X - cameraPos.X, Y: l.WorldPos.Y - cameraPos.Y, Z: l.WorldPos.Z - cameraPos.Z}

		if l.isSun() {
			survivors = append(survivors, VisibleLightSourceItem{LightSourceItem: *l, CamRelative: camRel})
			continue
		}

		dist := camRel.Len()
		lightRange := l.Source.Range()
		if dist > 0 && (lightRange/dist)/pixelSize < lightCullThresholdPixels {
			continue // subpixel influence.
		}

		camSpace := lin.NewV3().MultvQ(&camRel, lin.NewQ().Inv(&cameraRot))
		sphere := &lin.Sphere{Center: *camSpace, Radius: lightRange}
		if frustum != nil && !frustum.Intersects(sphere) {
			continue
		}

		survivors = append(survivors, VisibleLightSourceItem{LightSourceItem: *l, CamRelative: camRel})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		ci := survivors[i].isSun() || survivors[i].ShadowCaster
		cj := survivors[j].isSun() || survivors[j].ShadowCaster
		return ci && !cj
	})
	return survivors
}
