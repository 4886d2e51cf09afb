package view

import "github.com/skyforge/orrery/render"

// EnvironmentSource supplies the reflection cube map bound to items during
// ordinary span rendering (spec §4.4 step 6's "reflection cube map if the
// lighting environment provides one"). The spec leaves supply timing
// unspecified; this package resolves it as caller-supplied-per-frame,
// typically the output of a prior frame's CubeMapViewDriver capture (so the
// reflection may be stale by one frame — acceptable per spec §9's tolerance
// for approximate environment reflections).
type EnvironmentSource func() render.CubeMapFramebuffer

// SetEnvironmentSource installs (or clears, with nil) the per-frame
// reflection-map supplier consulted by RenderView.
func (e *Engine) SetEnvironmentSource(src EnvironmentSource) { e.environment = src }
