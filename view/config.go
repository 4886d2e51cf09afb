package view

// config.go reduces NewEngine's API footprint with functional options,
// mirroring gazed-vu/config.go's Attr func(*Config) pattern (renamed
// Option/Engine to match this package's API).

// engineConfig holds attributes fixed at Engine construction time.
type engineConfig struct {
	shadowMapSize      int // square pixel dimension of the directional shadow map.
	omniShadowMapSize  int // square pixel dimension of each omni-shadow cube face.
	omniShadowCapacity int // max simultaneous point-light shadow casters per span.
	shadowsEnabled     bool
}

var engineConfigDefaults = engineConfig{
	shadowMapSize:      2048,
	omniShadowMapSize:  512,
	omniShadowCapacity: 4,
	shadowsEnabled:     true,
}

// Option configures an Engine at construction time.
//
//	eng := view.NewEngine(ctx,
//	    view.WithShadowMapSize(2048),
//	    view.WithOmniShadowCapacity(6),
//	)
type Option func(*engineConfig)

// WithShadowMapSize sets the square pixel dimension of the directional
// shadow map. Values below 64 are ignored.
func WithShadowMapSize(size int) Option {
	return func(c *engineConfig) {
		if size >= 64 {
			c.shadowMapSize = size
		}
	}
}

// WithOmniShadowMapSize sets the square pixel dimension of each omni-shadow
// cube face. Values below 64 are ignored.
func WithOmniShadowMapSize(size int) Option {
	return func(c *engineConfig) {
		if size >= 64 {
			c.omniShadowMapSize = size
		}
	}
}

// WithOmniShadowCapacity bounds how many point lights may cast an omni
// shadow within a single span (spec §4.4 step 4). Zero disables
// point-light shadows without disabling the directional pass; negative
// values are ignored.
func WithOmniShadowCapacity(n int) Option {
	return func(c *engineConfig) {
		if n >= 0 {
			c.omniShadowCapacity = n
		}
	}
}

// WithShadowsDisabled starts the Engine with shadows off; InitializeShadowMaps
// and InitializeOmniShadowMaps may still be called later to turn them on
// (spec §5 lifecycle).
func WithShadowsDisabled() Option {
	return func(c *engineConfig) { c.shadowsEnabled = false }
}
