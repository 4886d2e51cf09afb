package view

// Tuning constants that affect rendering output, bit-exact per spec §6.
const (
	// MinimumNearPlaneDistance floors the near plane for PreventClipping
	// and SplitToPreventClipping geometry (spec §4.2 step 4).
	MinimumNearPlaneDistance = 1e-5

	// MaximumFarPlaneDistance is the far-plane ceiling for projections
	// handed to the engine. The engine does not clamp a projection's far
	// plane to it.
	MaximumFarPlaneDistance = 1e12

	// MinimumNearFarRatio floors the near plane for PreserveDepthPrecision
	// geometry relative to its bounding diameter (spec §4.2 step 4).
	MinimumNearFarRatio = 0.001

	// PreferredNearFarRatio gates span coalescing: a merge is rejected if
	// it would push near/far below this ratio (spec §3, §4.3).
	PreferredNearFarRatio = 0.002

	// MaxFarNearRatio bounds the near/far ratio of spans synthesized to
	// cover splittable items (spec §4.3).
	MaxFarNearRatio = 10000.0

	// sizeCullThresholdPixels culls geometry whose projected bounding
	// radius would cover less than this many pixels (spec §4.2 step 2).
	sizeCullThresholdPixels = 0.5

	// lightCullThresholdPixels culls lights whose range subtends less
	// than this many pixels (spec §4.1).
	lightCullThresholdPixels = 1.0

	// farPlaneSafetyEpsilon compensates for 32-bit float round-off at the
	// back of a span so legitimate back-wall items are not clipped
	// (spec §4.4 step 2).
	farPlaneSafetyEpsilon = 1 + 1e-6
)
