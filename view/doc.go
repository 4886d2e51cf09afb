// Package view is the per-view render orchestrator: light-source
// visibility filtering, visible-item collection with double-precision
// camera-relative positioning, depth-buffer span partitioning and
// coalescing, multi-pass span rendering, and directional/omni shadow-map
// generation. It drives the render and scene collaborator interfaces but
// owns no GPU resources beyond the shadow/cube-map framebuffers it
// allocates for itself.
package view
