package render

// target.go holds the two render-to-texture targets the shadow passes
// need. Grounded on avatar29A-midgard-ro/internal/engine/shadow/shadow_map.go
// (depth-only FBO, viewport save/restore) and gazed-vu's target.go/layer.go
// render-to-texture split, generalized from a single color+depth offscreen
// target to a depth-only target and a six-face single-channel-float cube
// target.

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// depthFramebuffer is a depth-only render target, sized in a square,
// sampled by shaders as a comparison-ready 2D depth texture.
type depthFramebuffer struct {
	fbo   uint32
	depth uint32
	size  int32
	valid bool
}

// NewDepthFramebuffer allocates a depth-only framebuffer of the given
// square size for DirectionalShadowPass. Returns a non-nil, !Valid()
// framebuffer on allocation failure so callers can silently disable
// shadows per spec §7 category 2 rather than handle an error return.
func NewDepthFramebuffer(size int) Framebuffer {
	fb := &depthFramebuffer{size: int32(size)}
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.depth)
	gl.BindTexture(gl.TEXTURE_2D, fb.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, fb.size, fb.size, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, fb.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	fb.valid = gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if !fb.valid {
		fb.release()
	}
	return fb
}

func (fb *depthFramebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.size, fb.size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (fb *depthFramebuffer) Valid() bool         { return fb.valid }
func (fb *depthFramebuffer) DepthTexture() uint32 { return fb.depth }

func (fb *depthFramebuffer) release() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.depth != 0 {
		gl.DeleteTextures(1, &fb.depth)
		fb.depth = 0
	}
}

// cubeDepthFramebuffer is a six-face render target for OmniShadowPass: one
// color attachment per face, single-channel float, holding world-space
// distance-to-fragment (spec §4.6), plus a shared depth renderbuffer for
// depth testing during each face's render.
type cubeDepthFramebuffer struct {
	fbos  [6]uint32
	color uint32 // cube map texture, GL_R32F per face.
	depth uint32 // shared depth renderbuffer.
	size  int32
	valid bool
}

// NewCubeDepthFramebuffer allocates a six-face cube-map framebuffer of the
// given size with a single-channel float color format, used by
// OmniShadowPass and, as a destination, by CubeMapViewDriver.
func NewCubeDepthFramebuffer(size int) CubeMapFramebuffer {
	fb := &cubeDepthFramebuffer{size: int32(size)}

	gl.GenTextures(1, &fb.color)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, fb.color)
	for face := 0; face < 6; face++ {
		target := uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X + face)
		gl.TexImage2D(target, 0, gl.R32F, fb.size, fb.size, 0, gl.RED, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.GenRenderbuffers(1, &fb.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.size, fb.size)

	fb.valid = true
	for face := 0; face < 6; face++ {
		gl.GenFramebuffers(1, &fb.fbos[face])
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbos[face])
		target := uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X + face)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, target, fb.color, 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
		if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
			fb.valid = false
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if !fb.valid {
		fb.release()
	}
	return fb
}

func (fb *cubeDepthFramebuffer) BindFace(face int) {
	if face < 0 || face > 5 {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbos[face])
	gl.Viewport(0, 0, fb.size, fb.size)
}

func (fb *cubeDepthFramebuffer) Valid() bool          { return fb.valid }
func (fb *cubeDepthFramebuffer) ColorTexture() uint32 { return fb.color }

func (fb *cubeDepthFramebuffer) release() {
	for i := range fb.fbos {
		if fb.fbos[i] != 0 {
			gl.DeleteFramebuffers(1, &fb.fbos[i])
			fb.fbos[i] = 0
		}
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
		fb.color = 0
	}
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
		fb.depth = 0
	}
}

// errNoGPUSupport is returned by higher layers (view.Engine's
// initialize_shadow_maps/initialize_omni_shadow_maps) when allocation
// fails; the GPU calls above never return an error themselves, matching
// the pack's GL-binding convention of signaling failure through a !Valid()
// zero-value result rather than an error return.
var errNoGPUSupport = errors.New("render: framebuffer allocation failed")

// ErrNoGPUSupport is the sentinel wrapped by view.Engine when shadow or
// cube-map resource creation fails (spec §7 category 2).
func ErrNoGPUSupport() error { return errNoGPUSupport }
