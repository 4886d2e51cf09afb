// Command orrery-demo drives a single view.Engine end to end against a
// real OpenGL window: a small planet/spacecraft/trajectory scene, one
// observer orbiting the planet, and the standard begin_view_set/
// render_view/end_view_set cycle run once per frame.
package main

import (
	"image"
	"image/color"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fogleman/simplify"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/nfnt/resize"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/skyforge/orrery/internal/sceneconfig"
	"github.com/skyforge/orrery/internal/telemetry"
	"github.com/skyforge/orrery/math/lin"
	"github.com/skyforge/orrery/render"
	"github.com/skyforge/orrery/scene"
	"github.com/skyforge/orrery/view"
)

func init() {
	runtime.LockOSThread()
}

var (
	app            = kingpin.New("orrery-demo", "Render a planet/spacecraft scene through the orrery view engine.")
	widthFlag      = app.Flag("width", "window width in pixels").Default("1280").Int()
	heightFlag     = app.Flag("height", "window height in pixels").Default("720").Int()
	shadowMapSize  = app.Flag("shadow-map-size", "directional shadow map pixel dimension").Default("2048").Int()
	omniMapSize    = app.Flag("omni-shadow-map-size", "omni shadow cube face pixel dimension").Default("512").Int()
	omniCapacity   = app.Flag("omni-shadow-capacity", "max simultaneous point-light shadow casters").Default("4").Int()
	noShadows      = app.Flag("no-shadows", "disable shadow mapping").Bool()
	spacecraftGltf = app.Flag("spacecraft-model", "glTF model to use for the spacecraft entity").String()
	sceneConfig    = app.Flag("scene-config", "YAML file overriding the demo scene's body placement/size").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := telemetry.New(telemetry.Options{})
	defer logger.Sync()

	if err := glfw.Init(); err != nil {
		logger.Fatal("glfw init failed", zap.Error(err))
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(*widthFlag, *heightFlag, "orrery-demo", nil, nil)
	if err != nil {
		logger.Fatal("create window failed", zap.Error(err))
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	ctx, err := render.NewGLContext(1, *omniCapacity)
	if err != nil {
		logger.Fatal("initialize render context failed", zap.Error(err))
	}

	opts := []view.Option{
		view.WithShadowMapSize(*shadowMapSize),
		view.WithOmniShadowMapSize(*omniMapSize),
		view.WithOmniShadowCapacity(*omniCapacity),
	}
	if *noShadows {
		opts = append(opts, view.WithShadowsDisabled())
	}
	engine := view.NewEngine(ctx, opts...)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ctx.SetViewportSize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	cfg, err := sceneconfig.Load(*sceneConfig)
	if err != nil {
		logger.Fatal("scene config load failed", zap.Error(err))
	}

	sc := buildDemoScene(cfg, *spacecraftGltf, logger)
	observer := &orbitObserver{radius: cfg.Spacecraft.OrbitM * 1.1, height: cfg.Spacecraft.HeightM * 1.2, period: cfg.Spacecraft.PeriodS}
	projection := render.NewPerspective(60, float64(*widthFlag)/float64(*heightFlag), 1, 1e11)

	start := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		t := time.Since(start).Seconds()

		if status := engine.BeginViewSet(sc, t); status != view.Ok {
			logger.Warn("begin_view_set failed", zap.Stringer("status", status))
			continue
		}
		if status := engine.RenderView(observer, projection, *widthFlag, *heightFlag); status != view.Ok {
			logger.Warn("render_view failed", zap.Stringer("status", status))
		}
		engine.EndViewSet()

		window.SwapBuffers()
	}
}

// orbitObserver circles the planet at a fixed radius and height, always
// turned toward the origin. It only yaws, so the view stays level rather
// than pitching down to the origin.
type orbitObserver struct {
	radius, height, period float64
}

func (o *orbitObserver) Position(t float64) lin.V3 {
	angle := 2 * math.Pi * t / o.period
	return lin.V3{X: o.radius * math.Cos(angle), Y: o.height, Z: o.radius * math.Sin(angle)}
}

func (o *orbitObserver) Orientation(t float64) lin.Q {
	angle := math.Pi/2 - 2*math.Pi*t/o.period
	return *lin.NewQ().SetAa(0, 1, 0, angle)
}

// buildDemoScene assembles the fixed planet/spacecraft/trajectory scene
// that exercises the normal-item, splittable-item, and shadow-caster
// paths in a single frame. The Sun sentinel light is supplied internally
// by Engine.BeginViewSet; this scene contributes only the point-light
// spacecraft beacon.
func buildDemoScene(cfg *sceneconfig.Config, spacecraftModel string, logger *zap.Logger) *scene.MemScene {
	planetAlbedo := downsampleAlbedo(proceduralAlbedo(512, 512), 64)
	logger.Info("prepared planet albedo mipmap", zap.Int("width", planetAlbedo.Bounds().Dx()), zap.Int("height", planetAlbedo.Bounds().Dy()))

	planet := &scene.StaticEntity{
		StaticPose: scene.StaticPose{Pos: lin.V3{}, Rot: *lin.NewQI(), Vis: true},
		Geom: &scene.SphereGeometry{
			Radius:   cfg.PlanetRadiusM,
			Policy:   scene.PreserveDepthPrecision,
			IsOpaque: true,
			Receiver: true,
		},
	}

	spacecraftGeom := loadSpacecraftGeometry(spacecraftModel, cfg.Spacecraft.RadiusM, logger)
	spacecraft := &scene.StaticEntity{
		StaticPose: scene.StaticPose{Pos: lin.V3{X: cfg.Spacecraft.OrbitM, Y: cfg.Spacecraft.HeightM, Z: 0}, Rot: *lin.NewQI(), Vis: true},
		Geom:       spacecraftGeom,
		Lite: &scene.StaticLight{
			LightRange:     500,
			R:              0.9, G: 0.95, B: 1.0,
			IsShadowCaster: true,
		},
	}

	trajectory := &scene.StaticEntity{
		StaticPose: scene.StaticPose{Pos: lin.V3{}, Rot: *lin.NewQI(), Vis: true},
		Geom: &trajectoryGeometry{
			radius: cfg.Spacecraft.OrbitM,
		},
	}

	return scene.NewMemScene([]scene.Entity{planet, spacecraft, trajectory}, nil)
}

// trajectoryGeometry stands in for an orbital path: a splittable item
// whose bounding extent spans the whole orbit, so DepthSpanPartitioner
// redraws it in every span it overlaps rather than clipping it.
type trajectoryGeometry struct {
	radius float64
}

func (g *trajectoryGeometry) BoundingRadius() float64 { return g.radius }
func (g *trajectoryGeometry) NearPlaneDistance(viewVector *lin.V3) float64 {
	return view.MinimumNearPlaneDistance
}
func (g *trajectoryGeometry) ClippingPolicy() scene.ClippingPolicy { return scene.SplitToPreventClipping }
func (g *trajectoryGeometry) Opaque() bool                         { return true }
func (g *trajectoryGeometry) ShadowCaster() bool                   { return false }
func (g *trajectoryGeometry) ShadowReceiver() bool                 { return false }
func (g *trajectoryGeometry) Render(ctx render.Context, t float64) {}
func (g *trajectoryGeometry) RenderShadow(ctx render.Context, t float64) {}

// loadSpacecraftGeometry loads a glTF model's first mesh to derive a
// bounding radius and a decimated triangle count (logged only; the demo
// draws placeholder geometry regardless of mesh complexity). Falls back
// to a placeholder of placeholderRadius (the scene config's spacecraft
// radius) when no model path is given or loading fails; a loaded model's
// own bounding radius replaces it.
func loadSpacecraftGeometry(path string, placeholderRadius float64, logger *zap.Logger) *scene.SphereGeometry {
	if path == "" {
		return &scene.SphereGeometry{Radius: placeholderRadius, Policy: scene.PreventClipping, IsOpaque: true, Caster: true}
	}

	doc, err := gltf.Open(path)
	if err != nil {
		logger.Warn("spacecraft model load failed, using placeholder", zap.String("path", path), zap.Error(err))
		return &scene.SphereGeometry{Radius: placeholderRadius, Policy: scene.PreventClipping, IsOpaque: true, Caster: true}
	}

	radius := placeholderRadius
	if len(doc.Meshes) > 0 && len(doc.Meshes[0].Primitives) > 0 {
		prim := doc.Meshes[0].Primitives[0]
		if idx, ok := prim.Attributes[gltf.POSITION]; ok {
			positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
			if err == nil && len(positions) > 0 {
				radius = meshBoundingRadius(positions)
			}
		}
		if triangles, err := meshTriangles(doc, prim); err == nil && len(triangles) > 0 {
			decimated := simplify.Simplify(triangles, 0.5)
			logger.Info("loaded spacecraft model",
				zap.String("path", path),
				zap.Int("triangles", len(triangles)),
				zap.Int("decimated_triangles", len(decimated)))
		}
	}

	return &scene.SphereGeometry{Radius: radius, Policy: scene.PreventClipping, IsOpaque: true, Caster: true}
}

func meshBoundingRadius(positions [][3]float32) float64 {
	var maxLenSqr float32
	for _, p := range positions {
		lenSqr := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if lenSqr > maxLenSqr {
			maxLenSqr = lenSqr
		}
	}
	return math.Sqrt(float64(maxLenSqr))
}

// meshTriangles builds the triangle list fogleman/simplify decimates from
// a primitive's position/index buffers.
func meshTriangles(doc *gltf.Document, prim gltf.Primitive) ([]*simplify.Triangle, error) {
	idx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
	if err != nil {
		return nil, err
	}
	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	triangles := make([]*simplify.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]]
		triangles = append(triangles, &simplify.Triangle{
			V1: simplify.Vertex{Position: simplify.Vector{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}},
			V2: simplify.Vertex{Position: simplify.Vector{X: float64(b[0]), Y: float64(b[1]), Z: float64(b[2])}},
			V3: simplify.Vertex{Position: simplify.Vector{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}},
		})
	}
	return triangles, nil
}

// proceduralAlbedo synthesizes a placeholder planet albedo texture (a
// latitude gradient) so the demo has something to downsample without
// shipping a binary asset.
func proceduralAlbedo(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		shade := uint8(255 * y / height)
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: 255 - shade, A: 255})
		}
	}
	return img
}

// downsampleAlbedo mipmaps a full-resolution albedo texture down to
// maxDim on a side, trading detail distant bodies will never resolve for
// less texture memory held across the scene (spec's extreme depth range
// means most entities in view are many pixels away from their true size).
func downsampleAlbedo(img image.Image, maxDim int) image.Image {
	return resize.Resize(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
}
