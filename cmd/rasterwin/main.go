// rasterwin - windowed 3D viewer
//
// Renders a glTF model (or a built-in cube) in a desktop window using the
// software rasterizer. X toggles wireframe, P saves a snapshot.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/yohandev/software-rasterizer/pkg/app"
	"github.com/yohandev/software-rasterizer/pkg/math3d"
	"github.com/yohandev/software-rasterizer/pkg/models"
	"github.com/yohandev/software-rasterizer/pkg/render"
)

var (
	width    = flag.Int("width", 640, "Framebuffer width in pixels")
	height   = flag.Int("height", 480, "Framebuffer height in pixels")
	scale    = flag.Int("scale", 2, "Window pixels per framebuffer pixel")
	snapshot = flag.String("snapshot", "snapshot.webp", "Snapshot output path")
)

func main() {
	flag.Parse()

	mesh := models.NewCubeMesh(2)
	if path := flag.Arg(0); path != "" {
		var err error
		mesh, err = models.LoadGLB(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: load model: %v\n", err)
			os.Exit(1)
		}
		mesh.Normalize(2)
	}

	scene := newViewer(mesh)
	err := app.Run(scene, app.Config{
		Title:  "rasterwin",
		Width:  *width,
		Height: *height,
		Scale:  *scale,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type viewer struct {
	mesh      *models.Mesh
	ground    *models.Mesh
	camera    *render.Camera
	renderer  *render.Renderer
	angle     float64
	wireframe bool
}

func newViewer(mesh *models.Mesh) *viewer {
	camera := render.NewCamera()
	camera.SetPosition(math3d.V3(0, 2, 5))
	camera.LookAt(math3d.Zero3())
	return &viewer{
		mesh:   mesh,
		ground: models.NewPlaneMesh(8, 8),
		camera: camera,
	}
}

func (v *viewer) Update(clock *app.Clock) error {
	v.angle += clock.Delta() * 0.8

	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		v.wireframe = !v.wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && v.renderer != nil {
		if err := v.renderer.Framebuffer().SaveWebP(*snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (v *viewer) Render(fb *render.Framebuffer) {
	if v.renderer == nil {
		v.renderer = render.NewRenderer(v.camera, fb)
	} else {
		v.renderer.SetTarget(fb)
	}

	v.renderer.BeginFrame(render.RGB(30, 30, 40))
	v.renderer.DrawGrid(4, 1, render.RGB(60, 60, 70))

	transform := math3d.Translate(math3d.V3(0, 0.5, 0)).
		Mul(math3d.RotateY(v.angle)).
		Mul(math3d.RotateX(v.angle * 0.4))

	if v.wireframe {
		v.renderer.DrawMeshWireframe(v.mesh, transform, render.RGB(0, 255, 128))
	} else {
		v.renderer.DrawMesh(v.ground, math3d.Translate(math3d.V3(0, -1, 0)), render.RGB(90, 110, 90))
		v.renderer.DrawMeshGouraud(v.mesh, transform, render.RGB(200, 160, 90))
	}

	// Slowly orbit the camera around the scene.
	r := 5.0
	v.camera.SetPosition(math3d.V3(math.Sin(v.angle*0.25)*r, 2, math.Cos(v.angle*0.25)*r))
}
