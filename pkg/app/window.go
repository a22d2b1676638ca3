package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/yohandev/software-rasterizer/pkg/render"
)

// Run opens a desktop window and drives the app until the window closes or
// Update returns an error.
func Run(a App, cfg Config) error {
	cfg = cfg.withDefaults()

	g := &game{
		app:   a,
		fb:    render.NewFramebuffer(cfg.Width, cfg.Height),
		fbImg: ebiten.NewImage(cfg.Width, cfg.Height),
		clock: NewClock(),
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type game struct {
	app   App
	fb    *render.Framebuffer
	fbImg *ebiten.Image
	clock *Clock
}

func (g *game) Update() error {
	g.clock.Tick()
	return g.app.Update(g.clock)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.app.Render(g.fb)
	g.fbImg.WritePixels(g.fb.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
