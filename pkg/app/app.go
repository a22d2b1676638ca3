// Package app hosts rasterizer scenes in a desktop window.
package app

import "github.com/yohandev/software-rasterizer/pkg/render"

// App is a scene driven by the window host. Update runs once per tick,
// Render once per displayed frame.
type App interface {
	Update(clock *Clock) error
	Render(fb *render.Framebuffer)
}

// Config describes the window to open.
type Config struct {
	Title  string // window title; defaults to "rasterizer"
	Width  int    // framebuffer width in pixels; defaults to 640
	Height int    // framebuffer height in pixels; defaults to 480
	Scale  int    // window pixels per framebuffer pixel; defaults to 1
	TPS    int    // ticks per second; defaults to 60
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "rasterizer"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}
