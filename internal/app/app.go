// Package app bootstraps the viewer and runs its event loop.
package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/config"
	"github.com/Faultbox/twistview/internal/engine/debug"
	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/input"
	"github.com/Faultbox/twistview/internal/engine/window"
	"github.com/Faultbox/twistview/internal/logger"
)

// surfaceWindow is the part of the window the event loop needs.
type surfaceWindow interface {
	Size() (int, int)
	DrawableSize() (int, int)
	SwapBuffers()
}

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	target   surfaceWindow
	dev      gpu.Device
	pipeline *Pipeline
	input    *input.Input
	shots    *debug.ScreenshotCapture
}

// New acquires the window and GL context, builds the pipeline and draws
// the first frame. Nothing is retried: any error is final.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL function pointers can only be loaded once a context exists.
	dev, err := gpu.NewGL()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("%w: %v", window.ErrContextUnavailable, err)
	}

	a, err := newApp(cfg, win, dev)
	if err != nil {
		win.Close()
		return nil, err
	}
	a.window = win
	a.input = input.New()

	logger.Info("viewer initialized successfully")
	return a, nil
}

// newApp builds everything that only needs a device and a drawable target.
func newApp(cfg *config.Config, target surfaceWindow, dev gpu.Device) (*App, error) {
	width, height := target.Size()
	pipeline, err := BuildPipeline(dev, cfg.Surface, width, height, target.SwapBuffers)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		target:   target,
		dev:      dev,
		pipeline: pipeline,
		shots:    debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "twistview"),
	}

	a.pipeline.Renderer.Resize(target.DrawableSize())
	a.pipeline.Redraw()
	return a, nil
}

// Run blocks on window events until the window is closed or ESC is pressed.
// Frames are drawn only in response to events.
func (a *App) Run() error {
	a.running = true
	logger.Info("starting event loop")

	for a.running {
		for _, event := range a.input.Wait() {
			a.handle(event)
		}
	}

	logger.Info("event loop finished", zap.Uint64("frames", a.pipeline.Renderer.Frames()))
	return nil
}

// handle applies one event. Drags redraw through the trackball callback.
func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		a.pipeline.Rotator.Resize(a.target.Size())
		a.pipeline.Renderer.Resize(a.target.DrawableSize())
		a.pipeline.Redraw()

	case input.EventWindowExpose:
		a.pipeline.Redraw()

	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
		case sdl.SCANCODE_R:
			a.pipeline.Rotator.Reset()
		case sdl.SCANCODE_F12:
			a.screenshot()
		}

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			a.pipeline.Rotator.Press(event.MouseX, event.MouseY)
		}

	case input.EventMouseMove:
		a.pipeline.Rotator.Drag(event.MouseX, event.MouseY)

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			a.pipeline.Rotator.Release()
		}
	}
}

// screenshot saves the current frame. It redraws first because the back
// buffer is undefined after a swap.
func (a *App) screenshot() {
	a.pipeline.Renderer.Draw()
	width, height := a.target.DrawableSize()
	path, err := a.shots.Capture(a.dev, width, height)
	a.target.SwapBuffers()
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the window and its GL context.
func (a *App) Close() {
	logger.Info("closing viewer")
	if a.window != nil {
		a.window.Close()
	}
}
