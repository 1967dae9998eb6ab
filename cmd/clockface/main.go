package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hubastard/clockface/engine/assets"
	"github.com/hubastard/clockface/engine/core"
	glbackend "github.com/hubastard/clockface/engine/gfx/gl"
	"github.com/hubastard/clockface/engine/platform"
	"github.com/hubastard/clockface/engine/profiler"
	"github.com/hubastard/clockface/engine/scene"
	"github.com/hubastard/clockface/internal/clockface"
)

type App struct {
	cfg     Config
	watcher *assets.ShaderWatcher
	clock   *clockface.Driver
}

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(8) // one scope per frame stage

	pair := assets.ShaderPair{Dir: a.cfg.Shaders, Vertex: "main.vert", Fragment: "main.frag"}
	desc, err := clockface.LoadPipelineDesc(pair)
	if err != nil {
		return err
	}
	pipe, err := e.Renderer.CreatePipeline(desc)
	if err != nil {
		return err
	}

	opts, err := a.cfg.ClockOptions()
	if err != nil {
		e.Renderer.DestroyPipeline(pipe)
		return err
	}
	if a.cfg.WatchShaders {
		if a.watcher, err = assets.WatchShaders(pair.Dir, pair.Vertex, pair.Fragment); err != nil {
			log.Printf("shader watch disabled: %v", err)
		} else {
			opts.Shaders = clockface.WatchedShaders{Pair: pair, Watcher: a.watcher}
			log.Printf("watching %s for shader edits", pair.Dir)
		}
	}

	state := a.cfg.RenderState()
	cam := scene.NewOrbitCamera3D(5, 1, 10)
	a.clock, err = clockface.New(e.Renderer, pipe, cam, &state, opts)
	if err != nil {
		e.Renderer.DestroyPipeline(pipe)
		return err
	}
	e.Layers.Push(a.clock)
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyEscape {
		e.Window.RequestClose()
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if err := profiler.Dump(os.Stderr); err != nil {
		log.Printf("profiler: %v", err)
	}
}

func main() {
	cfg, err := ParseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	app := &App{cfg: cfg}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg.Core(), newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
