// Package app wires the simulation, its terminal commands and the raylib front end together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"celestial-sim/internal/commands"
	"celestial-sim/internal/debug"
	"celestial-sim/internal/engineconfig"
	"celestial-sim/internal/fonts"
	"celestial-sim/internal/graphics"
	"celestial-sim/internal/lod"
	"celestial-sim/internal/logger"
	"celestial-sim/internal/metrics"
	"celestial-sim/internal/physics"
	"celestial-sim/internal/scene"
	"celestial-sim/internal/sim"
	"celestial-sim/internal/stream"
	"celestial-sim/internal/system"
	"celestial-sim/internal/terminal"
	"celestial-sim/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
)

// Options override where the app reads and writes its files. Empty fields use the defaults.
type Options struct {
	PrefsPath  string
	SystemPath string
	LogPath    string
	Listen     string
}

// App is the running simulator: the controller plus everything that draws or exports it.
type App struct {
	prefsPath string
	prefs     engineconfig.EnginePrefs
	def       *system.Definition

	log     *logger.Logger
	ctrl    *sim.Controller
	metrics *metrics.Collector
	hub     *stream.Hub
	server  *http.Server
	reg     *commands.Registry

	term      *terminal.Terminal
	scene     *scene.Scene
	ui        *ui.Engine
	inspector *ui.Inspector
	debug     *debug.Debug
	nodes     []*ui.Node
	selected  string
	fontTried bool
}

// New loads preferences and the system, builds the world and registers all terminal commands.
// It does not open a window; call Run for that.
func New(opts Options) (*App, error) {
	if opts.PrefsPath == "" {
		opts.PrefsPath = engineconfig.EngineConfigPath
	}
	if opts.LogPath == "" {
		opts.LogPath = logger.LogFilePath
	}
	log := logger.New(opts.LogPath)

	prefs, err := engineconfig.Load(opts.PrefsPath)
	if err != nil {
		log.Logf("engine config: %v (using defaults)", err)
	}
	if opts.Listen != "" {
		prefs.Listen = opts.Listen
	}
	systemPath := opts.SystemPath
	if systemPath == "" {
		systemPath = prefs.SystemPath
	}
	if systemPath == "" {
		systemPath = system.DefaultPath
	}
	def, err := system.Load(systemPath)
	if err != nil {
		return nil, err
	}
	w, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", systemPath, err)
	}
	prefs.SystemPath = systemPath

	m := metrics.NewCollector(prometheus.NewRegistry())
	w.SetObserver(m)
	hub := stream.NewHub()
	hub.OnChange = m.SetStreamClients

	ctrl := sim.NewController(w, prefs.Orbit, log)
	ctrl.SetFailureCounter(m)
	ctrl.SetPublisher(hub)

	a := &App{
		prefsPath: opts.PrefsPath,
		prefs:     prefs,
		def:       def,
		log:       log,
		ctrl:      ctrl,
		metrics:   m,
		hub:       hub,
		reg:       commands.NewRegistry(),
		scene:     scene.New(),
		ui:        ui.New(ui.DefaultTheme()),
		inspector: ui.NewInspector(),
		debug:     debug.New(),
	}
	a.term = terminal.New(log, a.reg)
	a.scene.SetGridVisible(prefs.GridVisible)
	a.scene.LOD = lod.Thresholds{LOD1: prefs.LOD.LOD1Threshold, LOD2: prefs.LOD.LOD2Threshold}
	a.debug.SetShowFPS(prefs.ShowFPS)
	a.debug.SetShowMemAlloc(prefs.ShowMemAlloc)
	for i, bd := range def.Bodies {
		r, g, b := def.RGB(i)
		a.scene.SetColor(bd.Name, rl.NewColor(r, g, b, 255))
	}

	sim.RegisterCommands(a.reg, ctrl)
	a.registerCommands()

	log.Logf("loaded %s: %d bodies, G=%g, dt=%g", def.Name, w.Len(), w.Config().G, w.Config().TimeStep)
	return a, nil
}

// Controller returns the simulation controller.
func (a *App) Controller() *sim.Controller { return a.ctrl }

// Handler serves the state stream at /ws and Prometheus metrics at /metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", a.hub)
	mux.Handle("/metrics", a.metrics.Handler())
	return mux
}

// Serve starts the HTTP listener in the background when a listen address is configured.
func (a *App) Serve() {
	if a.prefs.Listen == "" {
		return
	}
	a.server = &http.Server{
		Addr:              a.prefs.Listen,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Logf("http: %v", err)
		}
	}()
	a.log.Logf("serving /ws and /metrics on %s", a.prefs.Listen)
}

// Close stops the HTTP listener, if running.
func (a *App) Close(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	title := "orbits"
	if a.def.Name != "" {
		title += " - " + a.def.Name
	}
	graphics.Run(graphics.Window{Title: title, Width: 1280, Height: 720}, a.update, a.draw)
}

func (a *App) update() {
	a.term.Update()
	if !a.term.IsOpen() {
		if rl.IsKeyPressed(rl.KeyP) {
			a.togglePause()
		}
		a.scene.Update()
	}
	// Errors are logged by the controller.
	_ = a.ctrl.Update()
}

func (a *App) togglePause() {
	if a.ctrl.Paused() {
		a.ctrl.Play()
		a.log.Log("playing")
		return
	}
	a.ctrl.Pause()
	a.log.Log("paused")
}

func (a *App) draw() {
	if !a.fontTried {
		a.fontTried = true
		a.loadFont()
	}
	bodies := a.ctrl.World().Bodies()
	for i, b := range bodies {
		if !a.scene.HasColor(b.Name) {
			r, g, bl := system.PaletteRGB(i)
			a.scene.SetColor(b.Name, rl.NewColor(r, g, bl, 255))
		}
	}
	orbit := a.ctrl.OrbitPrefs()
	a.scene.Draw(bodies, a.ctrl.Trajectories(), scene.OrbitStyle{Thick: orbit.UseThickLines, Width: orbit.Width})

	a.nodes = a.inspector.AppendNodes(a.nodes[:0], a.selectedBody())
	a.ui.SetNodes(a.nodes)
	a.ui.Draw()
	a.term.Draw()

	ticks, elapsed := a.ctrl.World().Ticks()
	a.debug.Draw(debug.SimStats{Paused: a.ctrl.Paused(), Ticks: ticks, Elapsed: elapsed, Bodies: len(bodies)})
}

// loadFont applies the preferred font to the overlay, terminal and debug text. It needs the
// GL context, so it runs on the first drawn frame.
func (a *App) loadFont() {
	if a.prefs.Font == "" {
		return
	}
	path, err := fonts.Find(a.prefs.Font)
	if err != nil {
		a.log.Logf("font %q: not found under %v", a.prefs.Font, fonts.BaseDirs())
		return
	}
	if err := a.ui.LoadFont(path); err != nil {
		a.log.Logf("font %s: %v", path, err)
		return
	}
	f := a.ui.Font()
	a.term.SetFont(f)
	a.debug.SetFont(f)
}

func (a *App) selectedBody() *physics.Body {
	if a.selected == "" {
		return nil
	}
	b, _, err := a.ctrl.World().Lookup(a.selected)
	if err != nil {
		return nil
	}
	return b
}

// Prefs returns the engine preferences as they would be saved now.
func (a *App) Prefs() engineconfig.EnginePrefs {
	p := a.prefs
	p.Orbit = a.ctrl.OrbitPrefs()
	p.GridVisible = a.scene.GridVisible
	p.ShowFPS = a.debug.ShowFPS
	p.ShowMemAlloc = a.debug.ShowMemAlloc
	p.LOD = engineconfig.LODPrefs{LOD1Threshold: a.scene.LOD.LOD1, LOD2Threshold: a.scene.LOD.LOD2}
	return p
}

func (a *App) registerCommands() {
	a.reg.Register("help", commands.NewFlagSet("help"), func() error {
		a.log.Log("commands: " + strings.Join(a.reg.Names(), ", "))
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	a.reg.Register("grid", gridFS, func() error {
		on, err := commands.ParseOnOff(gridFS.Arg(0))
		if err != nil {
			return fmt.Errorf("grid: %w", err)
		}
		a.scene.SetGridVisible(on)
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsMem := fpsFS.Bool("mem", false, "also show heap allocation")
	a.reg.Register("fps", fpsFS, func() error {
		on, err := commands.ParseOnOff(fpsFS.Arg(0))
		if err != nil {
			return fmt.Errorf("fps: %w", err)
		}
		a.debug.SetShowFPS(on)
		a.debug.ShowSim = on
		if *fpsMem || !on {
			a.debug.SetShowMemAlloc(on)
		}
		return nil
	})

	selectFS := commands.NewFlagSet("select")
	selectName := selectFS.String("name", "", "body name, or none")
	a.reg.Register("select", selectFS, func() error {
		if *selectName == "" || strings.EqualFold(*selectName, "none") {
			a.selected = ""
			return nil
		}
		if _, _, err := a.ctrl.World().Lookup(*selectName); err != nil {
			return err
		}
		a.selected = *selectName
		return nil
	})

	a.reg.Register("save", commands.NewFlagSet("save"), func() error {
		if err := engineconfig.Save(a.prefsPath, a.Prefs()); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		a.log.Logf("saved %s", a.prefsPath)
		return nil
	})
}
