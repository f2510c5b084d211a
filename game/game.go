// Package game wires the flight model, terrain, camera and telemetry into a
// runnable session, either against a raylib window or fully headless.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/halcyon-labs/aloft/camera"
	"github.com/halcyon-labs/aloft/config"
	"github.com/halcyon-labs/aloft/environ"
	"github.com/halcyon-labs/aloft/flight"
	"github.com/halcyon-labs/aloft/telemetry"
	"github.com/halcyon-labs/aloft/terrain"
)

// Options configures a game session.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete session state.
type Game struct {
	cfg *config.Config

	model *flight.Model
	elev  *terrain.ElevationSampler
	rig   *camera.Rig

	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager

	seed           int64
	tick           int32
	paused         bool
	invertY        bool
	logStats       bool
	snapshotDir    string
	stepsPerUpdate int
	headless       bool

	camPose camera.Pose
}

// NewGameWithOptions creates a session from the global config and the given
// options.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		stepsPerUpdate: opts.StepsPerUpdate,
		headless:       opts.Headless,
	}

	noise := terrain.NewNoiseField(opts.Seed)
	g.elev = terrain.NewElevationSampler(noise, terrain.ElevationParams{
		BaseScale:      cfg.Terrain.BaseScale,
		BaseAmplitude:  cfg.Terrain.BaseAmplitude,
		Octaves:        cfg.Terrain.Octaves,
		RidgeScale:     cfg.Terrain.RidgeScale,
		RidgeAmplitude: cfg.Terrain.RidgeAmplitude,
	})

	g.model = flight.New(cfg)
	g.model.SetElevation(g.elev)
	g.model.SetWind(environ.NewGustField(opts.Seed, cfg.Wind.Amplitude, cfg.Wind.Scale, cfg.Wind.TimeScale))

	g.rig = camera.NewRig(camera.Params{
		PositionTau:    cfg.Camera.PositionTau,
		FOVTau:         cfg.Camera.FOVTau,
		BaseFOV:        cfg.Camera.BaseFOV,
		AfterburnerFOV: cfg.Camera.AfterburnerFOV,
		Sensitivity: [3]float64{
			cfg.Camera.ChaseSensitivity,
			cfg.Camera.CloseSensitivity,
			cfg.Camera.SideSensitivity,
		},
	})
	g.model.SetPointerScale(g.rig.SensitivityScale())

	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless {
		rl.DisableCursor()
	}

	return g
}

// step advances the simulation by one tick and feeds telemetry.
func (g *Game) step(dt float64) {
	snap := g.model.Step(dt)
	g.tick++
	g.collector.Record(snap)
	g.flushTelemetry()
}

// flushTelemetry emits a stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	stats := g.collector.Flush(g.tick, g.model.LastSnapshot())

	if g.logStats {
		stats.LogStats()
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
}

// Update runs one rendered-loop iteration: input handling, then simulation at
// the host frame delta, then the camera rig.
func (g *Game) Update() {
	g.handleInput()

	dt := float64(rl.GetFrameTime())
	if !g.paused && dt > 0 {
		g.step(dt)
	}

	pos, orient := g.model.VehiclePose()
	g.camPose = g.rig.Update(dt, pos, orient, g.model.AfterburnerActive())
}

// UpdateHeadless runs the configured number of fixed-dt simulation steps with
// no input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.cfg.Physics.DT)
	}
}

// saveSnapshot writes the current vehicle state to the snapshot directory.
func (g *Game) saveSnapshot() {
	if g.snapshotDir == "" {
		return
	}
	snapshot := &telemetry.StateSnapshot{
		Version: telemetry.SnapshotVersion,
		Seed:    g.seed,
		Tick:    g.tick,
		Vehicle: g.model.CaptureState(),
	}
	path, err := telemetry.SaveState(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// RestoreSnapshot loads a saved vehicle state into the running session.
func (g *Game) RestoreSnapshot(path string) error {
	snapshot, err := telemetry.LoadState(path)
	if err != nil {
		return err
	}
	g.model.RestoreState(snapshot.Vehicle)
	g.tick = snapshot.Tick
	slog.Info("snapshot restored", "path", path, "tick", g.tick)
	return nil
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int32 {
	return g.tick
}

// Model exposes the flight model, for offline evaluation harnesses.
func (g *Game) Model() *flight.Model {
	return g.model
}

// Unload flushes and releases session resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
	slog.Info("game unloaded", "ticks", g.tick, "sim_time", g.model.SimTime())
}
