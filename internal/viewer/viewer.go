// Package viewer drives the reflection probe manager over a synthetic scene:
// camera, prop animation, probe ticks and uniform uploads. Windowing and GL
// live in cmd/probeview so this package runs headless.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/config"
	"github.com/Faultbox/midgard-probes/internal/engine/camera"
	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/debug"
	"github.com/Faultbox/midgard-probes/internal/engine/reflection"
)

// Seed fixes the demo layout.
const Seed = 7

// Viewer owns the scene, the camera and the probe manager.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	manager *reflection.Manager
	scene   *Scene
	camera  *camera.OrbitCamera

	clock         float64
	frames        int
	suspended     bool
	showNeighbors bool
}

// New builds the scene and registers its probes with a manager on device.
func New(cfg *config.Config, device capture.Device, renderer capture.SceneRenderer, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	manager, err := reflection.New(device, renderer,
		reflection.OptionsFromConfig(cfg.Probes, log.Named("reflection")))
	if err != nil {
		return nil, fmt.Errorf("creating probe manager: %w", err)
	}

	v := &Viewer{
		cfg:     cfg,
		log:     log,
		manager: manager,
		scene:   NewScene(Seed, cfg.Demo.Objects),
		camera:  camera.NewOrbitCamera(),
	}

	v.camera.FitToBounds(v.scene.Bounds())
	v.camera.Center = mgl32.Vec3{0, 8, 0}

	n := v.scene.Register(manager)
	log.Info("scene registered",
		zap.Int("items", v.scene.Items),
		zap.Int("props", len(v.scene.Props)),
		zap.Int("probes", n),
	)

	if !cfg.Probes.Enabled {
		v.suspended = true
		manager.SetSuspended(true)
	}

	return v, nil
}

// Step advances the scene by dt seconds and runs one probe tick.
func (v *Viewer) Step(dt float64) error {
	v.clock += dt
	v.frames++

	v.camera.Advance(float32(dt), v.cfg.Demo.OrbitRate)
	v.scene.Update(v.clock)

	if err := v.manager.Tick(reflection.Frame{Camera: v.camera.Position(), Time: v.clock}); err != nil {
		return fmt.Errorf("probe tick: %w", err)
	}
	v.manager.UpdateUniforms(v.camera.ViewMatrix())
	return nil
}

// BindProbes makes the packed probe uniforms available for shading.
func (v *Viewer) BindProbes() {
	v.manager.SetUniforms(v.camera.ViewMatrix())
}

// Rebuild schedules every probe for recapture.
func (v *Viewer) Rebuild() {
	v.log.Info("rebuilding all reflection probes")
	v.manager.Rebuild()
}

// ToggleSuspend pauses or resumes probe updates.
func (v *Viewer) ToggleSuspend() {
	v.suspended = !v.suspended
	v.manager.SetSuspended(v.suspended)
}

// ToggleNeighbors shows or hides the neighbour debug lines.
func (v *Viewer) ToggleNeighbors() {
	v.showNeighbors = !v.showNeighbors
}

// DebugLines returns the lines to draw this frame, empty when hidden.
func (v *Viewer) DebugLines() []debug.Segment {
	if !v.showNeighbors {
		return nil
	}
	return v.manager.DebugLines()
}

// LogStats writes the manager counters at info level.
func (v *Viewer) LogStats() {
	v.log.Info("reflection probes",
		zap.Int("frame", v.frames),
		zap.Object("stats", v.manager.Stats()),
	)
}

// Close releases the scene's probes and applies the removals.
func (v *Viewer) Close() {
	v.scene.Unregister(v.manager)
	if err := v.manager.Tick(reflection.Frame{Camera: v.camera.Position(), Time: v.clock}); err != nil {
		v.log.Warn("final probe tick failed", zap.Error(err))
	}
}

// Camera returns the orbit camera.
func (v *Viewer) Camera() *camera.OrbitCamera { return v.camera }

// Manager returns the probe manager.
func (v *Viewer) Manager() *reflection.Manager { return v.manager }

// Scene returns the demo scene.
func (v *Viewer) Scene() *Scene { return v.scene }

// Frames returns the number of steps taken.
func (v *Viewer) Frames() int { return v.frames }
