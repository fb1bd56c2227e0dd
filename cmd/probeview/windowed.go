package main

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/config"
	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/debug"
	"github.com/Faultbox/midgard-probes/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-probes/internal/engine/glcapture"
	"github.com/Faultbox/midgard-probes/internal/engine/input"
	"github.com/Faultbox/midgard-probes/internal/engine/shader"
	"github.com/Faultbox/midgard-probes/internal/engine/window"
	"github.com/Faultbox/midgard-probes/internal/logger"
	"github.com/Faultbox/midgard-probes/internal/viewer"
)

// dumpingScene clears each face like glcapture.ClearScene and writes the
// first captured faces to disk.
type dumpingScene struct {
	glcapture.ClearScene
	dumper *debug.FaceDumper
	limit  int
	dumped int
}

func (s *dumpingScene) RenderCubeFace(ctx capture.Context) {
	s.ClearScene.RenderCubeFace(ctx)
	if s.dumper == nil || s.dumped >= s.limit {
		return
	}
	fb, ok := ctx.Target.(*framebuffer.Framebuffer)
	if !ok {
		return
	}
	path, err := s.dumper.WriteFace(s.dumped/capture.FaceCount, capture.FaceName(ctx.Face), fb.ReadPixels(), int(fb.Size()))
	if err != nil {
		logger.Warn("face dump failed", zap.Error(err))
		s.dumper = nil
		return
	}
	logger.Debug("face dumped", zap.String("path", path))
	s.dumped++
}

// runWindowed opens a window and runs the viewer until closed or until the
// configured frame count is reached.
func runWindowed(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Midgard Probes",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Create the device AFTER the window, since the GL context must exist.
	gpu, err := glcapture.New(logger.Named("glcapture"))
	if err != nil {
		return err
	}
	defer gpu.Close()

	lines, err := shader.NewLineProgram()
	if err != nil {
		return err
	}
	defer lines.Destroy()

	scene := &dumpingScene{limit: cfg.Probes.Count * capture.FaceCount}
	if cfg.Demo.DumpFaces != "" {
		scene.dumper = debug.NewFaceDumper(cfg.Demo.DumpFaces, "probe")
	}

	v, err := viewer.New(cfg, gpu, scene, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()

	in := input.New()

	// Timing
	lastTime := time.Now()
	statsTimer := time.Now()
	var frameInterval time.Duration
	if cfg.Graphics.FPSLimit > 0 {
		frameInterval = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	logger.Info("starting viewer loop")

	for running := true; running; {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if in.Update() {
			break
		}
		for _, event := range in.Events() {
			switch event.Type {
			case input.EventWindowResize:
				gl.Viewport(0, 0, int32(event.Width), int32(event.Height))
			case input.EventKeyDown:
				switch event.Key {
				case input.KeyQuit:
					running = false
				case input.KeyRebuild:
					v.Rebuild()
				case input.KeySuspend:
					v.ToggleSuspend()
				case input.KeyNeighbor:
					v.ToggleNeighbors()
				}
			}
		}
		dx, dy := in.DragDelta()
		v.Camera().HandleDrag(float32(dx), float32(dy))
		if wheel := in.WheelDelta(); wheel != 0 {
			v.Camera().HandleZoom(float32(wheel))
		}

		// 2. Update scene and probes
		if err := v.Step(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		render(v, gpu, lines, win.Aspect())

		// 4. Present (swap buffers)
		win.SwapBuffers()

		if time.Since(statsTimer) >= statsEvery {
			v.LogStats()
			statsTimer = time.Now()
		}
		if cfg.Demo.Frames > 0 && v.Frames() >= cfg.Demo.Frames {
			running = false
		}
		if frameInterval > 0 {
			if spare := frameInterval - time.Since(frameStart); spare > 0 {
				time.Sleep(spare)
			}
		}
	}

	return nil
}

// probeTextureUnit is where the cube map array is bound for shading.
const probeTextureUnit = 1

// render draws the frame: background, probe bindings and debug lines.
func render(v *viewer.Viewer, gpu *glcapture.Device, lines *shader.LineProgram, aspect float32) {
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.BindProbes()
	if cube := gpu.CubeArray(); cube != nil {
		cube.Bind(probeTextureUnit)
	}

	segs := v.DebugLines()
	if len(segs) == 0 {
		return
	}
	proj := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.5, 1024)
	lines.Draw(debug.SegmentVertices(segs), proj.Mul4(v.Camera().ViewMatrix()))
}
