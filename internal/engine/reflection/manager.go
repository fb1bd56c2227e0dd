// Package reflection manages the bounded set of cube map reflection probes:
// registration and lifetime, cube slot allocation, the neighbour graph, the
// one-face-per-tick capture scheduler and the uniform block consumed by the
// shading stage.
//
// All methods must be called from the render thread.
package reflection

import (
	"fmt"
	"math/bits"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/config"
	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/cubeindex"
	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// Options configures a Manager.
type Options struct {
	// Resolution is the edge length of a cube face at mip 0. Power of two.
	Resolution int32
	// MaxProbes is the depth of the cube map array.
	MaxProbes int
	// Guaranteed is how many of the nearest probes never lose their slot.
	// Zero means MaxProbes.
	Guaranteed int
	// Realtime re-renders the closest dynamic probe every tick.
	Realtime bool
	// NearClip and FarClip bound the cube face projection.
	NearClip float32
	FarClip  float32

	Logger *zap.Logger
}

// DefaultOptions returns the options used when config is absent.
func DefaultOptions() Options {
	return Options{
		Resolution: 256,
		MaxProbes:  32,
		NearClip:   0.1,
		FarClip:    512,
	}
}

// OptionsFromConfig maps the probes section of the config onto Options.
func OptionsFromConfig(cfg config.ProbesConfig, log *zap.Logger) Options {
	opts := DefaultOptions()
	opts.Resolution = int32(cfg.Resolution)
	opts.MaxProbes = cfg.Count
	opts.Guaranteed = cfg.Guaranteed
	opts.Realtime = cfg.Realtime()
	opts.Logger = log
	return opts
}

// Manager owns every reflection probe.
type Manager struct {
	opts   Options
	log    *zap.Logger
	device capture.Device
	scene  capture.SceneRenderer

	arena   arena
	probes  []probe.Handle // live probes, nearest first after each tick
	pending commandBuffer
	objects map[uuid.UUID]probe.Handle
	nextSeq uint64

	pool     *cubeindex.Pool
	cube     capture.CubeMapArray
	target   capture.RenderTarget
	mipChain []capture.RenderTarget

	// Capture cursor. updating is Nil exactly when updatingFace is 0.
	updating     probe.Handle
	updatingFace int

	snapshot  bool
	suspended bool
	now       float64

	active           []probe.Handle
	uniforms         *UniformBlock
	uniformsUploaded bool

	stats Stats
}

// New creates a manager. GPU resources are allocated on the first Tick.
func New(device capture.Device, scene capture.SceneRenderer, opts Options) (*Manager, error) {
	if opts.Resolution < 2 || bits.OnesCount32(uint32(opts.Resolution)) != 1 {
		return nil, fmt.Errorf("probe resolution %d is not a power of two", opts.Resolution)
	}
	if opts.MaxProbes < 1 {
		return nil, fmt.Errorf("max probes must be positive, got %d", opts.MaxProbes)
	}
	if opts.NearClip <= 0 {
		opts.NearClip = DefaultOptions().NearClip
	}
	if opts.FarClip <= opts.NearClip {
		opts.FarClip = DefaultOptions().FarClip
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Manager{
		opts:    opts,
		log:     log,
		device:  device,
		scene:   scene,
		objects: make(map[uuid.UUID]probe.Handle),
		pool:    cubeindex.New(opts.MaxProbes, opts.Guaranteed),
		active:  make([]probe.Handle, opts.MaxProbes),
	}, nil
}

// mipCount is the number of downsample levels: log2(resolution).
func (m *Manager) mipCount() int {
	return bits.TrailingZeros32(uint32(m.opts.Resolution))
}

// initResources allocates the cube map array, the supersampled capture
// target and the mip chain the first time they are needed.
func (m *Manager) initResources() error {
	mips := m.mipCount()

	if m.cube == nil {
		cube, err := m.device.NewCubeMapArray(m.opts.Resolution, int32(m.opts.MaxProbes), int32(mips))
		if err != nil {
			return fmt.Errorf("allocating cube map array: %w", err)
		}
		m.cube = cube
	}

	if m.target == nil {
		// Supersample: render at twice the probe resolution.
		target, err := m.device.NewRenderTarget(m.opts.Resolution*2, capture.FormatRGBA, true)
		if err != nil {
			return fmt.Errorf("allocating probe render target: %w", err)
		}
		m.target = target
	}

	if len(m.mipChain) == 0 {
		chain := make([]capture.RenderTarget, 0, mips)
		res := m.opts.Resolution
		for i := 0; i < mips; i++ {
			rt, err := m.device.NewRenderTarget(res, capture.FormatRGB, false)
			if err != nil {
				return fmt.Errorf("allocating mip %d: %w", i, err)
			}
			chain = append(chain, rt)
			res /= 2
		}
		m.mipChain = chain

		m.log.Info("reflection probe resources allocated",
			zap.Int32("resolution", m.opts.Resolution),
			zap.Int("layers", m.opts.MaxProbes),
			zap.Int("mips", mips),
		)
	}

	return nil
}

// Probe resolves a handle. Returns nil for stale handles.
func (m *Manager) Probe(h probe.Handle) *probe.Map {
	return m.arena.get(h)
}

// Len returns the number of live probes, excluding pending creations.
func (m *Manager) Len() int {
	return len(m.probes)
}

// Probes returns the live probes in the current distance order. The slice is
// owned by the manager and only valid until the next mutation.
func (m *Manager) Probes() []probe.Handle {
	return m.probes
}

// Pool exposes the cube index pool for inspection.
func (m *Manager) Pool() *cubeindex.Pool {
	return m.pool
}

// Cursor returns the probe currently being captured and the next face.
func (m *Manager) Cursor() (probe.Handle, int) {
	return m.updating, m.updatingFace
}

// Options returns the options the manager was created with.
func (m *Manager) Options() Options {
	return m.opts
}

// Target returns the supersampled capture target, nil before the first tick.
func (m *Manager) Target() capture.RenderTarget {
	return m.target
}
