package viewer

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
	"github.com/Faultbox/midgard-probes/internal/engine/reflection"
	"github.com/Faultbox/midgard-probes/internal/engine/spatial"
)

// Region layout of the demo scene.
const (
	RegionSize = 128.0
	LeafSize   = 16.0
)

// Prop is a scene object carrying its own reflection probe.
type Prop struct {
	id       uuid.UUID
	pos      mgl32.Vec3
	scale    mgl32.Vec3
	rot      mgl32.Quat
	settings probe.ObjectProbe

	// Circular path for dynamic props.
	orbitCenter mgl32.Vec3
	orbitRadius float32
	phase       float32
	speed       float32
}

func (p *Prop) ID() uuid.UUID                    { return p.id }
func (p *Prop) Position() mgl32.Vec3             { return p.pos }
func (p *Prop) Scale() mgl32.Vec3                { return p.scale }
func (p *Prop) Rotation() mgl32.Quat             { return p.rot }
func (p *Prop) ProbeSettings() probe.ObjectProbe { return p.settings }

// update moves a dynamic prop along its orbit to time t.
func (p *Prop) update(t float64) {
	if !p.settings.Dynamic {
		return
	}
	a := float64(p.phase) + t*float64(p.speed)
	p.pos = p.orbitCenter.Add(mgl32.Vec3{
		p.orbitRadius * float32(math.Cos(a)),
		0,
		p.orbitRadius * float32(math.Sin(a)),
	})
	p.rot = mgl32.QuatRotate(float32(a), mgl32.Vec3{0, 1, 0})
}

// Scene is a synthetic region: an octree of static boxes and a few props.
type Scene struct {
	Tree  *spatial.Octree
	Props []*Prop
	Items int

	groups []probe.Handle
	props  []probe.Handle
}

// NewScene builds the region deterministically from seed with the given
// number of dynamic props plus one static box-probe prop in the middle.
func NewScene(seed uint64, dynamicProps int) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	half := float32(RegionSize / 2)
	s := &Scene{
		Tree: spatial.New(probe.PartitionVolume, mgl32.Vec3{0, half, 0}, RegionSize, LeafSize),
	}

	// One optional box per ground-level leaf, kept inside its cell.
	cells := int(RegionSize / LeafSize)
	for x := 0; x < cells; x++ {
		for z := 0; z < cells; z++ {
			if rng.Float32() < 0.35 {
				continue
			}
			minX := -half + float32(x)*LeafSize
			minZ := -half + float32(z)*LeafSize
			w := 2 + rng.Float32()*10
			d := 2 + rng.Float32()*10
			h := 2 + rng.Float32()*12
			ox := 1 + rng.Float32()*(LeafSize-2-w)
			oz := 1 + rng.Float32()*(LeafSize-2-d)
			item := spatial.Item{
				Min: mgl32.Vec3{minX + ox, 0, minZ + oz},
				Max: mgl32.Vec3{minX + ox + w, h, minZ + oz + d},
			}
			if s.Tree.Insert(item) {
				s.Items++
			}
		}
	}

	s.Props = append(s.Props, &Prop{
		id:       uuid.New(),
		pos:      mgl32.Vec3{0, 8, 0},
		scale:    mgl32.Vec3{24, 16, 24},
		rot:      mgl32.QuatIdent(),
		settings: probe.ObjectProbe{Box: true, Priority: 1, Ambiance: 0.1},
	})
	for i := 0; i < dynamicProps; i++ {
		p := &Prop{
			id:          uuid.New(),
			scale:       mgl32.Vec3{12, 12, 12},
			rot:         mgl32.QuatIdent(),
			settings:    probe.ObjectProbe{Dynamic: true},
			orbitCenter: mgl32.Vec3{0, 4 + rng.Float32()*6, 0},
			orbitRadius: 20 + rng.Float32()*20,
			phase:       rng.Float32() * 2 * math.Pi,
			speed:       0.2 + rng.Float32()*0.3,
		}
		p.update(0)
		s.Props = append(s.Props, p)
	}

	return s
}

// Register adds a probe for every qualifying octree node and every prop.
// Returns the number of probes created.
func (s *Scene) Register(m *reflection.Manager) int {
	s.Tree.Traverse(func(n *spatial.Node) bool {
		if n.Empty() {
			return false
		}
		if h, ok := m.RegisterSpatialGroup(n); ok {
			s.groups = append(s.groups, h)
		}
		return true
	})
	for _, p := range s.Props {
		s.props = append(s.props, m.AddFromObject(p))
	}
	return len(s.groups) + len(s.props)
}

// Unregister releases every probe the scene holds.
func (s *Scene) Unregister(m *reflection.Manager) {
	for _, h := range s.groups {
		m.Release(h)
	}
	for _, h := range s.props {
		m.Release(h)
	}
	s.groups, s.props = nil, nil
}

// Update advances dynamic props to time t.
func (s *Scene) Update(t float64) {
	for _, p := range s.Props {
		p.update(t)
	}
}

// Bounds returns the region box.
func (s *Scene) Bounds() (min, max mgl32.Vec3) {
	half := float32(RegionSize / 2)
	return mgl32.Vec3{-half, 0, -half}, mgl32.Vec3{half, RegionSize, half}
}
