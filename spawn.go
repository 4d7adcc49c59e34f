package shatter

import (
	"math"
	"math/rand/v2"
)

// spawner builds the initial disassembly population and emits smoke.
type spawner struct {
	cfg     *DisassemblyConfig
	rng     *rand.Rand
	palette []Color
	smoke   []Color
	white   Color
}

// origin returns the explosion origin for a surface of the given width.
func (sp *spawner) origin(width float64) Vec2 {
	return V(math.Min(width/2, sp.cfg.OriginMaxX), sp.cfg.OriginY)
}

// populate fills s with grid shards, the flash and the spark ring, in that
// order. The first min(shards, len(points)) shards, in row-major grid
// order, take points one-to-one as their glyph targets.
func (sp *spawner) populate(s *Store, width, height float64, points []Vec2) {
	cfg := sp.cfg
	sc := &cfg.Shards
	cellW := width / float64(cfg.Cols)
	cellH := height / float64(cfg.Rows)
	o := sp.origin(width)

	n := 0
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			x := float64(c)*cellW + cellW/2
			y := float64(r)*cellH + cellH/2
			dx, dy := x-o.X, y-o.Y
			dist := math.Hypot(dx, dy)
			force := math.Min(sc.MaxForce, sc.ForceScale/(dist+sc.ForceSoftening))
			sin, cos := math.Sincos(math.Atan2(dy, dx))

			p := Particle{
				Kind:  KindShard,
				X:     x,
				Y:     y,
				VX:    cos*force + signed(sp.rng, sc.Jitter),
				VY:    sin*force + signed(sp.rng, sc.Jitter),
				Alpha: 1,
				Life:  1,
			}
			if sp.rng.Float64() < sc.RectChance {
				p.W = sp.rng.Float64()*cellW + sc.RectPadding
				p.H = sp.rng.Float64()*cellH + sc.RectPadding
			} else {
				p.Size = sc.TriangleSize.Random(sp.rng)
			}
			p.Color = sp.palette[sp.rng.IntN(len(sp.palette))]
			p.Rotation = sp.rng.Float64() * 2 * math.Pi
			p.RotationSpeed = signed(sp.rng, sc.RotationSpeed)
			p.Gravity = sc.Gravity.Random(sp.rng)
			p.Friction = sc.Friction
			p.Bounciness = sc.Bounciness.Random(sp.rng)
			p.traits = hasGravity | hasFriction | hasBounce

			if n < len(points) {
				p.isText = true
				p.textTarget = points[n]
			}
			s.add(p)
			n++
		}
	}

	s.add(Particle{
		Kind:  KindFlash,
		W:     width,
		H:     height,
		Color: sp.white,
		Alpha: 1,
		Life:  1,
		Decay: cfg.Flash.Decay,
	})

	sk := &cfg.Sparks
	for i := 0; i < sk.Count; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(sk.Count))
		s.add(Particle{
			Kind:     KindSpark,
			X:        o.X,
			Y:        o.Y,
			VX:       cos * sk.Speed,
			VY:       sin * sk.Speed,
			Size:     sk.Size.Random(sp.rng),
			Color:    sp.white,
			Alpha:    1,
			Life:     1,
			Decay:    sk.Decay,
			Gravity:  sk.Gravity,
			Friction: sk.Friction,
			traits:   hasGravity | hasFriction,
		})
	}
}

// emitsSmoke reports whether smoke spawns on the given explode frame.
func (sp *spawner) emitsSmoke(frame int) bool {
	sm := &sp.cfg.Smoke
	return frame > sm.StartFrame && frame < sm.EndFrame && frame%sm.Interval == 0
}

// emitSmoke adds one smoke puff near the origin of the current surface.
func (sp *spawner) emitSmoke(s *Store, width float64) {
	sm := &sp.cfg.Smoke
	o := sp.origin(width)
	col := sp.smoke[len(sp.smoke)-1]
	if sp.rng.Float64() < sm.DarkChance {
		col = sp.smoke[0]
	}
	s.add(Particle{
		Kind:          KindSmoke,
		X:             o.X + signed(sp.rng, sm.Spread),
		Y:             o.Y + signed(sp.rng, sm.Spread),
		VX:            signed(sp.rng, sm.Speed),
		VY:            signed(sp.rng, sm.Speed) - sm.Lift,
		Size:          sm.Size.Random(sp.rng),
		Color:         col,
		Rotation:      sp.rng.Float64() * 2 * math.Pi,
		RotationSpeed: signed(sp.rng, sm.RotationSpeed),
		Alpha:         sm.Alpha,
		Life:          1,
		Decay:         sm.Decay,
		Gravity:       sm.Gravity,
		Friction:      sm.Friction,
		traits:        hasGravity | hasFriction,
	})
}
