package shatter

// Kind identifies a particle's integration branch and draw routine. A
// particle keeps its Kind for its entire lifetime.
type Kind uint8

const (
	KindShard Kind = iota // rigid rectangle or triangle fragment
	KindSmoke             // soft radial puff emitted while exploding
	KindSpark             // glowing disc from the blast ring
	KindFlash             // full-surface flash marker
	kindCount
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindShard:
		return "shard"
	case KindSmoke:
		return "smoke"
	case KindSpark:
		return "spark"
	case KindFlash:
		return "flash"
	default:
		return "unknown"
	}
}

// traits marks which optional physical constants a particle defines.
type traits uint8

const (
	hasGravity traits = 1 << iota
	hasFriction
	hasBounce
)

// Particle is the atomic animated entity of the disassembly sequence.
type Particle struct {
	Kind Kind

	X, Y   float64
	VX, VY float64

	// Size is the radius basis for smoke, sparks and triangular shards.
	Size float64
	// W and H are set for rectangular shards and the flash.
	W, H float64

	Color         Color
	Rotation      float64
	RotationSpeed float64
	Alpha         float64
	Life          float64
	Decay         float64

	Gravity    float64
	Friction   float64
	Bounciness float64
	Grounded   bool

	traits     traits
	isText     bool
	textTarget Vec2
}

// IsText reports whether the shard was selected at spawn to converge onto a
// glyph point during reconstruction.
func (p *Particle) IsText() bool {
	return p.isText
}

// TextTarget returns the glyph point assigned at spawn. ok is false for
// ambient shards and every non-shard kind.
func (p *Particle) TextTarget() (target Vec2, ok bool) {
	return p.textTarget, p.isText
}

// Inert reports whether the particle has faded out. Inert particles are
// neither integrated nor drawn and never come back.
func (p *Particle) Inert() bool {
	return p.Alpha <= 0
}

// IsRect reports whether a shard is rectangular rather than triangular.
func (p *Particle) IsRect() bool {
	return p.W != 0 && p.H != 0
}

// HasGravity reports whether the particle defines a gravity constant.
func (p *Particle) HasGravity() bool { return p.traits&hasGravity != 0 }

// HasFriction reports whether the particle defines a friction constant.
func (p *Particle) HasFriction() bool { return p.traits&hasFriction != 0 }

// extent is the vertical reach used by floor collision.
func (p *Particle) extent() float64 {
	if p.H != 0 {
		return p.H
	}
	return p.Size
}

// Store is the growable particle collection owned by one Disassembly.
// Indices are stable until Compact is called.
type Store struct {
	particles []Particle
}

// newStore preallocates room for n particles.
func newStore(n int) Store {
	return Store{particles: make([]Particle, 0, n)}
}

// add appends p and returns its index.
func (s *Store) add(p Particle) int {
	s.particles = append(s.particles, p)
	return len(s.particles) - 1
}

// Len returns the number of stored particles, inert ones included.
func (s *Store) Len() int {
	return len(s.particles)
}

// At returns the particle at index i. The pointer is valid until the store
// grows or is compacted; callers outside the package should treat it as
// read-only.
func (s *Store) At(i int) *Particle {
	return &s.particles[i]
}

// Live returns the number of particles with positive alpha.
func (s *Store) Live() int {
	n := 0
	for i := range s.particles {
		if !s.particles[i].Inert() {
			n++
		}
	}
	return n
}

// Count returns the number of stored particles of kind k.
func (s *Store) Count(k Kind) int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Kind == k {
			n++
		}
	}
	return n
}

// Each calls fn for every stored particle in insertion order.
func (s *Store) Each(fn func(p *Particle)) {
	for i := range s.particles {
		fn(&s.particles[i])
	}
}

// Compact drops inert particles, preserving the order of the rest, and
// returns how many were removed.
func (s *Store) Compact() int {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if !p.Inert() {
			kept = append(kept, p)
		}
	}
	removed := len(s.particles) - len(kept)
	clear(s.particles[len(kept):])
	s.particles = kept
	return removed
}
