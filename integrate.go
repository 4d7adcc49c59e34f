package shatter

import "math"

// world is the read-only frame context handed to every update rule.
type world struct {
	width, height float64
	frame         int
	phase         DisassemblyPhase
	shards        *ShardConfig
	rc            *ReconstructConfig
	highlight     Color
	ambient       Color
}

// updateRule advances one live particle by one frame.
type updateRule func(p *Particle, w *world)

type ruleKey struct {
	phase DisassemblyPhase
	kind  Kind
}

// rules dispatches on (phase, kind). A missing entry means the particle is
// left untouched for that frame.
var rules = map[ruleKey]updateRule{}

func init() {
	for _, ph := range []DisassemblyPhase{PhaseExplode, PhasePause} {
		rules[ruleKey{ph, KindShard}] = updateShardBallistic
		rules[ruleKey{ph, KindSmoke}] = updateBallistic
		rules[ruleKey{ph, KindSpark}] = updateBallistic
		rules[ruleKey{ph, KindFlash}] = updateBallistic
	}
	rules[ruleKey{PhaseReconstruct, KindShard}] = updateShardReconstruct
	rules[ruleKey{PhaseReconstruct, KindSmoke}] = updateFadeOut
	rules[ruleKey{PhaseReconstruct, KindSpark}] = updateFadeOut
	rules[ruleKey{PhaseReconstruct, KindFlash}] = updateFadeOut
}

// integrate runs one frame of physics over every live particle in s.
func integrate(s *Store, w *world) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.Inert() {
			continue
		}
		if rule := rules[ruleKey{w.phase, p.Kind}]; rule != nil {
			rule(p, w)
		}
	}
}

// move applies velocity, then the optional gravity and friction constants.
func move(p *Particle) {
	p.X += p.VX
	p.Y += p.VY
	if p.HasGravity() {
		p.VY += p.Gravity
	}
	if p.HasFriction() {
		p.VX *= p.Friction
		p.VY *= p.Friction
	}
}

func spinAndDecay(p *Particle) {
	p.Rotation += p.RotationSpeed
	p.Alpha = math.Max(0, p.Alpha-p.Decay)
}

func updateBallistic(p *Particle, _ *world) {
	move(p)
	spinAndDecay(p)
}

func updateShardBallistic(p *Particle, w *world) {
	move(p)
	if !p.Grounded {
		collide(p, w)
	}
	spinAndDecay(p)
}

// collide bounces a shard off the floor and side walls.
func collide(p *Particle, w *world) {
	ext := p.extent()
	if p.Y+ext > w.height {
		p.Y = w.height - ext
		p.VY *= -p.Bounciness
		p.VX *= w.shards.FloorDamping
		if w.phase == PhaseExplode && settled(p, w.shards.SettleSpeed) {
			p.Grounded = true
		}
	}
	if p.X < 0 || p.X > w.width {
		p.VX *= -w.shards.WallDamping
		p.X = math.Max(0, math.Min(w.width, p.X))
	}
}

func settled(p *Particle, speed float64) bool {
	return math.Abs(p.VX) < speed && math.Abs(p.VY) < speed
}

func updateShardReconstruct(p *Particle, w *world) {
	p.Grounded = false
	if p.isText {
		convergeOnGlyph(p, w)
		return
	}
	orbitCenter(p, w)
}

// convergeOnGlyph eases a text shard onto its glyph point as a small bright
// brick.
func convergeOnGlyph(p *Particle, w *world) {
	rc := w.rc
	p.X += (p.textTarget.X - p.X) * rc.Approach
	p.Y += (p.textTarget.Y - p.Y) * rc.Approach
	p.Rotation += (0 - p.Rotation) * rc.RotationApproach
	p.Color = w.highlight
	p.Alpha = math.Min(p.Alpha+rc.AlphaRamp, 1)
	if p.W != 0 {
		p.W = lerp(p.W, rc.BrickSize, rc.BrickEase)
	}
	if p.H != 0 {
		p.H = lerp(p.H, rc.BrickSize, rc.BrickEase)
	}
}

// orbitCenter swirls an ambient shard around the viewport center on a
// wobbling radius.
func orbitCenter(p *Particle, w *world) {
	rc := w.rc
	cx, cy := w.width/2, w.height/2
	dx, dy := p.X-cx, p.Y-cy
	angle := math.Atan2(dy, dx)
	dist := math.Hypot(dx, dy)

	target := rc.OrbitRadius + math.Sin(float64(w.frame)*rc.OrbitWiggleRate+p.X)*rc.OrbitWiggle
	dist = lerp(dist, target, rc.OrbitEase)
	angle += rc.OrbitStep

	s, c := math.Sincos(angle)
	p.X = cx + c*dist
	p.Y = cy + s*dist
	p.Color = w.ambient
	p.Alpha = rc.AmbientAlpha
	p.Rotation += rc.AmbientSpin
}

func updateFadeOut(p *Particle, w *world) {
	p.Alpha = math.Max(0, p.Alpha-w.rc.FadeRate)
}
