package shatter

import (
	"math"
	"testing"
)

func newTestSpawner(cfg *DisassemblyConfig, seed uint64) spawner {
	palette, _ := ParsePalette(cfg.Shards.Palette)
	smoke, _ := ParsePalette(cfg.Smoke.Colors)
	return spawner{
		cfg:     cfg,
		rng:     newRand(seed),
		palette: palette,
		smoke:   smoke,
		white:   ColorWhite,
	}
}

func TestSpawnOrigin(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 1)
	tests := []struct {
		width float64
		want  Vec2
	}{
		{400, V(200, 80)},
		{560, V(280, 80)},
		{1920, V(280, 80)},
	}
	for _, tt := range tests {
		if got := sp.origin(tt.width); got.X != tt.want.X || got.Y != tt.want.Y {
			t.Errorf("origin(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestPopulateCounts(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 1)
	s := newStore(0)
	sp.populate(&s, 800, 600, nil)

	if s.Len() != 1823 {
		t.Errorf("Len() = %d, want 1823", s.Len())
	}
	if n := s.Count(KindShard); n != 1750 {
		t.Errorf("shards = %d, want 1750", n)
	}
	if n := s.Count(KindFlash); n != 1 {
		t.Errorf("flashes = %d, want 1", n)
	}
	if n := s.Count(KindSpark); n != 72 {
		t.Errorf("sparks = %d, want 72", n)
	}
	if n := s.Count(KindSmoke); n != 0 {
		t.Errorf("smoke = %d, want 0 before stepping", n)
	}
	// Order: shards, flash, sparks.
	if s.At(1749).Kind != KindShard || s.At(1750).Kind != KindFlash || s.At(1751).Kind != KindSpark {
		t.Error("population order should be shards, flash, sparks")
	}
}

func TestPopulateShardShapes(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 2)
	s := newStore(0)
	sp.populate(&s, 800, 600, nil)

	rects := 0
	s.Each(func(p *Particle) {
		if p.Kind != KindShard {
			return
		}
		if p.IsRect() {
			rects++
			if p.W < 2 || p.W > 16+2 || p.H < 2 || p.H > 600.0/35+2 {
				t.Fatalf("rect shard %vx%v out of range", p.W, p.H)
			}
		} else if p.Size < 3 || p.Size >= 15 {
			t.Fatalf("triangle size %v out of [3, 15)", p.Size)
		}
		if !p.HasGravity() || !p.HasFriction() || p.Friction != 0.985 {
			t.Fatal("shards should define gravity and friction")
		}
		if p.Gravity < 0.5 || p.Gravity >= 0.8 || p.Bounciness < 0.4 || p.Bounciness >= 0.8 {
			t.Fatalf("physics constants out of range: g=%v b=%v", p.Gravity, p.Bounciness)
		}
		if p.Alpha != 1 || p.Grounded {
			t.Fatal("shards start opaque and airborne")
		}
	})
	ratio := float64(rects) / 1750
	if ratio < 0.8 || ratio > 0.9 {
		t.Errorf("rect ratio = %v, want about 0.85", ratio)
	}
}

func TestPopulateRadialVelocity(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	cfg.Shards.Jitter = 0
	sp := newTestSpawner(&cfg, 3)
	s := newStore(0)
	sp.populate(&s, 800, 600, nil)
	o := sp.origin(800)

	for i := 0; i < 1750; i++ {
		p := s.At(i)
		dx, dy := p.X-o.X, p.Y-o.Y
		dist := math.Hypot(dx, dy)
		speed := math.Hypot(p.VX, p.VY)
		want := math.Min(150, 6000/(dist+5))
		if !approxEqual(speed, want, 1e-6) {
			t.Fatalf("shard %d speed = %v, want %v", i, speed, want)
		}
		if dx*p.VX+dy*p.VY < 0 {
			t.Fatalf("shard %d moves toward the origin", i)
		}
	}
}

func TestPopulateSparkRing(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 4)
	s := newStore(0)
	sp.populate(&s, 800, 600, nil)

	first := 1751
	for i := 0; i < 72; i++ {
		p := s.At(first + i)
		angle := 2 * math.Pi * float64(i) / 72
		if !approxEqual(p.VX, math.Cos(angle)*35, 1e-9) || !approxEqual(p.VY, math.Sin(angle)*35, 1e-9) {
			t.Fatalf("spark %d velocity = (%v, %v)", i, p.VX, p.VY)
		}
		if p.X != 280 || p.Y != 80 {
			t.Fatalf("spark %d starts at (%v, %v), want origin", i, p.X, p.Y)
		}
		if p.Size < 1 || p.Size >= 4 {
			t.Fatalf("spark size %v out of [1, 4)", p.Size)
		}
	}
}

func TestPopulateFlash(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 5)
	s := newStore(0)
	sp.populate(&s, 640, 480, nil)
	f := s.At(cfg.Cols * cfg.Rows)
	if f.Kind != KindFlash || f.W != 640 || f.H != 480 || f.Alpha != 1 || f.Decay != 0.05 {
		t.Errorf("flash = %+v", f)
	}
}

func TestPopulateTextTargets(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 6)

	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"none", 0, 0},
		{"fewer than shards", 400, 400},
		{"more than shards", 2000, 1750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]Vec2, tt.points)
			for i := range points {
				points[i] = V(float64(i), float64(-i))
			}
			s := newStore(0)
			sp.populate(&s, 800, 600, points)

			text := 0
			seen := make(map[float64]bool)
			s.Each(func(p *Particle) {
				target, ok := p.TextTarget()
				if !ok {
					return
				}
				if p.Kind != KindShard {
					t.Fatalf("%v particle got a text target", p.Kind)
				}
				if seen[target.X] {
					t.Fatalf("target %v assigned twice", target)
				}
				seen[target.X] = true
				text++
			})
			if text != tt.want {
				t.Errorf("text shards = %d, want %d", text, tt.want)
			}
			for i := 0; i < tt.want; i++ {
				if !s.At(i).IsText() {
					t.Fatalf("shard %d should be a text shard", i)
				}
			}
		})
	}
}

func TestEmitsSmoke(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 7)
	tests := []struct {
		frame int
		want  bool
	}{
		{1, false},
		{2, false},
		{3, false},
		{4, true},
		{60, true},
		{61, false},
		{148, true},
		{150, false},
	}
	for _, tt := range tests {
		if got := sp.emitsSmoke(tt.frame); got != tt.want {
			t.Errorf("emitsSmoke(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestEmitSmoke(t *testing.T) {
	cfg := DefaultDisassemblyConfig()
	sp := newTestSpawner(&cfg, 8)
	s := newStore(0)
	for i := 0; i < 200; i++ {
		sp.emitSmoke(&s, 800)
	}
	dark := 0
	s.Each(func(p *Particle) {
		if p.Kind != KindSmoke {
			t.Fatalf("emitSmoke added %v", p.Kind)
		}
		if math.Abs(p.X-280) > 75 || math.Abs(p.Y-80) > 75 {
			t.Fatalf("smoke at (%v, %v) outside the spread", p.X, p.Y)
		}
		if p.Alpha != 0.6 || p.Gravity != -0.01 || p.Size < 40 || p.Size >= 120 {
			t.Fatalf("smoke = %+v", p)
		}
		if p.Color == sp.smoke[0] {
			dark++
		}
	})
	if dark < 50 || dark > 110 {
		t.Errorf("dark puffs = %d of 200, want about 80", dark)
	}
}
