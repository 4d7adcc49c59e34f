package shatter

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindShard, "shard"},
		{KindSmoke, "smoke"},
		{KindSpark, "spark"},
		{KindFlash, "flash"},
		{kindCount, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestParticleShape(t *testing.T) {
	rect := Particle{Kind: KindShard, W: 4, H: 6, Size: 9}
	if !rect.IsRect() {
		t.Error("shard with W and H should be a rect")
	}
	if got := rect.extent(); got != 6 {
		t.Errorf("rect extent = %v, want 6", got)
	}
	tri := Particle{Kind: KindShard, Size: 9}
	if tri.IsRect() {
		t.Error("shard without W/H should be a triangle")
	}
	if got := tri.extent(); got != 9 {
		t.Errorf("triangle extent = %v, want 9", got)
	}
}

func TestParticleTextTarget(t *testing.T) {
	p := Particle{Kind: KindShard}
	if _, ok := p.TextTarget(); ok || p.IsText() {
		t.Error("fresh shard should not be a text shard")
	}
	p.isText, p.textTarget = true, V(3, 4)
	target, ok := p.TextTarget()
	if !ok || target.X != 3 || target.Y != 4 {
		t.Errorf("TextTarget() = %v, %v; want (3, 4), true", target, ok)
	}
}

func TestParticleInert(t *testing.T) {
	tests := []struct {
		alpha float64
		want  bool
	}{
		{1, false},
		{0.01, false},
		{0, true},
		{-0.1, true},
	}
	for _, tt := range tests {
		p := Particle{Alpha: tt.alpha}
		if got := p.Inert(); got != tt.want {
			t.Errorf("Inert() with alpha %v = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestStoreAddAndCount(t *testing.T) {
	s := newStore(4)
	s.add(Particle{Kind: KindShard, Alpha: 1})
	s.add(Particle{Kind: KindShard, Alpha: 0})
	idx := s.add(Particle{Kind: KindSpark, Alpha: 1})
	if idx != 2 {
		t.Errorf("add index = %d, want 2", idx)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Live() != 2 {
		t.Errorf("Live() = %d, want 2", s.Live())
	}
	if s.Count(KindShard) != 2 || s.Count(KindSpark) != 1 || s.Count(KindSmoke) != 0 {
		t.Errorf("Count = %d/%d/%d, want 2/1/0", s.Count(KindShard), s.Count(KindSpark), s.Count(KindSmoke))
	}
}

func TestStoreEachOrder(t *testing.T) {
	s := newStore(0)
	for i := 0; i < 5; i++ {
		s.add(Particle{X: float64(i), Alpha: 1})
	}
	var xs []float64
	s.Each(func(p *Particle) { xs = append(xs, p.X) })
	for i, x := range xs {
		if x != float64(i) {
			t.Fatalf("Each order = %v, want 0..4", xs)
		}
	}
}

func TestStoreCompact(t *testing.T) {
	s := newStore(0)
	for i, a := range []float64{1, 0, 0.5, 0, 1} {
		s.add(Particle{X: float64(i), Alpha: a})
	}
	if removed := s.Compact(); removed != 2 {
		t.Errorf("Compact() = %d, want 2", removed)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := []float64{0, 2, 4}
	for i, x := range want {
		if s.At(i).X != x {
			t.Errorf("At(%d).X = %v, want %v", i, s.At(i).X, x)
		}
	}
	if removed := s.Compact(); removed != 0 {
		t.Errorf("second Compact() = %d, want 0", removed)
	}
}
