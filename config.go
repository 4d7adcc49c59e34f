package shatter

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("shatter: invalid config")

// Config groups the tunables of both sequences. It is the root of the YAML
// document accepted by LoadConfig and ParseConfig.
type Config struct {
	Disassembly DisassemblyConfig `yaml:"disassembly"`
	Warp        WarpConfig        `yaml:"warp"`
}

// DisassemblyConfig controls the explode → pause → reconstruct sequence.
// Frame counts are elapsed frames at the 60 TPS reference rate.
type DisassemblyConfig struct {
	// Seed makes the run reproducible. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
	// StrictSurface turns a missing drawing surface into ErrNoSurface instead
	// of an inert sequence.
	StrictSurface bool `yaml:"strictSurface"`

	ExplodeFrames     int `yaml:"explodeFrames"`
	PauseFrames       int `yaml:"pauseFrames"`
	ReconstructFrames int `yaml:"reconstructFrames"`

	// Cols and Rows tile the viewport; each cell yields one shard.
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`

	// The explosion origin is (min(width/2, OriginMaxX), OriginY).
	OriginMaxX float64 `yaml:"originMaxX"`
	OriginY    float64 `yaml:"originY"`

	Text        TextConfig        `yaml:"text"`
	Shards      ShardConfig       `yaml:"shards"`
	Sparks      SparkConfig       `yaml:"sparks"`
	Flash       FlashConfig       `yaml:"flash"`
	Smoke       SmokeConfig       `yaml:"smoke"`
	Reconstruct ReconstructConfig `yaml:"reconstruct"`

	Background string `yaml:"background"`
}

// TextConfig controls the glyph target set formed during reconstruction.
type TextConfig struct {
	Content string `yaml:"content"`
	// The font size is min(width, FontWidthCap) * FontScale.
	FontScale    float64 `yaml:"fontScale"`
	FontWidthCap float64 `yaml:"fontWidthCap"`
	// Stride is the sampling grid step in pixels.
	Stride int `yaml:"stride"`
	// Threshold is the coverage (0-255) a sampled pixel must exceed.
	Threshold uint8 `yaml:"threshold"`
}

// ShardConfig controls the grid shards.
type ShardConfig struct {
	MaxForce       float64 `yaml:"maxForce"`
	ForceScale     float64 `yaml:"forceScale"`
	ForceSoftening float64 `yaml:"forceSoftening"`
	// Jitter is the full width of the uniform per-axis velocity noise.
	Jitter        float64  `yaml:"jitter"`
	RectChance    float64  `yaml:"rectChance"`
	RectPadding   float64  `yaml:"rectPadding"`
	TriangleSize  Range    `yaml:"triangleSize"`
	RotationSpeed float64  `yaml:"rotationSpeed"`
	Gravity       Range    `yaml:"gravity"`
	Friction      float64  `yaml:"friction"`
	Bounciness    Range    `yaml:"bounciness"`
	FloorDamping  float64  `yaml:"floorDamping"`
	WallDamping   float64  `yaml:"wallDamping"`
	SettleSpeed   float64  `yaml:"settleSpeed"`
	Palette       []string `yaml:"palette"`
}

// SparkConfig controls the blast ring.
type SparkConfig struct {
	Count    int     `yaml:"count"`
	Speed    float64 `yaml:"speed"`
	Size     Range   `yaml:"size"`
	Decay    float64 `yaml:"decay"`
	Gravity  float64 `yaml:"gravity"`
	Friction float64 `yaml:"friction"`
	// Glow is the halo radius as a multiple of the spark size.
	Glow  float64 `yaml:"glow"`
	Color string  `yaml:"color"`
}

// FlashConfig controls the full-surface flash marker.
type FlashConfig struct {
	Decay float64 `yaml:"decay"`
	// While exploding and below TintBelow alpha, a Tint rectangle is
	// composited at alpha*TintStrength.
	Tint         string  `yaml:"tint"`
	TintBelow    float64 `yaml:"tintBelow"`
	TintStrength float64 `yaml:"tintStrength"`
}

// SmokeConfig controls the smoke trickle emitted while exploding.
type SmokeConfig struct {
	// Smoke spawns on frames f with StartFrame < f < EndFrame and f%Interval == 0.
	Interval      int      `yaml:"interval"`
	StartFrame    int      `yaml:"startFrame"`
	EndFrame      int      `yaml:"endFrame"`
	Spread        float64  `yaml:"spread"`
	Speed         float64  `yaml:"speed"`
	Lift          float64  `yaml:"lift"`
	Size          Range    `yaml:"size"`
	Alpha         float64  `yaml:"alpha"`
	Decay         float64  `yaml:"decay"`
	Gravity       float64  `yaml:"gravity"`
	Friction      float64  `yaml:"friction"`
	RotationSpeed float64  `yaml:"rotationSpeed"`
	DarkChance    float64  `yaml:"darkChance"`
	Colors        []string `yaml:"colors"`
	Shade         string   `yaml:"shade"`
}

// ReconstructConfig controls the reconstruction phase.
type ReconstructConfig struct {
	Approach         float64 `yaml:"approach"`
	RotationApproach float64 `yaml:"rotationApproach"`
	AlphaRamp        float64 `yaml:"alphaRamp"`
	BrickSize        float64 `yaml:"brickSize"`
	BrickEase        float64 `yaml:"brickEase"`
	Highlight        string  `yaml:"highlight"`
	Glow             float64 `yaml:"glow"`

	OrbitRadius     float64 `yaml:"orbitRadius"`
	OrbitWiggle     float64 `yaml:"orbitWiggle"`
	OrbitWiggleRate float64 `yaml:"orbitWiggleRate"`
	OrbitEase       float64 `yaml:"orbitEase"`
	OrbitStep       float64 `yaml:"orbitStep"`
	AmbientSpin     float64 `yaml:"ambientSpin"`
	AmbientAlpha    float64 `yaml:"ambientAlpha"`
	AmbientColor    string  `yaml:"ambientColor"`

	// FadeRate is the per-frame alpha loss of every non-shard particle.
	FadeRate float64 `yaml:"fadeRate"`

	// FinalFlashStart is the reconstruct progress past which the terminal
	// white overlay ramps in at FinalFlashGain per unit progress.
	FinalFlashStart float64 `yaml:"finalFlashStart"`
	FinalFlashGain  float64 `yaml:"finalFlashGain"`
}

// WarpConfig controls the warp → formula → reveal entry sequence.
type WarpConfig struct {
	Seed          uint64 `yaml:"seed"`
	StrictSurface bool   `yaml:"strictSurface"`

	// Delays are measured from sequence start.
	FormulaAt  time.Duration `yaml:"formulaAt"`
	RevealAt   time.Duration `yaml:"revealAt"`
	CompleteAt time.Duration `yaml:"completeAt"`

	Caption      string        `yaml:"caption"`
	TypeInterval time.Duration `yaml:"typeInterval"`
	CaptionSize  float64       `yaml:"captionSize"`
	CaptionFade  time.Duration `yaml:"captionFade"`
	RevealFade   time.Duration `yaml:"revealFade"`

	Particles int      `yaml:"particles"`
	Glyphs    string   `yaml:"glyphs"`
	Colors    []string `yaml:"colors"`

	Depth DepthConfig `yaml:"depth"`

	// TickRate is the frame rate Step assumes.
	TickRate int `yaml:"tickRate"`

	Background string  `yaml:"background"`
	TrailAlpha float64 `yaml:"trailAlpha"`
	RevealWash float64 `yaml:"revealWash"`
}

// DepthConfig controls the warp particle projection model.
type DepthConfig struct {
	Far    float64 `yaml:"far"`
	Near   float64 `yaml:"near"`
	Focal  float64 `yaml:"focal"`
	Spread float64 `yaml:"spread"`

	// Depth units removed per reference frame in each phase.
	WarpSpeed    float64 `yaml:"warpSpeed"`
	FormulaSpeed float64 `yaml:"formulaSpeed"`
	RevealSpeed  float64 `yaml:"revealSpeed"`
	// MaxDelta caps the frame delta, in reference frames.
	MaxDelta float64 `yaml:"maxDelta"`

	MaxSize float64 `yaml:"maxSize"`
	MinSize float64 `yaml:"minSize"`
	Margin  float64 `yaml:"margin"`
}

// DefaultConfig returns the reference tuning for both sequences.
func DefaultConfig() Config {
	return Config{
		Disassembly: DefaultDisassemblyConfig(),
		Warp:        DefaultWarpConfig(),
	}
}

// DefaultDisassemblyConfig returns the reference disassembly tuning.
func DefaultDisassemblyConfig() DisassemblyConfig {
	return DisassemblyConfig{
		ExplodeFrames:     120,
		PauseFrames:       20,
		ReconstructFrames: 140,
		Cols:              50,
		Rows:              35,
		OriginMaxX:        280,
		OriginY:           80,
		Text: TextConfig{
			Content:      "NTEC",
			FontScale:    0.25,
			FontWidthCap: 1000,
			Stride:       5,
			Threshold:    128,
		},
		Shards: ShardConfig{
			MaxForce:       150,
			ForceScale:     6000,
			ForceSoftening: 5,
			Jitter:         12,
			RectChance:     0.85,
			RectPadding:    2,
			TriangleSize:   Range{Min: 3, Max: 15},
			RotationSpeed:  0.8,
			Gravity:        Range{Min: 0.5, Max: 0.8},
			Friction:       0.985,
			Bounciness:     Range{Min: 0.4, Max: 0.8},
			FloorDamping:   0.8,
			WallDamping:    0.8,
			SettleSpeed:    1.5,
			Palette: []string{
				"#0f172a", "#1e293b", "#334155", "#475569",
				"#8b5cf6", "#7c3aed", "#10b981", "#059669",
				"#e2e8f0", "#020617",
			},
		},
		Sparks: SparkConfig{
			Count:    72,
			Speed:    35,
			Size:     Range{Min: 1, Max: 4},
			Decay:    0.03,
			Gravity:  0.1,
			Friction: 0.9,
			Glow:     4,
			Color:    "#ffffff",
		},
		Flash: FlashConfig{
			Decay:        0.05,
			Tint:         "#ef4444",
			TintBelow:    0.9,
			TintStrength: 0.4,
		},
		Smoke: SmokeConfig{
			Interval:      2,
			StartFrame:    2,
			EndFrame:      150,
			Spread:        150,
			Speed:         4,
			Lift:          0.5,
			Size:          Range{Min: 40, Max: 120},
			Alpha:         0.6,
			Decay:         0.005,
			Gravity:       -0.01,
			Friction:      0.96,
			RotationSpeed: 0.01,
			DarkChance:    0.4,
			Colors:        []string{"#0f172a", "#334155"},
			Shade:         "#0f172a",
		},
		Reconstruct: ReconstructConfig{
			Approach:         0.08,
			RotationApproach: 0.1,
			AlphaRamp:        0.05,
			BrickSize:        4,
			BrickEase:        0.05,
			Highlight:        "#ffffff",
			Glow:             1.6,
			OrbitRadius:      200,
			OrbitWiggle:      50,
			OrbitWiggleRate:  0.05,
			OrbitEase:        0.05,
			OrbitStep:        0.02,
			AmbientSpin:      0.05,
			AmbientAlpha:     0.3,
			AmbientColor:     "#e2e8f0",
			FadeRate:         0.05,
			FinalFlashStart:  0.85,
			FinalFlashGain:   6.6,
		},
		Background: "#020617",
	}
}

// DefaultWarpConfig returns the reference entry-sequence tuning.
func DefaultWarpConfig() WarpConfig {
	return WarpConfig{
		FormulaAt:    2500 * time.Millisecond,
		RevealAt:     5500 * time.Millisecond,
		CompleteAt:   6500 * time.Millisecond,
		Caption:      "Welcome to the future",
		TypeInterval: 50 * time.Millisecond,
		CaptionSize:  48,
		CaptionFade:  700 * time.Millisecond,
		RevealFade:   time.Second,
		Particles:    400,
		Glyphs:       "010101<>{}[]/\\Σ∫πƒ∆∇NTEC",
		Colors:       []string{"#8b5cf6", "#10b981"},
		Depth: DepthConfig{
			Far:          4000,
			Near:         10,
			Focal:        300,
			Spread:       5,
			WarpSpeed:    60,
			FormulaSpeed: 5,
			RevealSpeed:  180,
			MaxDelta:     2,
			MaxSize:      30,
			MinSize:      1,
			Margin:       100,
		},
		TickRate:   60,
		Background: "#020617",
		TrailAlpha: 0.4,
		RevealWash: 0.15,
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("shatter: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("shatter: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks both sequence configs.
func (c *Config) Validate() error {
	if err := c.Disassembly.Validate(); err != nil {
		return err
	}
	return c.Warp.Validate()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func checkFraction(name string, v float64) error {
	if v <= 0 || v > 1 {
		return invalid("%s must be in (0, 1], got %v", name, v)
	}
	return nil
}

func checkRange(name string, r Range) error {
	if r.Min > r.Max {
		return invalid("%s range invalid: min(%v) > max(%v)", name, r.Min, r.Max)
	}
	return nil
}

// Validate returns an ErrInvalidConfig-wrapped error for any out-of-range field.
func (c *DisassemblyConfig) Validate() error {
	if c.ExplodeFrames <= 0 || c.PauseFrames <= 0 || c.ReconstructFrames <= 0 {
		return invalid("phase frame counts must be positive (explode=%d pause=%d reconstruct=%d)",
			c.ExplodeFrames, c.PauseFrames, c.ReconstructFrames)
	}
	if c.Cols <= 0 || c.Rows <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", c.Cols, c.Rows)
	}
	if c.Text.Stride <= 0 {
		return invalid("text stride must be positive, got %d", c.Text.Stride)
	}
	if c.Shards.RectChance < 0 || c.Shards.RectChance > 1 {
		return invalid("shard rectChance must be in [0, 1], got %v", c.Shards.RectChance)
	}
	if c.Sparks.Count < 0 {
		return invalid("spark count must not be negative, got %d", c.Sparks.Count)
	}
	if c.Smoke.Interval <= 0 {
		return invalid("smoke interval must be positive, got %d", c.Smoke.Interval)
	}
	for _, f := range []struct {
		name string
		r    Range
	}{
		{"shard triangleSize", c.Shards.TriangleSize},
		{"shard gravity", c.Shards.Gravity},
		{"shard bounciness", c.Shards.Bounciness},
		{"spark size", c.Sparks.Size},
		{"smoke size", c.Smoke.Size},
	} {
		if err := checkRange(f.name, f.r); err != nil {
			return err
		}
	}
	rc := c.Reconstruct
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"reconstruct approach", rc.Approach},
		{"reconstruct rotationApproach", rc.RotationApproach},
		{"reconstruct brickEase", rc.BrickEase},
		{"reconstruct orbitEase", rc.OrbitEase},
	} {
		if err := checkFraction(f.name, f.v); err != nil {
			return err
		}
	}
	if rc.FinalFlashStart < 0 || rc.FinalFlashStart > 1 {
		return invalid("reconstruct finalFlashStart must be in [0, 1], got %v", rc.FinalFlashStart)
	}
	if _, err := ParsePalette(c.Shards.Palette); err != nil {
		return invalid("shard palette: %v", err)
	}
	if _, err := ParsePalette(c.Smoke.Colors); err != nil {
		return invalid("smoke colors: %v", err)
	}
	for _, f := range []struct {
		name, hex string
	}{
		{"background", c.Background},
		{"spark color", c.Sparks.Color},
		{"flash tint", c.Flash.Tint},
		{"smoke shade", c.Smoke.Shade},
		{"highlight", rc.Highlight},
		{"ambientColor", rc.AmbientColor},
	} {
		if _, err := ParseColor(f.hex); err != nil {
			return invalid("%s: %v", f.name, err)
		}
	}
	return nil
}

// Validate returns an ErrInvalidConfig-wrapped error for any out-of-range field.
func (c *WarpConfig) Validate() error {
	if c.FormulaAt <= 0 || c.RevealAt <= c.FormulaAt || c.CompleteAt <= c.RevealAt {
		return invalid("warp delays must increase: formula=%v reveal=%v complete=%v",
			c.FormulaAt, c.RevealAt, c.CompleteAt)
	}
	if c.TypeInterval <= 0 {
		return invalid("warp typeInterval must be positive, got %v", c.TypeInterval)
	}
	if c.TickRate <= 0 {
		return invalid("warp tickRate must be positive, got %d", c.TickRate)
	}
	if c.Particles < 0 {
		return invalid("warp particle count must not be negative, got %d", c.Particles)
	}
	if c.Glyphs == "" {
		return invalid("warp glyph set is empty")
	}
	d := c.Depth
	if d.Near <= 0 || d.Far <= d.Near {
		return invalid("warp depth requires 0 < near < far, got near=%v far=%v", d.Near, d.Far)
	}
	if d.Focal <= 0 || d.MaxDelta <= 0 {
		return invalid("warp focal and maxDelta must be positive")
	}
	if _, err := ParsePalette(c.Colors); err != nil {
		return invalid("warp colors: %v", err)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return invalid("warp background: %v", err)
	}
	return nil
}
