package shatter

// DisassemblyPhase is a stage of the disassembly sequence. Phases only move
// forward.
type DisassemblyPhase uint8

const (
	PhaseExplode DisassemblyPhase = iota
	PhasePause
	PhaseReconstruct
	PhaseComplete
)

func (p DisassemblyPhase) String() string {
	switch p {
	case PhaseExplode:
		return "explode"
	case PhasePause:
		return "pause"
	case PhaseReconstruct:
		return "reconstruct"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// WarpPhase is a stage of the entry sequence. Phases only move forward.
type WarpPhase uint8

const (
	WarpPhaseWarp WarpPhase = iota
	WarpPhaseFormula
	WarpPhaseReveal
	WarpPhaseComplete
)

func (p WarpPhase) String() string {
	switch p {
	case WarpPhaseWarp:
		return "warp"
	case WarpPhaseFormula:
		return "formula"
	case WarpPhaseReveal:
		return "reveal"
	case WarpPhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// phaseMachine holds a forward-only phase value. The last constant of P is
// terminal.
type phaseMachine[P ~uint8] struct {
	current  P
	terminal P
	onEnter  func(from, to P)
}

func newPhaseMachine[P ~uint8](terminal P, onEnter func(from, to P)) phaseMachine[P] {
	return phaseMachine[P]{terminal: terminal, onEnter: onEnter}
}

// advance moves to the given phase if it lies strictly ahead of the current
// one. It reports whether a transition happened.
func (m *phaseMachine[P]) advance(to P) bool {
	if to <= m.current || to > m.terminal {
		return false
	}
	from := m.current
	m.current = to
	if m.onEnter != nil {
		m.onEnter(from, to)
	}
	return true
}

func (m *phaseMachine[P]) done() bool {
	return m.current == m.terminal
}

// disassemblySchedule maps elapsed frames to the phase that should be active.
type disassemblySchedule struct {
	explodeEnd     int
	pauseEnd       int
	reconstructEnd int
}

func newDisassemblySchedule(cfg DisassemblyConfig) disassemblySchedule {
	return disassemblySchedule{
		explodeEnd:     cfg.ExplodeFrames,
		pauseEnd:       cfg.ExplodeFrames + cfg.PauseFrames,
		reconstructEnd: cfg.ExplodeFrames + cfg.PauseFrames + cfg.ReconstructFrames,
	}
}

// next returns the phase that follows cur at the given frame, or cur when
// its threshold has not been crossed. At most one step is taken per call.
func (s disassemblySchedule) next(cur DisassemblyPhase, frame int) DisassemblyPhase {
	switch cur {
	case PhaseExplode:
		if frame > s.explodeEnd {
			return PhasePause
		}
	case PhasePause:
		if frame > s.pauseEnd {
			return PhaseReconstruct
		}
	case PhaseReconstruct:
		if frame > s.reconstructEnd {
			return PhaseComplete
		}
	}
	return cur
}

// progress returns the reconstruct progress in [0, 1] at the given frame.
func (s disassemblySchedule) progress(frame int) float64 {
	span := s.reconstructEnd - s.pauseEnd
	if span <= 0 {
		return 1
	}
	return clamp01(float64(frame-s.pauseEnd) / float64(span))
}
