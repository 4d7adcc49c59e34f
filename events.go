package shatter

// EventType identifies a SequenceEvent.
type EventType uint8

const (
	// EventPhaseChanged fires on every forward phase transition.
	EventPhaseChanged EventType = iota
	// EventCaption fires each time the entry caption reveals another character.
	EventCaption
	// EventComplete fires once, right after the completion callback.
	EventComplete
)

func (t EventType) String() string {
	switch t {
	case EventPhaseChanged:
		return "phase"
	case EventCaption:
		return "caption"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// SequenceEvent describes something observable that happened inside a
// sequence.
type SequenceEvent struct {
	Type EventType
	// Sequence is "disassembly" or "warp".
	Sequence string
	// Phase is the String form of the phase entered (or current, for captions).
	Phase string
	// Frame is the disassembly frame counter, or the number of Advance calls
	// for the warp.
	Frame int
	// Caption holds the visible caption prefix for EventCaption.
	Caption string
}

// EventSink receives sequence events synchronously on the frame loop.
// Implementations must not call back into the sequence.
type EventSink interface {
	Emit(SequenceEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(SequenceEvent)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e SequenceEvent) { f(e) }

func emit(s EventSink, e SequenceEvent) {
	if s != nil {
		s.Emit(e)
	}
}
