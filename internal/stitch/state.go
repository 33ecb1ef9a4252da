package stitch

// Phase is a step of the stitch state machine.
type Phase int

// Stitch phases in the order a successful run visits them.
const (
	PhaseInit Phase = iota
	PhaseOrientationChosen
	PhaseCompositing
	PhaseAborted
	PhaseTrimmed
	PhaseReduced
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseOrientationChosen:
		return "orientation-chosen"
	case PhaseCompositing:
		return "compositing"
	case PhaseAborted:
		return "aborted"
	case PhaseTrimmed:
		return "trimmed"
	case PhaseReduced:
		return "reduced"
	}
	return "unknown"
}

// State is the per-document composition state. A fresh State is created for
// every run; WriteOffset only ever grows.
type State struct {
	Phase            Phase
	TargetWidth      int
	WriteOffset      int  // next free row
	OverflowDetected bool // WriteOffset went past Spec.MaxHeight
	OverflowPage     int  // 1-based page that crossed Spec.MaxHeight, 0 if none
	PagesPlaced      int
}

func newState(topMargin int) State {
	return State{Phase: PhaseInit, WriteOffset: topMargin}
}
