package game

// Phase is the stage a match is in within a turn.
type Phase int

const (
	PhaseMain Phase = iota
	PhaseBattle
	PhaseCalculation
	PhaseEnd
	PhaseGameOver
	PhaseAborted
)

// String returns the client-facing phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMain:
		return "Main Phase"
	case PhaseBattle:
		return "Battle Phase"
	case PhaseCalculation:
		return "Calculation Phase"
	case PhaseEnd:
		return "End Phase"
	case PhaseGameOver:
		return "Game Over"
	case PhaseAborted:
		return "Aborted"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the phase ends the match.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseAborted
}
