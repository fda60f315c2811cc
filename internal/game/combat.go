package game

// CombatResolver computes per-card stat contributions and settles a turn.
// The match core consumes this interface; the arithmetic lives outside it
// (a reference implementation ships in internal/combat).
type CombatResolver interface {
	// CalcIndependentStats fills the player's stats record from their own
	// field, ignoring the opponent.
	CalcIndependentStats(p *Player)

	// CalcEnemyDependentAbilities settles stats that depend on the
	// opponent's board, after both independent passes have run.
	CalcEnemyDependentAbilities(p, opponent *Player)

	// DetermineTurnWinner applies both stat records, adjusting each
	// player's HP for the turn's outcome.
	DetermineTurnWinner(p1, p2 *Player)
}
