package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/card"
)

// MaxTP caps the per-turn resource budget.
const MaxTP = 10

// TP returns the budget bounding total card cost playable on a turn.
func TP(turn int) int {
	if turn+1 > MaxTP {
		return MaxTP
	}
	return turn + 1
}

// ResultRecorder archives finished match outcomes. Optional; a nil
// recorder disables history.
type ResultRecorder interface {
	RecordResult(ctx context.Context, roomID, winnerID string, draw bool, turns int) error
}

// Coordinator validates moves, advances phases and runs the deferred
// reveal pipeline. One coordinator serves every room; all per-room state
// lives on the Match.
type Coordinator struct {
	decks     *DeckService
	resolver  CombatResolver
	notifier  Notifier
	recorder  ResultRecorder
	stepDelay time.Duration
	logger    *zap.Logger
}

// NewCoordinator creates a coordinator. stepDelay paces the four reveal
// pipeline steps for client-side presentation.
func NewCoordinator(decks *DeckService, resolver CombatResolver, notifier Notifier, stepDelay time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		decks:     decks,
		resolver:  resolver,
		notifier:  notifier,
		stepDelay: stepDelay,
		logger:    logger,
	}
}

// SetRecorder attaches an optional match-result archive.
func (c *Coordinator) SetRecorder(r ResultRecorder) {
	c.recorder = r
}

// PlayerJoin installs a player's shuffled deck. Once both seated players
// hold decks the match starts: opening hands are drawn and match-start is
// broadcast. A replayed player-join on a running match is rejected so the
// turn counter only moves forward.
func (c *Coordinator) PlayerJoin(m *Match, playerID string, deck []card.Card) error {
	m.mu.Lock()

	if m.started {
		m.mu.Unlock()
		return ErrWrongPhase
	}

	p, ok := m.players[playerID]
	if !ok {
		m.mu.Unlock()
		return ErrPlayerNotFound
	}

	p.Deck = append([]card.Card{}, deck...)
	c.decks.Shuffle(p.Deck)

	if len(m.players) < 2 {
		m.mu.Unlock()
		return nil
	}
	for _, other := range m.players {
		if other.CardCount() == 0 {
			m.mu.Unlock()
			return nil
		}
	}

	state := c.startLocked(m)
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventMatchStart, state)
	c.logger.Info("match started",
		zap.String("room_id", m.ID),
		zap.Strings("players", m.playerOrder),
	)
	return nil
}

// startLocked draws opening hands and resets the turn machine.
// Caller must hold m.mu.
func (c *Coordinator) startLocked(m *Match) RoomState {
	for _, id := range m.playerOrder {
		c.decks.Draw(m.players[id])
	}
	m.turn = 1
	m.phase = PhaseMain
	m.started = true
	m.resultPending = true

	return RoomState{
		Players: m.viewsLocked(),
		Phase:   m.phase.String(),
		Turn:    m.turn,
	}
}

// SubmitMove validates and records a player's selection. When both
// distinct players are ready it arms the reveal pipeline. Resubmission
// replaces the prior selection without double-counting readiness.
func (c *Coordinator) SubmitMove(m *Match, playerID string, selected []bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.aborted {
		return ErrMatchAborted
	}
	if m.phase != PhaseMain {
		return ErrWrongPhase
	}

	p, ok := m.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if len(selected) != len(p.Hand) {
		return ErrSelectionMismatch
	}

	cost := 0
	for i, sel := range selected {
		if sel {
			cost += p.Hand[i].Cost
		}
	}
	if cost > TP(m.turn) {
		return ErrTPExceeded
	}

	p.Selected = append([]bool{}, selected...)
	m.readyPlayers[playerID] = struct{}{}

	c.logger.Debug("move submitted",
		zap.String("room_id", m.ID),
		zap.String("player", playerID),
		zap.Int("cost", cost),
		zap.Int("tp", TP(m.turn)),
	)

	if len(m.readyPlayers) == 2 {
		m.scheduleLocked(c.stepDelay, func() { c.stepReveal(m) })
	}
	return nil
}

// stepReveal moves selected hand cards to the field. Played cards leave
// the hand and stay off the deck until end-of-turn cleanup, so the
// per-player card total is conserved at every step.
func (c *Coordinator) stepReveal(m *Match) {
	m.mu.Lock()
	if m.aborted {
		m.mu.Unlock()
		return
	}

	for _, id := range m.playerOrder {
		p := m.players[id]
		var played, kept []card.Card
		for i, cd := range p.Hand {
			if i < len(p.Selected) && p.Selected[i] {
				played = append(played, cd)
			} else {
				kept = append(kept, cd)
			}
		}
		p.Field = played
		p.Hand = kept
		p.ResetSelected()
	}
	m.phase = PhaseBattle

	state := RoomState{Players: m.viewsLocked(), Phase: m.phase.String()}
	m.scheduleLocked(c.stepDelay, func() { c.stepBattle(m) })
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventAllMoves, state)
}

// stepBattle runs the resolver's stat passes.
func (c *Coordinator) stepBattle(m *Match) {
	m.mu.Lock()
	if m.aborted {
		m.mu.Unlock()
		return
	}

	p1 := m.players[m.playerOrder[0]]
	p2 := m.players[m.playerOrder[1]]
	c.resolver.CalcIndependentStats(p1)
	c.resolver.CalcIndependentStats(p2)
	c.resolver.CalcEnemyDependentAbilities(p1, p2)
	c.resolver.CalcEnemyDependentAbilities(p2, p1)
	m.phase = PhaseCalculation

	state := RoomState{Players: m.viewsLocked(), Phase: m.phase.String()}
	m.scheduleLocked(c.stepDelay, func() { c.stepResolve(m) })
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventBattleResult, state)
}

// stepResolve settles the turn: HP adjustments, field cleanup, turn
// advance. Played cards are shuffled back into their owner's deck here.
func (c *Coordinator) stepResolve(m *Match) {
	m.mu.Lock()
	if m.aborted {
		m.mu.Unlock()
		return
	}

	p1 := m.players[m.playerOrder[0]]
	p2 := m.players[m.playerOrder[1]]
	c.resolver.DetermineTurnWinner(p1, p2)

	for _, p := range []*Player{p1, p2} {
		p.Deck = append(p.Deck, p.Field...)
		c.decks.Shuffle(p.Deck)
		p.Field = []card.Card{}
		p.Summons = []card.Card{}
		p.Stats = NewStats()
	}

	m.phase = PhaseEnd
	m.turn++
	m.readyPlayers = make(map[string]struct{})
	m.resultPending = p1.HP > 0 && p2.HP > 0

	state := RoomState{Players: m.viewsLocked(), Phase: m.phase.String(), Turn: m.turn}
	m.scheduleLocked(c.stepDelay, func() { c.stepNext(m) })
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventEndOfTurn, state)
}

// stepNext either deals the next turn or ends the match.
func (c *Coordinator) stepNext(m *Match) {
	m.mu.Lock()
	if m.aborted {
		m.mu.Unlock()
		return
	}
	m.pending = nil

	if m.resultPending {
		for _, id := range m.playerOrder {
			c.decks.Draw(m.players[id])
		}
		m.phase = PhaseMain

		submitted := false
		state := RoomState{
			Players:   m.viewsLocked(),
			Phase:     m.phase.String(),
			Submitted: &submitted,
		}
		m.mu.Unlock()

		c.notifier.ToRoom(m.ID, EventNextTurn, state)
		return
	}

	winner := ""
	for _, id := range m.playerOrder {
		if m.players[id].HP > 0 {
			winner = id
			break
		}
	}
	draw := winner == ""
	m.phase = PhaseGameOver
	turns := m.turn
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventGameOver, GameOverPayload{Winner: winner, Draw: draw})
	c.logger.Info("match finished",
		zap.String("room_id", m.ID),
		zap.String("winner", winner),
		zap.Bool("draw", draw),
		zap.Int("turns", turns),
	)
	c.record(m.ID, winner, draw, turns)
}

// RematchRequest resets the player to a fresh record with a new shuffled
// deck. When both players have accepted, the room restarts in place.
// Rematches are only negotiable once the match has ended; a replayed
// request mid-match cannot reset a live turn.
func (c *Coordinator) RematchRequest(m *Match, playerID string, deck []card.Card) error {
	m.mu.Lock()

	if m.aborted {
		m.mu.Unlock()
		return ErrMatchAborted
	}
	if m.phase != PhaseGameOver {
		m.mu.Unlock()
		return ErrWrongPhase
	}
	if _, ok := m.players[playerID]; !ok {
		m.mu.Unlock()
		return ErrPlayerNotFound
	}

	fresh := NewPlayer(playerID)
	fresh.Deck = append([]card.Card{}, deck...)
	c.decks.Shuffle(fresh.Deck)
	m.players[playerID] = fresh
	m.rematchAccepted[playerID] = struct{}{}

	if len(m.rematchAccepted) < 2 {
		m.mu.Unlock()
		return nil
	}

	m.readyPlayers = make(map[string]struct{})
	m.rematchAccepted = make(map[string]struct{})
	state := c.startLocked(m)
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventMatchStart, state)
	c.logger.Info("rematch started", zap.String("room_id", m.ID))
	return nil
}

// ClaimDisconnectWin finishes the match with a client-asserted winner.
// The server does not verify the peer actually dropped; the claim is
// trusted as-is.
func (c *Coordinator) ClaimDisconnectWin(m *Match, claimedWinner string) {
	m.mu.Lock()
	m.resultPending = false
	m.phase = PhaseGameOver
	m.cancelPendingLocked()
	turns := m.turn
	m.mu.Unlock()

	c.notifier.ToRoom(m.ID, EventGameOver, GameOverPayload{Winner: claimedWinner})
	c.logger.Info("disconnect win claimed",
		zap.String("room_id", m.ID),
		zap.String("winner", claimedWinner),
	)
	c.record(m.ID, claimedWinner, false, turns)
}

// Abort handles a player dropping out of a full room: their HP falls to
// zero, the room is marked aborted and any in-flight pipeline step is
// cancelled. Broadcasts match-abort while the match was live, otherwise
// rematch-declined.
func (c *Coordinator) Abort(m *Match, playerID string) {
	m.mu.Lock()
	if p, ok := m.players[playerID]; ok {
		p.HP = 0
	}
	m.aborted = true
	m.cancelPendingLocked()
	wasPending := m.resultPending
	m.phase = PhaseAborted
	m.mu.Unlock()

	if wasPending {
		c.notifier.ToRoom(m.ID, EventMatchAbort, nil)
	} else {
		c.notifier.ToRoom(m.ID, EventRematchDeclined, nil)
	}
	c.logger.Info("match aborted",
		zap.String("room_id", m.ID),
		zap.String("player", playerID),
		zap.Bool("was_live", wasPending),
	)
}

func (c *Coordinator) record(roomID, winner string, draw bool, turns int) {
	if c.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.recorder.RecordResult(ctx, roomID, winner, draw, turns); err != nil {
		c.logger.Warn("failed to record match result",
			zap.String("room_id", roomID),
			zap.Error(err),
		)
	}
}
