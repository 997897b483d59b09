package game

import (
	"fmt"
	"maps"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/handid"
)

// ActionResult reports what SubmitAction did with a proposal.
type ActionResult struct {
	Accepted bool
	// Applied is the action that changed the hand: the normalized proposal when
	// accepted, or the synthetic fold when AutoFolded.
	Applied    PlayerAction
	Reason     string
	Suggestion PlayerAction
	AutoFolded bool
	State      GameState
	Terminal   bool
}

// Hand coordinates one hand of Texas Hold'em.
type Hand struct {
	caps   Capabilities
	cfg    handConfig
	events Events
	logger Logger
	policy *InvalidActionPolicy
	calc   *Calculator

	id      string
	players []*player
	blinds  Blinds
	dealer  int
	sb, bb  int

	state     GameState
	deck      *deck.Deck
	undealt   []deck.Card
	board     deck.BoardCards
	round     bettingRound
	roundOpen bool
	histories []BettingRoundHistory

	// cursor is where the search for the next actor starts.
	cursor  int
	current int
	// lastActor is the id of the last player to act voluntarily.
	lastActor int

	preflopRaises     int
	preflopLastRaiser int

	initialized bool
	terminal    bool
	concluded   bool
	allInRunout bool
	settlement  Settlement
	reveal      []int
}

// NewHand creates a hand coordinator. The randomizer, evaluator and logger are
// required; NewHand panics without them.
func NewHand(caps Capabilities, opts ...HandOption) *Hand {
	if caps.Randomizer == nil {
		panic("randomizer is required for hand creation")
	}
	if caps.Evaluator == nil {
		panic("hand evaluator is required for hand creation")
	}
	if caps.Logger == nil {
		panic("logger is required for hand creation")
	}

	cfg := handConfig{
		invalidThreshold: DefaultInvalidActionThreshold,
		maxIterations:    DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxIterations <= 0 {
		cfg.maxIterations = DefaultMaxIterations
	}

	return &Hand{
		caps:      caps,
		cfg:       cfg,
		events:    cfg.events,
		logger:    caps.Logger,
		policy:    NewInvalidActionPolicy(cfg.invalidThreshold),
		calc:      NewCalculator(caps.Logger),
		current:   -1,
		lastActor: -1,
	}
}

// Initialize starts a new hand: it seats the players, posts blinds, deals hole
// and board cards and enters Preflop. dealer indexes into seats, which are in
// clockwise order.
func (h *Hand) Initialize(seats []Seat, blinds Blinds, dealer int) error {
	if h.initialized && !h.concluded {
		return ErrHandInProgress
	}
	if err := validateSeats(seats, blinds, dealer); err != nil {
		return err
	}

	h.reset()
	h.id = h.cfg.handID
	if h.id == "" {
		h.id = handid.New()
	}
	h.cfg.handID = ""
	h.blinds = blinds
	h.dealer = dealer
	for _, s := range seats {
		h.players = append(h.players, newPlayer(s))
	}
	h.assignRoles()

	if h.cfg.deck != nil {
		h.deck, h.cfg.deck = h.cfg.deck, nil
	} else {
		h.deck = deck.NewDeck(h.caps.Randomizer)
		h.deck.ShuffleAndReset()
	}

	h.initialized = true
	h.state = Preflop
	h.round = newBettingRound(Preflop, blinds.Big)
	h.roundOpen = true

	h.logger.Info("hand initialized",
		"hand", h.id,
		"players", len(h.players),
		"dealer", h.players[h.dealer].id,
		"small_blind", blinds.Small,
		"big_blind", blinds.Big)
	h.events.handInitialized(h.Snapshot())

	h.postBlinds()
	if err := h.dealCards(); err != nil {
		return err
	}

	h.events.bettingRoundStarted(Preflop)
	h.cursor = (h.bb + 1) % len(h.players)
	return h.advance()
}

func validateSeats(seats []Seat, blinds Blinds, dealer int) error {
	if len(seats) < 2 || len(seats) > MaxSeats {
		return fmt.Errorf("%w: need 2 to %d players, got %d", ErrInvalidSeats, MaxSeats, len(seats))
	}
	if dealer < 0 || dealer >= len(seats) {
		return fmt.Errorf("%w: dealer index %d out of range", ErrInvalidSeats, dealer)
	}
	if blinds.Small <= 0 || blinds.Big < blinds.Small {
		return fmt.Errorf("%w: blinds %d/%d", ErrInvalidSeats, blinds.Small, blinds.Big)
	}
	ids := make(map[int]bool, len(seats))
	for _, s := range seats {
		if ids[s.ID] {
			return fmt.Errorf("%w: duplicate player id %d", ErrInvalidSeats, s.ID)
		}
		ids[s.ID] = true
		if s.Stack <= 0 {
			return fmt.Errorf("%w: player %d has no chips", ErrInvalidSeats, s.ID)
		}
	}
	return nil
}

func (h *Hand) reset() {
	h.players = nil
	h.undealt = nil
	h.board = deck.BoardCards{}
	h.histories = nil
	h.current = -1
	h.lastActor = -1
	h.preflopRaises = 0
	h.preflopLastRaiser = -1
	h.terminal = false
	h.concluded = false
	h.allInRunout = false
	h.settlement = Settlement{}
	h.reveal = nil
	h.policy = NewInvalidActionPolicy(h.cfg.invalidThreshold)
}

func (h *Hand) assignRoles() {
	n := len(h.players)
	if n == 2 {
		h.sb = h.dealer
		h.bb = (h.dealer + 1) % n
	} else {
		h.sb = (h.dealer + 1) % n
		h.bb = (h.dealer + 2) % n
	}
	h.players[h.dealer].role |= RoleDealer
	h.players[h.sb].role |= RoleSmallBlind
	h.players[h.bb].role |= RoleBigBlind
}

// postBlinds takes the forced bets. A player whose stack does not cover the
// blind posts everything and is all-in.
func (h *Hand) postBlinds() {
	for _, b := range []struct{ idx, amount int }{{h.sb, h.blinds.Small}, {h.bb, h.blinds.Big}} {
		p := h.players[b.idx]
		paid := p.pay(b.amount)
		if p.status == AllIn {
			p.lastAction = PlayerAction{PlayerID: p.id, Type: Allin, Amount: paid}
		}
		h.round.highest = max(h.round.highest, p.streetContribution)
		h.logger.Debug("blind posted", "hand", h.id, "player", p.id, "amount", paid, "allin", p.status == AllIn)
	}
	h.events.potUpdated(h.pot())
}

// dealCards deals two hole cards per player starting left of the dealer and
// sets aside the five board cards.
func (h *Hand) dealCards() error {
	for _, idx := range clockwiseFrom(len(h.players), h.dealer+1) {
		cards, err := h.deck.Deal(2)
		if err != nil {
			return h.fatal(fmt.Errorf("deal hole cards: %w", err))
		}
		p := h.players[idx]
		p.hole = deck.HoleCards{cards[0], cards[1]}
		h.events.holeCardsDealt(p.id, p.hole)
	}
	board, err := h.deck.Deal(5)
	if err != nil {
		return h.fatal(fmt.Errorf("deal board: %w", err))
	}
	h.undealt = board
	return nil
}

// SubmitAction validates and applies a proposed action, then runs the state
// machine until a player must act or the hand reaches PostRiver. Illegal
// actions are reported in the result, never as errors.
func (h *Hand) SubmitAction(a PlayerAction) (ActionResult, error) {
	if !h.initialized {
		return ActionResult{}, ErrHandNotInitialized
	}
	if h.concluded {
		return ActionResult{}, fmt.Errorf("%w: %s", ErrHandConcluded, a)
	}

	idx := h.indexOf(a.PlayerID)
	if idx < 0 {
		reason := "player is not seated in this hand"
		h.logger.Debug("invalid action", "hand", h.id, "player", a.PlayerID, "reason", reason)
		h.events.invalidPlayerAction(a.PlayerID, a, reason)
		return h.result(ActionResult{Reason: reason}), nil
	}

	p := h.players[idx]
	var reason string
	var suggestion PlayerAction
	switch {
	case h.terminal:
		reason = "hand is over"
	case p.status == Folded:
		reason = "player has folded"
	case p.status == AllIn:
		reason = "player is all-in"
	case idx != h.current:
		reason = "not this player's turn"
	default:
		v := Validate(h.bettingContext(idx), a)
		if v.Accepted {
			h.policy.Reset(p.id)
			h.apply(idx, v.Action)
			if err := h.advance(); err != nil {
				return h.result(ActionResult{Accepted: true, Applied: v.Action}), err
			}
			return h.result(ActionResult{Accepted: true, Applied: v.Action}), nil
		}
		reason, suggestion = v.Reason, v.Suggestion
	}

	return h.rejectAction(idx, a, reason, suggestion)
}

func (h *Hand) rejectAction(idx int, a PlayerAction, reason string, suggestion PlayerAction) (ActionResult, error) {
	res := ActionResult{Reason: reason, Suggestion: suggestion}
	p := h.players[idx]
	h.logger.Debug("invalid action",
		"hand", h.id,
		"player", p.id,
		"action", a.Type,
		"amount", a.Amount,
		"reason", reason)
	h.events.invalidPlayerAction(p.id, a, reason)

	if !h.policy.RecordInvalid(p.id) {
		return h.result(res), nil
	}
	h.policy.Reset(p.id)

	if h.terminal || !p.canAct() {
		msg := fmt.Sprintf("player %d reached %d invalid actions while %s, no fold applied", p.id, h.policy.Threshold(), reason)
		h.logger.Error(msg, "hand", h.id)
		h.events.engineError(msg)
		return h.result(res), nil
	}

	msg := fmt.Sprintf("player %d auto-folded after %d consecutive invalid actions", p.id, h.policy.Threshold())
	h.logger.Error(msg, "hand", h.id)
	h.events.engineError(msg)

	h.forceFold(idx)
	res.AutoFolded = true
	res.Applied = PlayerAction{PlayerID: p.id, Type: Fold}
	if err := h.advance(); err != nil {
		return h.result(res), err
	}
	return h.result(res), nil
}

func (h *Hand) result(r ActionResult) ActionResult {
	r.State = h.state
	r.Terminal = h.terminal
	return r
}

// apply mutates player and betting state for a validated action.
func (h *Hand) apply(idx int, a PlayerAction) {
	p := h.players[idx]
	before := p.totalContribution

	switch a.Type {
	case Fold:
		p.status = Folded
	case Call:
		p.pay(a.Amount)
	case Bet:
		p.pay(a.Amount)
		h.round.recordAggression(p.id, p.streetContribution)
	case Raise:
		p.pay(a.Amount - p.streetContribution)
		h.round.recordAggression(p.id, p.streetContribution)
	case Allin:
		p.pay(p.stack)
		h.round.recordAggression(p.id, p.streetContribution)
	}

	h.record(p, a)
	h.lastActor = p.id
	h.cursor = (idx + 1) % len(h.players)
	h.current = -1

	h.logger.Debug("player acted",
		"hand", h.id,
		"state", h.state,
		"player", p.id,
		"action", a.Type,
		"amount", a.Amount,
		"stack", p.stack)
	h.events.playerActed(a)
	if p.totalContribution != before {
		h.events.potUpdated(h.pot())
	}
}

// forceFold folds a player regardless of turn order.
func (h *Hand) forceFold(idx int) {
	p := h.players[idx]
	p.status = Folded
	fold := PlayerAction{PlayerID: p.id, Type: Fold}
	h.record(p, fold)
	if idx == h.current {
		h.cursor = (idx + 1) % len(h.players)
		h.current = -1
	}
	h.events.playerActed(fold)
}

func (h *Hand) record(p *player, a PlayerAction) {
	p.lastAction = a
	p.acted = true
	p.actions[h.state] = append(p.actions[h.state], a)
	h.round.history.Actions = append(h.round.history.Actions, a)
}

// Advance runs pending transitions until a player must act or the hand is
// terminal. It is a no-op when nothing is pending.
func (h *Hand) Advance() error {
	if !h.initialized {
		return ErrHandNotInitialized
	}
	if h.concluded {
		return ErrHandConcluded
	}
	return h.advance()
}

func (h *Hand) advance() error {
	for i := 0; ; i++ {
		if h.terminal {
			return nil
		}
		if i >= h.cfg.maxIterations {
			return h.fatal(fmt.Errorf("%w: hand %s after %d transitions", ErrIterationLimit, h.id, h.cfg.maxIterations))
		}
		if h.countInHand() <= 1 {
			return h.finish()
		}
		if h.runoutPending() {
			if err := h.runOut(); err != nil {
				return err
			}
			return h.finish()
		}
		if next := h.nextToAct(); next >= 0 {
			h.current = next
			return nil
		}
		if err := h.nextStreet(); err != nil {
			return err
		}
	}
}

// nextToAct returns the first player from the cursor who can act and has
// either not acted this street or not matched the highest contribution.
func (h *Hand) nextToAct() int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		idx := (h.cursor + i) % n
		p := h.players[idx]
		if p.canAct() && (!p.acted || p.streetContribution < h.round.highest) {
			return idx
		}
	}
	return -1
}

// runoutPending reports whether betting is over for the rest of the hand:
// nobody can act, or one player can and has already matched.
func (h *Hand) runoutPending() bool {
	var active []*player
	for _, p := range h.players {
		if p.canAct() {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 0:
		return true
	case 1:
		return active[0].streetContribution >= h.round.highest
	}
	return false
}

func (h *Hand) nextStreet() error {
	h.closeRound()
	next := h.state.Next()
	if next == PostRiver {
		return h.finish()
	}
	if err := h.revealStreet(next); err != nil {
		return err
	}
	h.state = next
	for _, p := range h.players {
		p.streetContribution = 0
		p.acted = false
	}
	h.round = newBettingRound(next, h.blinds.Big)
	h.roundOpen = true
	h.cursor = (h.dealer + 1) % len(h.players)
	h.current = -1

	h.logger.Debug("betting round started", "hand", h.id, "state", next, "board", h.board.String())
	h.events.bettingRoundStarted(next)
	return nil
}

// runOut deals the remaining streets without betting.
func (h *Hand) runOut() error {
	h.closeRound()
	h.allInRunout = true
	for s := h.state.Next(); s < PostRiver; s = s.Next() {
		if err := h.revealStreet(s); err != nil {
			return err
		}
		h.state = s
	}
	h.logger.Debug("all-in runout", "hand", h.id, "board", h.board.String())
	return nil
}

func (h *Hand) revealStreet(s GameState) error {
	from, to := h.board.Len(), s.BoardSize()
	if to <= from {
		return nil
	}
	if to > len(h.undealt) {
		return h.fatal(fmt.Errorf("reveal %s: %w", s, deck.ErrInsufficientCards))
	}
	if err := h.board.Add(h.undealt[from:to]...); err != nil {
		return h.fatal(fmt.Errorf("reveal %s: %w", s, err))
	}
	h.events.boardDealt(s, h.board.Cards())
	return nil
}

func (h *Hand) closeRound() {
	if !h.roundOpen {
		return
	}
	h.roundOpen = false
	if h.round.history.State == Preflop {
		h.preflopRaises = h.round.raises
		h.preflopLastRaiser = h.round.lastRaiser
	}
	h.histories = append(h.histories, h.round.history.clone())
}

// finish makes the hand terminal and computes ranks, reveal order and the
// settlement. Stacks change only in Conclude.
func (h *Hand) finish() error {
	h.closeRound()
	h.terminal = true
	h.current = -1
	h.state = PostRiver

	inHand := h.countInHand()
	if inHand > 1 {
		for _, p := range h.players {
			if !p.inHand() {
				continue
			}
			cards := append(p.hole.Cards(), h.board.Cards()...)
			rank, err := h.caps.Evaluator.Rank(cards)
			if err != nil {
				return h.fatal(fmt.Errorf("rank player %d: %w", p.id, err))
			}
			p.rank = rank
		}
	}

	contenders := h.contenders()
	h.reveal = RevealOrder(contenders, h.lastActor, h.allInRunout || inHand <= 1, h.dealer)
	h.settlement = Settle(contenders, h.dealer)

	h.logger.Info("hand finished",
		"hand", h.id,
		"pot", h.settlement.Total,
		"pots", len(h.settlement.Pots),
		"showdown", inHand > 1,
		"runout", h.allInRunout)
	if inHand > 1 {
		h.events.showdownStarted(append([]int(nil), h.reveal...))
	}
	return nil
}

func (h *Hand) contenders() []Contender {
	out := make([]Contender, len(h.players))
	for i, p := range h.players {
		out[i] = Contender{
			ID:           p.id,
			Contribution: p.totalContribution,
			Folded:       !p.inHand(),
			Rank:         p.rank,
		}
	}
	return out
}

// Conclude pays out the settlement, verifies chip conservation, emits the
// terminal notification and saves statistics. The post-hand stacks in the
// result are the next hand's starting stacks.
func (h *Hand) Conclude() (HandResult, error) {
	if !h.initialized {
		return HandResult{}, ErrHandNotInitialized
	}
	if h.concluded {
		return HandResult{}, ErrHandConcluded
	}
	if !h.terminal {
		return HandResult{}, fmt.Errorf("%w: conclude before the hand is terminal", ErrHandInProgress)
	}

	for _, p := range h.players {
		if p.stack+p.totalContribution != p.startingStack {
			return HandResult{}, h.fatal(fmt.Errorf("%w: player %d stack %d + contribution %d != %d",
				ErrChipConservation, p.id, p.stack, p.totalContribution, p.startingStack))
		}
	}

	start, final := 0, 0
	for _, p := range h.players {
		p.stack += h.settlement.Payouts[p.id]
		start += p.startingStack
		final += p.stack
	}
	if start != final {
		return HandResult{}, h.fatal(fmt.Errorf("%w: started with %d chips, ended with %d", ErrChipConservation, start, final))
	}
	h.concluded = true

	contenders := h.contenders()
	res := HandResult{
		HandID:      h.id,
		Board:       h.board.Cards(),
		Pots:        h.settlement.Pots,
		Payouts:     maps.Clone(h.settlement.Payouts),
		Winners:     h.settlement.Winners(contenders),
		RevealOrder: append([]int(nil), h.reveal...),
		Showdown:    h.countInHand() > 1,
		AllInRunout: h.allInRunout,
	}
	for _, p := range h.players {
		res.Players = append(res.Players, p.snapshot())
	}

	h.logger.Info("hand concluded", "hand", h.id, "winners", res.Winners, "pot", h.settlement.Total)
	h.events.handConcluded(append([]int(nil), res.Winners...), maps.Clone(res.Payouts))

	if h.caps.Statistics != nil {
		if err := h.caps.Statistics.Save(h.Snapshot()); err != nil {
			msg := fmt.Sprintf("save statistics: %v", err)
			h.logger.Error(msg, "hand", h.id)
			h.events.engineError(msg)
		}
	}
	return res, nil
}

func (h *Hand) fatal(err error) error {
	h.logger.Error("engine failure", "hand", h.id, "err", err)
	h.events.engineError(err.Error())
	return err
}

// ID returns the hand identifier.
func (h *Hand) ID() string {
	return h.id
}

// IsTerminal reports whether the hand has reached PostRiver.
func (h *Hand) IsTerminal() bool {
	return h.terminal
}

// CurrentState returns the current street.
func (h *Hand) CurrentState() GameState {
	return h.state
}

// CurrentPlayer returns the id of the player to act, or -1.
func (h *Hand) CurrentPlayer() int {
	if h.current < 0 || h.terminal {
		return -1
	}
	return h.players[h.current].id
}

// Strategy returns the strategy the seat was given, if any.
func (h *Hand) Strategy(playerID int) BotStrategy {
	if idx := h.indexOf(playerID); idx >= 0 {
		return h.players[idx].strategy
	}
	return nil
}

// InvalidAttempts returns the player's consecutive invalid actions so far.
func (h *Hand) InvalidAttempts(playerID int) int {
	return h.policy.Count(playerID)
}

// ValidActions lists the legal actions for the player to act.
func (h *Hand) ValidActions() []ValidAction {
	if h.current < 0 || h.terminal {
		return nil
	}
	return ValidActions(h.bettingContext(h.current))
}

// Snapshot returns an immutable copy of the hand.
func (h *Hand) Snapshot() HandSnapshot {
	s := HandSnapshot{
		HandID:        h.id,
		State:         h.state,
		Blinds:        h.blinds,
		CurrentPlayer: h.CurrentPlayer(),
		Board:         h.board.Cards(),
		Pot:           h.pot(),
		Highest:       h.round.highest,
		MinRaise:      h.round.minRaise,
		Terminal:      h.terminal,
	}
	if len(h.players) > 0 {
		s.DealerID = h.players[h.dealer].id
	}
	for _, p := range h.players {
		s.Players = append(s.Players, p.snapshot())
	}
	for _, hist := range h.histories {
		s.History = append(s.History, hist.clone())
	}
	if h.roundOpen {
		s.History = append(s.History, h.round.history.clone())
	}
	return s
}

// BotContext builds the read-only decision context for playerID. ValidActions
// is populated only when it is that player's turn.
func (h *Hand) BotContext(playerID int) (BotContext, bool) {
	idx := h.indexOf(playerID)
	if idx < 0 {
		return BotContext{}, false
	}
	p := h.players[idx]
	n := len(h.players)
	pot := h.pot()
	bctx := h.bettingContext(idx)

	c := BotContext{
		HandID:            h.id,
		PlayerID:          p.id,
		State:             h.state,
		HoleCards:         p.hole,
		Board:             h.board.Cards(),
		Blinds:            h.blinds,
		NumPlayers:        n,
		NumInHand:         h.countInHand(),
		Position:          (idx - h.dealer + n) % n,
		Stack:             p.stack,
		Contribution:      p.streetContribution,
		TotalContribution: p.totalContribution,
		Highest:           h.round.highest,
		ToCall:            bctx.ToCall(),
		MinRaise:          h.round.minRaise,
		Pot:               pot,
		PotOdds:           h.calc.PotOdds(p.stack, p.streetContribution, pot, h.round.highest),
		MRatio:            h.calc.MRatio(p.stack, h.blinds),
		StreetRaises:      h.round.raises,
		StreetCalls:       h.round.history.Count(Call),
		PreflopRaises:     h.preflopRaises,
		LastRaiserID:      h.round.lastRaiser,
		PreflopLastRaiser: h.preflopLastRaiser,
	}
	if h.state == Preflop && h.roundOpen {
		c.PreflopRaises = h.round.raises
		c.PreflopLastRaiser = h.round.lastRaiser
	}
	if idx == h.current && !h.terminal {
		c.ValidActions = ValidActions(bctx)
	}
	return c, true
}

func (h *Hand) bettingContext(idx int) BettingContext {
	p := h.players[idx]
	return BettingContext{
		Stack:        p.stack,
		Contribution: p.streetContribution,
		Highest:      h.round.highest,
		MinRaise:     h.round.minRaise,
		MinBet:       h.blinds.Big,
	}
}

func (h *Hand) indexOf(id int) int {
	for i, p := range h.players {
		if p.id == id {
			return i
		}
	}
	return -1
}

func (h *Hand) countInHand() int {
	n := 0
	for _, p := range h.players {
		if p.inHand() {
			n++
		}
	}
	return n
}

func (h *Hand) pot() int {
	total := 0
	for _, p := range h.players {
		total += p.totalContribution
	}
	return total
}
