// Package game plays out a single hand of Texas Hold'em.
//
// The main type is Hand, the coordinator callers drive through Initialize,
// SubmitAction, Advance and Conclude. Hand owns every per-hand entity (players,
// deck, board, betting history) and hands out immutable snapshots only.
//
// # Basic Usage
//
//	h := game.NewHand(game.Capabilities{
//	    Randomizer: randutil.NewRandomizer(42),
//	    Evaluator:  evaluator.New(),
//	    Logger:     logger,
//	})
//	err := h.Initialize(seats, game.Blinds{Small: 5, Big: 10}, 0)
//	for !h.IsTerminal() {
//	    // Check when nothing is owed, otherwise call.
//	    action := game.PlayerAction{PlayerID: h.CurrentPlayer(), Type: game.Call}
//	    if slices.ContainsFunc(h.ValidActions(), func(v game.ValidAction) bool { return v.Type == game.Check }) {
//	        action.Type = game.Check
//	    }
//	    res, err := h.SubmitAction(action)
//	    ...
//	}
//	result, err := h.Conclude()
//
// # Architecture
//
// Hand delegates to small, separately testable pieces:
//   - Validate: pure legality check of a proposed action against a BettingContext
//   - InvalidActionPolicy: counts consecutive illegal attempts and triggers a forced fold
//   - GameState: the street enum and its transition switch
//   - Settle and RevealOrder: side-pot construction, distribution and showdown order
//
// Rule violations never fail a call: they are reported through the returned
// ActionResult and the OnInvalidPlayerAction notification. Only precondition
// violations (dealing past the deck, acting on a concluded hand) return errors.
package game
