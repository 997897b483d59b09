package game

import "github.com/lox/holdem-engine/internal/deck"

// Events are optional observer callbacks. Any nil field is skipped.
type Events struct {
	OnHandInitialized     func(snapshot HandSnapshot)
	OnPotUpdated          func(amount int)
	OnHoleCardsDealt      func(playerID int, cards deck.HoleCards)
	OnBettingRoundStarted func(state GameState)
	OnBoardDealt          func(state GameState, board []deck.Card)
	OnPlayerActed         func(action PlayerAction)
	OnInvalidPlayerAction func(playerID int, action PlayerAction, reason string)
	OnShowdownStarted     func(revealOrder []int)
	OnHandConcluded       func(winners []int, amounts map[int]int)
	OnEngineError         func(message string)
}

// Combine fans every notification out to each of the given Events in order.
func Combine(all ...Events) Events {
	return Events{
		OnHandInitialized: func(s HandSnapshot) {
			for _, e := range all {
				if e.OnHandInitialized != nil {
					e.OnHandInitialized(s)
				}
			}
		},
		OnPotUpdated: func(amount int) {
			for _, e := range all {
				if e.OnPotUpdated != nil {
					e.OnPotUpdated(amount)
				}
			}
		},
		OnHoleCardsDealt: func(id int, cards deck.HoleCards) {
			for _, e := range all {
				if e.OnHoleCardsDealt != nil {
					e.OnHoleCardsDealt(id, cards)
				}
			}
		},
		OnBettingRoundStarted: func(state GameState) {
			for _, e := range all {
				if e.OnBettingRoundStarted != nil {
					e.OnBettingRoundStarted(state)
				}
			}
		},
		OnBoardDealt: func(state GameState, board []deck.Card) {
			for _, e := range all {
				if e.OnBoardDealt != nil {
					e.OnBoardDealt(state, board)
				}
			}
		},
		OnPlayerActed: func(a PlayerAction) {
			for _, e := range all {
				if e.OnPlayerActed != nil {
					e.OnPlayerActed(a)
				}
			}
		},
		OnInvalidPlayerAction: func(id int, a PlayerAction, reason string) {
			for _, e := range all {
				if e.OnInvalidPlayerAction != nil {
					e.OnInvalidPlayerAction(id, a, reason)
				}
			}
		},
		OnShowdownStarted: func(order []int) {
			for _, e := range all {
				if e.OnShowdownStarted != nil {
					e.OnShowdownStarted(order)
				}
			}
		},
		OnHandConcluded: func(winners []int, amounts map[int]int) {
			for _, e := range all {
				if e.OnHandConcluded != nil {
					e.OnHandConcluded(winners, amounts)
				}
			}
		},
		OnEngineError: func(msg string) {
			for _, e := range all {
				if e.OnEngineError != nil {
					e.OnEngineError(msg)
				}
			}
		},
	}
}

func (e Events) handInitialized(s HandSnapshot) {
	if e.OnHandInitialized != nil {
		e.OnHandInitialized(s)
	}
}

func (e Events) potUpdated(amount int) {
	if e.OnPotUpdated != nil {
		e.OnPotUpdated(amount)
	}
}

func (e Events) holeCardsDealt(id int, cards deck.HoleCards) {
	if e.OnHoleCardsDealt != nil {
		e.OnHoleCardsDealt(id, cards)
	}
}

func (e Events) bettingRoundStarted(state GameState) {
	if e.OnBettingRoundStarted != nil {
		e.OnBettingRoundStarted(state)
	}
}

func (e Events) boardDealt(state GameState, board []deck.Card) {
	if e.OnBoardDealt != nil {
		e.OnBoardDealt(state, board)
	}
}

func (e Events) playerActed(a PlayerAction) {
	if e.OnPlayerActed != nil {
		e.OnPlayerActed(a)
	}
}

func (e Events) invalidPlayerAction(id int, a PlayerAction, reason string) {
	if e.OnInvalidPlayerAction != nil {
		e.OnInvalidPlayerAction(id, a, reason)
	}
}

func (e Events) showdownStarted(order []int) {
	if e.OnShowdownStarted != nil {
		e.OnShowdownStarted(order)
	}
}

func (e Events) handConcluded(winners []int, amounts map[int]int) {
	if e.OnHandConcluded != nil {
		e.OnHandConcluded(winners, amounts)
	}
}

func (e Events) engineError(msg string) {
	if e.OnEngineError != nil {
		e.OnEngineError(msg)
	}
}
