package evaluator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
)

type workerResult struct {
	wins    float64
	samples int
}

// EstimateEquity estimates the share of the pot hole wins against opponents
// random hands by Monte Carlo over the unseen cards. Samples are split across
// workers, each with its own generator derived from seed.
func (e *Evaluator) EstimateEquity(ctx context.Context, hole deck.HoleCards, board []deck.Card, opponents, samples int, seed int64) (float64, error) {
	if !hole.IsValid() {
		return 0, fmt.Errorf("%w: hole cards %s", ErrInvalidHand, hole)
	}
	if len(board) > 5 {
		return 0, fmt.Errorf("%w: board of %d cards", ErrInvalidHand, len(board))
	}
	if opponents < 1 || 2*opponents+5-len(board) > deck.DeckSize-2-len(board) {
		return 0, fmt.Errorf("%w: %d opponents", ErrInvalidHand, opponents)
	}
	if samples <= 0 {
		return 0, nil
	}

	var used [deck.DeckSize]bool
	for _, c := range append(hole.Cards(), board...) {
		if used[c.Index()] {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		used[c.Index()] = true
	}
	var unseen []deck.Card
	for i := 0; i < deck.DeckSize; i++ {
		if !used[i] {
			c, _ := deck.CardFromIndex(i)
			unseen = append(unseen, c)
		}
	}

	workers := min(runtime.NumCPU(), 8, samples)
	per, rem := samples/workers, samples%workers
	results := make([]workerResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		g.Go(func() error {
			r, err := e.runEquityWorker(ctx, hole, board, unseen, opponents, n, seed+int64(w))
			results[w] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total workerResult
	for _, r := range results {
		total.wins += r.wins
		total.samples += r.samples
	}
	if total.samples == 0 {
		return 0, nil
	}
	return total.wins / float64(total.samples), nil
}

func (e *Evaluator) runEquityWorker(ctx context.Context, hole deck.HoleCards, board, unseen []deck.Card, opponents, samples int, seed int64) (workerResult, error) {
	rng := randutil.New(seed)
	pool := make([]deck.Card, len(unseen))
	need := 2*opponents + 5 - len(board)
	full := make([]deck.Card, 5)
	hand := make([]deck.Card, 7)

	var res workerResult
	for i := 0; i < samples; i++ {
		if i%256 == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		copy(pool, unseen)
		// Partial Fisher-Yates: the last need cards become the draw.
		for j := 0; j < need; j++ {
			k := rng.IntN(len(pool) - j)
			pool[k], pool[len(pool)-1-j] = pool[len(pool)-1-j], pool[k]
		}
		draw := pool[len(pool)-need:]

		copy(full, board)
		copy(full[len(board):], draw[:5-len(board)])
		opp := draw[5-len(board):]

		hand[0], hand[1] = hole[0], hole[1]
		copy(hand[2:], full)
		hero, err := e.Rank(hand)
		if err != nil {
			return res, err
		}

		best, ties := true, 1
		for o := 0; o < opponents && best; o++ {
			hand[0], hand[1] = opp[2*o], opp[2*o+1]
			r, err := e.Rank(hand)
			if err != nil {
				return res, err
			}
			switch {
			case r > hero:
				best = false
			case r == hero:
				ties++
			}
		}
		if best {
			res.wins += 1 / float64(ties)
		}
		res.samples++
	}
	return res, nil
}
