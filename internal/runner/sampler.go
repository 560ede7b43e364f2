package runner

import (
	"math/rand"

	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/vm"
)

// dealer draws consistent deals for one worker: hole cards per player and
// a five-card board, all without replacement from the live deck.
//
// Cards are drawn one position at a time; a drawn card that makes the
// growing prefix unsatisfiable for its range goes back into the deck and
// another is tried, so a fully pinned range ("board='AsKsQs2h3d'") still
// deals in one attempt. An attempt fails only when no remaining card can
// extend the prefix; the caller counts the failure and retries.
type dealer struct {
	deck     []card.Card // full deck minus dead cards
	scratch  []card.Card
	rejected []card.Card
	rng      *rand.Rand
}

func newDealer(sd *vm.StaticData, rng *rand.Rand) *dealer {
	deck := sd.Dead.Complement(sd.Game.ShortDeck()).Cards(nil)
	return &dealer{
		deck:     deck,
		scratch:  make([]card.Card, len(deck)),
		rejected: make([]card.Card, 0, len(deck)),
		rng:      rng,
	}
}

// sample attempts one deal into data.
func (d *dealer) sample(sd *vm.StaticData, data *vm.SampledData) bool {
	copy(d.scratch, d.deck)
	remaining := d.scratch

	// draw removes a uniformly random card from the deck.
	draw := func() card.Card {
		i := d.rng.Intn(len(remaining))
		c := remaining[i]
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		return c
	}

	// drawSatisfying extends tuple by one card keeping accept true,
	// returning rejected cards to the deck.
	drawSatisfying := func(tuple []card.Card, accept func([]card.Card) bool) ([]card.Card, bool) {
		d.rejected = d.rejected[:0]

		for len(remaining) > 0 {
			c := draw()
			tuple = append(tuple, c)

			if accept(tuple) {
				remaining = append(remaining, d.rejected...)
				return tuple, true
			}

			tuple = tuple[:len(tuple)-1]
			d.rejected = append(d.rejected, c)
		}

		remaining = append(remaining, d.rejected...)
		return tuple, false
	}

	n := int(sd.Game.HoleCards())

	for p := range sd.PlayerRanges {
		hand := data.Hands[p][:0]
		checker := sd.PlayerRanges[p]

		for i := 0; i < n; i++ {
			var ok bool
			hand, ok = drawSatisfying(hand, checker.IsSatisfied)
			if !ok {
				data.Hands[p] = hand
				return false
			}
		}
		data.Hands[p] = hand
	}

	board := data.Board[:0]
	for i := 0; i < len(data.Board); i++ {
		var ok bool
		board, ok = drawSatisfying(board, sd.BoardRange.IsSatisfied)
		if !ok {
			return false
		}
	}

	return true
}
