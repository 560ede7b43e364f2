package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/rating"
)

// Equity functions. River equity reads the sampled showdown directly;
// flop and turn equity enumerate the remaining runouts exactly.

func init() {
	register(
		&FnDesc{
			Name:     "equity",
			Aliases:  []string{"hvhequity"},
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeEquity,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return DoubleValue(equity(ctx, args[0].Player(), args[1].Street())), nil
			},
		},
		&FnDesc{
			Name:     "minEquity",
			Aliases:  []string{"minhvhequity"},
			ArgTypes: []Type{TypePlayer, TypeStreet, TypeEquity},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				eq := equity(ctx, args[0].Player(), args[1].Street())
				return BoolValue(eq >= args[2].Double()), nil
			},
		},
		&FnDesc{
			Name:     "riverEquity",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeEquity,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				num, den := riverShare(ctx, args[0].Player())
				return DoubleValue(float64(num) / float64(den)), nil
			},
		},
		&FnDesc{
			Name:     "fractionalRiverEquity",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeFraction,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				num, den := riverShare(ctx, args[0].Player())
				return FractionValue(num, den), nil
			},
		},
	)
}

// riverShare returns the player's pot share at showdown: 1/winners when
// the player holds (a share of) the best hand, 0/1 otherwise.
func riverShare(ctx *ExecContext, hero uint8) (num, den uint8) {
	max := maxHiRating(ctx, card.River)

	if hiRating(ctx, hero, card.River) != max {
		return 0, 1
	}

	var winners uint8
	for p := uint8(0); p < ctx.Fn.NPlayers; p++ {
		if hiRating(ctx, p, card.River) == max {
			winners++
		}
	}
	return 1, winners
}

func equity(ctx *ExecContext, hero uint8, street card.Street) float64 {
	switch street {
	case card.River:
		num, den := riverShare(ctx, hero)
		return float64(num) / float64(den)
	case card.Turn:
		return turnEquity(ctx, hero)
	default:
		return flopEquity(ctx, hero)
	}
}

// unseenCards lists every card not visible on the board prefix, in any
// player's hand, or dead.
func unseenCards(ctx *ExecContext, street card.Street) []card.Card {
	known := ctx.Fn.Dead | ctx.Fn.Sampled.BoardSet64(street)
	for p := uint8(0); p < ctx.Fn.NPlayers; p++ {
		known |= ctx.Fn.Sampled.PlayerSet64(p)
	}
	return known.Complement(ctx.Fn.Game.ShortDeck()).Cards(nil)
}

// turnEquity averages the player's pot share over every possible river.
func turnEquity(ctx *ExecContext, hero uint8) float64 {
	base := ctx.Fn.Sampled.BoardSet64(card.Turn)

	var sum float64
	var n int

	for _, river := range unseenCards(ctx, card.Turn) {
		board := base
		board.Set(river)

		sum += showdownShare(ctx, hero, board)
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// flopEquity averages over every turn-river completion.
func flopEquity(ctx *ExecContext, hero uint8) float64 {
	base := ctx.Fn.Sampled.BoardSet64(card.Flop)
	unseen := unseenCards(ctx, card.Flop)

	var sum float64
	var n int

	for i := 0; i < len(unseen); i++ {
		for j := i + 1; j < len(unseen); j++ {
			board := base
			board.Set(unseen[i])
			board.Set(unseen[j])

			sum += showdownShare(ctx, hero, board)
			n++
		}
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func showdownShare(ctx *ExecContext, hero uint8, board card.Set64) float64 {
	best := rating.RatingMin
	var heroRating rating.HandRating

	winners := 0
	for p := uint8(0); p < ctx.Fn.NPlayers; p++ {
		r := ctx.Fn.Game.EvalRating(ctx.Fn.Sampled.PlayerSet64(p), board)
		if p == hero {
			heroRating = r
		}
		switch {
		case r > best:
			best = r
			winners = 1
		case r == best:
			winners++
		}
	}

	if heroRating != best {
		return 0
	}
	return 1 / float64(winners)
}
