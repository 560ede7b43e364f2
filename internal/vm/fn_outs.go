package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/rating"
)

// Nut and out-counting functions. All of them treat dead cards as known:
// an opponent can never hold a dead card, and a dead card is never an
// out.

func init() {
	register(
		&FnDesc{
			Name:     "nutHi",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return BoolValue(nutHi(ctx, args[0].Player(), args[1].Street(), false)), nil
			},
		},
		&FnDesc{
			Name:     "nutHiForHandType",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return BoolValue(nutHi(ctx, args[0].Player(), args[1].Street(), true)), nil
			},
		},
		&FnDesc{
			Name:     "minOutsToHandType",
			ArgTypes: []Type{TypePlayer, TypeStreet, TypeHandType, TypeCardCount},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				outs := outsToHandType(ctx, args[0].Player(), args[1].Street(), args[2].HandType())
				return BoolValue(outs >= args[3].CardCount()), nil
			},
		},
	)
}

// nutHi reports whether no holdable opponent hand beats the player on the
// visible board. With sameTypeOnly, only hands of the player's hand type
// compete.
func nutHi(ctx *ExecContext, p uint8, street card.Street, sameTypeOnly bool) bool {
	hand := ctx.Fn.Sampled.PlayerSet64(p)
	board := ctx.Fn.Sampled.BoardSet64(street)
	known := ctx.Fn.Dead | hand | board

	playerRating := ctx.Fn.Game.EvalRating(hand, board)
	playerType := playerRating.HandType(ctx.Fn.Game)

	unseen := known.Complement(ctx.Fn.Game.ShortDeck()).Cards(nil)
	n := int(ctx.Fn.Game.HoleCards())

	var other [4]card.Card
	return !anyCombination(unseen, n, other[:0], func(hole []card.Card) bool {
		r := ctx.Fn.Game.EvalRating(card.NewSet64(hole), board)
		if sameTypeOnly && r.HandType(ctx.Fn.Game) != playerType {
			return false
		}
		return r > playerRating
	})
}

// anyCombination walks n-card combinations of cards, stopping early when
// pred holds.
func anyCombination(cards []card.Card, n int, buf []card.Card, pred func([]card.Card) bool) bool {
	if n == 0 {
		return pred(buf)
	}
	for i := 0; i+n <= len(cards); i++ {
		if anyCombination(cards[i+1:], n-1, append(buf, cards[i]), pred) {
			return true
		}
	}
	return false
}

// outsToHandType counts the distinct next cards that lift the player to
// at least the target hand type. The river has no card to come.
func outsToHandType(ctx *ExecContext, p uint8, street card.Street, target rating.HandType) uint8 {
	if street == card.River {
		return 0
	}

	hand := ctx.Fn.Sampled.PlayerSet64(p)
	board := ctx.Fn.Sampled.BoardSet64(street)
	known := ctx.Fn.Dead | hand | board
	for other := uint8(0); other < ctx.Fn.NPlayers; other++ {
		known |= ctx.Fn.Sampled.PlayerSet64(other)
	}

	var outs uint8
	for _, c := range known.Complement(ctx.Fn.Game.ShortDeck()).Cards(nil) {
		next := board
		next.Set(c)

		ht := ctx.Fn.Game.EvalRating(hand, next).HandType(ctx.Fn.Game)
		if ht.Compare(target, ctx.Fn.Game) >= 0 {
			outs++
		}
	}
	return outs
}
