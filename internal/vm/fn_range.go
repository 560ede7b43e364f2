package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/rating"
)

// Range membership and conversions.

func init() {
	register(
		&FnDesc{
			Name:     "inRange",
			ArgTypes: []Type{TypePlayer, TypeRange},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				checker := ctx.Heap.Get(args[1].HeapRef()).Range
				hand := ctx.Fn.Sampled.PlayerCards(args[0].Player())
				return BoolValue(checker.IsSatisfied(hand)), nil
			},
		},
		&FnDesc{
			Name:     "boardInRange",
			ArgTypes: []Type{TypeBoardRange},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				checker := ctx.Heap.Get(args[0].HeapRef()).BoardRange
				return BoolValue(checker.IsSatisfied(ctx.Fn.Sampled.Board[:])), nil
			},
		},
		&FnDesc{
			Name:     "toCard",
			ArgTypes: []Type{TypeString},
			RtnType:  TypeCard,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				text := ctx.Heap.Get(args[0].HeapRef()).Str
				c, err := card.Parse(text)
				if err != nil {
					return Value{}, pql.Errf(pql.ErrInvalidHand, 0, 0, "%q", text)
				}
				return CardValue(c), nil
			},
		},
		&FnDesc{
			Name:     "toRank",
			ArgTypes: []Type{TypeString},
			RtnType:  TypeRank,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				text := ctx.Heap.Get(args[0].HeapRef()).Str
				if len(text) != 1 {
					return Value{}, pql.Errf(pql.ErrInvalidHand, 0, 0, "%q", text)
				}
				r, ok := card.ParseRank(text[0])
				if !ok {
					return Value{}, pql.Errf(pql.ErrInvalidHand, 0, 0, "%q", text)
				}
				return RankValue(r), nil
			},
		},
		&FnDesc{
			Name:     "rateHiHand",
			ArgTypes: []Type{TypeString},
			RtnType:  TypeHiRating,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				text := ctx.Heap.Get(args[0].HeapRef()).Str

				cards, err := card.ParseCards(text)
				if err != nil {
					return Value{}, pql.Errf(pql.ErrInvalidHand, 0, 0, "%q", text)
				}

				set := card.NewSet64(cards)
				if set.Count() != 5 {
					return Value{}, pql.Err(pql.ErrRequiresFiveCards, 0, 0)
				}

				return HiRatingValue(rateGame(ctx).EvalRating(set, 0)), nil
			},
		},
	)
}

// rateGame maps the statement's game to the encoding used for rating a
// bare five-card hand: Omaha hands rate like Hold'em.
func rateGame(ctx *ExecContext) rating.Game {
	if ctx.Fn.Game.ShortDeck() {
		return ctx.Fn.Game
	}
	return rating.GameHoldem
}
