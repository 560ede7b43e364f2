package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/rating"
)

// Hand-type, flop-category, and rating queries.

func init() {
	register(
		&FnDesc{
			Name:     "hiRating",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeHiRating,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return HiRatingValue(hiRating(ctx, args[0].Player(), args[1].Street())), nil
			},
		},
		&FnDesc{
			Name:     "minHiRating",
			ArgTypes: []Type{TypePlayer, TypeStreet, TypeHiRating},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r := hiRating(ctx, args[0].Player(), args[1].Street())
				return BoolValue(r >= args[2].HiRating()), nil
			},
		},
		&FnDesc{
			Name:     "handType",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeHandType,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r := hiRating(ctx, args[0].Player(), args[1].Street())
				return HandTypeValue(r.HandType(ctx.Fn.Game)), nil
			},
		},
		&FnDesc{
			Name:     "exactHandType",
			ArgTypes: []Type{TypePlayer, TypeStreet, TypeHandType},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r := hiRating(ctx, args[0].Player(), args[1].Street())
				return BoolValue(r.HandType(ctx.Fn.Game) == args[2].HandType()), nil
			},
		},
		&FnDesc{
			Name:     "minHandType",
			ArgTypes: []Type{TypePlayer, TypeStreet, TypeHandType},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				ht := hiRating(ctx, args[0].Player(), args[1].Street()).HandType(ctx.Fn.Game)
				return BoolValue(ht.Compare(args[2].HandType(), ctx.Fn.Game) >= 0), nil
			},
		},
		&FnDesc{
			Name:     "flopHandCategory",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeFlopHandCategory,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return FlopCategoryValue(flopCategory(ctx, args[0].Player())), nil
			},
		},
		&FnDesc{
			Name:     "exactFlopHandCategory",
			ArgTypes: []Type{TypePlayer, TypeFlopHandCategory},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				fc := flopCategory(ctx, args[0].Player())
				return BoolValue(fc == args[1].FlopCategory()), nil
			},
		},
		&FnDesc{
			Name:     "minFlopHandCategory",
			ArgTypes: []Type{TypePlayer, TypeFlopHandCategory},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				fc := flopCategory(ctx, args[0].Player())
				return BoolValue(fc.Compare(args[1].FlopCategory(), ctx.Fn.Game) >= 0), nil
			},
		},
		&FnDesc{
			Name:     "overpair",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player())
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()

				pair, ok := duplicatedRanks(hand).Max()
				if !ok {
					return BoolValue(false), nil
				}
				top, _ := board.Max()
				return BoolValue(pair > top), nil
			},
		},
		&FnDesc{
			Name:     "pocketPair",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player())
				return BoolValue(!duplicatedRanks(hand).IsEmpty()), nil
			},
		},
		&FnDesc{
			Name:     "threeFlush",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return BoolValue(nFlush(ctx, args[0].Player(), args[1].Street(), 3)), nil
			},
		},
		&FnDesc{
			Name:     "fourFlush",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return BoolValue(nFlush(ctx, args[0].Player(), args[1].Street(), 4)), nil
			},
		},
	)
}

func hiRating(ctx *ExecContext, p uint8, street card.Street) rating.HandRating {
	return ctx.Fn.Game.EvalRating(
		ctx.Fn.Sampled.PlayerSet64(p),
		ctx.Fn.Sampled.BoardSet64(street))
}

func flopCategory(ctx *ExecContext, p uint8) rating.FlopHandCategory {
	return rating.EvalFlopCategory(ctx.Fn.Game, ctx.Fn.Sampled.PlayerSet64(p), ctx.Fn.Sampled.Board.Flop())
}

// nFlush reports whether the player can reach n cards of one suit using
// at most two hole cards plus the visible board.
func nFlush(ctx *ExecContext, p uint8, street card.Street, n uint8) bool {
	hand := ctx.Fn.Sampled.PlayerSet64(p)
	board := ctx.Fn.Sampled.BoardSet64(street)

	for s := card.Spades; s < card.NumSuits; s++ {
		h := hand.CountBySuit(s)
		if h == 0 {
			continue
		}
		if h > 2 {
			h = 2
		}
		if h+board.CountBySuit(s) >= n {
			return true
		}
	}
	return false
}
