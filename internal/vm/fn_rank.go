package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/pql"
)

// Rank-set queries over the board and hole cards.

func init() {
	register(
		&FnDesc{
			Name:     "boardRanks",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return RankSetValue(ctx.Fn.Sampled.BoardSet64(args[0].Street()).Ranks()), nil
			},
		},
		&FnDesc{
			Name:     "handRanks",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return RankSetValue(ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()), nil
			},
		},
		&FnDesc{
			Name:     "duplicatedBoardRanks",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[0].Street())
				return RankSetValue(duplicatedRanks(board)), nil
			},
		},
		&FnDesc{
			Name:     "duplicatedHandRanks",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player())
				return RankSetValue(duplicatedRanks(hand)), nil
			},
		},
		&FnDesc{
			Name:     "intersectingHandRanks",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()
				return RankSetValue(hand & board), nil
			},
		},
		&FnDesc{
			Name:     "nonintersectingHandRanks",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeRankSet,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()
				return RankSetValue(hand &^ board), nil
			},
		},
		&FnDesc{
			Name:     "handBoardIntersections",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeCardCount,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()
				return CardCountValue((hand & board).Count()), nil
			},
		},
		&FnDesc{
			Name:     "maxRank",
			ArgTypes: []Type{TypeRankSet},
			RtnType:  TypeRank,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r, ok := args[0].RankSet().Max()
				if !ok {
					return Value{}, pql.Err(pql.ErrEmptyRankSet, 0, 0)
				}
				return RankValue(r), nil
			},
		},
		&FnDesc{
			Name:     "minRank",
			ArgTypes: []Type{TypeRankSet},
			RtnType:  TypeRank,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r, ok := args[0].RankSet().Min()
				if !ok {
					return Value{}, pql.Err(pql.ErrEmptyRankSet, 0, 0)
				}
				return RankValue(r), nil
			},
		},
		&FnDesc{
			Name:     "nthRank",
			ArgTypes: []Type{TypeCardCount, TypeRankSet},
			RtnType:  TypeRank,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				r, ok := args[1].RankSet().Nth(args[0].CardCount())
				if !ok {
					return Value{}, pql.Err(pql.ErrEmptyRankSet, 0, 0)
				}
				return RankValue(r), nil
			},
		},
		&FnDesc{
			Name:     "rankCount",
			ArgTypes: []Type{TypeRankSet},
			RtnType:  TypeCardCount,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return CardCountValue(args[0].RankSet().Count()), nil
			},
		},
		&FnDesc{
			Name:     "hasTopBoardRank",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()
				top, ok := board.Max()
				if !ok {
					return BoolValue(false), nil
				}
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()
				return BoolValue(hand.Contains(top)), nil
			},
		},
		&FnDesc{
			Name:     "hasSecondBoardRank",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[1].Street()).Ranks()
				second, ok := board.Nth(2)
				if !ok {
					return BoolValue(false), nil
				}
				hand := ctx.Fn.Sampled.PlayerSet64(args[0].Player()).Ranks()
				return BoolValue(hand.Contains(second)), nil
			},
		},
	)
}

// duplicatedRanks returns the ranks appearing at least twice in the set.
func duplicatedRanks(c card.Set64) card.Rank16 {
	sp, he, di, cl := c.Lanes()
	two := sp&he | sp&di | sp&cl | he&di | he&cl | di&cl
	return card.Rank16(two)
}
