package vm

import (
	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/rating"
)

func maxHiRating(ctx *ExecContext, street card.Street) rating.HandRating {
	best := rating.RatingMin
	for p := uint8(0); p < ctx.Fn.NPlayers; p++ {
		if r := hiRating(ctx, p, street); r > best {
			best = r
		}
	}
	return best
}

// River showdown outcomes.

func init() {
	register(
		&FnDesc{
			Name:     "bestHiRating",
			ArgTypes: []Type{TypePlayer, TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				street := args[1].Street()
				player := hiRating(ctx, args[0].Player(), street)

				for p := uint8(0); p < ctx.Fn.NPlayers; p++ {
					if hiRating(ctx, p, street) > player {
						return BoolValue(false), nil
					}
				}
				return BoolValue(true), nil
			},
		},
		&FnDesc{
			Name:     "maxHiRating",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeHiRating,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return HiRatingValue(maxHiRating(ctx, args[0].Street())), nil
			},
		},
		&FnDesc{
			Name:     "winsHi",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				p := args[0].Player()
				best := hiRating(ctx, p, card.River) == maxHiRating(ctx, card.River)
				return BoolValue(best), nil
			},
		},
		&FnDesc{
			Name:     "tiesHi",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				p := args[0].Player()
				max := maxHiRating(ctx, card.River)

				if hiRating(ctx, p, card.River) != max {
					return BoolValue(false), nil
				}
				for other := uint8(0); other < ctx.Fn.NPlayers; other++ {
					if other != p && hiRating(ctx, other, card.River) == max {
						return BoolValue(true), nil
					}
				}
				return BoolValue(false), nil
			},
		},
		&FnDesc{
			Name:     "scoops",
			ArgTypes: []Type{TypePlayer},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				p := args[0].Player()
				max := maxHiRating(ctx, card.River)

				if hiRating(ctx, p, card.River) != max {
					return BoolValue(false), nil
				}
				for other := uint8(0); other < ctx.Fn.NPlayers; other++ {
					if other != p && hiRating(ctx, other, card.River) == max {
						return BoolValue(false), nil
					}
				}
				return BoolValue(true), nil
			},
		},
		&FnDesc{
			Name:    "winningHandType",
			RtnType: TypeHandType,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				max := maxHiRating(ctx, card.River)
				return HandTypeValue(max.HandType(ctx.Fn.Game)), nil
			},
		},
	)
}
