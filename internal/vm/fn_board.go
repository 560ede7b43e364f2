package vm

import "github.com/lox/pql/internal/card"

// Board-texture predicates and accessors.

func init() {
	register(
		&FnDesc{
			Name:     "boardSuitCount",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeCardCount,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				n := ctx.Fn.Sampled.BoardSet64(args[0].Street()).Suits().Count()
				return CardCountValue(n), nil
			},
		},
		&FnDesc{
			Name:     "flushingBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[0].Street())
				for s := card.Spades; s < card.NumSuits; s++ {
					if board.CountBySuit(s) >= 3 {
						return BoolValue(true), nil
					}
				}
				return BoolValue(false), nil
			},
		},
		&FnDesc{
			Name:     "monotoneBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[0].Street())
				return BoolValue(board.Suits().Count() == 1), nil
			},
		},
		&FnDesc{
			Name:     "twotoneBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				board := ctx.Fn.Sampled.BoardSet64(args[0].Street())
				return BoolValue(board.Suits().Count() == 2), nil
			},
		},
		&FnDesc{
			Name:     "rainbowBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				street := args[0].Street()
				board := ctx.Fn.Sampled.BoardSet64(street)
				// Five board cards can never be all distinct suits.
				return BoolValue(board.Suits().Count() == street.CardCount()), nil
			},
		},
		&FnDesc{
			Name:     "pairedBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				street := args[0].Street()
				board := ctx.Fn.Sampled.BoardSet64(street)
				return BoolValue(board.Ranks().Count() < street.CardCount()), nil
			},
		},
		&FnDesc{
			Name:     "straightBoard",
			ArgTypes: []Type{TypeStreet},
			RtnType:  TypeBoolean,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				ranks := ctx.Fn.Sampled.BoardSet64(args[0].Street()).Ranks()
				return BoolValue(straightDraw(ranks, ctx.Fn.Game.ShortDeck())), nil
			},
		},
		&FnDesc{
			Name:    "turnCard",
			RtnType: TypeCard,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return CardValue(ctx.Fn.Sampled.Board.Turn()), nil
			},
		},
		&FnDesc{
			Name:    "riverCard",
			RtnType: TypeCard,
			Call: func(ctx *ExecContext, args []Value) (Value, error) {
				return CardValue(ctx.Fn.Sampled.Board.River()), nil
			},
		},
	)
}

// straightDraw reports whether at least three board ranks sit inside one
// straight window.
func straightDraw(ranks card.Rank16, shortDeck bool) bool {
	for _, w := range straightWindows(shortDeck) {
		if (ranks & w).Count() >= 3 {
			return true
		}
	}
	return false
}

var (
	straightWindowsFull = []card.Rank16{
		0x1F00, 0x0F80, 0x07C0, 0x03E0, 0x01F0,
		0x00F8, 0x007C, 0x003E, 0x001F, 0x100F,
	}
	straightWindowsShort = []card.Rank16{
		0x1F00, 0x0F80, 0x07C0, 0x03E0, 0x11E0,
	}
)

func straightWindows(shortDeck bool) []card.Rank16 {
	if shortDeck {
		return straightWindowsShort
	}
	return straightWindowsFull
}
