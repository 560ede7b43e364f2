package rating

import (
	"fmt"
	"strings"

	"github.com/lox/pql/internal/card"
)

// Game identifies the poker variant being evaluated. It determines the
// hole-card count, the deck (full or 36-card), and the category ordering
// baked into the rating encoding.
//
// GameShortDeck ranks a flush above a full house; GameShortDeckTS
// additionally ranks trips above a straight. The query surface exposes
// "shortdeck" as the flush-over-fullhouse variant; the TS encoding remains
// available at the library level.
type Game uint8

const (
	GameHoldem Game = iota
	GameOmaha
	GameShortDeck
	GameShortDeckTS
)

// ParseGame parses a game name, case-insensitively, trimming whitespace.
func ParseGame(s string) (Game, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "holdem":
		return GameHoldem, nil
	case "omaha":
		return GameOmaha, nil
	case "shortdeck":
		return GameShortDeck, nil
	default:
		return 0, fmt.Errorf("unrecognized game %q", s)
	}
}

// String returns the game name as accepted by ParseGame.
func (g Game) String() string {
	switch g {
	case GameHoldem:
		return "holdem"
	case GameOmaha:
		return "omaha"
	case GameShortDeck, GameShortDeckTS:
		return "shortdeck"
	default:
		return "?"
	}
}

// HoleCards returns the number of hole cards dealt per player.
func (g Game) HoleCards() uint8 {
	if g == GameOmaha {
		return 4
	}
	return 2
}

// ShortDeck reports whether the game uses the 36-card deck.
func (g Game) ShortDeck() bool {
	return g == GameShortDeck || g == GameShortDeckTS
}

// EvalRating rates a player's hand against the visible board under the
// game's rules. For Hold'em and short-deck the union of both sets is
// evaluated directly; for Omaha exactly two hole cards and three board
// cards must be used.
func (g Game) EvalRating(player, board card.Set64) HandRating {
	switch g {
	case GameOmaha:
		return EvalOmaha9(player, board)
	case GameShortDeck:
		return EvalShortDeck(player | board)
	case GameShortDeckTS:
		return EvalShortDeckTS(player | board)
	default:
		return EvalHoldem(player | board)
	}
}
