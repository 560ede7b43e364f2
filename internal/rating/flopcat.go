package rating

import (
	"strings"

	"github.com/lox/pql/internal/card"
)

// FlopHandCategory classifies a player's hole cards against a three-card
// flop. The first eleven values refine the weaker made hands with their
// relation to the board; the rest mirror the hand types.
type FlopHandCategory uint8

const (
	FlopNothing FlopHandCategory = iota
	FlopUnderPair
	FlopThirdPair
	FlopPocket23
	FlopSecondPair
	FlopPocket12
	FlopTopPair
	FlopOverpair
	FlopBottomTwo
	FlopTopAndBottom
	FlopTopTwo
	FlopTrips
	FlopSet
	FlopStraight
	FlopFlush
	FlopFullHouse
	FlopQuads
	FlopStraightFlush

	NumFlopCategories = 18
)

var flopCategoryNames = [NumFlopCategories]string{
	"flopnothing", "flopunderpair", "flopthirdpair", "floppocket23",
	"flopsecondpair", "floppocket12", "floptoppair", "flopoverpair",
	"flopbottomtwo", "floptopandbottom", "floptoptwo", "floptrips",
	"flopset", "flopstraight", "flopflush", "flopfullhouse",
	"flopquads", "flopstraightflush",
}

// String returns the lowercase literal used by the query language.
func (fc FlopHandCategory) String() string {
	if fc >= NumFlopCategories {
		return "?"
	}
	return flopCategoryNames[fc]
}

// ParseFlopCategory parses a flop-category literal, case-insensitively.
func ParseFlopCategory(s string) (FlopHandCategory, bool) {
	s = strings.ToLower(s)
	for i, name := range flopCategoryNames {
		if s == name {
			return FlopHandCategory(i), true
		}
	}
	return 0, false
}

// Short-deck ordering swaps the flush and full house, as for hand types.
var (
	flopCategoryOrderStandard  [NumFlopCategories]uint8
	flopCategoryOrderShortDeck [NumFlopCategories]uint8
)

func init() {
	for i := range flopCategoryOrderStandard {
		flopCategoryOrderStandard[i] = uint8(i)
		flopCategoryOrderShortDeck[i] = uint8(i)
	}
	flopCategoryOrderShortDeck[FlopFlush] = uint8(FlopFullHouse)
	flopCategoryOrderShortDeck[FlopFullHouse] = uint8(FlopFlush)
}

// Compare orders two categories under the game's ordering, returning -1,
// 0, or 1.
func (fc FlopHandCategory) Compare(other FlopHandCategory, g Game) int {
	ord := &flopCategoryOrderStandard
	if g.ShortDeck() {
		ord = &flopCategoryOrderShortDeck
	}

	a, b := ord[fc], ord[other]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EvalFlopCategory classifies the player's hole cards against the flop.
// Hold'em and short-deck hands use both hole cards; Omaha takes the
// category maximum over every two-card subset of the four hole cards,
// under the game's ordering.
func EvalFlopCategory(g Game, player card.Set64, flop [3]card.Card) FlopHandCategory {
	var buf [4]card.Card
	hole := player.Cards(buf[:0])

	if g != GameOmaha {
		return evalFlopTwoCard(g, hole, flop)
	}

	best := FlopNothing
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			cur := evalFlopTwoCard(g, []card.Card{hole[i], hole[j]}, flop)
			if cur.Compare(best, g) > 0 {
				best = cur
			}
		}
	}
	return best
}

func evalFlopTwoCard(g Game, hole []card.Card, flop [3]card.Card) FlopHandCategory {
	var c card.Set64
	for _, h := range hole {
		c.Set(h)
	}
	for _, f := range flop {
		c.Set(f)
	}

	ht := RateHand(g, c).HandType(g)

	switch ht {
	case StraightFlush:
		return FlopStraightFlush
	case Quads:
		return FlopQuads
	case FullHouse:
		return FlopFullHouse
	case Flush:
		return FlopFlush
	case Straight:
		return FlopStraight
	}

	pocket := hole[0].Rank == hole[1].Rank

	// Distinct flop ranks, descending. Paired flops collapse.
	var boardRanks card.Rank16
	for _, f := range flop {
		boardRanks.Set(f.Rank)
	}
	var rankBuf [3]card.Rank
	distinct := boardRanks.Ranks(rankBuf[:0])

	boardPos := func(r card.Rank) int {
		for i, br := range distinct {
			if br == r {
				return i
			}
		}
		return -1
	}

	// Distinct hole ranks that hit the board.
	var matched []card.Rank
	if p := boardPos(hole[0].Rank); p >= 0 {
		matched = append(matched, hole[0].Rank)
	}
	if hole[1].Rank != hole[0].Rank {
		if p := boardPos(hole[1].Rank); p >= 0 {
			matched = append(matched, hole[1].Rank)
		}
	}

	switch ht {
	case Trips:
		if pocket {
			return FlopSet
		}
		return FlopTrips

	case TwoPair:
		if len(matched) == 2 {
			i, j := boardPos(matched[0]), boardPos(matched[1])
			if i > j {
				i, j = j, i
			}
			switch {
			case i == 0 && j == 1 && len(distinct) > 2:
				return FlopTopTwo
			case i == 0:
				return FlopTopAndBottom
			default:
				return FlopBottomTwo
			}
		}
		if pocket {
			return pocketCategory(hole[0].Rank, distinct)
		}
		if len(matched) == 1 {
			return pairedBoardCategory(boardPos(matched[0]))
		}
		return FlopNothing

	case Pair:
		if pocket && boardPos(hole[0].Rank) < 0 {
			return pocketCategory(hole[0].Rank, distinct)
		}
		if len(matched) == 1 {
			return pairedBoardCategory(boardPos(matched[0]))
		}
		return FlopNothing

	default:
		return FlopNothing
	}
}

// pocketCategory places a pocket pair between the distinct board ranks.
func pocketCategory(r card.Rank, distinct []card.Rank) FlopHandCategory {
	above := 0
	for _, br := range distinct {
		if br > r {
			above++
		}
	}

	switch above {
	case 0:
		return FlopOverpair
	case 1:
		return FlopPocket12
	case 2:
		return FlopPocket23
	default:
		return FlopUnderPair
	}
}

// pairedBoardCategory maps the position of the matched board rank (0 is
// the highest) to the pair category.
func pairedBoardCategory(pos int) FlopHandCategory {
	switch pos {
	case 0:
		return FlopTopPair
	case 1:
		return FlopSecondPair
	default:
		return FlopThirdPair
	}
}
