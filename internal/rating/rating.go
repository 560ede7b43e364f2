// Package rating implements the hand-rating core: a totally ordered 16-bit
// score for made poker hands across Hold'em, Omaha, and short-deck games.
//
// A HandRating packs the hand category into the top three bits of the high
// byte and a category-specific kicker payload below it, so that a single
// signed integer comparison ranks any two hands correctly for the active
// game variant. Categories stronger than a straight occupy the positive
// range; high card through trips occupy the negative range.
package rating

import (
	"math"

	"github.com/lox/pql/internal/card"
)

// HandRating is the packed, totally ordered hand score. Larger beats
// smaller under the encoding's game variant.
type HandRating int16

// RatingMin is the weakest representable rating, below any real hand.
const RatingMin = HandRating(math.MinInt16)

// Category tags occupying the top three bits of the high byte.
//
// Standard deck, from weakest to strongest:
// highcard 100, pair 101, twopair 110, trips 111 (negative range);
// straight 000, flush 001, fullhouse 010, quads/straight-flush 011
// (positive range).
const (
	tagHighCard uint8 = 0b100 << 5
	tagPair     uint8 = 0b101 << 5
	tagTwoPair  uint8 = 0b110 << 5
	tagTrips    uint8 = 0b111 << 5

	tagStraight      uint8 = 0b000 << 5
	tagFlush         uint8 = 0b001 << 5
	tagFullHouse     uint8 = 0b010 << 5
	tagQuads         uint8 = 0b011 << 5
	tagStraightFlush uint8 = 0b011 << 5

	// Short-deck flush-over-fullhouse swaps the two tags.
	tagFlushShort     uint8 = 0b010 << 5
	tagFullHouseShort uint8 = 0b001 << 5

	// Short-deck trips-over-straight additionally promotes trips above
	// every negative category and demotes the straight below the positive
	// range.
	tagStraightTS uint8 = 0b111 << 5
	tagTripsTS    uint8 = 0b000 << 5
)

// ratingNone marks "category absent" inside the evaluator.
const ratingNone = HandRating(math.MinInt16)

// mk packs a category tag with a two-byte payload.
func mk(tag, hi, lo uint8) HandRating {
	return HandRating(uint16(tag|hi)<<8 | uint16(lo))
}

// comb2Index maps an unordered pair of distinct rank indexes to its
// combination number: C(high,2) + low, 0..77.
func comb2Index(rs card.Rank16) uint8 {
	high, _ := rs.Max()
	rest := rs &^ card.NewRank16(high)
	low, _ := rest.Max()

	h := uint8(high)
	return h*(h-1)/2 + uint8(low)
}

// comb3Index maps an unordered triple of distinct rank indexes to its
// combination number: C(high,3) + C(mid,2) + low, 0..285.
func comb3Index(rs card.Rank16) uint16 {
	high, _ := rs.Max()
	rest := rs &^ card.NewRank16(high)
	mid, _ := rest.Max()
	rest &^= card.NewRank16(mid)
	low, _ := rest.Max()

	h := uint16(high)
	m := uint16(mid)
	return h*(h-1)*(h-2)/6 + m*(m-1)/2 + uint16(low)
}

// retainTop keeps the n highest set bits of a rank word.
func retainTop(w uint16, n int) uint16 {
	var kept uint16
	for i := 0; i < n && w != 0; i++ {
		top := topBit(w)
		kept |= top
		w &^= top
	}
	return kept
}

func topBit(w uint16) uint16 {
	if w == 0 {
		return 0
	}
	top := uint16(0x8000)
	for w&top == 0 {
		top >>= 1
	}
	return top
}

func maxRank(w uint16) card.Rank {
	r, _ := card.Rank16(w).Max()
	return r
}

// Constructors used by the evaluator and by tests. The caller supplies
// rank sets already reduced to the relevant cards.

func newHighCard(top5 card.Rank16) HandRating {
	return mk(tagHighCard, uint8(top5>>8), uint8(top5))
}

func newPair(pair card.Rank, kickers3 card.Rank16) HandRating {
	idx := comb3Index(kickers3)
	return mk(tagPair, uint8(pair)<<1|uint8(idx>>8), uint8(idx))
}

func newTwoPair(pairs card.Rank16, kicker card.Rank) HandRating {
	mid := comb2Index(pairs)
	return mk(tagTwoPair, mid>>4, mid<<4|uint8(kicker))
}

func newTrips(trip card.Rank, kickers2 card.Rank16) HandRating {
	return mk(tagTrips, uint8(trip), comb2Index(kickers2))
}

func newStraight(high card.Rank) HandRating {
	return mk(tagStraight, uint8(high)<<1, 0)
}

func newFlush(tag uint8, top5 card.Rank16) HandRating {
	return mk(tag, uint8(top5>>8), uint8(top5))
}

func newFullHouse(tag uint8, trip, pair card.Rank) HandRating {
	return mk(tag, 0, uint8(trip)<<4|uint8(pair))
}

func newQuads(quad, kicker card.Rank) HandRating {
	return mk(tagQuads, 0, uint8(quad)<<4|uint8(kicker))
}

func newStraightFlush(high card.Rank) HandRating {
	return mk(tagStraightFlush, uint8(high)<<1, 0)
}

// TS-variant constructors for the categories whose tags move.

func newStraightTS(high card.Rank) HandRating {
	return mk(tagStraightTS, uint8(high)<<1, 0)
}

func newTripsTS(trip card.Rank, kickers2 card.Rank16) HandRating {
	return mk(tagTripsTS, uint8(trip), comb2Index(kickers2))
}

// tag extracts the category bits of the rating's high byte.
func (r HandRating) tag() uint8 {
	return uint8(uint16(r)>>8) & 0b1110_0000
}

// hiPayload returns the high-byte payload below the tag.
func (r HandRating) hiPayload() uint8 {
	return uint8(uint16(r)>>8) & 0b0001_1111
}

// HandType decodes the rating's category under the game that produced it.
func (r HandRating) HandType(g Game) HandType {
	tag := r.tag()

	switch g {
	case GameShortDeck:
		switch tag {
		case tagFlushShort:
			return Flush
		case tagFullHouseShort:
			return FullHouse
		}
	case GameShortDeckTS:
		switch tag {
		case tagFlushShort:
			return Flush
		case tagFullHouseShort:
			return FullHouse
		case tagStraightTS:
			return Straight
		case tagTripsTS:
			return Trips
		}
	}

	switch tag {
	case tagHighCard:
		return HighCard
	case tagPair:
		return Pair
	case tagTwoPair:
		return TwoPair
	case tagTrips:
		return Trips
	case tagStraight:
		return Straight
	case tagFlush:
		return Flush
	case tagFullHouse:
		return FullHouse
	default: // quads / straight flush share a tag
		if r.hiPayload() != 0 {
			return StraightFlush
		}
		return Quads
	}
}
