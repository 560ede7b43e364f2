package rating

import (
	"math/bits"

	"github.com/lox/pql/internal/card"
)

// straightWindow is a 5-rank run and the rank the straight rates as.
// The wheel variants rate as their true high card (Five and Ten).
type straightWindow struct {
	mask uint16
	high card.Rank
}

var straightsFull = [10]straightWindow{
	{0x1F00, card.Ace},   // TJQKA
	{0x0F80, card.King},  // 9TJQK
	{0x07C0, card.Queen}, // 89TJQ
	{0x03E0, card.Jack},  // 789TJ
	{0x01F0, card.Ten},   // 6789T
	{0x00F8, card.Nine},  // 56789
	{0x007C, card.Eight}, // 45678
	{0x003E, card.Seven}, // 34567
	{0x001F, card.Six},   // 23456
	{0x100F, card.Five},  // A2345
}

var straightsShort = [5]straightWindow{
	{0x1F00, card.Ace},   // TJQKA
	{0x0F80, card.King},  // 9TJQK
	{0x07C0, card.Queen}, // 89TJQ
	{0x03E0, card.Jack},  // 789TJ
	{0x11E0, card.Ten},   // A789T
}

// variant captures what changes between the three encodings: the straight
// table, the flush/fullhouse tags, the straight/trips constructors, and
// whether trips is probed before the straight.
type variant struct {
	straights         []straightWindow
	flushTag          uint8
	fullHouseTag      uint8
	newStraight       func(card.Rank) HandRating
	newTrips          func(card.Rank, card.Rank16) HandRating
	tripsOverStraight bool
}

var (
	variantHoldem = variant{
		straights:    straightsFull[:],
		flushTag:     tagFlush,
		fullHouseTag: tagFullHouse,
		newStraight:  newStraight,
		newTrips:     newTrips,
	}

	variantShortDeck = variant{
		straights:    straightsShort[:],
		flushTag:     tagFlushShort,
		fullHouseTag: tagFullHouseShort,
		newStraight:  newStraight,
		newTrips:     newTrips,
	}

	variantShortDeckTS = variant{
		straights:         straightsShort[:],
		flushTag:          tagFlushShort,
		fullHouseTag:      tagFullHouseShort,
		newStraight:       newStraightTS,
		newTrips:          newTripsTS,
		tripsOverStraight: true,
	}
)

// EvalHoldem rates 5 to 7 cards under the standard-deck encoding.
func EvalHoldem(c card.Set64) HandRating {
	return eval(c, &variantHoldem)
}

// EvalShortDeck rates 5 to 7 short-deck cards with the flush ranked above
// a full house.
func EvalShortDeck(c card.Set64) HandRating {
	return eval(c, &variantShortDeck)
}

// EvalShortDeckTS rates 5 to 7 short-deck cards with trips additionally
// ranked above a straight.
func EvalShortDeckTS(c card.Set64) HandRating {
	return eval(c, &variantShortDeckTS)
}

// EvalOmaha9 rates an Omaha hand: exactly two of the four hole cards
// combined with exactly three of the five board cards, maximized over all
// sixty pairings with the standard 5-card evaluator.
func EvalOmaha9(player, board card.Set64) HandRating {
	var hole, comm [8]card.Card
	ph := player.Cards(hole[:0])
	bc := board.Cards(comm[:0])

	best := RatingMin

	for i := 0; i < len(ph); i++ {
		for j := i + 1; j < len(ph); j++ {
			var two card.Set64
			two.Set(ph[i])
			two.Set(ph[j])

			for x := 0; x < len(bc); x++ {
				for y := x + 1; y < len(bc); y++ {
					for z := y + 1; z < len(bc); z++ {
						five := two
						five.Set(bc[x])
						five.Set(bc[y])
						five.Set(bc[z])

						if r := eval(five, &variantHoldem); r > best {
							best = r
						}
					}
				}
			}
		}
	}

	return best
}

func eval(c card.Set64, v *variant) HandRating {
	nf := evalNoFlush(c, v)
	f := evalFlush(c, v)

	if f > nf {
		return f
	}
	return nf
}

// evalNoFlush classifies everything except flushes and straight flushes,
// probing categories from strongest down so the first hit wins.
func evalNoFlush(c card.Set64, v *variant) HandRating {
	sp, he, di, cl := c.Lanes()

	has4 := sp & he & di & cl
	has3 := sp&he&di | sp&he&cl | sp&di&cl | he&di&cl
	has2 := sp&he | sp&di | sp&cl | he&di | he&cl | di&cl
	has1 := sp | he | di | cl

	if has4 != 0 {
		quad := maxRank(has4)
		kicker := maxRank(has1 &^ has4)
		return newQuads(quad, kicker)
	}

	if has3 != 0 {
		trip := topBit(has3)
		if pairs := has2 &^ trip; pairs != 0 {
			return newFullHouse(v.fullHouseTag, maxRank(trip), maxRank(pairs))
		}
	}

	if v.tripsOverStraight {
		if r := evalTrips(has3, has1, v); r != ratingNone {
			return r
		}
		if r := evalStraight(has1, v); r != ratingNone {
			return r
		}
	} else {
		if r := evalStraight(has1, v); r != ratingNone {
			return r
		}
		if r := evalTrips(has3, has1, v); r != ratingNone {
			return r
		}
	}

	if bits.OnesCount16(has2) >= 2 {
		pairs := retainTop(has2, 2)
		kicker := maxRank(has1 &^ pairs)
		return newTwoPair(card.Rank16(pairs), kicker)
	}

	if has2 != 0 {
		kickers := retainTop(has1&^has2, 3)
		return newPair(maxRank(has2), card.Rank16(kickers))
	}

	return newHighCard(card.Rank16(retainTop(has1, 5)))
}

func evalStraight(ranks uint16, v *variant) HandRating {
	for _, w := range v.straights {
		if ranks&w.mask == w.mask {
			return v.newStraight(w.high)
		}
	}
	return ratingNone
}

func evalTrips(has3, has1 uint16, v *variant) HandRating {
	if has3 == 0 {
		return ratingNone
	}

	trip := topBit(has3)
	kickers := retainTop(has1&^trip, 2)
	return v.newTrips(maxRank(trip), card.Rank16(kickers))
}

// evalFlush finds the (at most one) suit lane holding five or more cards
// and rates it as a straight flush or a flush.
func evalFlush(c card.Set64, v *variant) HandRating {
	for s := card.Spades; s < card.NumSuits; s++ {
		lane := c.Lane(s)
		if bits.OnesCount16(lane) < 5 {
			continue
		}

		for _, w := range v.straights {
			if lane&w.mask == w.mask {
				return newStraightFlush(w.high)
			}
		}
		return newFlush(v.flushTag, card.Rank16(retainTop(lane, 5)))
	}
	return ratingNone
}

// RateHand rates an arbitrary 5-card set under the game's encoding;
// Omaha hands rate with the standard encoding since the Omaha subset rule
// does not apply to a bare five cards.
func RateHand(g Game, c card.Set64) HandRating {
	switch g {
	case GameShortDeck:
		return EvalShortDeck(c)
	case GameShortDeckTS:
		return EvalShortDeckTS(c)
	default:
		return EvalHoldem(c)
	}
}
