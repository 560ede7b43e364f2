package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pql/internal/card"
)

func flopCat(t *testing.T, g Game, hole, flop string) FlopHandCategory {
	t.Helper()

	fc := card.MustParseCards(flop)
	require.Len(t, fc, 3)

	return EvalFlopCategory(g, card.NewSet64(card.MustParseCards(hole)), [3]card.Card{fc[0], fc[1], fc[2]})
}

func TestFlopCategoryHoldem(t *testing.T) {
	tests := []struct {
		hole, flop string
		want       FlopHandCategory
	}{
		{"AsKs", "QsJsTs", FlopStraightFlush},
		{"AsAh", "AdAcKs", FlopQuads},
		{"AsAh", "AdKcKs", FlopFullHouse},
		{"AsKs", "QsJs9s", FlopFlush},
		{"AsKh", "QdJcTs", FlopStraight},
		{"AsAh", "AdKcQs", FlopSet},
		{"As2h", "AdAcQs", FlopTrips},
		{"JsQh", "TdJcQs", FlopTopTwo},
		{"TsQh", "TdJcQs", FlopTopAndBottom},
		{"JsTh", "TdJcQs", FlopBottomTwo},
		{"AsAh", "KdQcJs", FlopOverpair},
		{"Ks2h", "KdQcJs", FlopTopPair},
		{"QsQh", "KdTc7s", FlopPocket12},
		{"Ts2h", "KdTc7s", FlopSecondPair},
		{"9s9h", "KdTc7s", FlopPocket23},
		{"7h2h", "KdTc7s", FlopThirdPair},
		{"2s2h", "KdTc7s", FlopUnderPair},
		{"AsKh", "QdJc9s", FlopNothing},
	}

	for _, tt := range tests {
		got := flopCat(t, GameHoldem, tt.hole, tt.flop)
		assert.Equal(t, tt.want, got, "%s | %s", tt.hole, tt.flop)
	}
}

func TestFlopCategoryOmaha(t *testing.T) {
	tests := []struct {
		hole, flop string
		want       FlopHandCategory
	}{
		{"3d6cAsKs", "QsJsTs", FlopStraightFlush},
		{"3d6cAsAh", "AdAcKs", FlopQuads},
		{"3d6cAsAh", "AdKcKs", FlopFullHouse},
		{"3d6cAsKs", "QsJs9s", FlopFlush},
		{"3d6cAsKh", "QdJcTs", FlopStraight},
		{"3d6cAsAh", "AdKcQs", FlopSet},
		{"3d6cAs2h", "AdAcQs", FlopTrips},
		{"3d6cJsQh", "TdJcQs", FlopTopTwo},
		{"3d6cTsQh", "TdJcQs", FlopTopAndBottom},
		{"3d6cJsTh", "TdJcQs", FlopBottomTwo},
		{"3d6cAsAh", "KdQcJs", FlopOverpair},
		{"3d6cKs2h", "KdQcJs", FlopTopPair},
		{"3d6cQsQh", "KdTc7s", FlopPocket12},
		{"3d6cTs2h", "KdTc7s", FlopSecondPair},
		{"3d6c9s9h", "KdTc7s", FlopPocket23},
		{"3d6c7h2h", "KdTc7s", FlopThirdPair},
		{"3d6c2s2h", "KdTc7s", FlopUnderPair},
		{"3d6cAsKh", "QdJc9s", FlopNothing},
	}

	for _, tt := range tests {
		got := flopCat(t, GameOmaha, tt.hole, tt.flop)
		assert.Equal(t, tt.want, got, "%s | %s", tt.hole, tt.flop)
	}
}

func TestFlopCategoryCompareShortDeck(t *testing.T) {
	// Short-deck ordering: flush above full house.
	assert.Equal(t, 1, FlopFlush.Compare(FlopFullHouse, GameShortDeck))
	assert.Equal(t, -1, FlopFlush.Compare(FlopFullHouse, GameHoldem))

	// Everything else keeps its relative order.
	assert.Equal(t, 1, FlopQuads.Compare(FlopFlush, GameShortDeck))
	assert.Equal(t, 1, FlopStraightFlush.Compare(FlopQuads, GameShortDeck))
	assert.Equal(t, -1, FlopStraight.Compare(FlopFullHouse, GameShortDeck))
}

func TestFlopCategoryShortDeckFlushHand(t *testing.T) {
	// A short-deck flush on the flop classifies as FlopFlush and outranks
	// FlopFullHouse under the short-deck ordering.
	got := flopCat(t, GameShortDeck, "AsKs", "7s8s9s")
	assert.Equal(t, FlopFlush, got)
	assert.GreaterOrEqual(t, got.Compare(FlopFullHouse, GameShortDeck), 0)
}

func TestParseFlopCategory(t *testing.T) {
	fc, ok := ParseFlopCategory("flopFullHouse")
	require.True(t, ok)
	assert.Equal(t, FlopFullHouse, fc)

	fc, ok = ParseFlopCategory("floptoptwo")
	require.True(t, ok)
	assert.Equal(t, FlopTopTwo, fc)

	_, ok = ParseFlopCategory("fullhouse")
	assert.False(t, ok)
}

func TestFlopCategoryStrings(t *testing.T) {
	for i := 0; i < NumFlopCategories; i++ {
		fc := FlopHandCategory(i)
		parsed, ok := ParseFlopCategory(fc.String())
		require.True(t, ok, fc.String())
		assert.Equal(t, fc, parsed)
	}
}
