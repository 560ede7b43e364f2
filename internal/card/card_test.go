package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	c, err := Parse("As")
	require.NoError(t, err)
	assert.Equal(t, New(Ace, Spades), c)
	assert.Equal(t, "As", c.String())

	c, err = Parse("td")
	require.NoError(t, err)
	assert.Equal(t, New(Ten, Diamonds), c)

	_, err = Parse("Xx")
	assert.Error(t, err)

	_, err = Parse("A")
	assert.Error(t, err)
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKs Qh")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, New(Ace, Spades), cards[0])
	assert.Equal(t, New(King, Spades), cards[1])
	assert.Equal(t, New(Queen, Hearts), cards[2])

	_, err = ParseCards("AsK")
	assert.Error(t, err)

	_, err = ParseCards("AsKx")
	assert.Error(t, err)
}

func TestCardRoundTrip(t *testing.T) {
	for _, c := range AllCards(false) {
		parsed, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestAllCards(t *testing.T) {
	assert.Len(t, AllCards(false), 52)
	assert.Len(t, AllCards(true), 36)

	for _, c := range AllCards(true) {
		assert.GreaterOrEqual(t, c.Rank, Six)
	}
}

func TestSet64Basics(t *testing.T) {
	var s Set64
	assert.True(t, s.IsEmpty())

	as := New(Ace, Spades)
	ah := New(Ace, Hearts)
	ks := New(King, Spades)

	s.Set(as)
	s.Set(ah)
	s.Set(ks)

	assert.Equal(t, uint8(3), s.Count())
	assert.True(t, s.Contains(as))
	assert.False(t, s.Contains(New(King, Hearts)))

	assert.Equal(t, uint8(2), s.CountByRank(Ace))
	assert.Equal(t, uint8(2), s.CountBySuit(Spades))
	assert.Equal(t, uint8(1), s.CountBySuit(Hearts))

	s.Unset(ah)
	assert.False(t, s.Contains(ah))
	assert.Equal(t, uint8(2), s.Count())
}

func TestSet64Lanes(t *testing.T) {
	s := NewSet64(MustParseCards("2s2h2d2c"))
	sp, he, di, cl := s.Lanes()

	assert.Equal(t, uint16(1), sp)
	assert.Equal(t, uint16(1), he)
	assert.Equal(t, uint16(1), di)
	assert.Equal(t, uint16(1), cl)
}

func TestSet64RanksSuits(t *testing.T) {
	s := NewSet64(MustParseCards("AsKh2d"))

	assert.Equal(t, NewRank16(Ace, King, Two), s.Ranks())
	assert.Equal(t, NewSuit4(Spades, Hearts, Diamonds), s.Suits())
}

func TestSet64Complement(t *testing.T) {
	s := NewSet64(AllCards(false))
	assert.Equal(t, fullDeck64, s)
	assert.True(t, s.Complement(false).IsEmpty())

	var empty Set64
	assert.Equal(t, uint8(52), empty.Complement(false).Count())
	assert.Equal(t, uint8(36), empty.Complement(true).Count())
}

func TestSet64Cards(t *testing.T) {
	cards := MustParseCards("2s7hJd")
	s := NewSet64(cards)

	got := s.Cards(nil)
	require.Len(t, got, 3)
	for _, c := range cards {
		assert.Contains(t, got, c)
	}
}

func TestRank16(t *testing.T) {
	rs := NewRank16(Ace, King, Seven, Two)

	assert.Equal(t, uint8(4), rs.Count())
	assert.True(t, rs.Contains(Seven))
	assert.False(t, rs.Contains(Queen))

	max, ok := rs.Max()
	require.True(t, ok)
	assert.Equal(t, Ace, max)

	min, ok := rs.Min()
	require.True(t, ok)
	assert.Equal(t, Two, min)

	assert.Equal(t, "AK72", rs.String())
}

func TestRank16Nth(t *testing.T) {
	rs := NewRank16(Ace, King, Seven)

	_, ok := rs.Nth(0)
	assert.False(t, ok)

	first, ok := rs.Nth(1)
	require.True(t, ok)
	assert.Equal(t, Ace, first)

	second, ok := rs.Nth(2)
	require.True(t, ok)
	assert.Equal(t, King, second)

	third, ok := rs.Nth(3)
	require.True(t, ok)
	assert.Equal(t, Seven, third)

	_, ok = rs.Nth(4)
	assert.False(t, ok)
}

func TestRank16Empty(t *testing.T) {
	var rs Rank16

	_, ok := rs.Max()
	assert.False(t, ok)
	_, ok = rs.Min()
	assert.False(t, ok)
	assert.True(t, rs.IsEmpty())
}

func TestSuit4(t *testing.T) {
	ss := NewSuit4(Spades, Clubs)

	assert.Equal(t, uint8(2), ss.Count())
	assert.True(t, ss.Contains(Spades))
	assert.False(t, ss.Contains(Hearts))
	assert.Equal(t, uint8(4), AllSuits4.Count())
}

func TestStreet(t *testing.T) {
	for name, want := range map[string]Street{
		"flop": Flop, "TURN": Turn, "River": River,
	} {
		got, ok := ParseStreet(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
	}

	_, ok := ParseStreet("preflop")
	assert.False(t, ok)

	assert.Equal(t, uint8(3), Flop.CardCount())
	assert.Equal(t, uint8(4), Turn.CardCount())
	assert.Equal(t, uint8(5), River.CardCount())
}

func TestBoard(t *testing.T) {
	b, err := NewBoard(MustParseCards("2s7sJs3h4d"))
	require.NoError(t, err)

	assert.Equal(t, New(Three, Hearts), b.Turn())
	assert.Equal(t, New(Four, Diamonds), b.River())
	assert.Len(t, b.Visible(Flop), 3)
	assert.Len(t, b.Visible(Turn), 4)
	assert.Len(t, b.Visible(River), 5)

	assert.Equal(t, uint8(3), b.Set64(Flop).Count())
	assert.Equal(t, uint8(5), b.Set64(River).Count())

	assert.True(t, b.Contains(New(Jack, Spades)))
	assert.False(t, b.Contains(New(Ace, Spades)))

	_, err = NewBoard(MustParseCards("2s7sJs"))
	assert.Error(t, err)
}

func TestSortedFlopRanks(t *testing.T) {
	b, err := NewBoard(MustParseCards("7sKs2c3h4d"))
	require.NoError(t, err)

	hi, mid, lo := b.SortedFlopRanks()
	assert.Equal(t, King, hi)
	assert.Equal(t, Seven, mid)
	assert.Equal(t, Two, lo)
}
