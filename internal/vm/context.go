package vm

import (
	"strings"

	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/ranges"
	"github.com/lox/pql/internal/rating"
)

// MaxPlayers bounds the number of players in a statement; pot-share
// fractions carry the winner count in a byte-sized denominator.
const MaxPlayers = 10

// Reserved FROM keys that never name a player.
var reservedFromKeys = map[string]bool{
	"game":  true,
	"board": true,
	"dead":  true,
}

// StaticData is everything a statement fixes before sampling: the game,
// the players in declaration order, their compiled ranges, the board
// range, and the dead cards.
type StaticData struct {
	Game         rating.Game
	PlayerNames  []string
	PlayerRanges []*ranges.CachedChecker
	BoardRange   *ranges.CachedChecker
	Dead         card.Set64
}

// NewStaticData resolves a statement's FROM clause.
func NewStaticData(stmt *pql.Stmt) (*StaticData, error) {
	sd := &StaticData{Game: rating.GameHoldem}

	if item, ok := stmt.From.Get("game"); ok {
		g, err := rating.ParseGame(item.Value.Value)
		if err != nil {
			return nil, pql.Err(pql.ErrUnrecognizedGame, item.Value.Start, item.Value.End)
		}
		sd.Game = g
	}

	if item, ok := stmt.From.Get("dead"); ok {
		cards, err := card.ParseCards(item.Value.Value)
		if err != nil {
			return nil, pql.Err(pql.ErrInvalidDeadCards, item.Value.Start, item.Value.End)
		}
		sd.Dead = card.NewSet64(cards)
	}

	boardSrc := "*"
	boardOffset := 0
	if item, ok := stmt.From.Get("board"); ok {
		boardSrc = item.Value.Value
		boardOffset = item.Value.Start + 1
	}

	board, err := ranges.NewCachedBoardChecker(boardSrc)
	if err != nil {
		return nil, shiftRangeErr(err, boardOffset)
	}
	sd.BoardRange = board

	for _, key := range stmt.From.Order {
		if reservedFromKeys[key] {
			continue
		}

		item := stmt.From.Items[key]
		if len(sd.PlayerNames) == MaxPlayers {
			return nil, pql.Errf(pql.ErrExceededMaximumPlayers,
				item.Key.Start, item.Key.End, "max %d", MaxPlayers)
		}

		checker, err := ranges.NewCachedChecker(int(sd.Game.HoleCards()), item.Value.Value)
		if err != nil {
			return nil, shiftRangeErr(err, item.Value.Start+1)
		}

		sd.PlayerNames = append(sd.PlayerNames, key)
		sd.PlayerRanges = append(sd.PlayerRanges, checker)
	}

	return sd, nil
}

// shiftRangeErr re-anchors a range error into the enclosing query text.
func shiftRangeErr(err error, offset int) error {
	rerr, ok := err.(*ranges.Error)
	if !ok {
		return err
	}
	return pql.Errf(pql.ErrRange,
		rerr.Start+offset, rerr.End+offset, "%s", rerr.Error())
}

// Player returns the index of a player name, case-insensitively.
func (sd *StaticData) Player(name string) (uint8, bool) {
	name = strings.ToLower(name)
	for i, n := range sd.PlayerNames {
		if n == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// NPlayers returns the number of declared players.
func (sd *StaticData) NPlayers() uint8 {
	return uint8(len(sd.PlayerNames))
}

// CloneCheckers returns per-worker clones of the compiled range checkers;
// the compiled expressions are shared read-only, the caches are private.
func (sd *StaticData) CloneCheckers() *StaticData {
	c := &StaticData{
		Game:        sd.Game,
		PlayerNames: sd.PlayerNames,
		BoardRange:  sd.BoardRange.Clone(),
		Dead:        sd.Dead,
	}
	c.PlayerRanges = make([]*ranges.CachedChecker, len(sd.PlayerRanges))
	for i, r := range sd.PlayerRanges {
		c.PlayerRanges[i] = r.Clone()
	}
	return c
}

// SampledData holds one trial's deal: every player's hole cards, the
// board, and a ratings scratch buffer.
type SampledData struct {
	Hands   [][]card.Card
	Board   card.Board
	Ratings []rating.HandRating
}

// NewSampledData allocates per-trial buffers for n players.
func NewSampledData(game rating.Game, n uint8) *SampledData {
	sd := &SampledData{
		Hands:   make([][]card.Card, n),
		Ratings: make([]rating.HandRating, n),
	}
	for i := range sd.Hands {
		sd.Hands[i] = make([]card.Card, 0, game.HoleCards())
	}
	return sd
}

// PlayerCards returns a player's hole cards.
func (s *SampledData) PlayerCards(p uint8) []card.Card {
	return s.Hands[p]
}

// PlayerSet64 returns a player's hole cards as a set.
func (s *SampledData) PlayerSet64(p uint8) card.Set64 {
	return card.NewSet64(s.Hands[p])
}

// BoardSet64 returns the visible board as a set.
func (s *SampledData) BoardSet64(street card.Street) card.Set64 {
	return s.Board.Set64(street)
}

// FnContext is the read-only view functions get of the current trial.
type FnContext struct {
	Game     rating.Game
	NPlayers uint8
	Sampled  *SampledData
	Dead     card.Set64
}

// ExecContext aggregates everything an executing program touches.
type ExecContext struct {
	Stack *Stack
	Heap  *Heap
	Fn    FnContext
}
