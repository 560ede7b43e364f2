package ranges

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lox/pql/internal/card"
)

// cacheSize bounds a checker's memoized verdicts. Keys are whole hand
// tuples (up to four cards in Omaha) and board tuples or flop prefixes of
// at most three cards; in practice a statement touches far fewer.
const cacheSize = 8192

// CachedChecker wraps a Checker with verdict memoization keyed by the
// tuple's card set. Hand tuples of any length and board tuples of three
// cards or fewer are memoized directly; longer board tuples first test
// their flop prefix, then dispatch to the full checker.
//
// The cache is scoped to a single statement run and is not safe for
// concurrent use: each worker owns a Clone sharing the immutable compiled
// expression.
type CachedChecker struct {
	checker *Checker
	cache   *lru.Cache[uint64, bool]
}

// NewCachedChecker compiles a hand range of n positions with a cache.
func NewCachedChecker(n int, src string) (*CachedChecker, error) {
	c, err := NewChecker(n, src)
	if err != nil {
		return nil, err
	}
	return wrapCached(c), nil
}

// NewCachedBoardChecker compiles a board range with a cache.
func NewCachedBoardChecker(src string) (*CachedChecker, error) {
	c, err := NewBoardChecker(src)
	if err != nil {
		return nil, err
	}
	return wrapCached(c), nil
}

func wrapCached(c *Checker) *CachedChecker {
	cache, err := lru.New[uint64, bool](cacheSize)
	if err != nil {
		// Size is a positive constant; lru.New cannot fail.
		panic(err)
	}
	return &CachedChecker{checker: c, cache: cache}
}

// Clone returns a checker sharing the compiled expression with a private
// cache, for per-worker use.
func (cc *CachedChecker) Clone() *CachedChecker {
	return wrapCached(cc.checker)
}

// N returns the number of positions the range constrains.
func (cc *CachedChecker) N() int {
	return cc.checker.n
}

// IsSatisfied reports membership of the tuple, memoizing small tuples.
func (cc *CachedChecker) IsSatisfied(cs []card.Card) bool {
	if !cc.checker.board || len(cs) <= 3 {
		return cc.memoized(cs)
	}

	if !cc.memoized(cs[:3]) {
		return false
	}
	return cc.checker.IsSatisfied(cs)
}

func (cc *CachedChecker) memoized(cs []card.Card) bool {
	key := uint64(card.NewSet64(cs))

	if v, ok := cc.cache.Get(key); ok {
		return v
	}

	v := cc.checker.IsSatisfied(cs)
	cc.cache.Add(key, v)
	return v
}

// WarmCache iterates every tuple of the checker's arity (flop triples for
// boards), pruning by prefixes, so later lookups are pure cache hits.
func (cc *CachedChecker) WarmCache(shortDeck bool) {
	nCards := cc.checker.n
	if cc.checker.board {
		nCards = 3
	}

	all := card.AllCards(shortDeck)
	tuple := make([]card.Card, 0, nCards)

	var walk func(from int)
	walk = func(from int) {
		if len(tuple) == nCards {
			return
		}
		for i := from; i < len(all); i++ {
			tuple = append(tuple, all[i])
			if cc.IsSatisfied(tuple) {
				walk(i + 1)
			}
			tuple = tuple[:len(tuple)-1]
		}
	}

	walk(0)
}
