package ranges

import "sync"

// permIndices returns every permissible assignment of checker slots to
// tuple card indexes for n slots and r cards. Each assignment is a slice
// of length n where entry s is the card index for slot s, or -1 when the
// slot is unassigned (short tuples during prefix checks).
//
// Unordered (hand) checkers admit every injective assignment. Board
// checkers keep the turn (slot 3) and river (slot 4) pinned to their
// positions and only permute the flop cards among the flop slots.
//
// The tables are small and reused heavily, so they are computed once and
// shared; the slices are read-only.
func permIndices(n, r int, board bool) [][]int8 {
	permMu.RLock()
	key := permKey{n: n, r: r, board: board}
	if ps, ok := permCache[key]; ok {
		permMu.RUnlock()
		return ps
	}
	permMu.RUnlock()

	permMu.Lock()
	defer permMu.Unlock()

	if ps, ok := permCache[key]; ok {
		return ps
	}

	var ps [][]int8
	if board {
		ps = boardPerms(n, r)
	} else {
		ps = unorderedPerms(n, r)
	}
	permCache[key] = ps
	return ps
}

type permKey struct {
	n, r  int
	board bool
}

var (
	permMu    sync.RWMutex
	permCache = map[permKey][][]int8{}
)

// unorderedPerms enumerates injective assignments between slots and cards:
// all cards placed when r <= n, all slots filled when r >= n.
func unorderedPerms(n, r int) [][]int8 {
	var out [][]int8

	perm := make([]int8, n)
	for i := range perm {
		perm[i] = -1
	}

	usedCards := make([]bool, r)

	k := n
	if r < n {
		k = r
	}

	var rec func(card, placed int)
	rec = func(c, placed int) {
		if placed == k {
			cp := make([]int8, n)
			copy(cp, perm)
			out = append(out, cp)
			return
		}

		if r <= n {
			// Place card c into any free slot.
			if c == r {
				return
			}
			for s := 0; s < n; s++ {
				if perm[s] != -1 {
					continue
				}
				perm[s] = int8(c)
				rec(c+1, placed+1)
				perm[s] = -1
			}
		} else {
			// Fill slot c with any unused card.
			for cc := 0; cc < r; cc++ {
				if usedCards[cc] {
					continue
				}
				usedCards[cc] = true
				perm[c] = int8(cc)
				rec(c+1, placed+1)
				perm[c] = -1
				usedCards[cc] = false
			}
		}
	}

	rec(0, 0)
	return out
}

// boardPerms permutes the flop cards among the flop slots and pins turn
// and river.
func boardPerms(n, r int) [][]int8 {
	if r > n {
		r = n
	}

	flopCards := r
	if flopCards > 3 {
		flopCards = 3
	}

	var out [][]int8

	perm := make([]int8, n)

	var rec func(c int)
	rec = func(c int) {
		if c == flopCards {
			cp := make([]int8, n)
			copy(cp, perm)
			if r > 3 && n > 3 {
				cp[3] = 3
			}
			if r > 4 && n > 4 {
				cp[4] = 4
			}
			out = append(out, cp)
			return
		}

		for s := 0; s < 3 && s < n; s++ {
			if perm[s] != -1 {
				continue
			}
			perm[s] = int8(c)
			rec(c + 1)
			perm[s] = -1
		}
	}

	for i := range perm {
		perm[i] = -1
	}
	rec(0)
	return out
}
