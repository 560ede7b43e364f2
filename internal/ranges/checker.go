package ranges

import "github.com/lox/pql/internal/card"

// Checker answers membership of a concrete ordered card tuple in a range.
// N is the number of positions (2 for Hold'em hands, 4 for Omaha, 5 for
// boards). Board checkers treat the three flop positions as unordered
// among themselves while the turn and river stay fixed; hand checkers
// treat every position as unordered.
type Checker struct {
	n     int
	board bool
	expr  *exprNode
}

// NewChecker compiles range source into a hand checker of n positions.
func NewChecker(n int, src string) (*Checker, error) {
	return compile(n, false, src)
}

// NewBoardChecker compiles range source into a five-position board checker.
func NewBoardChecker(src string) (*Checker, error) {
	return compile(5, true, src)
}

func compile(n int, board bool, src string) (*Checker, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}

	expr, err := lowerExpr(ast, n, board)
	if err != nil {
		return nil, err
	}

	return &Checker{n: n, board: board, expr: expr}, nil
}

// IsSatisfied reports whether the tuple belongs to the range. The tuple
// may be shorter than the checker's positions (prefix checks during cache
// warming); missing positions are unconstrained.
func (c *Checker) IsSatisfied(cs []card.Card) bool {
	return c.expr.isSatisfied(cs, c.n, c.board)
}

// exprNode mirrors the AST with compiled leaves.
type exprNode struct {
	op    ExprOp
	left  *exprNode
	right *exprNode
	leaf  *leaf
}

func (e *exprNode) isSatisfied(cs []card.Card, n int, board bool) bool {
	switch e.op {
	case OpNot:
		return e.left.isSatisfied(cs, n, board) && !e.right.isSatisfied(cs, n, board)
	case OpAnd:
		return e.left.isSatisfied(cs, n, board) && e.right.isSatisfied(cs, n, board)
	case OpOr:
		return e.left.isSatisfied(cs, n, board) || e.right.isSatisfied(cs, n, board)
	default:
		return e.leaf.isSatisfied(cs, n, board)
	}
}

func lowerExpr(ast *Expr, n int, board bool) (*exprNode, error) {
	switch ast.Op {
	case OpTerm:
		lf, err := lowerTerm(ast.Term, n, ast.Start, ast.End)
		if err != nil {
			return nil, err
		}
		return &exprNode{op: OpTerm, leaf: lf}, nil

	default:
		left, err := lowerExpr(ast.Left, n, board)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(ast.Right, n, board)
		if err != nil {
			return nil, err
		}
		return &exprNode{op: ast.Op, left: left, right: right}, nil
	}
}

// Constraint kinds for the rank and suit halves of a position.
type rankConstraintKind uint8

const (
	rankNil rankConstraintKind = iota
	rankMatch
	rankDiff
	rankVarCond
)

type suitConstraintKind uint8

const (
	suitNil suitConstraintKind = iota
	suitMatch
	suitVarCond
)

// rankConstraint constrains the rank of one position.
type rankConstraint struct {
	kind rankConstraintKind

	match card.Rank16

	// Diff: this position's rank must sit exactly diff below the anchor
	// position's rank.
	anchor int
	diff   int

	// Var: linked positions and the ranks banned by constants sharing the
	// term.
	equal    []int
	notEqual []int
	banned   card.Rank16
}

func (rc *rankConstraint) reject(cs []card.Card, perm []int8, i int) bool {
	switch rc.kind {
	case rankMatch:
		return !rc.match.Contains(cs[i].Rank)

	case rankDiff:
		j := perm[rc.anchor]
		if j < 0 {
			return false
		}
		return int(cs[j].Rank)-int(cs[i].Rank) != rc.diff

	case rankVarCond:
		if rc.banned.Contains(cs[i].Rank) {
			return true
		}
		for _, peer := range rc.equal {
			if j := perm[peer]; j >= 0 && cs[i].Rank != cs[j].Rank {
				return true
			}
		}
		for _, peer := range rc.notEqual {
			if j := perm[peer]; j >= 0 && cs[i].Rank == cs[j].Rank {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// suitConstraint constrains the suit of one position.
type suitConstraint struct {
	kind suitConstraintKind

	match card.Suit4

	equal    []int
	notEqual []int
	banned   card.Suit4
}

func (sc *suitConstraint) reject(cs []card.Card, perm []int8, i int) bool {
	switch sc.kind {
	case suitMatch:
		return !sc.match.Contains(cs[i].Suit)

	case suitVarCond:
		if sc.banned.Contains(cs[i].Suit) {
			return true
		}
		for _, peer := range sc.equal {
			if j := perm[peer]; j >= 0 && cs[i].Suit != cs[j].Suit {
				return true
			}
		}
		for _, peer := range sc.notEqual {
			if j := perm[peer]; j >= 0 && cs[i].Suit == cs[j].Suit {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// alt is one acceptable (rank, suit) constraint pair for a position. A
// plain card compiles to a single alt; a list to one alt per element.
type alt struct {
	rank rankConstraint
	suit suitConstraint
}

// constraint is everything a position demands of its card.
type constraint struct {
	alts []alt
}

func (c *constraint) reject(cs []card.Card, perm []int8, i int) bool {
	for k := range c.alts {
		a := &c.alts[k]
		if !a.rank.reject(cs, perm, i) && !a.suit.reject(cs, perm, i) {
			return false
		}
	}
	return true
}

// leaf is a compiled term: one constraint per position.
type leaf struct {
	cons []constraint
}

// isSatisfied enumerates permissible slot assignments and accepts if any
// assignment satisfies every constraint.
func (l *leaf) isSatisfied(cs []card.Card, n int, board bool) bool {
	perms := permIndices(n, len(cs), board)

	for _, perm := range perms {
		if l.accepted(cs, perm) {
			return true
		}
	}
	return false
}

func (l *leaf) accepted(cs []card.Card, perm []int8) bool {
	for slot := range l.cons {
		i := perm[slot]
		if i < 0 {
			continue
		}
		if l.cons[slot].reject(cs, perm, int(i)) {
			return false
		}
	}
	return true
}

// termPosition describes one position's source element during
// compilation: which term element it came from and, for span columns, the
// column offset within the span.
type termPosition struct {
	elem TermElem
	col  int
}

func expandPositions(t *Term) []termPosition {
	var out []termPosition
	for _, e := range t.Elems {
		if e.Span != nil {
			for col := range e.Span.Top {
				out = append(out, termPosition{elem: e, col: col})
			}
		} else {
			out = append(out, termPosition{elem: e})
		}
	}
	return out
}

func lowerTerm(t *Term, n, start, end int) (*leaf, error) {
	positions := expandPositions(t)
	if len(positions) > n {
		return nil, rangeErr(ErrTooManyCardsInRange, start, end)
	}

	lf := &leaf{cons: make([]constraint, n)}

	for i, pos := range positions {
		switch {
		case pos.elem.Card != nil:
			lf.cons[i] = constraintFromCard(positions, pos.elem.Card, i)

		case pos.elem.List != nil:
			lf.cons[i] = constraintFromList(pos.elem.List)

		case pos.elem.Span != nil:
			lf.cons[i] = constraintFromSpanCol(pos.elem.Span, pos.col, i-pos.col)
		}
	}

	// Unconstrained padding for positions beyond the term.
	for i := len(positions); i < n; i++ {
		lf.cons[i] = constraint{alts: []alt{{}}}
	}

	return lf, nil
}

func constraintFromCard(positions []termPosition, rc *RangeCard, self int) constraint {
	var a alt

	switch rc.RankKind {
	case partConst:
		a.rank = rankConstraint{kind: rankMatch, match: card.NewRank16(rc.Rank)}
	case partVar:
		a.rank = rankVarConstraint(positions, rc.RankVar, self)
	}

	switch rc.SuitKind {
	case partConst:
		a.suit = suitConstraint{kind: suitMatch, match: card.NewSuit4(rc.Suit)}
	case partVar:
		a.suit = suitVarConstraint(positions, rc.SuitVar, self)
	}

	return constraint{alts: []alt{a}}
}

// rankVarConstraint records, for a variable at position self, the peer
// positions that must match (same variable) or differ (other variables),
// plus the ranks banned by constants in the same term. Lists and spans
// contribute nothing to variable linkage.
func rankVarConstraint(positions []termPosition, v RankVar, self int) rankConstraint {
	rc := rankConstraint{kind: rankVarCond}

	for i, pos := range positions {
		if i == self || pos.elem.Card == nil {
			continue
		}

		other := pos.elem.Card
		switch other.RankKind {
		case partConst:
			rc.banned.Set(other.Rank)
		case partVar:
			if other.RankVar == v {
				rc.equal = append(rc.equal, i)
			} else {
				rc.notEqual = append(rc.notEqual, i)
			}
		}
	}

	return rc
}

func suitVarConstraint(positions []termPosition, v SuitVar, self int) suitConstraint {
	sc := suitConstraint{kind: suitVarCond}

	for i, pos := range positions {
		if i == self || pos.elem.Card == nil {
			continue
		}

		other := pos.elem.Card
		switch other.SuitKind {
		case partConst:
			sc.banned.Set(other.Suit)
		case partVar:
			if other.SuitVar == v {
				sc.equal = append(sc.equal, i)
			} else {
				sc.notEqual = append(sc.notEqual, i)
			}
		}
	}

	return sc
}

func constraintFromList(l *List) constraint {
	c := constraint{alts: make([]alt, 0, len(l.Elems))}

	for _, e := range l.Elems {
		var a alt
		if e.HasRank {
			a.rank = rankConstraint{kind: rankMatch, match: card.NewRank16(e.Rank)}
		}
		if e.HasSuit {
			a.suit = suitConstraint{kind: suitMatch, match: card.NewSuit4(e.Suit)}
		}
		c.alts = append(c.alts, a)
	}

	return c
}

// constraintFromSpanCol compiles one span column. The first column anchors
// the span with the set of ranks it may take; later columns hold their
// written distance from the anchor.
func constraintFromSpanCol(s *Span, col, anchorPos int) constraint {
	var a alt

	if col == 0 {
		a.rank = rankConstraint{kind: rankMatch, match: spanAnchorRanks(s)}
	} else {
		diff := int(s.Top[0].Rank) - int(s.Top[col].Rank)
		a.rank = rankConstraint{kind: rankDiff, anchor: anchorPos, diff: diff}
	}

	if s.Top[col].HasSuit {
		a.suit = suitConstraint{kind: suitMatch, match: card.NewSuit4(s.Top[col].Suit)}
	}

	return constraint{alts: []alt{a}}
}

// spanAnchorRanks computes the ranks the anchor column may take so that
// every column stays on the deck.
func spanAnchorRanks(s *Span) card.Rank16 {
	// Column offsets relative to the anchor; positive offsets reach down,
	// negative reach up.
	minOff, maxOff := 0, 0
	for _, e := range s.Top {
		off := int(s.Top[0].Rank) - int(e.Rank)
		if off < minOff {
			minOff = off
		}
		if off > maxOff {
			maxOff = off
		}
	}

	lo, hi := 0, int(card.Ace)
	switch {
	case s.Up:
		lo = int(s.Top[0].Rank)
	case s.Open:
		hi = int(s.Top[0].Rank)
	default:
		lo = int(s.Bottom[0].Rank)
		hi = int(s.Top[0].Rank)
	}

	// Clamp so that anchor-off stays within 2..A for every column.
	if lo < maxOff {
		lo = maxOff
	}
	if hi > int(card.Ace)+minOff {
		hi = int(card.Ace) + minOff
	}

	var rs card.Rank16
	for r := lo; r <= hi; r++ {
		rs.Set(card.Rank(r))
	}
	return rs
}
