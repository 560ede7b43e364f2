package ranges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseErr(t *testing.T, src string) *Error {
	t.Helper()

	_, err := Parse(src)
	require.Error(t, err, src)

	rerr, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)
	return rerr
}

func checkerErr(t *testing.T, n int, src string) *Error {
	t.Helper()

	_, err := NewChecker(n, src)
	require.Error(t, err, src)

	rerr, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)
	return rerr
}

func TestParseTermShapes(t *testing.T) {
	expr, err := Parse("AsA")
	require.NoError(t, err)
	require.Equal(t, OpTerm, expr.Op)
	assert.Len(t, expr.Term.Elems, 2)
	assert.Equal(t, 0, expr.Start)
	assert.Equal(t, 3, expr.End)

	expr, err = Parse("R[A,K]")
	require.NoError(t, err)
	require.Len(t, expr.Term.Elems, 2)
	assert.NotNil(t, expr.Term.Elems[0].Card)
	assert.NotNil(t, expr.Term.Elems[1].List)
}

func TestParseOperators(t *testing.T) {
	expr, err := Parse("AsA:ss")
	require.NoError(t, err)
	assert.Equal(t, OpAnd, expr.Op)

	expr, err = Parse("AsA,ss")
	require.NoError(t, err)
	assert.Equal(t, OpOr, expr.Op)

	expr, err = Parse("AsA!ss")
	require.NoError(t, err)
	assert.Equal(t, OpNot, expr.Op)
}

func TestParsePrecedence(t *testing.T) {
	// NOT > AND > OR: "A:B!c,d" parses as Or(And(A, Not(B, c)), d).
	expr, err := Parse("A:B!c,d")
	require.NoError(t, err)
	require.Equal(t, OpOr, expr.Op)
	require.Equal(t, OpAnd, expr.Left.Op)
	assert.Equal(t, OpNot, expr.Left.Right.Op)

	// Parentheses: "A:B!(c,d)" parses as And(A, Not(B, Or(c, d))).
	expr, err = Parse("A:B!(c,d)")
	require.NoError(t, err)
	require.Equal(t, OpAnd, expr.Op)
	require.Equal(t, OpNot, expr.Right.Op)
	assert.Equal(t, OpOr, expr.Right.Right.Op)
}

func TestParseSpans(t *testing.T) {
	expr, err := Parse("A-")
	require.NoError(t, err)
	require.Len(t, expr.Term.Elems, 1)
	span := expr.Term.Elems[0].Span
	require.NotNil(t, span)
	assert.True(t, span.Open)

	expr, err = Parse("[A-]")
	require.NoError(t, err)
	span = expr.Term.Elems[0].Span
	require.NotNil(t, span)
	assert.True(t, span.Open)

	expr, err = Parse("AK-JT")
	require.NoError(t, err)
	span = expr.Term.Elems[0].Span
	require.NotNil(t, span)
	assert.False(t, span.Open)
	assert.Len(t, span.Top, 2)
	assert.Len(t, span.Bottom, 2)
}

func TestParseErrors(t *testing.T) {
	e := parseErr(t, "?")
	assert.Equal(t, ErrInvalidToken, e.Kind)
	assert.Equal(t, 0, e.Start)
	assert.Equal(t, 1, e.End)

	e = parseErr(t, "[")
	assert.Equal(t, ErrUnrecognizedEOF, e.Kind)
}

func TestParseListErrors(t *testing.T) {
	for _, src := range []string{"[B]", "[Bs]", "[*w]", "[Aw]", "[Bw]", "[*]"} {
		e := parseErr(t, src)
		assert.Equal(t, ErrInvalidList, e.Kind, src)
		assert.Equal(t, 0, e.Start, src)
		assert.Equal(t, len(src), e.End, src)
	}
}

func TestParseSpanErrors(t *testing.T) {
	for _, src := range []string{"A[A]+", "A[A-]-", "[A]-A", "A-[A]"} {
		e := parseErr(t, src)
		assert.Equal(t, ErrInvalidSpan, e.Kind, src)
	}

	e := parseErr(t, "AK-J")
	assert.Equal(t, ErrNumberOfRanksMismatchInSpan, e.Kind)

	e = parseErr(t, "AK-QT")
	assert.Equal(t, ErrRankDistanceMismatchInSpan, e.Kind)

	e = parseErr(t, "AsK-KhQ")
	assert.Equal(t, ErrSuitMismatchInSpan, e.Kind)

	// Variables cannot appear in spans.
	e = parseErr(t, "RB-")
	assert.Equal(t, ErrInvalidSpan, e.Kind)
}

func TestTooManyCards(t *testing.T) {
	e := checkerErr(t, 2, "AAAAK")
	assert.Equal(t, ErrTooManyCardsInRange, e.Kind)
	assert.Equal(t, 0, e.Start)
	assert.Equal(t, 5, e.End)

	// Four positions accept four cards.
	_, err := NewChecker(4, "AAKK")
	assert.NoError(t, err)
}

func TestParseWhitespace(t *testing.T) {
	c := handChecker(t, 2, " AA , KK ")

	assert.True(t, sat(t, c, "AsAh"))
	assert.True(t, sat(t, c, "KsKh"))
	assert.False(t, sat(t, c, "QsQh"))
}

func TestParseCaseInsensitive(t *testing.T) {
	c := handChecker(t, 2, "askd")

	assert.True(t, sat(t, c, "AsKd"))
	assert.False(t, sat(t, c, "AhKd"))
}

func TestParseTrailingGarbage(t *testing.T) {
	e := parseErr(t, "AA)")
	assert.Equal(t, ErrExtraToken, e.Kind)
}
