package vm

import (
	"math"

	"github.com/lox/pql/internal/pql"
)

// resolveBinOpType type-checks a binary operation at compile time.
func resolveBinOpType(op pql.BinOp, lhs, rhs Type) (Type, error) {
	if op.IsComparison() {
		if lhs.IsNumeric() && rhs.IsNumeric() {
			return TypeBoolean, nil
		}
		// Identical ordered scalar types compare directly.
		if lhs == rhs && lhs.IsConcrete() && comparableType(lhs) {
			return TypeBoolean, nil
		}
		return 0, pql.Errf(pql.ErrComparisonUnsupported, 0, 0, "%s and %s", lhs, rhs)
	}

	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return 0, pql.Errf(pql.ErrArithmeticUnsupported, 0, 0, "%s and %s", lhs, rhs)
	}

	if op == pql.OpDiv ||
		lhs == TypeDouble || rhs == TypeDouble ||
		lhs == TypeFraction || rhs == TypeFraction {
		return TypeDouble, nil
	}
	return TypeLong, nil
}

func comparableType(t Type) bool {
	switch t {
	case TypeRank, TypeStreet, TypeCard, TypeHandType,
		TypeFlopHandCategory, TypeHiRating, TypeBoolean:
		return true
	default:
		return false
	}
}

func execBinOp(ctx *ExecContext, op pql.BinOp) error {
	rhs, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	lhs, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}

	if op.IsComparison() {
		res, err := compareValues(ctx, op, lhs, rhs)
		if err != nil {
			return err
		}
		ctx.Stack.Push(BoolValue(res))
		return nil
	}

	return execArith(ctx, op, lhs, rhs)
}

func execArith(ctx *ExecContext, op pql.BinOp, lhs, rhs Value) error {
	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return pql.Err(pql.ErrNonNumericStackValue, 0, 0)
	}

	// Any floating operand, or division, promotes to double.
	float := op == pql.OpDiv ||
		lhs.Kind == KindDouble || rhs.Kind == KindDouble ||
		lhs.Kind == KindFraction || rhs.Kind == KindFraction

	if float {
		a, b := lhs.AsDouble(), rhs.AsDouble()
		var r float64
		switch op {
		case pql.OpAdd:
			r = a + b
		case pql.OpSub:
			r = a - b
		case pql.OpMul:
			r = a * b
		default:
			r = a / b
		}
		ctx.Stack.Push(DoubleValue(r))
		return nil
	}

	a, b := lhs.I, rhs.I
	switch op {
	case pql.OpAdd:
		r := a + b
		if (r > a) != (b > 0) && b != 0 {
			return pql.Err(pql.ErrAddOverflow, 0, 0)
		}
		ctx.Stack.Push(LongValue(r))

	case pql.OpSub:
		r := a - b
		if (r < a) != (b > 0) && b != 0 {
			return pql.Err(pql.ErrSubOverflow, 0, 0)
		}
		ctx.Stack.Push(LongValue(r))

	default: // multiplication
		if a != 0 && b != 0 {
			r := a * b
			if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
				return pql.Err(pql.ErrMulOverflow, 0, 0)
			}
			ctx.Stack.Push(LongValue(r))
		} else {
			ctx.Stack.Push(LongValue(0))
		}
	}

	return nil
}

// compareValues orders two values. Numeric pairs compare numerically;
// hand types and flop categories honor the game's category ordering;
// other identical kinds compare on their raw payloads.
func compareValues(ctx *ExecContext, op pql.BinOp, lhs, rhs Value) (bool, error) {
	var cmp int

	switch {
	case lhs.IsNumeric() && rhs.IsNumeric():
		if lhs.Kind == KindDouble || rhs.Kind == KindDouble || lhs.Kind == KindFraction || rhs.Kind == KindFraction {
			a, b := lhs.AsDouble(), rhs.AsDouble()
			switch {
			case a < b:
				cmp = -1
			case a > b:
				cmp = 1
			}
		} else {
			switch {
			case lhs.I < rhs.I:
				cmp = -1
			case lhs.I > rhs.I:
				cmp = 1
			}
		}

	case lhs.Kind == KindHandType && rhs.Kind == KindHandType:
		cmp = lhs.HandType().Compare(rhs.HandType(), ctx.Fn.Game)

	case lhs.Kind == KindFlopHandCategory && rhs.Kind == KindFlopHandCategory:
		cmp = lhs.FlopCategory().Compare(rhs.FlopCategory(), ctx.Fn.Game)

	case lhs.Kind == rhs.Kind:
		switch {
		case lhs.I < rhs.I:
			cmp = -1
		case lhs.I > rhs.I:
			cmp = 1
		}

	default:
		return false, pql.Err(pql.ErrUnexpectedTypeCast, 0, 0)
	}

	switch op {
	case pql.OpEq:
		return cmp == 0, nil
	case pql.OpGt:
		return cmp > 0, nil
	case pql.OpGe:
		return cmp >= 0, nil
	case pql.OpLt:
		return cmp < 0, nil
	default:
		return cmp <= 0, nil
	}
}
