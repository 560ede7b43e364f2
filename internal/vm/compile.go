package vm

import (
	"strings"

	"github.com/lox/pql/internal/card"
	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/ranges"
	"github.com/lox/pql/internal/rating"
)

// compiler lowers one selector expression to a Program, materializing
// heap values (strings and compiled ranges) as it goes.
type compiler struct {
	sd     *StaticData
	heap   *Heap
	instrs []Instr
}

// CompileSelector compiles a selector expression against the statement's
// static data, pushing large constants onto the shared heap.
func CompileSelector(sd *StaticData, heap *Heap, sel *pql.Selector) (*Program, error) {
	c := &compiler{sd: sd, heap: heap}

	if _, err := c.pushExpr(sel.Expr, SelectorExpectedType(sel.Kind)); err != nil {
		return nil, err
	}

	return &Program{instrs: c.instrs}, nil
}

func (c *compiler) emit(ins Instr, start, end int) {
	ins.Start, ins.End = start, end
	c.instrs = append(c.instrs, ins)
}

// pushExpr compiles an expression, returning its resolved type. When the
// resolved type is numeric and the expectation names a different concrete
// numeric type, a CastNum is appended; otherwise the types must
// intersect.
func (c *compiler) pushExpr(expr pql.Expr, expected Type) (Type, error) {
	var (
		rtn Type
		err error
	)

	switch e := expr.(type) {
	case *pql.IdentExpr:
		rtn, err = c.pushIdent(e)
	case *pql.StrExpr:
		rtn, err = c.pushStr(e, expected)
	case *pql.NumExpr:
		rtn, err = c.pushNum(e, expected)
	case *pql.FnCallExpr:
		rtn, err = c.pushFnCall(e)
	case *pql.BinOpExpr:
		rtn, err = c.pushBinOp(e)
	}
	if err != nil {
		return 0, err
	}

	start, end := expr.Loc()

	if rtn != expected && rtn.IsNumeric() && expected.IsNumeric() && expected.IsConcrete() {
		c.emit(Instr{Op: opCastNum, CastTo: expected}, start, end)
		return expected, nil
	}

	if !rtn.Intersects(expected) {
		return 0, pql.Errf(pql.ErrTypeMismatch, start, end,
			"given %s, expected %s", rtn, expected)
	}

	return rtn, nil
}

// pushIdent resolves reserved identifiers (streets, hand types, flop
// categories) and player names from the FROM clause.
func (c *compiler) pushIdent(e *pql.IdentExpr) (Type, error) {
	name := strings.ToLower(e.Name)

	if street, ok := card.ParseStreet(name); ok {
		c.emit(Instr{Op: opPush, Val: StreetValue(street)}, e.Start, e.End)
		return TypeStreet, nil
	}

	if p, ok := c.sd.Player(name); ok {
		c.emit(Instr{Op: opPush, Val: PlayerValue(p)}, e.Start, e.End)
		return TypePlayer, nil
	}

	if ht, ok := rating.ParseHandType(name); ok {
		c.emit(Instr{Op: opPush, Val: HandTypeValue(ht)}, e.Start, e.End)
		return TypeHandType, nil
	}

	if fc, ok := rating.ParseFlopCategory(name); ok {
		c.emit(Instr{Op: opPush, Val: FlopCategoryValue(fc)}, e.Start, e.End)
		return TypeFlopHandCategory, nil
	}

	return 0, pql.Err(pql.ErrUnknownIdentifier, e.Start, e.End)
}

func (c *compiler) pushNum(e *pql.NumExpr, expected Type) (Type, error) {
	if e.IsFloat {
		c.emit(Instr{Op: opPush, Val: DoubleValue(e.Float)}, e.Start, e.End)
		return TypeDouble, nil
	}

	if expected == TypeCardCount {
		if e.Int < 0 || e.Int > 255 {
			return 0, pql.Err(pql.ErrInvalidCardCount, e.Start, e.End)
		}
		c.emit(Instr{Op: opPush, Val: CardCountValue(uint8(e.Int))}, e.Start, e.End)
		return TypeCardCount, nil
	}

	c.emit(Instr{Op: opPush, Val: LongValue(e.Int)}, e.Start, e.End)
	return TypeLong, nil
}

// pushStr materializes a string on the heap; range-typed expectations
// compile the string as a range for the statement's game.
func (c *compiler) pushStr(e *pql.StrExpr, expected Type) (Type, error) {
	var (
		hv  HeapValue
		rtn Type
	)

	switch expected {
	case TypeRange:
		checker, err := ranges.NewCachedChecker(int(c.sd.Game.HoleCards()), e.Value)
		if err != nil {
			return 0, shiftRangeErr(err, e.Start+1)
		}
		hv = HeapValue{Range: checker}
		rtn = TypeRange

	case TypeBoardRange:
		checker, err := ranges.NewCachedBoardChecker(e.Value)
		if err != nil {
			return 0, shiftRangeErr(err, e.Start+1)
		}
		hv = HeapValue{BoardRange: checker}
		rtn = TypeBoardRange

	default:
		hv = HeapValue{Str: e.Value}
		rtn = TypeString
	}

	idx := c.heap.Add(hv)
	c.emit(Instr{Op: opPush, Val: HeapRefValue(idx)}, e.Start, e.End)
	return rtn, nil
}

func (c *compiler) pushFnCall(e *pql.FnCallExpr) (Type, error) {
	fn, ok := LookupFn(e.Name.Name)
	if !ok {
		return 0, pql.Err(pql.ErrUnrecognizedFunction, e.Name.Start, e.Name.End)
	}

	if len(e.Args) != len(fn.ArgTypes) {
		return 0, pql.Errf(pql.ErrWrongNumberOfArguments, e.Start, e.End,
			"given %d, expected %d", len(e.Args), len(fn.ArgTypes))
	}

	for i, arg := range e.Args {
		if _, err := c.pushExpr(arg, fn.ArgTypes[i]); err != nil {
			return 0, err
		}
	}

	c.emit(Instr{Op: opFnCall, Fn: fn}, e.Start, e.End)
	return fn.RtnType, nil
}

func (c *compiler) pushBinOp(e *pql.BinOpExpr) (Type, error) {
	lhs, err := c.pushExpr(e.Left, TypeAny)
	if err != nil {
		return 0, err
	}

	rhs, err := c.pushExpr(e.Right, TypeAny)
	if err != nil {
		return 0, err
	}

	rtn, err := resolveBinOpType(e.Op, lhs, rhs)
	if err != nil {
		start, end := e.Loc()
		return 0, locate(err, start, end)
	}

	start, end := e.Loc()
	c.emit(Instr{Op: opBinOp, BinOp: e.Op}, start, end)
	return rtn, nil
}
