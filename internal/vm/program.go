package vm

import "github.com/lox/pql/internal/pql"

// Stack is the VM's value stack. Selectors are pure expressions, so there
// are no frames.
type Stack struct {
	values []Value
}

// Push appends a value.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, pql.Err(pql.ErrStackUnderflow, 0, 0)
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Reset empties the stack between trials without releasing its storage.
func (s *Stack) Reset() {
	s.values = s.values[:0]
}

// Len returns the current depth.
func (s *Stack) Len() int {
	return len(s.values)
}

// opcode discriminates instructions.
type opcode uint8

const (
	opPush opcode = iota
	opCastNum
	opBinOp
	opFnCall
)

// Instr is one instruction with its source span for error reporting.
type Instr struct {
	Op opcode

	Val    Value    // opPush
	CastTo Type     // opCastNum
	BinOp  pql.BinOp // opBinOp
	Fn     *FnDesc  // opFnCall

	Start, End int
}

// Program is a compiled selector expression: a linear instruction list
// with no control flow.
type Program struct {
	instrs []Instr
}

// Instrs exposes the instruction list for inspection in tests.
func (p *Program) Instrs() []Instr {
	return p.instrs
}

// Execute runs the program and returns the single remaining stack value.
// Errors are annotated with the offending instruction's source span.
func (p *Program) Execute(ctx *ExecContext) (Value, error) {
	ctx.Stack.Reset()

	for i := range p.instrs {
		ins := &p.instrs[i]
		if err := ins.execute(ctx); err != nil {
			return Value{}, locate(err, ins.Start, ins.End)
		}
	}

	return ctx.Stack.Pop()
}

// locate stamps an error's span if it has none.
func locate(err error, start, end int) error {
	perr, ok := err.(*pql.Error)
	if !ok {
		return err
	}
	if perr.Start == 0 && perr.End == 0 {
		perr.Start, perr.End = start, end
	}
	return perr
}

func (ins *Instr) execute(ctx *ExecContext) error {
	switch ins.Op {
	case opPush:
		ctx.Stack.Push(ins.Val)
		return nil

	case opCastNum:
		return execCastNum(ctx, ins.CastTo)

	case opBinOp:
		return execBinOp(ctx, ins.BinOp)

	default:
		return execFnCall(ctx, ins.Fn)
	}
}

func execCastNum(ctx *ExecContext, target Type) error {
	v, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	if !v.IsNumeric() {
		return pql.Err(pql.ErrNonNumericStackValue, 0, 0)
	}

	switch target {
	case TypeCardCount:
		switch v.Kind {
		case KindCardCount:
			ctx.Stack.Push(v)
		case KindLong:
			if v.I < 0 || v.I > 255 {
				return pql.Err(pql.ErrInvalidCardCount, 0, 0)
			}
			ctx.Stack.Push(CardCountValue(uint8(v.I)))
		default:
			return pql.Err(pql.ErrIntegerRequired, 0, 0)
		}

	case TypeLong:
		switch v.Kind {
		case KindLong:
			ctx.Stack.Push(v)
		case KindCardCount:
			ctx.Stack.Push(LongValue(v.I))
		default:
			return pql.Err(pql.ErrIntegerRequired, 0, 0)
		}

	case TypeDouble:
		ctx.Stack.Push(DoubleValue(v.AsDouble()))

	case TypeFraction:
		if v.Kind != KindFraction {
			return pql.Err(pql.ErrUnexpectedTypeCast, 0, 0)
		}
		ctx.Stack.Push(v)

	default:
		return pql.Err(pql.ErrUnexpectedTypeCast, 0, 0)
	}

	return nil
}

func execFnCall(ctx *ExecContext, fn *FnDesc) error {
	n := len(fn.ArgTypes)

	args := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := ctx.Stack.Pop()
		if err != nil {
			return err
		}
		args[i] = v
	}

	res, err := fn.Call(ctx, args)
	if err != nil {
		return err
	}

	ctx.Stack.Push(res)
	return nil
}
