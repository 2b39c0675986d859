package parse

import (
	"math"
)

type opcode uint8

const (
	opConst opcode = iota
	opX
	opY
	opZ
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opNeg
	opSqrt
	opExp
	opLog
	opLog10
	opSin
	opCos
	opTan
	opAsin
	opAcos
	opAtan
	opSinh
	opCosh
	opTanh
	opAbs
	opFloor
	opCeil
	opMin
	opMax
	opAtan2
)

type instr struct {
	op  opcode
	arg float64
}

var variables = map[string]opcode{
	"x": opX, "y": opY, "z": opZ,
}

var constants = map[string]float64{
	"pi": math.Pi,
}

var functions = map[string]struct {
	op    opcode
	arity int
}{
	"sqrt":  {opSqrt, 1},
	"exp":   {opExp, 1},
	"log":   {opLog, 1},
	"log10": {opLog10, 1},
	"sin":   {opSin, 1},
	"cos":   {opCos, 1},
	"tan":   {opTan, 1},
	"asin":  {opAsin, 1},
	"acos":  {opAcos, 1},
	"atan":  {opAtan, 1},
	"sinh":  {opSinh, 1},
	"cosh":  {opCosh, 1},
	"tanh":  {opTanh, 1},
	"abs":   {opAbs, 1},
	"floor": {opFloor, 1},
	"ceil":  {opCeil, 1},
	"min":   {opMin, 2},
	"max":   {opMax, 2},
	"pow":   {opPow, 2},
	"atan2": {opAtan2, 2},
}

// maxStack bounds the value stack of Eval. Compile rejects the rare
// expression that nests deeply enough to need more.
const maxStack = 32

// stackEffect returns the change an instruction makes to the height of the
// value stack.
func stackEffect(op opcode) int {
	switch op {
	case opConst, opX, opY, opZ:
		return 1
	case opAdd, opSub, opMul, opDiv, opPow, opMin, opMax, opAtan2:
		return -1
	default:
		return 0
	}
}

// Eval evaluates the expression at the point (x, y, z). It does not
// allocate and is safe to call concurrently.
func (ex Expr) Eval(x, y, z float64) float64 {
	var stack [maxStack]float64
	sp := 0

	for _, in := range ex.prog {
		switch in.op {
		case opConst:
			stack[sp] = in.arg
			sp++
		case opX:
			stack[sp] = x
			sp++
		case opY:
			stack[sp] = y
			sp++
		case opZ:
			stack[sp] = z
			sp++
		case opAdd:
			stack[sp-2] += stack[sp-1]
			sp--
		case opSub:
			stack[sp-2] -= stack[sp-1]
			sp--
		case opMul:
			stack[sp-2] *= stack[sp-1]
			sp--
		case opDiv:
			stack[sp-2] /= stack[sp-1]
			sp--
		case opPow:
			stack[sp-2] = math.Pow(stack[sp-2], stack[sp-1])
			sp--
		case opMin:
			stack[sp-2] = math.Min(stack[sp-2], stack[sp-1])
			sp--
		case opMax:
			stack[sp-2] = math.Max(stack[sp-2], stack[sp-1])
			sp--
		case opAtan2:
			stack[sp-2] = math.Atan2(stack[sp-2], stack[sp-1])
			sp--
		case opNeg:
			stack[sp-1] = -stack[sp-1]
		case opSqrt:
			stack[sp-1] = math.Sqrt(stack[sp-1])
		case opExp:
			stack[sp-1] = math.Exp(stack[sp-1])
		case opLog:
			stack[sp-1] = math.Log(stack[sp-1])
		case opLog10:
			stack[sp-1] = math.Log10(stack[sp-1])
		case opSin:
			stack[sp-1] = math.Sin(stack[sp-1])
		case opCos:
			stack[sp-1] = math.Cos(stack[sp-1])
		case opTan:
			stack[sp-1] = math.Tan(stack[sp-1])
		case opAsin:
			stack[sp-1] = math.Asin(stack[sp-1])
		case opAcos:
			stack[sp-1] = math.Acos(stack[sp-1])
		case opAtan:
			stack[sp-1] = math.Atan(stack[sp-1])
		case opSinh:
			stack[sp-1] = math.Sinh(stack[sp-1])
		case opCosh:
			stack[sp-1] = math.Cosh(stack[sp-1])
		case opTanh:
			stack[sp-1] = math.Tanh(stack[sp-1])
		case opAbs:
			stack[sp-1] = math.Abs(stack[sp-1])
		case opFloor:
			stack[sp-1] = math.Floor(stack[sp-1])
		case opCeil:
			stack[sp-1] = math.Ceil(stack[sp-1])
		}
	}

	if sp == 0 {
		return 0
	}
	return stack[sp-1]
}

// Negated returns an expression that evaluates to the negation of ex.
func (ex Expr) Negated() Expr {
	if len(ex.prog) == 0 {
		return ex
	}
	prog := make([]instr, len(ex.prog)+1)
	copy(prog, ex.prog)
	prog[len(ex.prog)] = instr{op: opNeg}
	return Expr{prog: prog, src: "-(" + ex.src + ")"}
}
