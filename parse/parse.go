/*package parse compiles the arithmetic expressions that appear in species
configuration files, such as momentum profiles written in terms of the
spatial coordinates x, y, and z.

An expression is compiled once into a flat postfix program and evaluated many
times. Eval walks the program with a fixed-size value stack, so it performs
no allocation and no dynamic dispatch and a single compiled Expr can be
shared by every worker of a parallel injection loop.

The grammar is standard infix arithmetic. The operators +, -, *, /, and ^
are supported, ^ is right associative, and unary minus binds more tightly
than * but less tightly than ^, so -x^2 means -(x^2). Calls like
min(x, y) or exp(-z) may use any function listed in this package's function
table, and the constant pi is predefined.
*/
package parse

import (
	"fmt"
)

// An Expr is a compiled expression. The zero Expr is valid and evaluates
// to 0. Expr values are immutable after compilation and may be copied and
// shared freely.
type Expr struct {
	prog []instr
	src  string
}

// Compile compiles src into an evaluable expression. The only free
// variables an expression may reference are x, y, and z.
func Compile(src string) (Expr, error) {
	toks, err := scan(src)
	if err != nil {
		return Expr{}, err
	}

	prog, err := compile(src, toks)
	if err != nil {
		return Expr{}, err
	}

	return Expr{prog: prog, src: src}, nil
}

// MustCompile is like Compile, but panics if src does not compile.
func MustCompile(src string) Expr {
	ex, err := Compile(src)
	if err != nil {
		panic(err.Error())
	}
	return ex
}

// String returns the source text the expression was compiled from.
func (ex Expr) String() string {
	return ex.src
}

// Operator precedence levels. Unary minus sits between * and ^ so that
// -x^2 parses as -(x^2) while -x*3 parses as (-x)*3.
const (
	precAdd = 1
	precMul = 2
	precNeg = 3
	precPow = 4
)

type pendingKind int

const (
	pendingOp pendingKind = iota
	pendingFunc
	pendingParen
)

// A pending is an operator, function call, or open parenthesis that has
// been shifted but not yet emitted.
type pending struct {
	kind  pendingKind
	op    opcode
	name  string
	prec  int
	right bool
	pos   int
	args  int
}

// compile converts a token stream into a postfix program with the usual
// shunting yard algorithm.
func compile(src string, toks []token) ([]instr, error) {
	var (
		prog        []instr
		stack       []pending
		wantOperand = true
	)

	emit := func(p pending) {
		prog = append(prog, instr{op: p.op})
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t.kind {
		case tokNumber:
			if !wantOperand {
				return nil, fmt.Errorf(
					"Expected an operator at position %d in %q.", t.pos, src)
			}
			prog = append(prog, instr{op: opConst, arg: t.val})
			wantOperand = false

		case tokIdent:
			if !wantOperand {
				return nil, fmt.Errorf(
					"Expected an operator at position %d in %q.", t.pos, src)
			}
			if i+1 < len(toks) && toks[i+1].kind == tokLeftParen {
				fn, ok := functions[t.text]
				if !ok {
					return nil, fmt.Errorf(
						"Unknown function %q at position %d in %q.",
						t.text, t.pos, src)
				}
				stack = append(stack, pending{
					kind: pendingFunc, op: fn.op, name: t.text, pos: t.pos,
				})
				i++
			} else if op, ok := variables[t.text]; ok {
				prog = append(prog, instr{op: op})
				wantOperand = false
			} else if c, ok := constants[t.text]; ok {
				prog = append(prog, instr{op: opConst, arg: c})
				wantOperand = false
			} else {
				return nil, fmt.Errorf(
					"Unknown variable %q at position %d in %q. "+
						"Expressions may only use x, y, and z.",
					t.text, t.pos, src)
			}

		case tokOp:
			if wantOperand {
				// Unary sign.
				switch t.text {
				case "+":
					// A no-op.
				case "-":
					stack = append(stack, pending{
						kind: pendingOp, op: opNeg,
						prec: precNeg, right: true, pos: t.pos,
					})
				default:
					return nil, fmt.Errorf(
						"Expected a value at position %d in %q.", t.pos, src)
				}
				break
			}

			op, prec, right := binaryOp(t.text)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != pendingOp ||
					top.prec < prec || (top.prec == prec && right) {
					break
				}
				emit(top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, pending{
				kind: pendingOp, op: op, prec: prec, right: right, pos: t.pos,
			})
			wantOperand = true

		case tokLeftParen:
			if !wantOperand {
				return nil, fmt.Errorf(
					"Expected an operator at position %d in %q.", t.pos, src)
			}
			stack = append(stack, pending{kind: pendingParen, pos: t.pos})

		case tokRightParen:
			if wantOperand {
				return nil, fmt.Errorf(
					"Expected a value at position %d in %q.", t.pos, src)
			}
			for len(stack) > 0 && stack[len(stack)-1].kind == pendingOp {
				emit(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf(
					"Unmatched ')' at position %d in %q.", t.pos, src)
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.kind == pendingFunc {
				args := top.args + 1
				if arity := functions[top.name].arity; args != arity {
					return nil, fmt.Errorf(
						"%s takes %d arguments, but got %d at position %d in %q.",
						top.name, arity, args, top.pos, src)
				}
				emit(top)
			}
			wantOperand = false

		case tokComma:
			if wantOperand {
				return nil, fmt.Errorf(
					"Expected a value at position %d in %q.", t.pos, src)
			}
			for len(stack) > 0 && stack[len(stack)-1].kind == pendingOp {
				emit(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 || stack[len(stack)-1].kind != pendingFunc {
				return nil, fmt.Errorf(
					"Unexpected ',' at position %d in %q.", t.pos, src)
			}
			stack[len(stack)-1].args++
			wantOperand = true
		}
		i++
	}

	if wantOperand {
		return nil, fmt.Errorf("Expression %q ends without a value.", src)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.kind != pendingOp {
			return nil, fmt.Errorf(
				"Unclosed '(' at position %d in %q.", top.pos, src)
		}
		emit(top)
		stack = stack[:len(stack)-1]
	}

	if err := checkProgram(src, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func binaryOp(text string) (op opcode, prec int, right bool) {
	switch text {
	case "+":
		return opAdd, precAdd, false
	case "-":
		return opSub, precAdd, false
	case "*":
		return opMul, precMul, false
	case "/":
		return opDiv, precMul, false
	case "^":
		return opPow, precPow, true
	}
	panic("Impossible operator " + text)
}

// checkProgram simulates the stack effect of a compiled program, so that
// Eval can run without bounds checks of its own.
func checkProgram(src string, prog []instr) error {
	sp, max := 0, 0
	for _, in := range prog {
		sp += stackEffect(in.op)
		if sp < 1 {
			return fmt.Errorf("Internal error compiling %q.", src)
		}
		if sp > max {
			max = sp
		}
	}
	if sp != 1 {
		return fmt.Errorf("Internal error compiling %q.", src)
	}
	if max > maxStack {
		return fmt.Errorf(
			"Expression %q nests more than %d levels deep.", src, maxStack)
	}
	return nil
}
