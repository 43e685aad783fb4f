package petri

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Expression is a postfix token stream.
type Expression []string

// ParseExpression splits space-delimited postfix text.
func ParseExpression(s string) Expression {
	return strings.Fields(s)
}

func (e Expression) String() string {
	return strings.Join(e, " ")
}

func (e Expression) Empty() bool { return len(e) == 0 }

type operator struct {
	arity int
	// apply receives the operands in push order.
	apply func(op string, args []Value) (Value, error)
}

func binary(f func(op string, a, b Value) (Value, error)) operator {
	return operator{arity: 2, apply: func(op string, args []Value) (Value, error) {
		return f(op, args[0], args[1])
	}}
}

func unary(f func(op string, a Value) (Value, error)) operator {
	return operator{arity: 1, apply: func(op string, args []Value) (Value, error) {
		return f(op, args[0])
	}}
}

// operators is built once and never written to afterwards.
var operators = map[string]operator{
	"+": binary(arithmetic),
	"-": binary(arithmetic),
	"*": binary(arithmetic),
	"/": binary(arithmetic),
	"%": binary(arithmetic),

	"&&":      binary(logical),
	"||":      binary(logical),
	"^":       binary(logical),
	"!":       unary(unaryLogical),
	"isTrue":  unary(unaryLogical),
	"isFalse": unary(unaryLogical),

	"isEmpty": unary(unaryString),
	"trim":    unary(unaryString),
	"append": binary(func(_ string, a, b Value) (Value, error) {
		return appendString(a, b)
	}),
	"substr": {arity: 3, apply: func(_ string, args []Value) (Value, error) {
		return substr(args[0], args[1], args[2])
	}},

	"==": binary(compare),
	"!=": binary(compare),
	">":  binary(compare),
	">=": binary(compare),
	"<":  binary(compare),
	"<=": binary(compare),

	"if": {arity: 3, apply: func(_ string, args []Value) (Value, error) {
		return ifThenElse(args[2], args[1], args[0])
	}},
}

func looksLikeOperator(tok string) bool {
	return tok != "" && strings.Trim(tok, "+-*/%&|!^=<>~") == ""
}

const maxResolveDepth = 16

// Interpreter evaluates postfix expressions. The zero value is not usable;
// use NewInterpreter.
type Interpreter struct {
	logger *zap.Logger
}

func NewInterpreter(logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{logger: logger}
}

var defaultInterpreter = NewInterpreter(nil)

// Eval evaluates expr with the default, silent interpreter.
func Eval(expr Expression, vars map[string]string) (Value, error) {
	return defaultInterpreter.Eval(expr, vars)
}

// Eval runs expr over an operand stack. vars maps variable names to literal
// text; a missing variable evaluates as 0 and is logged.
func (in *Interpreter) Eval(expr Expression, vars map[string]string) (Value, error) {
	stack := make([]Value, 0, len(expr))
	for pos, tok := range expr {
		if op, ok := operators[tok]; ok {
			if len(stack) < op.arity {
				return Value{}, evalErr(pos, tok, fmt.Errorf("%w: %s needs %d operands, have %d", ErrArity, tok, op.arity, len(stack)))
			}
			args := make([]Value, op.arity)
			copy(args, stack[len(stack)-op.arity:])
			stack = stack[:len(stack)-op.arity]
			res, err := op.apply(tok, args)
			if err != nil {
				return Value{}, evalErr(pos, tok, err)
			}
			stack = append(stack, res)
			continue
		}
		if looksLikeOperator(tok) {
			return Value{}, evalErr(pos, tok, ErrUnknownOperator)
		}
		v, err := in.operand(tok, vars, 0)
		if err != nil {
			return Value{}, evalErr(pos, tok, err)
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return Value{}, fmt.Errorf("%w: expression %q left %d values", ErrArity, expr.String(), len(stack))
	}
	return stack[0], nil
}

func (in *Interpreter) operand(tok string, vars map[string]string, depth int) (Value, error) {
	c, err := Classify(tok)
	if err != nil {
		return Value{}, err
	}
	if c != Variable {
		return literalValue(c, tok)
	}
	if depth >= maxResolveDepth {
		return Value{}, fmt.Errorf("%w: variable %q does not resolve to a literal", ErrSyntax, tok)
	}
	bound, ok := vars[tok]
	if !ok {
		in.logger.Warn("variable without value, using 0",
			zap.String("variable", tok),
			zap.Error(ErrUnboundVariable),
		)
		bound = "0"
	}
	return in.operand(bound, vars, depth+1)
}

// EvalBool evaluates a guard. An empty guard is true.
func (in *Interpreter) EvalBool(expr Expression, vars map[string]string) (bool, error) {
	if expr.Empty() {
		return true, nil
	}
	v, err := in.Eval(expr, vars)
	if err != nil {
		return false, err
	}
	if v.Kind() != BoolKind {
		return false, fmt.Errorf("%w: guard %q yields %s", ErrType, expr.String(), v.Kind())
	}
	return v.Bool(), nil
}
