package petri

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax          = errors.New("syntax error")
	ErrType            = errors.New("type error")
	ErrArity           = errors.New("arity error")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrDivision        = errors.New("division by zero")
	ErrRange           = errors.New("index out of range")
	ErrUnboundVariable = errors.New("unbound variable")
	ErrTokenUnderflow  = errors.New("token underflow")
	ErrInvalidNet      = errors.New("invalid net")
	// ErrInconsistent marks a firing that underflowed after its binding was
	// verified. It is a programming or model error and is never recovered.
	ErrInconsistent = errors.New("internal consistency violation")
)

// EvalError reports where in a postfix stream evaluation stopped.
type EvalError struct {
	Pos   int
	Token string
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("token %d %q: %v", e.Pos, e.Token, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalErr(pos int, tok string, err error) error {
	return &EvalError{Pos: pos, Token: tok, Err: err}
}

// SignatureError is returned when a token does not fit the color of the place
// it is put in.
type SignatureError struct {
	Place int
	Token Token
	Want  Signature
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("token %s does not match signature %s of place %d", e.Token, e.Want, e.Place)
}

func (e *SignatureError) Unwrap() error { return ErrType }
