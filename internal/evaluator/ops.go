package evaluator

import (
	"crab/internal/object"
	"crab/internal/token"
	"math"
)

type binaryOp func(left, right float64) float64

// binaryOps take the top of the stack as the left operand.
var binaryOps = map[token.TokenType]binaryOp{
	token.PLUS:    func(l, r float64) float64 { return l + r },
	token.MINUS:   func(l, r float64) float64 { return l - r },
	token.TIMES:   func(l, r float64) float64 { return l * r },
	token.DIVIDE:  func(l, r float64) float64 { return l / r },
	token.MODULUS: math.Mod,
	token.DIVIDES: func(l, r float64) float64 { return boolToNumber(math.Mod(l, r) == 0) },
	token.GREATER: func(l, r float64) float64 { return boolToNumber(l > r) },
	token.LESS:    func(l, r float64) float64 { return boolToNumber(l < r) },
	token.EQ:      func(l, r float64) float64 { return boolToNumber(l == r) },
	token.NOT_EQ:  func(l, r float64) float64 { return boolToNumber(l != r) },
}

func binary(name string, op binaryOp, stack *object.Stack) error {
	left, err := stack.PopNumber(name)
	if err != nil {
		return err
	}
	right, err := stack.PopNumber(name)
	if err != nil {
		return err
	}
	stack.Push(&object.Number{Value: op(left, right)})
	return nil
}

func unary(name string, op func(float64) float64, stack *object.Stack) error {
	n, err := stack.PopNumber(name)
	if err != nil {
		return err
	}
	stack.Push(&object.Number{Value: op(n)})
	return nil
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
