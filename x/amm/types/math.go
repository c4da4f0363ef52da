package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// MulDiv returns floor(a * b / c). Multiplication happens first to keep
// rounding loss to a single truncation. A zero divisor is an error, never
// a panic.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero.Wrapf("%s * %s / 0", a, b)
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return product.Quo(c), nil
}

// SafeProduct returns a * b or ErrOverflow.
func SafeProduct(a, b math.Int) (math.Int, error) {
	product, err := a.SafeMul(b)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return product, nil
}

// SqrtFloor returns floor(sqrt(x)) for x >= 0.
func SqrtFloor(x math.Int) math.Int {
	if !x.IsPositive() {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// GeometricMean returns floor(sqrt(a * b)).
func GeometricMean(a, b math.Int) (math.Int, error) {
	product, err := SafeProduct(a, b)
	if err != nil {
		return math.ZeroInt(), err
	}
	return SqrtFloor(product), nil
}
