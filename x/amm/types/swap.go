package types

import (
	"cosmossdk.io/math"
)

// ComputeSwapOutput prices a trade with the fee-adjusted constant-product
// formula:
//
//	effectiveIn = amountIn * (FeeDenominator - feeBps)
//	amountOut   = reserveOut * effectiveIn / (reserveIn * FeeDenominator + effectiveIn)
func ComputeSwapOutput(amountIn, reserveIn, reserveOut math.Int, feeBps uint64) (math.Int, error) {
	if feeBps > FeeDenominator {
		return math.ZeroInt(), ErrInvalidFee.Wrapf("fee %d bps exceeds denominator", feeBps)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), ErrEmptyPool.Wrapf("reserves in=%s out=%s", reserveIn, reserveOut)
	}
	effectiveIn, err := SafeProduct(amountIn, math.NewIntFromUint64(FeeDenominator-feeBps))
	if err != nil {
		return math.ZeroInt(), err
	}
	scaledReserve, err := SafeProduct(reserveIn, math.NewIntFromUint64(FeeDenominator))
	if err != nil {
		return math.ZeroInt(), err
	}
	denominator, err := scaledReserve.SafeAdd(effectiveIn)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("swap denominator: %v", err)
	}
	return MulDiv(reserveOut, effectiveIn, denominator)
}

// SwapFee returns the part of amountIn retained by the pool as fee.
func SwapFee(amountIn math.Int, feeBps uint64) (math.Int, error) {
	return MulDiv(amountIn, math.NewIntFromUint64(feeBps), math.NewIntFromUint64(FeeDenominator))
}

// PriceImpactBps is the relative shortfall of the execution price
// amountOut/amountIn against the pre-trade spot price reserveOut/reserveIn,
// in basis points:
//
//	(amountIn*reserveOut - amountOut*reserveIn) * 10000 / (amountIn*reserveOut)
//
// An execution price at or above spot yields zero.
func PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut math.Int) (uint64, error) {
	spotValue, err := SafeProduct(amountIn, reserveOut)
	if err != nil {
		return 0, err
	}
	if spotValue.IsZero() {
		return 0, ErrDivisionByZero.Wrap("price impact of an empty trade")
	}
	execValue, err := SafeProduct(amountOut, reserveIn)
	if err != nil {
		return 0, err
	}
	if execValue.GTE(spotValue) {
		return 0, nil
	}
	impact, err := MulDiv(spotValue.Sub(execValue), math.NewIntFromUint64(MaxSlippageBps), spotValue)
	if err != nil {
		return 0, err
	}
	return impact.Uint64(), nil
}

// ExceedsTradeCap reports whether amountIn is larger than the permitted
// fraction of reserveIn.
func ExceedsTradeCap(amountIn, reserveIn math.Int) (bool, error) {
	scaledIn, err := SafeProduct(amountIn, math.NewIntFromUint64(FeeDenominator))
	if err != nil {
		return false, err
	}
	limit, err := SafeProduct(reserveIn, math.NewIntFromUint64(MaxSwapReserveFractionBps))
	if err != nil {
		return false, err
	}
	return scaledIn.GT(limit), nil
}

// SpotPrice returns baseReserve * PriceScale / assetReserve.
func SpotPrice(assetReserve, baseReserve math.Int) (math.Int, error) {
	if !assetReserve.IsPositive() || !baseReserve.IsPositive() {
		return math.ZeroInt(), ErrEmptyPool.Wrapf("reserves asset=%s base=%s", assetReserve, baseReserve)
	}
	return MulDiv(baseReserve, PriceScale, assetReserve)
}
