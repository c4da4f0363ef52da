package types

import (
	"cosmossdk.io/math"
)

const (
	// FeeDenominator is the basis-point denominator used by swap pricing.
	FeeDenominator = uint64(10_000)

	// DefaultFeeBps is the swap fee applied when the ledger is initialized
	// without an explicit fee (0.30%).
	DefaultFeeBps = uint64(30)

	// MaxFeeBps bounds what a fee operator may configure (10%).
	MaxFeeBps = uint64(1_000)

	// MaxSwapReserveFractionBps caps a single trade's input at this fraction
	// of the input-side reserve, independent of the caller's slippage limit.
	MaxSwapReserveFractionBps = uint64(5_000)

	// MaxSlippageBps is the largest meaningful slippage tolerance.
	MaxSlippageBps = uint64(10_000)

	// DefaultLedgerVersion names the first ledger logic version.
	DefaultLedgerVersion = "v1"
)

var (
	// MinimumLock is the share quantity minted to MinimumLockSink when a
	// pool is created. It makes the first-depositor inflation attack
	// uneconomical.
	MinimumLock = math.NewInt(1_000)

	// PriceScale is the fixed-point scale of spot prices.
	PriceScale = math.NewIntWithDecimal(1, 18)
)

// ValidateFeeBps checks a fee against the configurable range.
func ValidateFeeBps(bps uint64) error {
	if bps > MaxFeeBps {
		return ErrInvalidFee.Wrapf("fee %d bps exceeds maximum %d bps", bps, MaxFeeBps)
	}
	return nil
}
