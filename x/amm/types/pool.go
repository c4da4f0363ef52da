package types

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is the reserve pair of one traded asset against the settlement
// asset. A pool exists iff ShareToken is non-empty.
type Pool struct {
	Asset        string         `json:"asset"`
	AssetReserve math.Int       `json:"asset_reserve"`
	BaseReserve  math.Int       `json:"base_reserve"`
	ShareToken   sdk.AccAddress `json:"share_token"`
	TotalShares  math.Int       `json:"total_shares"`
}

// Exists reports whether the pool has been created.
func (p Pool) Exists() bool {
	return !p.ShareToken.Empty()
}

// Validate checks the reserve invariant of an existing pool.
func (p Pool) Validate() error {
	if !p.Exists() {
		return ErrPoolNotExist.Wrapf("pool for %s", p.Asset)
	}
	if p.AssetReserve.IsNil() || p.BaseReserve.IsNil() || !p.AssetReserve.IsPositive() || !p.BaseReserve.IsPositive() {
		return ErrEmptyPool.Wrapf("pool %s reserves asset=%s base=%s", p.Asset, p.AssetReserve, p.BaseReserve)
	}
	if p.TotalShares.IsNil() || p.TotalShares.LT(MinimumLock) {
		return ErrInvariantViolation.Wrapf("pool %s share supply %s below minimum lock", p.Asset, p.TotalShares)
	}
	return nil
}

// PoolInfo is the read-only projection returned by queries.
type PoolInfo struct {
	Pool
	FeeBps uint64 `json:"fee_bps"`
}

// AddLiquidityResult reports what a deposit actually moved.
type AddLiquidityResult struct {
	Shares       math.Int `json:"shares"`
	AssetUsed    math.Int `json:"asset_used"`
	BaseUsed     math.Int `json:"base_used"`
	BaseRefunded math.Int `json:"base_refunded"`
	Created      bool     `json:"created"`
}

// RemoveLiquidityResult reports the proportional payout of a withdrawal.
type RemoveLiquidityResult struct {
	SharesBurned math.Int `json:"shares_burned"`
	AssetOut     math.Int `json:"asset_out"`
	BaseOut      math.Int `json:"base_out"`
}

// SwapResult reports an executed trade.
type SwapResult struct {
	AmountIn       math.Int `json:"amount_in"`
	AmountOut      math.Int `json:"amount_out"`
	Fee            math.Int `json:"fee"`
	PriceImpactBps uint64   `json:"price_impact_bps"`
}

// SwapEstimate is a quote computed from current reserves without trading.
type SwapEstimate struct {
	AmountIn       math.Int `json:"amount_in"`
	AmountOut      math.Int `json:"amount_out"`
	Fee            math.Int `json:"fee"`
	PriceImpactBps uint64   `json:"price_impact_bps"`
	SpotPrice      math.Int `json:"spot_price"`
}

// SwapDirection selects which side of the pool receives the input.
type SwapDirection int

const (
	// BaseForAsset sells the settlement asset for the traded asset.
	BaseForAsset SwapDirection = iota
	// AssetForBase sells the traded asset for the settlement asset.
	AssetForBase
)

// String returns the direction name.
func (d SwapDirection) String() string {
	if d == AssetForBase {
		return "asset_for_base"
	}
	return "base_for_asset"
}

// ParseSwapDirection maps a name back to a direction.
func ParseSwapDirection(s string) (SwapDirection, error) {
	switch s {
	case "base_for_asset":
		return BaseForAsset, nil
	case "asset_for_base":
		return AssetForBase, nil
	default:
		return 0, ErrInvalidAmount.Wrapf("unknown swap direction %q", s)
	}
}

// SwapRequest carries the caller-chosen protection bounds of a trade.
type SwapRequest struct {
	Asset          string
	Direction      SwapDirection
	AmountIn       math.Int
	MinAmountOut   math.Int
	MaxSlippageBps uint64
	Deadline       time.Time
}
