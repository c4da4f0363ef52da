package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
)

// GetPoolInfo returns the reserves, share data and current fee of asset's pool.
func (k Keeper) GetPoolInfo(ctx context.Context, asset string) (types.PoolInfo, error) {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return types.PoolInfo{}, err
	}
	return types.PoolInfo{Pool: pool, FeeBps: k.GetFeeBps(ctx)}, nil
}

// GetSpotPrice returns baseReserve * PriceScale / assetReserve.
func (k Keeper) GetSpotPrice(ctx context.Context, asset string) (math.Int, error) {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	return types.SpotPrice(pool.AssetReserve, pool.BaseReserve)
}

// GetSwapEstimate quotes a trade of amountIn without executing it. The
// quote uses the same pricing and trade cap as Swap but ignores pause
// state, deadlines and caller bounds.
func (k Keeper) GetSwapEstimate(ctx context.Context, asset string, direction types.SwapDirection, amountIn math.Int) (types.SwapEstimate, error) {
	if err := requirePositive("amount in", amountIn); err != nil {
		return types.SwapEstimate{}, err
	}
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	if err := pool.Validate(); err != nil {
		return types.SwapEstimate{}, err
	}
	return k.quote(ctx, pool, direction, amountIn)
}

// GetLiquidityDepth returns floor(sqrt(assetReserve * baseReserve)).
func (k Keeper) GetLiquidityDepth(ctx context.Context, asset string) (math.Int, error) {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	return types.GeometricMean(pool.AssetReserve, pool.BaseReserve)
}

// ListPools returns every pool in creation order.
func (k Keeper) ListPools(ctx context.Context) []types.PoolInfo {
	fee := k.GetFeeBps(ctx)
	pools := make([]types.PoolInfo, 0, k.PoolCount(ctx))
	k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, types.PoolInfo{Pool: pool, FeeBps: fee})
		return false
	})
	return pools
}

// GetExecutor returns the registered emergency executor, or an empty
// address when none is registered.
func (k Keeper) GetExecutor(ctx context.Context) sdk.AccAddress {
	return k.store.GetAddress(ctx, types.ExecutorKey())
}
