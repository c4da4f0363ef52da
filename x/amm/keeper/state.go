package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
	"github.com/nativeswap/nativeswap/x/amm/types"
)

// getAmount reads an unsigned store value as a math.Int.
func (k Keeper) getAmount(ctx context.Context, key kvtypes.Key) math.Int {
	return math.NewIntFromBigInt(k.store.GetUint(ctx, key).BigInt())
}

// setAmount writes a non-negative math.Int as an unsigned store value.
func (k Keeper) setAmount(ctx context.Context, key kvtypes.Key, v math.Int) error {
	if v.IsNil() || v.IsNegative() {
		return types.ErrInvariantViolation.Wrapf("negative amount %s for %s", v, key.Domain)
	}
	return k.store.SetUint(ctx, k.identity, key, math.NewUintFromBigInt(v.BigInt()))
}

func (k Keeper) getCounter(ctx context.Context, key kvtypes.Key) uint64 {
	return k.store.GetUint(ctx, key).Uint64()
}

func (k Keeper) setCounter(ctx context.Context, key kvtypes.Key, n uint64) error {
	return k.store.SetUint(ctx, k.identity, key, math.NewUint(n))
}

// GetPool loads the pool of asset. The boolean is false when no pool has
// been created for it; the returned Pool then only carries the asset.
func (k Keeper) GetPool(ctx context.Context, asset string) (types.Pool, bool) {
	pool := types.Pool{
		Asset:        asset,
		AssetReserve: math.ZeroInt(),
		BaseReserve:  math.ZeroInt(),
		TotalShares:  math.ZeroInt(),
	}
	token := k.store.GetAddress(ctx, types.ShareTokenKey(asset))
	if token.Empty() {
		return pool, false
	}
	pool.ShareToken = token
	pool.AssetReserve = k.getAmount(ctx, types.AssetReserveKey(asset))
	pool.BaseReserve = k.getAmount(ctx, types.BaseReserveKey(asset))
	pool.TotalShares = k.getAmount(ctx, types.ShareSupplyKey(token))
	return pool, true
}

// mustGetPool loads an existing pool or returns ErrPoolNotExist.
func (k Keeper) mustGetPool(ctx context.Context, asset string) (types.Pool, error) {
	pool, found := k.GetPool(ctx, asset)
	if !found {
		return pool, types.ErrPoolNotExist.Wrapf("no pool for asset %s", asset)
	}
	return pool, nil
}

// setReserves persists both reserves of a pool.
func (k Keeper) setReserves(ctx context.Context, asset string, assetReserve, baseReserve math.Int) error {
	if err := k.setAmount(ctx, types.AssetReserveKey(asset), assetReserve); err != nil {
		return err
	}
	if err := k.setAmount(ctx, types.BaseReserveKey(asset), baseReserve); err != nil {
		return err
	}
	k.metrics.PoolReserves.WithLabelValues(asset, "asset").Set(approxFloat(assetReserve))
	k.metrics.PoolReserves.WithLabelValues(asset, "base").Set(approxFloat(baseReserve))
	return nil
}

// registerPool assigns the share token and appends asset to the pool index.
// The NonExistent -> Active transition is irreversible.
func (k Keeper) registerPool(ctx context.Context, asset string) (sdk.AccAddress, error) {
	token := types.ShareTokenID(asset)
	if err := k.store.SetAddress(ctx, k.identity, types.ShareTokenKey(asset), token); err != nil {
		return nil, err
	}
	n := k.PoolCount(ctx)
	if err := k.store.SetString(ctx, k.identity, types.PoolIndexKey(n), asset); err != nil {
		return nil, err
	}
	if err := k.setCounter(ctx, types.PoolCountKey(), n+1); err != nil {
		return nil, err
	}
	k.metrics.PoolsTotal.Set(float64(n + 1))
	return token, nil
}

// PoolCount returns how many pools have been created.
func (k Keeper) PoolCount(ctx context.Context) uint64 {
	return k.getCounter(ctx, types.PoolCountKey())
}

// IteratePools walks pools in creation order until cb returns true.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) {
	count := k.PoolCount(ctx)
	for i := uint64(0); i < count; i++ {
		asset := k.store.GetString(ctx, types.PoolIndexKey(i))
		pool, found := k.GetPool(ctx, asset)
		if !found {
			continue
		}
		if cb(pool) {
			return
		}
	}
}

func approxFloat(v math.Int) float64 {
	f, _ := v.ToLegacyDec().Float64()
	return f
}
