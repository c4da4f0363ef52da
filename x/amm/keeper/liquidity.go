package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// AddLiquidity deposits into asset's pool, creating it on first deposit.
//
// A new pool takes exactly the provided amounts as its reserves and mints
// floor(sqrt(asset*base)) shares, of which MinimumLock go to the sink. An
// existing pool takes the amounts at the current reserve ratio: base
// beyond what the used asset amount requires is never pulled and is
// reported as BaseRefunded.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	caller sdk.AccAddress,
	asset string,
	desiredAssetAmount, providedBaseAmount math.Int,
) (types.AddLiquidityResult, error) {
	var result types.AddLiquidityResult

	if sharedtypes.IsZeroAddress(caller) {
		return result, types.ErrZeroAddress.Wrap("liquidity provider cannot be the zero address")
	}
	if err := k.validateAsset(asset); err != nil {
		return result, err
	}
	if err := requirePositive("asset amount", desiredAssetAmount); err != nil {
		return result, err
	}
	if err := requirePositive("base amount", providedBaseAmount); err != nil {
		return result, err
	}

	err := k.atomic(ctx, "add_liquidity", func(ctx sdk.Context) error {
		if err := k.requireReady(ctx); err != nil {
			return err
		}

		pool, found := k.GetPool(ctx, asset)
		var err error
		if !found {
			pool, result, err = k.createPool(ctx, caller, asset, desiredAssetAmount, providedBaseAmount)
		} else {
			pool, result, err = k.depositProportional(ctx, caller, pool, desiredAssetAmount, providedBaseAmount)
		}
		if err != nil {
			return err
		}

		// Pull funds only after reserves and shares are final.
		if err := k.transfer(ctx, caller, types.VaultAddress, asset, result.AssetUsed); err != nil {
			return err
		}
		if err := k.transfer(ctx, caller, types.VaultAddress, k.nativeDenom, result.BaseUsed); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityAdded,
				sdk.NewAttribute(types.AttributeKeyAsset, asset),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAssetAmount, result.AssetUsed.String()),
				sdk.NewAttribute(types.AttributeKeyBaseAmount, result.BaseUsed.String()),
				sdk.NewAttribute(types.AttributeKeyBaseRefunded, result.BaseRefunded.String()),
				sdk.NewAttribute(types.AttributeKeyShares, result.Shares.String()),
			),
		)

		k.metrics.LiquidityAdded.WithLabelValues(asset, asset).Add(approxFloat(result.AssetUsed))
		k.metrics.LiquidityAdded.WithLabelValues(asset, k.nativeDenom).Add(approxFloat(result.BaseUsed))
		k.Logger(ctx).Info("liquidity added",
			"asset", asset,
			"provider", caller.String(),
			"asset_amount", result.AssetUsed.String(),
			"base_amount", result.BaseUsed.String(),
			"shares", result.Shares.String(),
			"created", result.Created,
			"total_shares", pool.TotalShares.String(),
		)
		return nil
	})
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	return result, nil
}

// createPool registers asset's pool with the provided amounts as reserves.
func (k Keeper) createPool(
	ctx sdk.Context,
	caller sdk.AccAddress,
	asset string,
	assetAmount, baseAmount math.Int,
) (types.Pool, types.AddLiquidityResult, error) {
	liquidity, err := types.GeometricMean(assetAmount, baseAmount)
	if err != nil {
		return types.Pool{}, types.AddLiquidityResult{}, err
	}
	if liquidity.LTE(types.MinimumLock) {
		k.metrics.GuardRejection.WithLabelValues("initial_liquidity").Inc()
		return types.Pool{}, types.AddLiquidityResult{}, types.ErrInsufficientInitialLiquidity.Wrapf(
			"sqrt(%s * %s) = %s must exceed minimum lock %s", assetAmount, baseAmount, liquidity, types.MinimumLock)
	}

	token, err := k.registerPool(ctx, asset)
	if err != nil {
		return types.Pool{}, types.AddLiquidityResult{}, err
	}
	pool := types.Pool{
		Asset:        asset,
		AssetReserve: assetAmount,
		BaseReserve:  baseAmount,
		ShareToken:   token,
		TotalShares:  liquidity,
	}
	if err := k.setReserves(ctx, asset, assetAmount, baseAmount); err != nil {
		return types.Pool{}, types.AddLiquidityResult{}, err
	}

	shares := liquidity.Sub(types.MinimumLock)
	if err := k.mintShares(ctx, pool, types.MinimumLockSink, types.MinimumLock); err != nil {
		return types.Pool{}, types.AddLiquidityResult{}, err
	}
	if err := k.mintShares(ctx, pool, caller, shares); err != nil {
		return types.Pool{}, types.AddLiquidityResult{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
			sdk.NewAttribute(types.AttributeKeyAssetAmount, assetAmount.String()),
			sdk.NewAttribute(types.AttributeKeyBaseAmount, baseAmount.String()),
		),
	)

	return pool, types.AddLiquidityResult{
		Shares:       shares,
		AssetUsed:    assetAmount,
		BaseUsed:     baseAmount,
		BaseRefunded: math.ZeroInt(),
		Created:      true,
	}, nil
}

// depositProportional adds to an existing pool at its current ratio.
func (k Keeper) depositProportional(
	ctx sdk.Context,
	caller sdk.AccAddress,
	pool types.Pool,
	desiredAsset, providedBase math.Int,
) (types.Pool, types.AddLiquidityResult, error) {
	if err := pool.Validate(); err != nil {
		return pool, types.AddLiquidityResult{}, err
	}

	assetImplied, err := types.MulDiv(providedBase, pool.AssetReserve, pool.BaseReserve)
	if err != nil {
		return pool, types.AddLiquidityResult{}, err
	}
	assetUsed, baseUsed := assetImplied, providedBase
	if assetImplied.GT(desiredAsset) {
		assetUsed = desiredAsset
		baseUsed, err = types.MulDiv(desiredAsset, pool.BaseReserve, pool.AssetReserve)
		if err != nil {
			return pool, types.AddLiquidityResult{}, err
		}
	}
	if assetUsed.IsZero() || baseUsed.IsZero() {
		k.metrics.GuardRejection.WithLabelValues("liquidity_minted").Inc()
		return pool, types.AddLiquidityResult{}, types.ErrInsufficientLiquidityMinted.Wrapf(
			"deposit rounds to asset=%s base=%s", assetUsed, baseUsed)
	}

	fromBase, err := types.MulDiv(baseUsed, pool.TotalShares, pool.BaseReserve)
	if err != nil {
		return pool, types.AddLiquidityResult{}, err
	}
	fromAsset, err := types.MulDiv(assetUsed, pool.TotalShares, pool.AssetReserve)
	if err != nil {
		return pool, types.AddLiquidityResult{}, err
	}
	shares := math.MinInt(fromBase, fromAsset)
	if shares.IsZero() {
		k.metrics.GuardRejection.WithLabelValues("liquidity_minted").Inc()
		return pool, types.AddLiquidityResult{}, types.ErrInsufficientLiquidityMinted.Wrap("deposit too small to mint shares")
	}

	newAsset, err := pool.AssetReserve.SafeAdd(assetUsed)
	if err != nil {
		return pool, types.AddLiquidityResult{}, types.ErrOverflow.Wrapf("asset reserve: %v", err)
	}
	newBase, err := pool.BaseReserve.SafeAdd(baseUsed)
	if err != nil {
		return pool, types.AddLiquidityResult{}, types.ErrOverflow.Wrapf("base reserve: %v", err)
	}
	if err := k.setReserves(ctx, pool.Asset, newAsset, newBase); err != nil {
		return pool, types.AddLiquidityResult{}, err
	}
	if err := k.mintShares(ctx, pool, caller, shares); err != nil {
		return pool, types.AddLiquidityResult{}, err
	}

	pool.AssetReserve = newAsset
	pool.BaseReserve = newBase
	pool.TotalShares = pool.TotalShares.Add(shares)

	return pool, types.AddLiquidityResult{
		Shares:       shares,
		AssetUsed:    assetUsed,
		BaseUsed:     baseUsed,
		BaseRefunded: providedBase.Sub(baseUsed),
	}, nil
}

// RemoveLiquidity burns shares for a proportional part of both reserves.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	caller sdk.AccAddress,
	asset string,
	shares, minBaseOut, minAssetOut math.Int,
	deadline time.Time,
) (types.RemoveLiquidityResult, error) {
	var result types.RemoveLiquidityResult

	if err := requirePositive("shares", shares); err != nil {
		return result, err
	}
	if err := requireNonNegative("minimum base out", minBaseOut); err != nil {
		return result, err
	}
	if err := requireNonNegative("minimum asset out", minAssetOut); err != nil {
		return result, err
	}

	err := k.atomic(ctx, "remove_liquidity", func(ctx sdk.Context) error {
		if err := k.requireReady(ctx); err != nil {
			return err
		}
		if err := checkDeadline(ctx, deadline); err != nil {
			return err
		}
		pool, err := k.mustGetPool(ctx, asset)
		if err != nil {
			return err
		}
		if err := pool.Validate(); err != nil {
			return err
		}

		balance := k.shareBalance(ctx, pool.ShareToken, caller)
		if shares.GT(balance) {
			return types.ErrInsufficientShares.Wrapf("balance %s, requested %s", balance, shares)
		}

		baseOut, err := types.MulDiv(shares, pool.BaseReserve, pool.TotalShares)
		if err != nil {
			return err
		}
		assetOut, err := types.MulDiv(shares, pool.AssetReserve, pool.TotalShares)
		if err != nil {
			return err
		}
		if baseOut.IsZero() || assetOut.IsZero() || baseOut.LT(minBaseOut) || assetOut.LT(minAssetOut) {
			k.metrics.GuardRejection.WithLabelValues("min_output").Inc()
			return types.ErrInsufficientOutput.Wrapf(
				"payout base=%s asset=%s below minimum base=%s asset=%s", baseOut, assetOut, minBaseOut, minAssetOut)
		}

		newAsset := pool.AssetReserve.Sub(assetOut)
		newBase := pool.BaseReserve.Sub(baseOut)
		if !newAsset.IsPositive() || !newBase.IsPositive() {
			return types.ErrEmptyPool.Wrap("withdrawal would drain a reserve")
		}

		if err := k.burnShares(ctx, pool, caller, shares); err != nil {
			return err
		}
		if err := k.setReserves(ctx, asset, newAsset, newBase); err != nil {
			return err
		}

		if err := k.transfer(ctx, types.VaultAddress, caller, asset, assetOut); err != nil {
			return err
		}
		if err := k.transfer(ctx, types.VaultAddress, caller, k.nativeDenom, baseOut); err != nil {
			return err
		}

		result = types.RemoveLiquidityResult{
			SharesBurned: shares,
			AssetOut:     assetOut,
			BaseOut:      baseOut,
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityRemoved,
				sdk.NewAttribute(types.AttributeKeyAsset, asset),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAssetAmount, assetOut.String()),
				sdk.NewAttribute(types.AttributeKeyBaseAmount, baseOut.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		k.metrics.LiquidityRemoved.WithLabelValues(asset, asset).Add(approxFloat(assetOut))
		k.metrics.LiquidityRemoved.WithLabelValues(asset, k.nativeDenom).Add(approxFloat(baseOut))
		k.Logger(ctx).Info("liquidity removed",
			"asset", asset,
			"provider", caller.String(),
			"asset_amount", assetOut.String(),
			"base_amount", baseOut.String(),
			"shares", shares.String(),
		)
		return nil
	})
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	return result, nil
}

// checkDeadline fails once the block time is past deadline.
func checkDeadline(ctx sdk.Context, deadline time.Time) error {
	if now := ctx.BlockTime(); now.After(deadline) {
		return types.ErrDeadlineExceeded.Wrapf("now %s, deadline %s", now.UTC().Format(time.RFC3339), deadline.UTC().Format(time.RFC3339))
	}
	return nil
}
