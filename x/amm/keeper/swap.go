package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// SwapBaseForAsset sells baseIn of the settlement asset for asset.
func (k Keeper) SwapBaseForAsset(
	ctx context.Context,
	caller sdk.AccAddress,
	asset string,
	baseIn, minAssetOut math.Int,
	maxSlippageBps uint64,
	deadline time.Time,
) (types.SwapResult, error) {
	return k.Swap(ctx, caller, types.SwapRequest{
		Asset:          asset,
		Direction:      types.BaseForAsset,
		AmountIn:       baseIn,
		MinAmountOut:   minAssetOut,
		MaxSlippageBps: maxSlippageBps,
		Deadline:       deadline,
	})
}

// SwapAssetForBase sells assetIn of asset for the settlement asset.
func (k Keeper) SwapAssetForBase(
	ctx context.Context,
	caller sdk.AccAddress,
	asset string,
	assetIn, minBaseOut math.Int,
	maxSlippageBps uint64,
	deadline time.Time,
) (types.SwapResult, error) {
	return k.Swap(ctx, caller, types.SwapRequest{
		Asset:          asset,
		Direction:      types.AssetForBase,
		AmountIn:       assetIn,
		MinAmountOut:   minBaseOut,
		MaxSlippageBps: maxSlippageBps,
		Deadline:       deadline,
	})
}

// Swap executes a trade in either direction.
//
// Checks run in a fixed order: paused, deadline, amounts, pool, trade cap,
// minimum output, price impact. The whole input, fee included, is added to
// the input reserve, so the constant product never decreases.
func (k Keeper) Swap(ctx context.Context, caller sdk.AccAddress, req types.SwapRequest) (types.SwapResult, error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	var result types.SwapResult
	err := k.atomic(ctx, "swap", func(ctx sdk.Context) error {
		if err := k.requireReady(ctx); err != nil {
			return err
		}
		if err := checkDeadline(ctx, req.Deadline); err != nil {
			return err
		}
		if sharedtypes.IsZeroAddress(caller) {
			return types.ErrZeroAddress.Wrap("trader cannot be the zero address")
		}
		if err := k.validateAsset(req.Asset); err != nil {
			return err
		}
		if err := requirePositive("amount in", req.AmountIn); err != nil {
			return err
		}
		if err := requireNonNegative("minimum amount out", req.MinAmountOut); err != nil {
			return err
		}
		if req.MaxSlippageBps > types.MaxSlippageBps {
			return types.ErrInvalidSlippage.Wrapf("%d bps exceeds %d", req.MaxSlippageBps, types.MaxSlippageBps)
		}

		pool, err := k.mustGetPool(ctx, req.Asset)
		if err != nil {
			return err
		}
		if err := pool.Validate(); err != nil {
			return err
		}

		quote, err := k.quote(ctx, pool, req.Direction, req.AmountIn)
		if err != nil {
			return err
		}
		if quote.AmountOut.IsZero() || quote.AmountOut.LT(req.MinAmountOut) {
			k.metrics.GuardRejection.WithLabelValues("min_output").Inc()
			return types.ErrInsufficientOutput.Wrapf("output %s below minimum %s", quote.AmountOut, req.MinAmountOut)
		}
		if quote.PriceImpactBps > req.MaxSlippageBps {
			k.metrics.GuardRejection.WithLabelValues("price_impact").Inc()
			return types.ErrPriceImpactTooHigh.Wrapf("impact %d bps exceeds tolerance %d bps", quote.PriceImpactBps, req.MaxSlippageBps)
		}

		inDenom, outDenom := k.denoms(req.Asset, req.Direction)
		newAsset, newBase, err := applySwap(pool, req.Direction, req.AmountIn, quote.AmountOut)
		if err != nil {
			return err
		}
		if err := checkProductNotDecreased(pool, newAsset, newBase); err != nil {
			return err
		}
		if err := k.setReserves(ctx, req.Asset, newAsset, newBase); err != nil {
			return err
		}

		if err := k.transfer(ctx, caller, types.VaultAddress, inDenom, req.AmountIn); err != nil {
			return err
		}
		if err := k.transfer(ctx, types.VaultAddress, caller, outDenom, quote.AmountOut); err != nil {
			return err
		}

		result = types.SwapResult{
			AmountIn:       req.AmountIn,
			AmountOut:      quote.AmountOut,
			Fee:            quote.Fee,
			PriceImpactBps: quote.PriceImpactBps,
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyAsset, req.Asset),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyDirection, req.Direction.String()),
				sdk.NewAttribute(types.AttributeKeyAmountIn, req.AmountIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountOut, quote.AmountOut.String()),
				sdk.NewAttribute(types.AttributeKeyPriceImpact, fmt.Sprintf("%d", quote.PriceImpactBps)),
			),
		)
		k.metrics.SwapVolume.WithLabelValues(req.Asset, inDenom).Add(approxFloat(req.AmountIn))
		k.metrics.SwapFeesTotal.WithLabelValues(req.Asset, inDenom).Add(approxFloat(quote.Fee))
		k.metrics.SwapImpactBps.Observe(float64(quote.PriceImpactBps))
		k.Logger(ctx).Info("swap executed",
			"asset", req.Asset,
			"trader", caller.String(),
			"direction", req.Direction.String(),
			"amount_in", req.AmountIn.String(),
			"amount_out", quote.AmountOut.String(),
			"price_impact_bps", quote.PriceImpactBps,
		)
		return nil
	})

	status := "success"
	if err != nil {
		status = "failed"
		result = types.SwapResult{}
	}
	k.metrics.SwapsTotal.WithLabelValues(req.Asset, req.Direction.String(), status).Inc()
	return result, err
}

// quote prices amountIn against pool without touching state. It enforces
// the trade-size cap, which applies to estimates as well as trades.
func (k Keeper) quote(ctx context.Context, pool types.Pool, direction types.SwapDirection, amountIn math.Int) (types.SwapEstimate, error) {
	reserveIn, reserveOut := pool.BaseReserve, pool.AssetReserve
	if direction == types.AssetForBase {
		reserveIn, reserveOut = pool.AssetReserve, pool.BaseReserve
	}

	tooLarge, err := types.ExceedsTradeCap(amountIn, reserveIn)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	if tooLarge {
		k.metrics.GuardRejection.WithLabelValues("trade_cap").Inc()
		return types.SwapEstimate{}, types.ErrSwapAmountTooHigh.Wrapf(
			"input %s exceeds %d bps of reserve %s", amountIn, types.MaxSwapReserveFractionBps, reserveIn)
	}

	feeBps := k.GetFeeBps(ctx)
	amountOut, err := types.ComputeSwapOutput(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	fee, err := types.SwapFee(amountIn, feeBps)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	impact, err := types.PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	spot, err := types.SpotPrice(pool.AssetReserve, pool.BaseReserve)
	if err != nil {
		return types.SwapEstimate{}, err
	}
	return types.SwapEstimate{
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		Fee:            fee,
		PriceImpactBps: impact,
		SpotPrice:      spot,
	}, nil
}

// denoms returns the input and output denominations of a trade.
func (k Keeper) denoms(asset string, direction types.SwapDirection) (in, out string) {
	if direction == types.AssetForBase {
		return asset, k.nativeDenom
	}
	return k.nativeDenom, asset
}

// applySwap returns the post-trade reserves (asset, base).
func applySwap(pool types.Pool, direction types.SwapDirection, amountIn, amountOut math.Int) (math.Int, math.Int, error) {
	reserveIn, reserveOut := pool.BaseReserve, pool.AssetReserve
	if direction == types.AssetForBase {
		reserveIn, reserveOut = pool.AssetReserve, pool.BaseReserve
	}
	newIn, err := reserveIn.SafeAdd(amountIn)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrOverflow.Wrapf("input reserve: %v", err)
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrEmptyPool.Wrap("swap would drain the output reserve")
	}
	newOut := reserveOut.Sub(amountOut)
	if direction == types.AssetForBase {
		return newIn, newOut, nil
	}
	return newOut, newIn, nil
}

// checkProductNotDecreased verifies x*y did not shrink across a trade.
func checkProductNotDecreased(pool types.Pool, newAsset, newBase math.Int) error {
	before, err := types.SafeProduct(pool.AssetReserve, pool.BaseReserve)
	if err != nil {
		return err
	}
	after, err := types.SafeProduct(newAsset, newBase)
	if err != nil {
		return err
	}
	if after.LT(before) {
		return types.ErrInvariantViolation.Wrapf("constant product decreased from %s to %s", before, after)
	}
	return nil
}
