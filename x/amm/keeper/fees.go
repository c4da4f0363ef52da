package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// GetFeeBps returns the current swap fee in basis points.
func (k Keeper) GetFeeBps(ctx context.Context) uint64 {
	return k.store.GetUint(ctx, types.FeeBpsKey()).Uint64()
}

func (k Keeper) setFeeBps(ctx context.Context, bps uint64) error {
	return k.store.SetUint(ctx, k.identity, types.FeeBpsKey(), math.NewUint(bps))
}

// SetFeeBps changes the swap fee. Only fee operators may call it and the
// fee may not exceed MaxFeeBps. The change applies to the next swap.
func (k Keeper) SetFeeBps(ctx context.Context, caller sdk.AccAddress, bps uint64) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleFeeOperator, caller); err != nil {
		return err
	}
	if err := types.ValidateFeeBps(bps); err != nil {
		return err
	}
	return k.atomic(ctx, "set_fee", func(ctx sdk.Context) error {
		if !k.IsInitialized(ctx) {
			return types.ErrNotInitialized
		}
		previous := k.GetFeeBps(ctx)
		if err := k.setFeeBps(ctx, bps); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeeUpdated,
				sdk.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", bps)),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
			),
		)
		k.Logger(ctx).Info("swap fee updated", "previous_bps", previous, "fee_bps", bps)
		return nil
	})
}
