package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// SetEmergencyExecutor registers the only identity allowed to call
// ExecuteEmergencyWithdraw. Administrators only.
func (k Keeper) SetEmergencyExecutor(ctx context.Context, caller, executor sdk.AccAddress) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleAdmin, caller); err != nil {
		return err
	}
	if sharedtypes.IsZeroAddress(executor) {
		return types.ErrZeroAddress.Wrap("emergency executor cannot be the zero address")
	}
	return k.atomic(ctx, "set_executor", func(ctx sdk.Context) error {
		if err := k.store.SetAddress(ctx, k.identity, types.ExecutorKey(), executor); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeExecutorSet,
				sdk.NewAttribute(types.AttributeKeyExecutor, executor.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
			),
		)
		k.Logger(ctx).Info("emergency executor registered", "executor", executor.String())
		return nil
	})
}

// ExecuteEmergencyWithdraw moves amount of asset out of the vault to `to`.
// It is callable only while paused and only by the registered executor.
//
// Reserves are left untouched, so after a withdrawal the vault may hold
// less than the recorded reserves of its pools.
func (k Keeper) ExecuteEmergencyWithdraw(ctx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) error {
	return k.atomic(ctx, "emergency_withdraw", func(ctx sdk.Context) error {
		if !k.IsPaused(ctx) {
			return types.ErrNotPaused.Wrap("emergency withdrawal requires a paused ledger")
		}
		if err := sharedkeeper.ValidateAuthority(k.GetExecutor(ctx), caller); err != nil {
			return err
		}
		if asset == "" {
			return types.ErrInvalidAsset.Wrap("asset cannot be empty")
		}
		if sharedtypes.IsZeroAddress(to) {
			return types.ErrZeroAddress.Wrap("withdrawal recipient cannot be the zero address")
		}
		if err := requirePositive("withdrawal amount", amount); err != nil {
			return err
		}
		if err := k.transfer(ctx, types.VaultAddress, to, asset, amount); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeEmergencyWithdraw,
				sdk.NewAttribute(types.AttributeKeyAsset, asset),
				sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
			),
		)
		k.metrics.EmergencyWithdraws.WithLabelValues(asset).Inc()
		k.Logger(ctx).Warn("emergency withdrawal executed",
			"asset", asset,
			"recipient", to.String(),
			"amount", amount.String(),
		)
		return nil
	})
}
