package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// IsPaused checks if the ledger is currently paused
func (k Keeper) IsPaused(ctx context.Context) bool {
	return k.store.GetBool(ctx, types.PausedKey())
}

// RequireNotPaused returns an error if the ledger is paused
func (k Keeper) RequireNotPaused(ctx context.Context) error {
	if k.IsPaused(ctx) {
		return types.ErrModulePaused.Wrap("ledger operations are currently paused")
	}
	return nil
}

// Pause stops every value-moving operation. Only emergency signers may
// call it. Pausing an already paused ledger fails with ErrAlreadyPaused.
func (k Keeper) Pause(ctx context.Context, caller sdk.AccAddress) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleEmergencySigner, caller); err != nil {
		return err
	}
	return k.atomic(ctx, "pause", func(ctx sdk.Context) error {
		if k.IsPaused(ctx) {
			return types.ErrAlreadyPaused
		}
		return k.setPaused(ctx, caller, true)
	})
}

// Unpause resumes normal operation. Only emergency signers may call it.
// Unpausing a running ledger fails with ErrNotPaused.
func (k Keeper) Unpause(ctx context.Context, caller sdk.AccAddress) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleEmergencySigner, caller); err != nil {
		return err
	}
	return k.atomic(ctx, "unpause", func(ctx sdk.Context) error {
		if !k.IsPaused(ctx) {
			return types.ErrNotPaused
		}
		return k.setPaused(ctx, caller, false)
	})
}

func (k Keeper) setPaused(ctx sdk.Context, caller sdk.AccAddress, paused bool) error {
	if err := k.store.SetBool(ctx, k.identity, types.PausedKey(), paused); err != nil {
		return err
	}

	eventType, gauge := types.EventTypeUnpaused, 0.0
	if paused {
		eventType, gauge = types.EventTypePaused, 1.0
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		),
	)
	k.metrics.Paused.Set(gauge)
	k.Logger(ctx).Info("ledger pause state changed", "paused", paused, "caller", caller.String())
	return nil
}
