package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/kvstore/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Keeper of the typed key-value store. Reads are unrestricted; every write
// is gated on the caller being the current authorized writer.
type Keeper struct {
	storeKey storetypes.StoreKey
	policy   sharedkeeper.Policy
}

var _ sharedkeeper.WriterRegistryV1 = Keeper{}

// NewKeeper creates a new store Keeper instance
func NewKeeper(key storetypes.StoreKey, policy sharedkeeper.Policy) Keeper {
	return Keeper{
		storeKey: key,
		policy:   policy,
	}
}

// getStore returns the KVStore for the module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// Writer returns the current authorized writer, or an empty address when
// none has been assigned yet.
func (k Keeper) Writer(ctx context.Context) sdk.AccAddress {
	bz := k.getStore(ctx).Get(types.WriterKey)
	if len(bz) == 0 {
		return nil
	}
	return sdk.AccAddress(bz)
}

// ReassignWriter replaces the authorized writer. Only administrators may
// call it and the new writer must be non-zero. The previous writer loses
// write access in the same step.
func (k Keeper) ReassignWriter(ctx context.Context, caller, newWriter sdk.AccAddress) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleAdmin, caller); err != nil {
		return err
	}
	if sharedtypes.IsZeroAddress(newWriter) {
		return types.ErrZeroAddress.Wrap("authorized writer cannot be the zero address")
	}

	previous := k.Writer(ctx)
	k.getStore(ctx).Set(types.WriterKey, newWriter.Bytes())

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWriterReassigned,
			sdk.NewAttribute(types.AttributeKeyPreviousWriter, previous.String()),
			sdk.NewAttribute(types.AttributeKeyNewWriter, newWriter.String()),
			sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		),
	)
	k.Logger(ctx).Info("authorized writer reassigned", "previous", previous.String(), "writer", newWriter.String())

	return nil
}

// requireWriter rejects callers other than the current writer.
func (k Keeper) requireWriter(ctx context.Context, caller sdk.AccAddress) error {
	writer := k.Writer(ctx)
	if writer.Empty() {
		return types.ErrAccessDenied.Wrap("no authorized writer assigned")
	}
	if !writer.Equals(caller) {
		return types.ErrAccessDenied.Wrapf("%s is not the authorized writer", caller)
	}
	return nil
}
