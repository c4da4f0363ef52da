package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/emergency/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Keeper runs the threshold approval workflow for emergency withdrawals.
// It never moves assets itself: an executed proposal is handed to the
// registered Executor.
type Keeper struct {
	storeKey storetypes.StoreKey
	policy   sharedkeeper.Policy
	executor types.Executor
	guard    *sharedkeeper.ReentrancyGuard
	metrics  *EmergencyMetrics
}

// NewKeeper creates a new emergency Keeper instance
func NewKeeper(key storetypes.StoreKey, policy sharedkeeper.Policy, executor types.Executor) Keeper {
	return Keeper{
		storeKey: key,
		policy:   policy,
		executor: executor,
		guard:    sharedkeeper.NewReentrancyGuard(),
		metrics:  NewEmergencyMetrics(),
	}
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetParams returns the module parameters, or the defaults when unset.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		k.Logger(ctx).Error("corrupt params, using defaults", "error", err)
		return types.DefaultParams()
	}
	return params
}

// SetParams validates params against the configured signer set and stores them.
func (k Keeper) SetParams(ctx context.Context, params types.Params, signerCount int) error {
	if err := params.Validate(signerCount); err != nil {
		return err
	}
	bz, err := json.Marshal(&params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// atomic runs fn under the module guard on a branched context that is
// written back only on success.
func (k Keeper) atomic(ctx context.Context, op string, fn func(ctx sdk.Context) error) error {
	return k.guard.Run(types.ModuleName, func() error {
		sdkCtx := sdk.UnwrapSDKContext(ctx)
		cacheCtx, write := sdkCtx.CacheContext()
		if err := fn(cacheCtx); err != nil {
			k.metrics.Rejections.WithLabelValues(op).Inc()
			return err
		}
		write()
		return nil
	})
}

func requireSigner(policy sharedkeeper.Policy, caller sdk.AccAddress) error {
	return sharedkeeper.RequireRole(policy, sharedtypes.RoleEmergencySigner, caller)
}
