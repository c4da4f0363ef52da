package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Keeper is the pool ledger. It keeps no state of its own: every reserve,
// share balance and flag lives in the typed key-value store and is written
// under the keeper's identity, which must be the store's authorized writer.
type Keeper struct {
	store       types.StoreKeeper
	assets      types.AssetKeeper
	policy      sharedkeeper.Policy
	identity    sdk.AccAddress
	version     string
	nativeDenom string
	guard       *sharedkeeper.ReentrancyGuard
	metrics     *LedgerMetrics
}

var _ sharedkeeper.EmergencyExecutorV1 = Keeper{}

// NewKeeper creates a ledger keeper for logic version `version`. Several
// versions may exist side by side; only the one whose identity is the
// store's current writer can mutate state.
func NewKeeper(
	store types.StoreKeeper,
	assets types.AssetKeeper,
	policy sharedkeeper.Policy,
	nativeDenom string,
	version string,
) Keeper {
	if version == "" {
		version = types.DefaultLedgerVersion
	}
	return Keeper{
		store:       store,
		assets:      assets,
		policy:      policy,
		identity:    types.LedgerIdentity(version),
		version:     version,
		nativeDenom: nativeDenom,
		guard:       sharedkeeper.NewReentrancyGuard(),
		metrics:     NewLedgerMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName), "ledger_version", k.version)
}

// Identity returns the address this ledger version writes the store with.
func (k Keeper) Identity() sdk.AccAddress {
	return k.identity
}

// Version returns the ledger logic version.
func (k Keeper) Version() string {
	return k.version
}

// NativeDenom returns the settlement asset denomination.
func (k Keeper) NativeDenom() string {
	return k.nativeDenom
}

// Initialize latches the ledger as ready and sets the starting fee.
// Only administrators may call it, and only once.
func (k Keeper) Initialize(ctx context.Context, caller sdk.AccAddress, feeBps uint64) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleAdmin, caller); err != nil {
		return err
	}
	if k.store.GetBool(ctx, types.InitializedKey()) {
		return types.ErrAlreadyInitialized
	}
	if err := types.ValidateFeeBps(feeBps); err != nil {
		return err
	}
	if err := k.setFeeBps(ctx, feeBps); err != nil {
		return err
	}
	if err := k.store.SetBool(ctx, k.identity, types.InitializedKey(), true); err != nil {
		return err
	}
	k.Logger(ctx).Info("ledger initialized", "fee_bps", feeBps, "native_denom", k.nativeDenom)
	return nil
}

// IsInitialized reports whether Initialize has run.
func (k Keeper) IsInitialized(ctx context.Context) bool {
	return k.store.GetBool(ctx, types.InitializedKey())
}

// requireReady gates every value-moving operation on the ledger being
// initialized and running.
func (k Keeper) requireReady(ctx context.Context) error {
	if !k.IsInitialized(ctx) {
		return types.ErrNotInitialized
	}
	return k.RequireNotPaused(ctx)
}

// ledgerLock is the single guard name shared by every mutating entry
// point, so a transfer hook cannot enter any of them while one is running.
const ledgerLock = "ledger"

// atomic runs fn under the ledger's reentrancy guard on a branched context.
// The branch is written back only when fn succeeds, so a failed operation
// leaves no state behind.
func (k Keeper) atomic(ctx context.Context, op string, fn func(ctx sdk.Context) error) error {
	return k.guard.Run(ledgerLock, func() error {
		sdkCtx := sdk.UnwrapSDKContext(ctx)
		cacheCtx, write := sdkCtx.CacheContext()
		if err := fn(cacheCtx); err != nil {
			k.Logger(sdkCtx).Debug("ledger operation failed", "op", op, "error", err)
			return err
		}
		write()
		return nil
	})
}

// validateAsset rejects the zero asset and the settlement asset itself.
func (k Keeper) validateAsset(asset string) error {
	if asset == "" {
		return types.ErrInvalidAsset.Wrap("asset cannot be empty")
	}
	if asset == k.nativeDenom {
		return types.ErrInvalidAsset.Wrapf("%s is the settlement asset", asset)
	}
	if err := sdk.ValidateDenom(asset); err != nil {
		return types.ErrInvalidAsset.Wrap(err.Error())
	}
	return nil
}

// transfer moves assets and maps failures to ErrTransferFailed.
func (k Keeper) transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := k.assets.Transfer(ctx, from, to, denom, amount); err != nil {
		if errorsmod.IsOf(err, sharedtypes.ErrReentrancy) {
			return err
		}
		return types.ErrTransferFailed.Wrapf("%s %s from %s to %s: %v", amount, denom, from, to, err)
	}
	return nil
}

func requireNonNegative(name string, v math.Int) error {
	if v.IsNil() || v.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("%s must be non-negative", name)
	}
	return nil
}

func requirePositive(name string, v math.Int) error {
	if v.IsNil() || !v.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("%s must be positive", name)
	}
	return nil
}
