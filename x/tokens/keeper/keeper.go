package keeper

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	"github.com/nativeswap/nativeswap/x/tokens/types"
)

// Keeper is a minimal multi-denomination balance book. It stands in for
// the external fungible asset contracts the ledger trades against.
type Keeper struct {
	storeKey storetypes.StoreKey
	hooks    *hookRegistry
}

var _ sharedkeeper.AssetKeeperV1 = Keeper{}

type hookRegistry struct {
	mu    sync.RWMutex
	hooks map[string]types.TransferHook
}

// NewKeeper creates a new asset Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{
		storeKey: key,
		hooks:    &hookRegistry{hooks: make(map[string]types.TransferHook)},
	}
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// SetTransferHook installs (or with nil, removes) the hook of denom.
func (k Keeper) SetTransferHook(denom string, hook types.TransferHook) {
	k.hooks.mu.Lock()
	defer k.hooks.mu.Unlock()
	if hook == nil {
		delete(k.hooks.hooks, denom)
		return
	}
	k.hooks.hooks[denom] = hook
}

func (k Keeper) hook(denom string) types.TransferHook {
	k.hooks.mu.RLock()
	defer k.hooks.mu.RUnlock()
	return k.hooks.hooks[denom]
}

func (k Keeper) getInt(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt amount", "error", err)
		return math.ZeroInt()
	}
	return v
}

func (k Keeper) setInt(ctx context.Context, key []byte, v math.Int) error {
	store := k.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// BalanceOf returns who's balance of denom.
func (k Keeper) BalanceOf(ctx context.Context, who sdk.AccAddress, denom string) math.Int {
	return k.getInt(ctx, types.BalanceKey(who, denom))
}

// TotalSupply returns the minted amount of denom.
func (k Keeper) TotalSupply(ctx context.Context, denom string) math.Int {
	return k.getInt(ctx, types.SupplyKey(denom))
}

// Mint creates amount of denom in to's account. It is only reachable from
// genesis.
func (k Keeper) Mint(ctx context.Context, to sdk.AccAddress, denom string, amount math.Int) error {
	if err := validate(denom, amount); err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrInvalidAmount.Wrap("mint recipient cannot be empty")
	}
	supply, err := k.TotalSupply(ctx, denom).SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("supply overflow: %v", err)
	}
	if err := k.setInt(ctx, types.SupplyKey(denom), supply); err != nil {
		return err
	}
	return k.setInt(ctx, types.BalanceKey(to, denom), k.BalanceOf(ctx, to, denom).Add(amount))
}

// Transfer moves amount of denom from one account to another and then runs
// the denomination's hook, if any.
func (k Keeper) Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error {
	if err := validate(denom, amount); err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrInvalidAmount.Wrap("transfer recipient cannot be empty")
	}
	balance := k.BalanceOf(ctx, from, denom)
	if balance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s%s", from, balance, denom, amount, denom)
	}
	if err := k.setInt(ctx, types.BalanceKey(from, denom), balance.Sub(amount)); err != nil {
		return err
	}
	if err := k.setInt(ctx, types.BalanceKey(to, denom), k.BalanceOf(ctx, to, denom).Add(amount)); err != nil {
		return err
	}

	if hook := k.hook(denom); hook != nil {
		if err := hook(ctx, from, to, amount); err != nil {
			return fmt.Errorf("%s transfer hook: %w", denom, err)
		}
	}
	return nil
}

func validate(denom string, amount math.Int) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidDenom.Wrap(err.Error())
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("amount %s must be non-negative", amount)
	}
	return nil
}
