package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// shareBalance returns holder's units of share token `token`.
func (k Keeper) shareBalance(ctx context.Context, token, holder sdk.AccAddress) math.Int {
	return k.getAmount(ctx, types.ShareBalanceKey(token, holder))
}

// shareSupply returns the total minted units of share token `token`.
func (k Keeper) shareSupply(ctx context.Context, token sdk.AccAddress) math.Int {
	return k.getAmount(ctx, types.ShareSupplyKey(token))
}

// mintShares credits `to` and grows the supply. The ledger is the only
// minter of its share tokens.
func (k Keeper) mintShares(ctx context.Context, pool types.Pool, to sdk.AccAddress, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("mint amount must be positive")
	}
	balance, err := k.shareBalance(ctx, pool.ShareToken, to).SafeAdd(amount)
	if err != nil {
		return types.ErrOverflow.Wrapf("share balance: %v", err)
	}
	supply, err := k.shareSupply(ctx, pool.ShareToken).SafeAdd(amount)
	if err != nil {
		return types.ErrOverflow.Wrapf("share supply: %v", err)
	}
	if err := k.setAmount(ctx, types.ShareBalanceKey(pool.ShareToken, to), balance); err != nil {
		return err
	}
	if err := k.setAmount(ctx, types.ShareSupplyKey(pool.ShareToken), supply); err != nil {
		return err
	}
	if err := k.trackHolder(ctx, pool.ShareToken, to); err != nil {
		return err
	}
	k.metrics.ShareSupply.WithLabelValues(pool.Asset).Set(approxFloat(supply))
	return nil
}

// burnShares debits `from` and shrinks the supply.
func (k Keeper) burnShares(ctx context.Context, pool types.Pool, from sdk.AccAddress, amount math.Int) error {
	balance := k.shareBalance(ctx, pool.ShareToken, from)
	if balance.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("balance %s, requested %s", balance, amount)
	}
	supply := k.shareSupply(ctx, pool.ShareToken)
	if supply.LT(amount) {
		return types.ErrInvariantViolation.Wrapf("burn %s exceeds supply %s", amount, supply)
	}
	if err := k.setAmount(ctx, types.ShareBalanceKey(pool.ShareToken, from), balance.Sub(amount)); err != nil {
		return err
	}
	newSupply := supply.Sub(amount)
	if err := k.setAmount(ctx, types.ShareSupplyKey(pool.ShareToken), newSupply); err != nil {
		return err
	}
	k.metrics.ShareSupply.WithLabelValues(pool.Asset).Set(approxFloat(newSupply))
	return nil
}

// trackHolder appends holder to the token's holder registry the first time
// it receives shares. Entries are never removed; a drained holder simply
// has a zero balance.
func (k Keeper) trackHolder(ctx context.Context, token, holder sdk.AccAddress) error {
	if k.store.GetBool(ctx, types.HolderTrackedKey(token, holder)) {
		return nil
	}
	n := k.getCounter(ctx, types.HolderCountKey(token))
	if err := k.store.SetAddress(ctx, k.identity, types.HolderAtKey(token, n), holder); err != nil {
		return err
	}
	if err := k.store.SetBool(ctx, k.identity, types.HolderTrackedKey(token, holder), true); err != nil {
		return err
	}
	return k.setCounter(ctx, types.HolderCountKey(token), n+1)
}

// IterateShareHolders walks every address that ever held shares of asset's
// pool, with its current balance, until cb returns true.
func (k Keeper) IterateShareHolders(ctx context.Context, asset string, cb func(holder sdk.AccAddress, balance math.Int) (stop bool)) error {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return err
	}
	count := k.getCounter(ctx, types.HolderCountKey(pool.ShareToken))
	for i := uint64(0); i < count; i++ {
		holder := k.store.GetAddress(ctx, types.HolderAtKey(pool.ShareToken, i))
		if cb(holder, k.shareBalance(ctx, pool.ShareToken, holder)) {
			break
		}
	}
	return nil
}

// GetShareBalance returns holder's shares in asset's pool.
func (k Keeper) GetShareBalance(ctx context.Context, asset string, holder sdk.AccAddress) (math.Int, error) {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	return k.shareBalance(ctx, pool.ShareToken, holder), nil
}

// GetTotalShares returns the share supply of asset's pool.
func (k Keeper) GetTotalShares(ctx context.Context, asset string) (math.Int, error) {
	pool, err := k.mustGetPool(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	return pool.TotalShares, nil
}

// TransferShares moves share units between holders. The minimum-lock sink
// is neither sender nor recipient: its balance stays at MinimumLock.
func (k Keeper) TransferShares(ctx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) error {
	if sharedtypes.IsZeroAddress(to) {
		return types.ErrZeroAddress.Wrap("share recipient cannot be the zero address")
	}
	if err := requirePositive("share amount", amount); err != nil {
		return err
	}
	return k.atomic(ctx, "transfer_shares", func(ctx sdk.Context) error {
		if err := k.requireReady(ctx); err != nil {
			return err
		}
		pool, err := k.mustGetPool(ctx, asset)
		if err != nil {
			return err
		}
		if caller.Equals(types.MinimumLockSink) {
			return types.ErrAccessDenied.Wrap("locked shares cannot move")
		}
		if to.Equals(types.MinimumLockSink) {
			return types.ErrAccessDenied.Wrap("the minimum-lock sink cannot receive shares")
		}
		if err := k.burnShares(ctx, pool, caller, amount); err != nil {
			return err
		}
		if err := k.mintShares(ctx, pool, to, amount); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSharesTransferred,
				sdk.NewAttribute(types.AttributeKeyAsset, asset),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
				sdk.NewAttribute(types.AttributeKeyShares, amount.String()),
			),
		)
		return nil
	})
}
