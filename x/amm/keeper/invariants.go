package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/amm/types"
)

// RegisterInvariants registers all ledger invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "minimum-lock", MinimumLockInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "vault-solvency", VaultSolvencyInvariant(k))
}

// AllInvariants runs the invariants that hold unconditionally. Vault
// solvency is excluded because an emergency withdrawal breaks it.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PositiveReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = MinimumLockInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ShareSupplyInvariant(k)(ctx)
	}
}

// PositiveReservesInvariant checks that every existing pool has both
// reserves strictly positive
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		k.IteratePools(ctx, func(pool types.Pool) bool {
			if !pool.AssetReserve.IsPositive() || !pool.BaseReserve.IsPositive() {
				count++
				msg += fmt.Sprintf("pool %s: asset reserve %s, base reserve %s\n",
					pool.Asset, pool.AssetReserve, pool.BaseReserve)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("found %d pools with an empty reserve\n%s", count, msg),
		), broken
	}
}

// MinimumLockInvariant checks that the sink holds exactly MinimumLock
// shares of every pool
func MinimumLockInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		k.IteratePools(ctx, func(pool types.Pool) bool {
			locked := k.shareBalance(ctx, pool.ShareToken, types.MinimumLockSink)
			if !locked.Equal(types.MinimumLock) {
				count++
				msg += fmt.Sprintf("pool %s: sink holds %s shares, expected %s\n",
					pool.Asset, locked, types.MinimumLock)
			}
			if pool.TotalShares.LT(types.MinimumLock) {
				count++
				msg += fmt.Sprintf("pool %s: supply %s below minimum lock\n", pool.Asset, pool.TotalShares)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "minimum-lock",
			fmt.Sprintf("found %d minimum lock violations\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that each pool's share supply equals the sum
// of its holders' balances
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		k.IteratePools(ctx, func(pool types.Pool) bool {
			sum := math.ZeroInt()
			if err := k.IterateShareHolders(ctx, pool.Asset, func(_ sdk.AccAddress, balance math.Int) bool {
				sum = sum.Add(balance)
				return false
			}); err != nil {
				count++
				msg += fmt.Sprintf("pool %s: %v\n", pool.Asset, err)
				return false
			}
			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %s: supply %s, sum of balances %s\n",
					pool.Asset, pool.TotalShares, sum)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d share supply mismatches\n%s", count, msg),
		), broken
	}
}

// VaultSolvencyInvariant checks that the vault holds at least the recorded
// reserves of every denomination. It is expected to break after an
// emergency withdrawal.
func VaultSolvencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		owed := map[string]math.Int{k.nativeDenom: math.ZeroInt()}
		k.IteratePools(ctx, func(pool types.Pool) bool {
			owed[pool.Asset] = pool.AssetReserve
			owed[k.nativeDenom] = owed[k.nativeDenom].Add(pool.BaseReserve)
			return false
		})
		for denom, reserve := range owed {
			held := k.assets.BalanceOf(ctx, types.VaultAddress, denom)
			if held.LT(reserve) {
				count++
				msg += fmt.Sprintf("denom %s: vault holds %s, reserves total %s\n", denom, held, reserve)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "vault-solvency",
			fmt.Sprintf("found %d under-collateralized denominations\n%s", count, msg),
		), broken
	}
}
