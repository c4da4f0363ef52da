package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"
)

// Domain tags for ledger state in the typed key-value store. They are part
// of the persisted layout: changing one orphans existing data.
const (
	DomainAssetReserve  = "amm/pool/asset-reserve"
	DomainBaseReserve   = "amm/pool/base-reserve"
	DomainShareToken    = "amm/pool/share-token"
	DomainPoolCount     = "amm/pool/count"
	DomainPoolIndex     = "amm/pool/index"
	DomainFeeBps        = "amm/fee-bps"
	DomainPaused        = "amm/paused"
	DomainExecutor      = "amm/executor"
	DomainInitialized   = "amm/initialized"
	DomainShareSupply   = "amm/share/supply"
	DomainShareBalance  = "amm/share/balance"
	DomainHolderCount   = "amm/share/holder-count"
	DomainHolderAt      = "amm/share/holder"
	DomainHolderTracked = "amm/share/holder-tracked"
)

var (
	// VaultAddress holds every asset deposited into any pool. It does not
	// change when the ledger logic is upgraded.
	VaultAddress = sdk.AccAddress(address.Module(ModuleName, []byte("vault")))

	// MinimumLockSink permanently holds MinimumLock shares of every pool.
	// Nothing can spend from it.
	MinimumLockSink = sdk.AccAddress(address.Module(ModuleName, []byte("minimum-lock")))
)

// LedgerIdentity returns the store-writer identity of a ledger logic version.
func LedgerIdentity(version string) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, []byte("ledger"), []byte(version)))
}

// ShareTokenID returns the identifier of the share token of asset's pool.
func ShareTokenID(asset string) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, []byte("share"), []byte(asset)))
}

// AssetReserveKey returns the store key for a pool's traded-asset reserve
func AssetReserveKey(asset string) kvtypes.Key {
	return kvtypes.NewKey(DomainAssetReserve, []byte(asset))
}

// BaseReserveKey returns the store key for a pool's settlement-asset reserve
func BaseReserveKey(asset string) kvtypes.Key {
	return kvtypes.NewKey(DomainBaseReserve, []byte(asset))
}

// ShareTokenKey returns the store key for a pool's share token id
func ShareTokenKey(asset string) kvtypes.Key {
	return kvtypes.NewKey(DomainShareToken, []byte(asset))
}

// PoolCountKey returns the store key for the number of pools
func PoolCountKey() kvtypes.Key {
	return kvtypes.NewKey(DomainPoolCount)
}

// PoolIndexKey returns the store key for the n-th created pool's asset
func PoolIndexKey(n uint64) kvtypes.Key {
	return kvtypes.NewKey(DomainPoolIndex, kvtypes.Uint64Part(n))
}

// FeeBpsKey returns the store key for the swap fee
func FeeBpsKey() kvtypes.Key {
	return kvtypes.NewKey(DomainFeeBps)
}

// PausedKey returns the store key for the global pause flag
func PausedKey() kvtypes.Key {
	return kvtypes.NewKey(DomainPaused)
}

// ExecutorKey returns the store key for the emergency executor identity
func ExecutorKey() kvtypes.Key {
	return kvtypes.NewKey(DomainExecutor)
}

// InitializedKey returns the store key for the initialization latch
func InitializedKey() kvtypes.Key {
	return kvtypes.NewKey(DomainInitialized)
}

// ShareSupplyKey returns the store key for a share token's total supply
func ShareSupplyKey(token sdk.AccAddress) kvtypes.Key {
	return kvtypes.NewKey(DomainShareSupply, token)
}

// ShareBalanceKey returns the store key for a holder's share balance
func ShareBalanceKey(token, holder sdk.AccAddress) kvtypes.Key {
	return kvtypes.NewKey(DomainShareBalance, token, holder)
}

// HolderCountKey returns the store key for the number of tracked holders
func HolderCountKey(token sdk.AccAddress) kvtypes.Key {
	return kvtypes.NewKey(DomainHolderCount, token)
}

// HolderAtKey returns the store key for the n-th tracked holder
func HolderAtKey(token sdk.AccAddress, n uint64) kvtypes.Key {
	return kvtypes.NewKey(DomainHolderAt, token, kvtypes.Uint64Part(n))
}

// HolderTrackedKey returns the store key marking holder as tracked
func HolderTrackedKey(token, holder sdk.AccAddress) kvtypes.Key {
	return kvtypes.NewKey(DomainHolderTracked, token, holder)
}
