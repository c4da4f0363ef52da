package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
)

// StoreKeeper is the subset of the typed key-value store used by the ledger.
// All ledger state flows through these accessors so the backend can be
// swapped without touching call sites.
type StoreKeeper interface {
	SetUint(ctx context.Context, caller sdk.AccAddress, key kvtypes.Key, value math.Uint) error
	GetUint(ctx context.Context, key kvtypes.Key) math.Uint
	SetString(ctx context.Context, caller sdk.AccAddress, key kvtypes.Key, value string) error
	GetString(ctx context.Context, key kvtypes.Key) string
	SetBool(ctx context.Context, caller sdk.AccAddress, key kvtypes.Key, value bool) error
	GetBool(ctx context.Context, key kvtypes.Key) bool
	SetAddress(ctx context.Context, caller sdk.AccAddress, key kvtypes.Key, value sdk.AccAddress) error
	GetAddress(ctx context.Context, key kvtypes.Key) sdk.AccAddress
}

// AssetKeeper moves fungible assets.
// Alias to the versioned shared interface.
type AssetKeeper = sharedkeeper.AssetKeeperV1
