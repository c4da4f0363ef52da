package keeper

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/nativeswap/nativeswap/testutil/sample"
	"github.com/nativeswap/nativeswap/x/kvstore/keeper"
	"github.com/nativeswap/nativeswap/x/kvstore/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
)

// KVStoreKeeper creates a store keeper whose only administrator is
// sample.AccAddress("admin"). No writer is assigned.
func KVStoreKeeper(t testing.TB) (keeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := newContext(t, storeKey)

	policy, err := sharedkeeper.NewStaticPolicy([]sdk.AccAddress{sample.AccAddress("admin")}, nil, nil)
	require.NoError(t, err)

	return keeper.NewKeeper(storeKey, policy), ctx
}
