package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/nativeswap/nativeswap/testutil/sample"
	ammkeeper "github.com/nativeswap/nativeswap/x/amm/keeper"
	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencykeeper "github.com/nativeswap/nativeswap/x/emergency/keeper"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
	kvkeeper "github.com/nativeswap/nativeswap/x/kvstore/keeper"
	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	tokenskeeper "github.com/nativeswap/nativeswap/x/tokens/keeper"
	tokenstypes "github.com/nativeswap/nativeswap/x/tokens/types"
)

// NativeDenom is the settlement asset of test ledgers.
const NativeDenom = "unative"

// LedgerFixture wires the store, ledger, asset and emergency keepers the
// way the engine does at genesis.
type LedgerFixture struct {
	Ctx       sdk.Context
	Store     kvkeeper.Keeper
	Ledger    ammkeeper.Keeper
	Tokens    tokenskeeper.Keeper
	Emergency emergencykeeper.Keeper
	Policy    *sharedkeeper.StaticPolicy

	EmergencyKey storetypes.StoreKey

	Admin       sdk.AccAddress
	FeeOperator sdk.AccAddress
	Signers     []sdk.AccAddress
}

// LedgerKeeper creates an initialized ledger with the default fee, the
// emergency module registered as executor and a 2-of-3 signer threshold.
func LedgerKeeper(t testing.TB) *LedgerFixture {
	t.Helper()

	kvKey := storetypes.NewKVStoreKey(kvtypes.StoreKey)
	tokensKey := storetypes.NewKVStoreKey(tokenstypes.StoreKey)
	emergencyKey := storetypes.NewKVStoreKey(emergencytypes.StoreKey)
	ctx := newContext(t, kvKey, tokensKey, emergencyKey)

	f := &LedgerFixture{
		Admin:       sample.AccAddress("admin"),
		FeeOperator: sample.AccAddress("fee-operator"),
		Signers:     sample.AccAddresses("signer-", 3),
	}

	policy, err := sharedkeeper.NewStaticPolicy(
		[]sdk.AccAddress{f.Admin},
		[]sdk.AccAddress{f.FeeOperator},
		f.Signers,
	)
	require.NoError(t, err)
	f.Policy = policy

	f.Store = kvkeeper.NewKeeper(kvKey, policy)
	f.Tokens = tokenskeeper.NewKeeper(tokensKey)
	f.Ledger = ammkeeper.NewKeeper(f.Store, f.Tokens, policy, NativeDenom, ammtypes.DefaultLedgerVersion)
	f.Emergency = emergencykeeper.NewKeeper(emergencyKey, policy, f.Ledger)
	f.EmergencyKey = emergencyKey

	require.NoError(t, f.Store.ReassignWriter(ctx, f.Admin, f.Ledger.Identity()))
	require.NoError(t, f.Ledger.Initialize(ctx, f.Admin, ammtypes.DefaultFeeBps))
	require.NoError(t, f.Ledger.SetEmergencyExecutor(ctx, f.Admin, emergencytypes.ModuleAddress))
	require.NoError(t, f.Emergency.SetParams(ctx, emergencytypes.DefaultParams(), len(f.Signers)))

	f.Ctx = ctx
	return f
}

// Fund mints amount of denom to addr.
func (f *LedgerFixture) Fund(t testing.TB, addr sdk.AccAddress, denom string, amount math.Int) {
	t.Helper()
	require.NoError(t, f.Tokens.Mint(f.Ctx, addr, denom, amount))
}

// CreatePool funds provider and creates asset's pool with the given reserves.
func (f *LedgerFixture) CreatePool(t testing.TB, provider sdk.AccAddress, asset string, assetAmount, baseAmount math.Int) ammtypes.AddLiquidityResult {
	t.Helper()
	f.Fund(t, provider, asset, assetAmount)
	f.Fund(t, provider, NativeDenom, baseAmount)
	res, err := f.Ledger.AddLiquidity(f.Ctx, provider, asset, assetAmount, baseAmount)
	require.NoError(t, err)
	require.True(t, res.Created)
	return res
}

// Advance moves the block time forward by d.
func (f *LedgerFixture) Advance(d time.Duration) {
	f.Ctx = f.Ctx.WithBlockTime(f.Ctx.BlockTime().Add(d))
}

// Deadline returns a deadline d after the current block time.
func (f *LedgerFixture) Deadline(d time.Duration) time.Time {
	return f.Ctx.BlockTime().Add(d)
}

// Pause pauses the ledger as the first signer.
func (f *LedgerFixture) Pause(t testing.TB) {
	t.Helper()
	require.NoError(t, f.Ledger.Pause(f.Ctx, f.Signers[0]))
}
