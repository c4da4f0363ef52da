package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// =============================================================================
// Asset Keeper Interfaces (Versioned)
// =============================================================================

// AssetKeeperV1 is the fungible asset boundary consumed by the ledger.
// Version 1.0 - transfer and balance only.
// Any returned error is fatal to the enclosing operation.
type AssetKeeperV1 interface {
	// Transfer moves amount of denom from one account to another. It covers
	// both transfer(to, amount) and transferFrom(from, to, amount).
	Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount sdkmath.Int) error

	// BalanceOf returns the balance of who in denom.
	BalanceOf(ctx context.Context, who sdk.AccAddress, denom string) sdkmath.Int
}

// =============================================================================
// Emergency Executor Interfaces (Versioned)
// =============================================================================

// EmergencyExecutorV1 is implemented by the ledger's privileged-withdraw
// entry point and invoked only by the emergency approval module.
type EmergencyExecutorV1 interface {
	ExecuteEmergencyWithdraw(ctx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount sdkmath.Int) error
}

// =============================================================================
// Store Keeper Interfaces (Versioned)
// =============================================================================

// WriterRegistryV1 exposes the store's single-writer gate to the engine.
type WriterRegistryV1 interface {
	Writer(ctx context.Context) sdk.AccAddress
	ReassignWriter(ctx context.Context, caller, newWriter sdk.AccAddress) error
}
