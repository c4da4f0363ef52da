package types

import (
	"cosmossdk.io/errors"

	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Shared sentinels re-exported for callers of this module
var (
	ErrAccessDenied = sharedtypes.ErrAccessDenied
	ErrZeroAddress  = sharedtypes.ErrZeroAddress
	ErrReentrancy   = sharedtypes.ErrReentrancy
)

// Ledger sentinel errors
var (
	ErrInvalidAsset                 = errors.Register(ModuleName, 2, "invalid asset")
	ErrInvalidAmount                = errors.Register(ModuleName, 3, "invalid amount")
	ErrPoolNotExist                 = errors.Register(ModuleName, 4, "pool does not exist")
	ErrEmptyPool                    = errors.Register(ModuleName, 5, "pool has an empty reserve")
	ErrInsufficientInitialLiquidity = errors.Register(ModuleName, 6, "insufficient initial liquidity")
	ErrInsufficientLiquidityMinted  = errors.Register(ModuleName, 7, "insufficient liquidity minted")
	ErrInsufficientOutput           = errors.Register(ModuleName, 8, "insufficient output amount")
	ErrPriceImpactTooHigh           = errors.Register(ModuleName, 9, "price impact too high")
	ErrSwapAmountTooHigh            = errors.Register(ModuleName, 10, "swap amount too high")
	ErrInsufficientShares           = errors.Register(ModuleName, 11, "insufficient shares")
	ErrDeadlineExceeded             = errors.Register(ModuleName, 12, "deadline exceeded")
	ErrModulePaused                 = errors.Register(ModuleName, 13, "ledger is paused")
	ErrAlreadyPaused                = errors.Register(ModuleName, 14, "ledger is already paused")
	ErrNotPaused                    = errors.Register(ModuleName, 15, "ledger is not paused")
	ErrAlreadyInitialized           = errors.Register(ModuleName, 16, "ledger already initialized")
	ErrNotInitialized               = errors.Register(ModuleName, 17, "ledger not initialized")
	ErrDivisionByZero               = errors.Register(ModuleName, 18, "division by zero")
	ErrOverflow                     = errors.Register(ModuleName, 19, "arithmetic overflow")
	ErrInvalidFee                   = errors.Register(ModuleName, 20, "invalid fee")
	ErrInvalidSlippage              = errors.Register(ModuleName, 21, "invalid slippage tolerance")
	ErrInvariantViolation           = errors.Register(ModuleName, 22, "ledger invariant violated")
	ErrTransferFailed               = errors.Register(ModuleName, 23, "asset transfer failed")
)
