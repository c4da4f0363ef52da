// Package errclass maps module errors onto the engine's error taxonomy and
// logs failures with their class.
package errclass

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
	tokentypes "github.com/nativeswap/nativeswap/x/tokens/types"
)

// Class is the taxonomy bucket of an error. Every class is synchronous and
// non-retryable by the engine.
type Class int

const (
	// Internal covers errors outside the taxonomy: corrupt state,
	// arithmetic overflow, failed external transfers.
	Internal Class = iota
	// AccessDenied covers unauthorized writers and missing roles.
	AccessDenied
	// Validation covers zero addresses and amounts, unknown pools, empty
	// pools and malformed parameters.
	Validation
	// EconomicGuard covers pricing and liquidity protections.
	EconomicGuard
	// Lifecycle covers state-machine violations.
	Lifecycle
	// Temporal covers exceeded deadlines.
	Temporal
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case AccessDenied:
		return "access_denied"
	case Validation:
		return "validation"
	case EconomicGuard:
		return "economic_guard"
	case Lifecycle:
		return "lifecycle"
	case Temporal:
		return "temporal"
	default:
		return "internal"
	}
}

var (
	accessDenied = []error{
		sharedtypes.ErrAccessDenied,
		sharedtypes.ErrReentrancy,
	}

	validation = []error{
		sharedtypes.ErrZeroAddress,
		sharedtypes.ErrInvalidRole,
		sharedtypes.ErrInvalidVersion,
		kvtypes.ErrInvalidKind,
		kvtypes.ErrInvalidValue,
		ammtypes.ErrInvalidAsset,
		ammtypes.ErrInvalidAmount,
		ammtypes.ErrPoolNotExist,
		ammtypes.ErrEmptyPool,
		ammtypes.ErrInvalidFee,
		ammtypes.ErrInvalidSlippage,
		ammtypes.ErrInsufficientShares,
		emergencytypes.ErrInvalidRecipient,
		emergencytypes.ErrInvalidAmount,
		emergencytypes.ErrInvalidAsset,
		emergencytypes.ErrInvalidParams,
		tokentypes.ErrInvalidDenom,
		tokentypes.ErrInvalidAmount,
		tokentypes.ErrInsufficientFunds,
	}

	economicGuard = []error{
		ammtypes.ErrInsufficientOutput,
		ammtypes.ErrPriceImpactTooHigh,
		ammtypes.ErrSwapAmountTooHigh,
		ammtypes.ErrInsufficientLiquidityMinted,
		ammtypes.ErrInsufficientInitialLiquidity,
	}

	lifecycle = []error{
		sharedtypes.ErrGenesisApplied,
		ammtypes.ErrModulePaused,
		ammtypes.ErrAlreadyPaused,
		ammtypes.ErrNotPaused,
		ammtypes.ErrAlreadyInitialized,
		ammtypes.ErrNotInitialized,
		emergencytypes.ErrProposalAlreadyExists,
		emergencytypes.ErrProposalNotFound,
		emergencytypes.ErrProposalDoesNotExist,
		emergencytypes.ErrProposalAlreadyExecuted,
		emergencytypes.ErrProposalAlreadyApproved,
		emergencytypes.ErrProposalExpired,
		emergencytypes.ErrInsufficientApprovals,
		emergencytypes.ErrExecutorNotSet,
	}

	temporal = []error{
		ammtypes.ErrDeadlineExceeded,
	}
)

// Classify returns the class of err. Transfer failures are classified by
// their cause when it is known, so a rejected hook keeps its own class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return Internal
	case errorsmod.IsOf(err, accessDenied...):
		return AccessDenied
	case errorsmod.IsOf(err, temporal...):
		return Temporal
	case errorsmod.IsOf(err, economicGuard...):
		return EconomicGuard
	case errorsmod.IsOf(err, lifecycle...):
		return Lifecycle
	case errorsmod.IsOf(err, validation...):
		return Validation
	default:
		return Internal
	}
}

// Severity ranks a class for logging.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	default:
		return "high"
	}
}

// SeverityOf returns how loudly a failure of class c is logged. Caller
// mistakes are routine; access violations and internal faults are not.
func SeverityOf(c Class) Severity {
	switch c {
	case Internal:
		return SeverityHigh
	case AccessDenied:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Handler logs operation failures with class and severity.
type Handler struct {
	logger log.Logger
}

// NewHandler creates a handler writing to logger.
func NewHandler(logger log.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs err and returns its class. A nil error is not logged.
func (h *Handler) Handle(operation string, err error) Class {
	if err == nil {
		return Internal
	}
	class := Classify(err)
	severity := SeverityOf(class)
	keyvals := []any{
		"operation", operation,
		"class", class.String(),
		"severity", severity.String(),
		"error", err.Error(),
	}
	switch severity {
	case SeverityHigh:
		h.logger.Error("operation failed", keyvals...)
	case SeverityMedium:
		h.logger.Warn("operation rejected", keyvals...)
	default:
		h.logger.Debug("operation rejected", keyvals...)
	}
	return class
}
