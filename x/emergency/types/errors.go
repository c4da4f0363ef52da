package types

import (
	"cosmossdk.io/errors"

	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Shared sentinels re-exported for callers of this module
var (
	ErrAccessDenied = sharedtypes.ErrAccessDenied
	ErrReentrancy   = sharedtypes.ErrReentrancy
)

// Emergency approval sentinel errors
var (
	ErrInvalidRecipient        = errors.Register(ModuleName, 2, "invalid recipient")
	ErrInvalidAmount           = errors.Register(ModuleName, 3, "invalid amount")
	ErrInvalidAsset            = errors.Register(ModuleName, 4, "invalid asset")
	ErrProposalAlreadyExists   = errors.Register(ModuleName, 5, "proposal already exists")
	ErrProposalNotFound        = errors.Register(ModuleName, 6, "proposal not found")
	ErrProposalDoesNotExist    = errors.Register(ModuleName, 7, "proposal does not exist")
	ErrProposalAlreadyExecuted = errors.Register(ModuleName, 8, "proposal already executed")
	ErrProposalExpired         = errors.Register(ModuleName, 9, "proposal expired")
	ErrProposalAlreadyApproved = errors.Register(ModuleName, 10, "proposal already approved by signer")
	ErrInsufficientApprovals   = errors.Register(ModuleName, 11, "insufficient approvals")
	ErrInvalidParams           = errors.Register(ModuleName, 12, "invalid parameters")
	ErrExecutorNotSet          = errors.Register(ModuleName, 13, "no withdrawal executor configured")
)
