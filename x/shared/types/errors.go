package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace for errors shared by every module.
const ModuleName = "shared"

// Cross-module sentinel errors
var (
	ErrAccessDenied   = errors.Register(ModuleName, 2, "access denied")
	ErrZeroAddress    = errors.Register(ModuleName, 3, "zero address")
	ErrReentrancy     = errors.Register(ModuleName, 4, "reentrant call rejected")
	ErrInvalidRole    = errors.Register(ModuleName, 5, "invalid role")
	ErrInvalidVersion = errors.Register(ModuleName, 6, "invalid ledger version")
	ErrGenesisApplied = errors.Register(ModuleName, 7, "genesis already applied")
)
