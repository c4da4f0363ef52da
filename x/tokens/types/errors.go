package types

import (
	"cosmossdk.io/errors"
)

// Asset sentinel errors
var (
	ErrInvalidDenom      = errors.Register(ModuleName, 2, "invalid denomination")
	ErrInvalidAmount     = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientFunds = errors.Register(ModuleName, 4, "insufficient funds")
)
