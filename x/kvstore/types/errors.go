package types

import (
	"cosmossdk.io/errors"

	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// Store errors. Access and zero-address failures reuse the shared
// sentinels so callers can classify them uniformly.
var (
	ErrAccessDenied = sharedtypes.ErrAccessDenied
	ErrZeroAddress  = sharedtypes.ErrZeroAddress

	ErrInvalidKind  = errors.Register(ModuleName, 2, "invalid value kind")
	ErrInvalidValue = errors.Register(ModuleName, 3, "invalid value")
)
