package types

import (
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
)

// Executor performs an approved withdrawal.
// Alias to the versioned shared interface.
type Executor = sharedkeeper.EmergencyExecutorV1
