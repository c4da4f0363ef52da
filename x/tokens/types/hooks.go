package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TransferHook runs after a transfer of its denomination has been booked.
// It models tokens that hand control to arbitrary code on transfer; a
// returned error fails the transfer.
type TransferHook func(ctx context.Context, from, to sdk.AccAddress, amount math.Int) error

// Allocation is a genesis balance.
type Allocation struct {
	Address sdk.AccAddress `json:"address"`
	Denom   string         `json:"denom"`
	Amount  math.Int       `json:"amount"`
}
