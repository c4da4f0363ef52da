// Package sample provides deterministic identities for tests.
package sample

import (
	"github.com/cometbft/cometbft/crypto/tmhash"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccAddress returns a deterministic address derived from name.
func AccAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(tmhash.SumTruncated([]byte(name)))
}

// AccAddresses returns n distinct deterministic addresses sharing prefix.
func AccAddresses(prefix string, n int) []sdk.AccAddress {
	out := make([]sdk.AccAddress, n)
	for i := range out {
		out[i] = AccAddress(prefix + string(rune('a'+i)))
	}
	return out
}
