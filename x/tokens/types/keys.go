package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "tokens"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// BalanceKeyPrefix is the prefix for account balances
	BalanceKeyPrefix = []byte{0x01}

	// SupplyKeyPrefix is the prefix for per-denomination supply
	SupplyKeyPrefix = []byte{0x02}
)

// BalanceKey returns the store key for who's balance of denom
func BalanceKey(who sdk.AccAddress, denom string) []byte {
	key := make([]byte, 0, len(BalanceKeyPrefix)+1+len(who)+len(denom))
	key = append(key, BalanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(who)...)
	return append(key, denom...)
}

// SupplyKey returns the store key for the total supply of denom
func SupplyKey(denom string) []byte {
	key := make([]byte, 0, len(SupplyKeyPrefix)+len(denom))
	key = append(key, SupplyKeyPrefix...)
	return append(key, denom...)
}
