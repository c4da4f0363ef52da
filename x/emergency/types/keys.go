package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "emergency"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ProposalKeyPrefix is the prefix for proposal records
	ProposalKeyPrefix = []byte{0x01}

	// ApprovalKeyPrefix is the prefix for per-signer approval marks
	ApprovalKeyPrefix = []byte{0x02}

	// ProposalIndexKeyPrefix is the prefix for the creation-order index
	ProposalIndexKeyPrefix = []byte{0x03}

	// ProposalCountKey holds the number of proposals ever created
	ProposalCountKey = []byte{0x04}

	// ParamsKey holds the module parameters
	ParamsKey = []byte{0x05}
)

// ModuleAddress is the identity the module uses when it invokes the
// registered executor.
var ModuleAddress = sdk.AccAddress(address.Module(ModuleName))

// ProposalKey returns the store key for a proposal
func ProposalKey(id string) []byte {
	return append(append([]byte{}, ProposalKeyPrefix...), id...)
}

// ApprovalKey returns the store key marking signer's approval of a proposal
func ApprovalKey(id string, signer sdk.AccAddress) []byte {
	key := append(append([]byte{}, ApprovalKeyPrefix...), address.MustLengthPrefix([]byte(id))...)
	return append(key, signer...)
}

// ProposalIndexKey returns the store key for the n-th created proposal
func ProposalIndexKey(n uint64) []byte {
	return append(append([]byte{}, ProposalIndexKeyPrefix...), sdk.Uint64ToBigEndian(n)...)
}
