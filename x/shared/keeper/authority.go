// Package keeper provides the role policy, reentrancy guard and versioned
// interfaces shared by the store, ledger and emergency modules.
package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/shared/types"
)

// ValidateAuthority checks that the provided identity matches the single
// expected identity. It is used where a role is held by exactly one address,
// such as the registered emergency executor.
//
// Usage example:
//
//	if err := keeper.ValidateAuthority(executor, caller); err != nil {
//	    return err
//	}
func ValidateAuthority(expected, actual sdk.AccAddress) error {
	if types.IsZeroAddress(expected) || !expected.Equals(actual) {
		return types.ErrAccessDenied.Wrapf(
			"invalid authority; expected %s, got %s",
			expected,
			actual,
		)
	}
	return nil
}

// Policy answers role membership questions. Implementations decide how
// membership is stored; callers only consult it at operation entry.
type Policy interface {
	HasRole(role types.Role, addr sdk.AccAddress) bool
}

// RequireRole returns ErrAccessDenied unless addr holds role under policy.
func RequireRole(policy Policy, role types.Role, addr sdk.AccAddress) error {
	if policy == nil || types.IsZeroAddress(addr) || !policy.HasRole(role, addr) {
		return types.ErrAccessDenied.Wrapf("%s does not hold role %s", addr, role)
	}
	return nil
}

// StaticPolicy is a Policy whose membership is fixed at construction.
type StaticPolicy struct {
	members map[types.Role]map[string]struct{}
	order   map[types.Role][]sdk.AccAddress
}

// NewStaticPolicy builds a policy from the three role lists. Zero addresses
// are rejected.
func NewStaticPolicy(admins, feeOperators, signers []sdk.AccAddress) (*StaticPolicy, error) {
	p := &StaticPolicy{
		members: make(map[types.Role]map[string]struct{}),
		order:   make(map[types.Role][]sdk.AccAddress),
	}
	for role, list := range map[types.Role][]sdk.AccAddress{
		types.RoleAdmin:           admins,
		types.RoleFeeOperator:     feeOperators,
		types.RoleEmergencySigner: signers,
	} {
		set := make(map[string]struct{}, len(list))
		for _, addr := range list {
			if types.IsZeroAddress(addr) {
				return nil, types.ErrZeroAddress.Wrapf("%s member", role)
			}
			if _, dup := set[string(addr)]; dup {
				continue
			}
			set[string(addr)] = struct{}{}
			p.order[role] = append(p.order[role], addr)
		}
		p.members[role] = set
	}
	return p, nil
}

// HasRole implements Policy.
func (p *StaticPolicy) HasRole(role types.Role, addr sdk.AccAddress) bool {
	_, ok := p.members[role][string(addr)]
	return ok
}

// Members returns the members of role in configuration order.
func (p *StaticPolicy) Members(role types.Role) []sdk.AccAddress {
	out := make([]sdk.AccAddress, len(p.order[role]))
	copy(out, p.order[role])
	return out
}
