package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Role identifies a privileged membership set.
type Role int

const (
	// RoleAdmin may reassign the store writer, register the emergency
	// executor and execute approved withdrawals.
	RoleAdmin Role = iota + 1
	// RoleFeeOperator may change the swap fee.
	RoleFeeOperator
	// RoleEmergencySigner may pause, unpause, propose and approve withdrawals.
	RoleEmergencySigner
)

// String returns the role name used in logs and configuration.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleFeeOperator:
		return "fee-operator"
	case RoleEmergencySigner:
		return "emergency-signer"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps a configuration name back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "fee-operator":
		return RoleFeeOperator, nil
	case "emergency-signer":
		return RoleEmergencySigner, nil
	default:
		return 0, ErrInvalidRole.Wrapf("unknown role %q", s)
	}
}

// IsZeroAddress reports whether addr is empty or consists only of zero bytes.
func IsZeroAddress(addr sdk.AccAddress) bool {
	for _, b := range addr {
		if b != 0 {
			return false
		}
	}
	return true
}
