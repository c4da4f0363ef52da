package types

import (
	"time"
)

// DefaultProposalDuration is how long a proposal accepts approvals.
const DefaultProposalDuration = 24 * time.Hour

// Params configures the approval threshold.
type Params struct {
	RequiredApprovals uint64        `json:"required_approvals"`
	ProposalDuration  time.Duration `json:"proposal_duration"`
}

// DefaultParams returns a 2-approval, 24 hour configuration.
func DefaultParams() Params {
	return Params{
		RequiredApprovals: 2,
		ProposalDuration:  DefaultProposalDuration,
	}
}

// Validate checks the threshold against the number of configured signers.
func (p Params) Validate(signerCount int) error {
	if p.RequiredApprovals == 0 {
		return ErrInvalidParams.Wrap("required approvals must be at least 1")
	}
	if p.RequiredApprovals > uint64(signerCount) {
		return ErrInvalidParams.Wrapf("required approvals %d exceeds %d signers", p.RequiredApprovals, signerCount)
	}
	if p.ProposalDuration <= 0 {
		return ErrInvalidParams.Wrap("proposal duration must be positive")
	}
	return nil
}
