package types

// Event types for emergency approval
const (
	EventTypeProposalCreated  = "emergency_proposal_created"
	EventTypeProposalApproved = "emergency_proposal_approved"
	EventTypeProposalExecuted = "emergency_proposal_executed"
)

// Event attribute keys
const (
	AttributeKeyProposalID    = "proposal_id"
	AttributeKeyAsset         = "asset"
	AttributeKeyRecipient     = "recipient"
	AttributeKeyAmount        = "amount"
	AttributeKeySigner        = "signer"
	AttributeKeyApprovalCount = "approval_count"
	AttributeKeyDeadline      = "deadline"
)
