package types

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/sha3"
)

// ProposalStatus is the lifecycle position of a proposal.
type ProposalStatus string

const (
	StatusProposed ProposalStatus = "proposed"
	StatusExecuted ProposalStatus = "executed"
	StatusExpired  ProposalStatus = "expired"
)

// Proposal is a pending or finished emergency withdrawal. Approver marks
// are stored next to it, one key per signer.
type Proposal struct {
	ID            string         `json:"id"`
	Asset         string         `json:"asset"`
	Recipient     sdk.AccAddress `json:"recipient"`
	Amount        math.Int       `json:"amount"`
	Proposer      sdk.AccAddress `json:"proposer"`
	CreatedAt     time.Time      `json:"created_at"`
	Deadline      time.Time      `json:"deadline"`
	ApprovalCount uint64         `json:"approval_count"`
	Executed      bool           `json:"executed"`
}

// Expired reports whether now is at or past the deadline.
func (p Proposal) Expired(now time.Time) bool {
	return !now.Before(p.Deadline)
}

// Status derives the lifecycle status at now.
func (p Proposal) Status(now time.Time) ProposalStatus {
	switch {
	case p.Executed:
		return StatusExecuted
	case p.Expired(now):
		return StatusExpired
	default:
		return StatusProposed
	}
}

// ComputeProposalID derives the content id of a proposal:
// hex(keccak256(len || asset || len || recipient || amount as 32 bytes || unix seconds)).
// Variable-length fields carry a 4-byte length so distinct inputs never
// share a preimage.
func ComputeProposalID(asset string, recipient sdk.AccAddress, amount math.Int, at time.Time) string {
	h := sha3.NewLegacyKeccak256()
	var lenBuf [4]byte
	for _, field := range [][]byte{[]byte(asset), recipient} {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(field)))
		h.Write(lenBuf[:])
		h.Write(field)
	}
	h.Write(amount.BigInt().FillBytes(make([]byte, 32)))
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(at.Unix()))
	h.Write(ts[:])
	return hex.EncodeToString(h.Sum(nil))
}
