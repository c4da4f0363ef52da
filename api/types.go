package api

import (
	"time"

	"cosmossdk.io/math"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Amounts travel as decimal strings; deadlines as unix seconds, where zero
// means the server default.

// AddLiquidityRequest deposits into a pool, creating it if needed.
type AddLiquidityRequest struct {
	Asset       string `json:"asset" binding:"required"`
	AssetAmount string `json:"asset_amount" binding:"required"`
	BaseAmount  string `json:"base_amount" binding:"required"`
}

// RemoveLiquidityRequest burns shares for a proportional payout.
type RemoveLiquidityRequest struct {
	Asset       string `json:"asset" binding:"required"`
	Shares      string `json:"shares" binding:"required"`
	MinBaseOut  string `json:"min_base_out"`
	MinAssetOut string `json:"min_asset_out"`
	Deadline    int64  `json:"deadline"`
}

// SwapRequest trades against a pool.
type SwapRequest struct {
	Asset          string `json:"asset" binding:"required"`
	Direction      string `json:"direction" binding:"required"`
	AmountIn       string `json:"amount_in" binding:"required"`
	MinAmountOut   string `json:"min_amount_out"`
	MaxSlippageBps uint64 `json:"max_slippage_bps"`
	Deadline       int64  `json:"deadline"`
}

// TransferSharesRequest moves pool shares between holders.
type TransferSharesRequest struct {
	Asset  string `json:"asset" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// SetFeeRequest changes the swap fee.
type SetFeeRequest struct {
	FeeBps uint64 `json:"fee_bps"`
}

// ProposeWithdrawalRequest opens an emergency withdrawal proposal.
type ProposeWithdrawalRequest struct {
	Asset     string `json:"asset" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// ProposeWithdrawalResponse returns the new proposal id.
type ProposeWithdrawalResponse struct {
	ID string `json:"id"`
}

// ProposalResponse is a proposal with its status at query time.
type ProposalResponse struct {
	emergencytypes.Proposal
	Status emergencytypes.ProposalStatus `json:"status"`
}

// AmountResponse wraps a single amount.
type AmountResponse struct {
	Asset  string   `json:"asset,omitempty"`
	Amount math.Int `json:"amount"`
}

// PoolsResponse lists pools.
type PoolsResponse struct {
	Pools []ammtypes.PoolInfo `json:"pools"`
	Total int                 `json:"total"`
}

// SuccessResponse acknowledges a mutation without a payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

func parseAmount(field, s string) (math.Int, error) {
	v, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, badRequest("invalid %s %q", field, s)
	}
	return v, nil
}

// parseOptionalAmount treats an empty string as zero.
func parseOptionalAmount(field, s string) (math.Int, error) {
	if s == "" {
		return math.ZeroInt(), nil
	}
	return parseAmount(field, s)
}

func (s *Server) deadline(unix int64) time.Time {
	if unix == 0 {
		return time.Now().Add(s.config.DefaultDeadline)
	}
	return time.Unix(unix, 0)
}
