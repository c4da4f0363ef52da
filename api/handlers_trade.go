package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
)

// bindJSON decodes the body into req and reports malformed input.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    "BAD_REQUEST",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// handleAddLiquidity deposits into a pool on behalf of the caller.
func (s *Server) handleAddLiquidity(c *gin.Context) {
	var req AddLiquidityRequest
	if !bindJSON(c, &req) {
		return
	}
	assetAmount, err := parseAmount("asset_amount", req.AssetAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	baseAmount, err := parseAmount("base_amount", req.BaseAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := s.engine.AddLiquidity(c.Request.Context(), callerFrom(c), req.Asset, assetAmount, baseAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var req RemoveLiquidityRequest
	if !bindJSON(c, &req) {
		return
	}
	shares, err := parseAmount("shares", req.Shares)
	if err != nil {
		respondError(c, err)
		return
	}
	minBase, err := parseOptionalAmount("min_base_out", req.MinBaseOut)
	if err != nil {
		respondError(c, err)
		return
	}
	minAsset, err := parseOptionalAmount("min_asset_out", req.MinAssetOut)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := s.engine.RemoveLiquidity(c.Request.Context(), callerFrom(c), req.Asset, shares, minBase, minAsset, s.deadline(req.Deadline))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleSwap executes a trade in either direction.
func (s *Server) handleSwap(c *gin.Context) {
	var req SwapRequest
	if !bindJSON(c, &req) {
		return
	}
	direction, err := ammtypes.ParseSwapDirection(req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}
	amountIn, err := parseAmount("amount_in", req.AmountIn)
	if err != nil {
		respondError(c, err)
		return
	}
	minOut, err := parseOptionalAmount("min_amount_out", req.MinAmountOut)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := s.engine.Swap(c.Request.Context(), callerFrom(c), ammtypes.SwapRequest{
		Asset:          req.Asset,
		Direction:      direction,
		AmountIn:       amountIn,
		MinAmountOut:   minOut,
		MaxSlippageBps: req.MaxSlippageBps,
		Deadline:       s.deadline(req.Deadline),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleTransferShares(c *gin.Context) {
	var req TransferSharesRequest
	if !bindJSON(c, &req) {
		return
	}
	to, err := sdk.AccAddressFromBech32(req.To)
	if err != nil {
		respondError(c, badRequest("invalid recipient: %v", err))
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.engine.TransferShares(c.Request.Context(), callerFrom(c), req.Asset, to, amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
