package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
)

// handleStatus returns engine-level state.
func (s *Server) handleStatus(c *gin.Context) {
	st, err := s.engine.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// handleListPools lists every pool in creation order.
func (s *Server) handleListPools(c *gin.Context) {
	pools, err := s.engine.ListPools(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PoolsResponse{Pools: pools, Total: len(pools)})
}

func (s *Server) handleGetPool(c *gin.Context) {
	info, err := s.engine.PoolInfo(c.Request.Context(), c.Param("asset"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// handleSpotPrice returns the base amount per asset unit, scaled by 1e18.
func (s *Server) handleSpotPrice(c *gin.Context) {
	asset := c.Param("asset")
	price, err := s.engine.SpotPrice(c.Request.Context(), asset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Asset: asset, Amount: price})
}

func (s *Server) handleLiquidityDepth(c *gin.Context) {
	asset := c.Param("asset")
	depth, err := s.engine.LiquidityDepth(c.Request.Context(), asset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Asset: asset, Amount: depth})
}

// handleSwapEstimate quotes a trade without executing it.
func (s *Server) handleSwapEstimate(c *gin.Context) {
	direction, err := ammtypes.ParseSwapDirection(c.DefaultQuery("direction", ammtypes.BaseForAsset.String()))
	if err != nil {
		respondError(c, err)
		return
	}
	amount, err := parseAmount("amount", c.Query("amount"))
	if err != nil {
		respondError(c, err)
		return
	}

	est, err := s.engine.SwapEstimate(c.Request.Context(), c.Param("asset"), direction, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (s *Server) handleShareBalance(c *gin.Context) {
	asset := c.Param("asset")
	holder, err := sdk.AccAddressFromBech32(c.Param("address"))
	if err != nil {
		respondError(c, badRequest("invalid address: %v", err))
		return
	}
	shares, err := s.engine.ShareBalance(c.Request.Context(), asset, holder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Asset: asset, Amount: shares})
}

// handleBalance returns the fungible balance of an address.
func (s *Server) handleBalance(c *gin.Context) {
	who, err := sdk.AccAddressFromBech32(c.Param("address"))
	if err != nil {
		respondError(c, badRequest("invalid address: %v", err))
		return
	}
	denom := c.Param("denom")
	bal, err := s.engine.Balance(c.Request.Context(), who, denom)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Asset: denom, Amount: bal})
}
