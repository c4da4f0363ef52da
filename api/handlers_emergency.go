package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
)

func (s *Server) handlePropose(c *gin.Context) {
	var req ProposeWithdrawalRequest
	if !bindJSON(c, &req) {
		return
	}
	recipient, err := sdk.AccAddressFromBech32(req.Recipient)
	if err != nil {
		respondError(c, badRequest("invalid recipient: %v", err))
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := s.engine.ProposeWithdrawal(c.Request.Context(), callerFrom(c), req.Asset, recipient, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ProposeWithdrawalResponse{ID: id})
}

func (s *Server) handleApprove(c *gin.Context) {
	if err := s.engine.ApproveWithdrawal(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleExecute(c *gin.Context) {
	if err := s.engine.ExecuteWithdrawal(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleGetProposal(c *gin.Context) {
	p, status, err := s.engine.Proposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProposalResponse{Proposal: p, Status: status})
}

func (s *Server) handleListProposals(c *gin.Context) {
	ps, err := s.engine.ListProposals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": ps, "total": len(ps)})
}
