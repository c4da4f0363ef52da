package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePause(c *gin.Context) {
	if err := s.engine.Pause(c.Request.Context(), callerFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleUnpause(c *gin.Context) {
	if err := s.engine.Unpause(c.Request.Context(), callerFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// handleSetFee requires the fee operator role; the engine enforces it.
func (s *Server) handleSetFee(c *gin.Context) {
	var req SetFeeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.engine.SetFeeBps(c.Request.Context(), callerFrom(c), req.FeeBps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
