package api

// registerRoutes mounts the v1 API.
func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")

	v1.GET("/status", s.handleStatus)

	pools := v1.Group("/pools")
	{
		pools.GET("", s.handleListPools)
		pools.GET("/:asset", s.handleGetPool)
		pools.GET("/:asset/price", s.handleSpotPrice)
		pools.GET("/:asset/depth", s.handleLiquidityDepth)
		pools.GET("/:asset/estimate", s.handleSwapEstimate)
		pools.GET("/:asset/shares/:address", s.handleShareBalance)
	}
	v1.GET("/balances/:address/:denom", s.handleBalance)

	auth := v1.Group("")
	auth.Use(s.AuthMiddleware())
	{
		auth.POST("/liquidity/add", s.handleAddLiquidity)
		auth.POST("/liquidity/remove", s.handleRemoveLiquidity)
		auth.POST("/swap", s.handleSwap)
		auth.POST("/shares/transfer", s.handleTransferShares)

		auth.POST("/admin/pause", s.handlePause)
		auth.POST("/admin/unpause", s.handleUnpause)
		auth.POST("/admin/fee", s.handleSetFee)

		auth.GET("/emergency/proposals", s.handleListProposals)
		auth.POST("/emergency/proposals", s.handlePropose)
		auth.GET("/emergency/proposals/:id", s.handleGetProposal)
		auth.POST("/emergency/proposals/:id/approve", s.handleApprove)
		auth.POST("/emergency/proposals/:id/execute", s.handleExecute)
	}
}
