package types

// Event types for the ledger
const (
	EventTypePoolCreated       = "amm_pool_created"
	EventTypeLiquidityAdded    = "amm_liquidity_added"
	EventTypeLiquidityRemoved  = "amm_liquidity_removed"
	EventTypeSwap              = "amm_swap"
	EventTypePaused            = "amm_paused"
	EventTypeUnpaused          = "amm_unpaused"
	EventTypeFeeUpdated        = "amm_fee_updated"
	EventTypeExecutorSet       = "amm_executor_set"
	EventTypeEmergencyWithdraw = "amm_emergency_withdraw"
	EventTypeSharesTransferred = "amm_shares_transferred"
)

// Event attribute keys
const (
	AttributeKeyAsset        = "asset"
	AttributeKeyCaller       = "caller"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyAmount       = "amount"
	AttributeKeyAssetAmount  = "asset_amount"
	AttributeKeyBaseAmount   = "base_amount"
	AttributeKeyBaseRefunded = "base_refunded"
	AttributeKeyShares       = "shares"
	AttributeKeyAmountIn     = "amount_in"
	AttributeKeyAmountOut    = "amount_out"
	AttributeKeyDirection    = "direction"
	AttributeKeyFeeBps       = "fee_bps"
	AttributeKeyPriceImpact  = "price_impact_bps"
	AttributeKeyExecutor     = "executor"
)
