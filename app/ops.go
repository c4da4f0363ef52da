package app

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
)

// AddLiquidity deposits into asset's pool, creating it if needed.
func (app *App) AddLiquidity(goCtx context.Context, caller sdk.AccAddress, asset string, desiredAsset, providedBase math.Int) (res ammtypes.AddLiquidityResult, err error) {
	err = app.exec(goCtx, ammtypes.ModuleName, "add_liquidity", func(ctx sdk.Context) error {
		res, err = app.ledger.AddLiquidity(ctx, caller, asset, desiredAsset, providedBase)
		return err
	})
	return res, err
}

// RemoveLiquidity burns shares for a proportional payout.
func (app *App) RemoveLiquidity(goCtx context.Context, caller sdk.AccAddress, asset string, shares, minBaseOut, minAssetOut math.Int, deadline time.Time) (res ammtypes.RemoveLiquidityResult, err error) {
	err = app.exec(goCtx, ammtypes.ModuleName, "remove_liquidity", func(ctx sdk.Context) error {
		res, err = app.ledger.RemoveLiquidity(ctx, caller, asset, shares, minBaseOut, minAssetOut, deadline)
		return err
	})
	return res, err
}

// Swap executes a trade in either direction.
func (app *App) Swap(goCtx context.Context, caller sdk.AccAddress, req ammtypes.SwapRequest) (res ammtypes.SwapResult, err error) {
	err = app.exec(goCtx, ammtypes.ModuleName, "swap_"+req.Direction.String(), func(ctx sdk.Context) error {
		res, err = app.ledger.Swap(ctx, caller, req)
		return err
	})
	return res, err
}

// SwapBaseForAsset sells the settlement asset for asset.
func (app *App) SwapBaseForAsset(goCtx context.Context, caller sdk.AccAddress, asset string, baseIn, minAssetOut math.Int, maxSlippageBps uint64, deadline time.Time) (ammtypes.SwapResult, error) {
	return app.Swap(goCtx, caller, ammtypes.SwapRequest{
		Asset:          asset,
		Direction:      ammtypes.BaseForAsset,
		AmountIn:       baseIn,
		MinAmountOut:   minAssetOut,
		MaxSlippageBps: maxSlippageBps,
		Deadline:       deadline,
	})
}

// SwapAssetForBase sells asset for the settlement asset.
func (app *App) SwapAssetForBase(goCtx context.Context, caller sdk.AccAddress, asset string, assetIn, minBaseOut math.Int, maxSlippageBps uint64, deadline time.Time) (ammtypes.SwapResult, error) {
	return app.Swap(goCtx, caller, ammtypes.SwapRequest{
		Asset:          asset,
		Direction:      ammtypes.AssetForBase,
		AmountIn:       assetIn,
		MinAmountOut:   minBaseOut,
		MaxSlippageBps: maxSlippageBps,
		Deadline:       deadline,
	})
}

// TransferShares moves pool shares between holders.
func (app *App) TransferShares(goCtx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) error {
	return app.exec(goCtx, ammtypes.ModuleName, "transfer_shares", func(ctx sdk.Context) error {
		return app.ledger.TransferShares(ctx, caller, asset, to, amount)
	})
}

// Pause stops value-moving ledger operations.
func (app *App) Pause(goCtx context.Context, caller sdk.AccAddress) error {
	return app.exec(goCtx, ammtypes.ModuleName, "pause", func(ctx sdk.Context) error {
		return app.ledger.Pause(ctx, caller)
	})
}

// Unpause resumes ledger operations.
func (app *App) Unpause(goCtx context.Context, caller sdk.AccAddress) error {
	return app.exec(goCtx, ammtypes.ModuleName, "unpause", func(ctx sdk.Context) error {
		return app.ledger.Unpause(ctx, caller)
	})
}

// SetFeeBps changes the swap fee.
func (app *App) SetFeeBps(goCtx context.Context, caller sdk.AccAddress, bps uint64) error {
	return app.exec(goCtx, ammtypes.ModuleName, "set_fee", func(ctx sdk.Context) error {
		return app.ledger.SetFeeBps(ctx, caller, bps)
	})
}

// SetEmergencyExecutor registers the emergency withdrawal executor.
func (app *App) SetEmergencyExecutor(goCtx context.Context, caller, executor sdk.AccAddress) error {
	return app.exec(goCtx, ammtypes.ModuleName, "set_executor", func(ctx sdk.Context) error {
		return app.ledger.SetEmergencyExecutor(ctx, caller, executor)
	})
}

// ReassignWriter moves store write access to newWriter. Normally only
// UpgradeLedger needs this.
func (app *App) ReassignWriter(goCtx context.Context, caller, newWriter sdk.AccAddress) error {
	return app.exec(goCtx, "kvstore", "reassign_writer", func(ctx sdk.Context) error {
		return app.StoreKeeper.ReassignWriter(ctx, caller, newWriter)
	})
}

// Transfer moves a fungible asset between accounts.
func (app *App) Transfer(goCtx context.Context, caller, to sdk.AccAddress, denom string, amount math.Int) error {
	return app.exec(goCtx, "tokens", "transfer", func(ctx sdk.Context) error {
		return app.TokensKeeper.Transfer(ctx, caller, to, denom, amount)
	})
}

// ProposeWithdrawal opens an emergency withdrawal proposal.
func (app *App) ProposeWithdrawal(goCtx context.Context, caller sdk.AccAddress, asset string, recipient sdk.AccAddress, amount math.Int) (id string, err error) {
	err = app.exec(goCtx, emergencytypes.ModuleName, "propose", func(ctx sdk.Context) error {
		id, err = app.EmergencyKeeper.Propose(ctx, caller, asset, recipient, amount)
		return err
	})
	return id, err
}

// ApproveWithdrawal adds a signer approval.
func (app *App) ApproveWithdrawal(goCtx context.Context, caller sdk.AccAddress, id string) error {
	return app.exec(goCtx, emergencytypes.ModuleName, "approve", func(ctx sdk.Context) error {
		return app.EmergencyKeeper.Approve(ctx, caller, id)
	})
}

// ExecuteWithdrawal executes an approved proposal.
func (app *App) ExecuteWithdrawal(goCtx context.Context, caller sdk.AccAddress, id string) error {
	return app.exec(goCtx, emergencytypes.ModuleName, "execute", func(ctx sdk.Context) error {
		return app.EmergencyKeeper.Execute(ctx, caller, id)
	})
}

// PoolInfo returns one pool.
func (app *App) PoolInfo(goCtx context.Context, asset string) (info ammtypes.PoolInfo, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		info, err = app.ledger.GetPoolInfo(ctx, asset)
		return err
	})
	return info, err
}

// ListPools returns every pool.
func (app *App) ListPools(goCtx context.Context) (pools []ammtypes.PoolInfo, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		pools = app.ledger.ListPools(ctx)
		return nil
	})
	return pools, err
}

// SpotPrice returns the scaled spot price of asset.
func (app *App) SpotPrice(goCtx context.Context, asset string) (price math.Int, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		price, err = app.ledger.GetSpotPrice(ctx, asset)
		return err
	})
	return price, err
}

// SwapEstimate quotes a trade.
func (app *App) SwapEstimate(goCtx context.Context, asset string, direction ammtypes.SwapDirection, amountIn math.Int) (est ammtypes.SwapEstimate, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		est, err = app.ledger.GetSwapEstimate(ctx, asset, direction, amountIn)
		return err
	})
	return est, err
}

// LiquidityDepth returns sqrt(assetReserve * baseReserve).
func (app *App) LiquidityDepth(goCtx context.Context, asset string) (depth math.Int, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		depth, err = app.ledger.GetLiquidityDepth(ctx, asset)
		return err
	})
	return depth, err
}

// ShareBalance returns holder's shares of asset's pool.
func (app *App) ShareBalance(goCtx context.Context, asset string, holder sdk.AccAddress) (shares math.Int, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		shares, err = app.ledger.GetShareBalance(ctx, asset, holder)
		return err
	})
	return shares, err
}

// Balance returns who's balance of denom.
func (app *App) Balance(goCtx context.Context, who sdk.AccAddress, denom string) (bal math.Int, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		bal = app.TokensKeeper.BalanceOf(ctx, who, denom)
		return nil
	})
	return bal, err
}

// Status is a snapshot of engine-level state.
type Status struct {
	ChainID       string         `json:"chain_id"`
	Version       int64          `json:"version"`
	LedgerVersion string         `json:"ledger_version"`
	Writer        sdk.AccAddress `json:"writer"`
	Initialized   bool           `json:"initialized"`
	Paused        bool           `json:"paused"`
	FeeBps        uint64         `json:"fee_bps"`
	Executor      sdk.AccAddress `json:"executor"`
	NativeDenom   string         `json:"native_denom"`
	Pools         uint64         `json:"pools"`
}

// Status returns the engine status.
func (app *App) Status(goCtx context.Context) (st Status, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		st = Status{
			ChainID:       app.cfg.ChainID,
			Version:       app.cms.LastCommitID().Version,
			LedgerVersion: app.ledger.Version(),
			Writer:        app.StoreKeeper.Writer(ctx),
			Initialized:   app.ledger.IsInitialized(ctx),
			Paused:        app.ledger.IsPaused(ctx),
			FeeBps:        app.ledger.GetFeeBps(ctx),
			Executor:      app.ledger.GetExecutor(ctx),
			NativeDenom:   app.cfg.NativeDenom,
			Pools:         app.ledger.PoolCount(ctx),
		}
		return nil
	})
	return st, err
}

// Proposal returns an emergency proposal with its status.
func (app *App) Proposal(goCtx context.Context, id string) (p emergencytypes.Proposal, status emergencytypes.ProposalStatus, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		p, err = app.EmergencyKeeper.GetProposal(ctx, id)
		if err != nil {
			return err
		}
		status = p.Status(ctx.BlockTime())
		return nil
	})
	return p, status, err
}

// ListProposals returns every emergency proposal.
func (app *App) ListProposals(goCtx context.Context) (ps []emergencytypes.Proposal, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		ps, err = app.EmergencyKeeper.ListProposals(ctx)
		return err
	})
	return ps, err
}

// CheckInvariants runs every ledger invariant, vault solvency included,
// against the committed state.
func (app *App) CheckInvariants(goCtx context.Context) (msgs []string, err error) {
	err = app.query(goCtx, func(ctx sdk.Context) error {
		reg := &invariantRegistry{}
		ammRegister(reg, app)
		for _, route := range reg.routes {
			if msg, broken := route.invariant(ctx); broken {
				msgs = append(msgs, msg)
			}
		}
		return nil
	})
	return msgs, err
}
