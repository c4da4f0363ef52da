package keeper_test

import (
	"time"

	"cosmossdk.io/math"

	keepertest "github.com/nativeswap/nativeswap/testutil/keeper"
	"github.com/nativeswap/nativeswap/testutil/sample"
	"github.com/nativeswap/nativeswap/x/amm/keeper"
	"github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
)

func (s *KeeperTestSuite) TestPauseLifecycle() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(1_000))

	s.Require().ErrorIs(s.f.Ledger.Pause(s.f.Ctx, s.f.Admin), types.ErrAccessDenied)
	s.Require().ErrorIs(s.f.Ledger.Unpause(s.f.Ctx, s.f.Signers[1]), types.ErrNotPaused)

	s.Require().NoError(s.f.Ledger.Pause(s.f.Ctx, s.f.Signers[1]))
	s.Require().True(s.f.Ledger.IsPaused(s.f.Ctx))
	s.Require().True(s.hasEvent(types.EventTypePaused))
	s.Require().ErrorIs(s.f.Ledger.Pause(s.f.Ctx, s.f.Signers[0]), types.ErrAlreadyPaused)

	_, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().ErrorIs(err, types.ErrModulePaused)
	_, err = s.f.Ledger.AddLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(10), math.NewInt(10))
	s.Require().ErrorIs(err, types.ErrModulePaused)
	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(10), math.ZeroInt(), math.ZeroInt(), s.f.Deadline(time.Minute))
	s.Require().ErrorIs(err, types.ErrModulePaused)
	s.Require().ErrorIs(s.f.Ledger.TransferShares(s.f.Ctx, s.provider, asset, s.trader, math.NewInt(10)), types.ErrModulePaused)

	// reads keep working
	_, err = s.f.Ledger.GetPoolInfo(s.f.Ctx, asset)
	s.Require().NoError(err)
	_, err = s.f.Ledger.GetSwapEstimate(s.f.Ctx, asset, types.BaseForAsset, math.NewInt(1_000))
	s.Require().NoError(err)

	s.Require().NoError(s.f.Ledger.Unpause(s.f.Ctx, s.f.Signers[2]))
	s.Require().False(s.f.Ledger.IsPaused(s.f.Ctx))
	_, err = s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestSetFeeBps() {
	s.seedSwapPool()

	s.Require().ErrorIs(s.f.Ledger.SetFeeBps(s.f.Ctx, s.f.Admin, 10), types.ErrAccessDenied)
	s.Require().ErrorIs(s.f.Ledger.SetFeeBps(s.f.Ctx, s.f.FeeOperator, types.MaxFeeBps+1), types.ErrInvalidFee)

	s.Require().NoError(s.f.Ledger.SetFeeBps(s.f.Ctx, s.f.FeeOperator, 0))
	s.Require().Zero(s.f.Ledger.GetFeeBps(s.f.Ctx))
	s.Require().True(s.hasEvent(types.EventTypeFeeUpdated))

	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(1_000))
	res, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(990), res.AmountOut)
	s.Require().True(res.Fee.IsZero())
}

func (s *KeeperTestSuite) TestSetEmergencyExecutor() {
	s.Require().Equal(emergencytypes.ModuleAddress, s.f.Ledger.GetExecutor(s.f.Ctx))

	other := sample.AccAddress("executor")
	s.Require().ErrorIs(s.f.Ledger.SetEmergencyExecutor(s.f.Ctx, s.trader, other), types.ErrAccessDenied)
	s.Require().ErrorIs(s.f.Ledger.SetEmergencyExecutor(s.f.Ctx, s.f.Admin, nil), types.ErrZeroAddress)

	s.Require().NoError(s.f.Ledger.SetEmergencyExecutor(s.f.Ctx, s.f.Admin, other))
	s.Require().Equal(other, s.f.Ledger.GetExecutor(s.f.Ctx))
}

func (s *KeeperTestSuite) TestExecuteEmergencyWithdraw() {
	s.seedSwapPool()
	recipient := sample.AccAddress("recovery")
	executor := emergencytypes.ModuleAddress

	err := s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, asset, recipient, math.NewInt(10))
	s.Require().ErrorIs(err, types.ErrNotPaused)

	s.f.Pause(s.T())

	err = s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, s.f.Admin, asset, recipient, math.NewInt(10))
	s.Require().ErrorIs(err, types.ErrAccessDenied)
	err = s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, asset, nil, math.NewInt(10))
	s.Require().ErrorIs(err, types.ErrZeroAddress)
	err = s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, "", recipient, math.NewInt(10))
	s.Require().ErrorIs(err, types.ErrInvalidAsset)
	err = s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, asset, recipient, math.ZeroInt())
	s.Require().ErrorIs(err, types.ErrInvalidAmount)
	err = s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, asset, recipient, math.NewInt(100_001))
	s.Require().ErrorIs(err, types.ErrTransferFailed)

	s.Require().NoError(s.f.Ledger.ExecuteEmergencyWithdraw(s.f.Ctx, executor, asset, recipient, math.NewInt(40_000)))
	s.Require().Equal(math.NewInt(40_000), s.balance(recipient, asset))
	s.Require().Equal(math.NewInt(60_000), s.balance(types.VaultAddress, asset))
	s.Require().True(s.hasEvent(types.EventTypeEmergencyWithdraw))

	// reserves keep their recorded values, so the vault no longer covers them
	s.Require().Equal(math.NewInt(100_000), s.pool(asset).AssetReserve)
	s.requireInvariants()
	_, broken := keeper.VaultSolvencyInvariant(s.f.Ledger)(s.f.Ctx)
	s.Require().True(broken)
}

func (s *KeeperTestSuite) TestVaultSolvencyHoldsAfterTrading() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(10_000))
	_, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(10_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)

	msg, broken := keeper.VaultSolvencyInvariant(s.f.Ledger)(s.f.Ctx)
	s.Require().False(broken, msg)
}
