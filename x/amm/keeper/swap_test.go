package keeper_test

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/nativeswap/nativeswap/testutil/keeper"
	"github.com/nativeswap/nativeswap/x/amm/types"
)

func (s *KeeperTestSuite) seedSwapPool() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(100_000), math.NewInt(100_000))
}

func (s *KeeperTestSuite) TestSwapBaseForAsset() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(1_000))

	res, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.NewInt(987), 200, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(987), res.AmountOut)
	s.Require().Equal(math.NewInt(3), res.Fee)
	s.Require().Equal(uint64(130), res.PriceImpactBps)

	pool := s.pool(asset)
	s.Require().Equal(math.NewInt(101_000), pool.BaseReserve)
	s.Require().Equal(math.NewInt(99_013), pool.AssetReserve)

	s.Require().Equal(math.NewInt(987), s.balance(s.trader, asset))
	s.Require().True(s.balance(s.trader, keepertest.NativeDenom).IsZero())
	s.Require().True(s.hasEvent(types.EventTypeSwap))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestSwapAssetForBase() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, asset, math.NewInt(1_000))

	res, err := s.f.Ledger.SwapAssetForBase(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(987), res.AmountOut)

	pool := s.pool(asset)
	s.Require().Equal(math.NewInt(101_000), pool.AssetReserve)
	s.Require().Equal(math.NewInt(99_013), pool.BaseReserve)
	s.Require().Equal(math.NewInt(987), s.balance(s.trader, keepertest.NativeDenom))
}

func (s *KeeperTestSuite) TestSwapGuards() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(100_000))
	deadline := s.f.Deadline(time.Minute)

	swap := func(amountIn, minOut int64, slippage uint64) error {
		_, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(amountIn), math.NewInt(minOut), slippage, deadline)
		return err
	}

	s.Require().ErrorIs(swap(50_001, 0, types.MaxSlippageBps), types.ErrSwapAmountTooHigh)
	s.Require().ErrorIs(swap(1_000, 988, types.MaxSlippageBps), types.ErrInsufficientOutput)
	s.Require().ErrorIs(swap(1, 0, types.MaxSlippageBps), types.ErrInsufficientOutput, "output rounds to zero")
	s.Require().ErrorIs(swap(1_000, 0, 129), types.ErrPriceImpactTooHigh)
	s.Require().ErrorIs(swap(1_000, 0, types.MaxSlippageBps+1), types.ErrInvalidSlippage)
	s.Require().ErrorIs(swap(0, 0, types.MaxSlippageBps), types.ErrInvalidAmount)
	s.Require().ErrorIs(swap(1_000, -1, types.MaxSlippageBps), types.ErrInvalidAmount)

	_, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, "uosmo", math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, deadline)
	s.Require().ErrorIs(err, types.ErrPoolNotExist)

	_, err = s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, keepertest.NativeDenom, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, deadline)
	s.Require().ErrorIs(err, types.ErrInvalidAsset)

	_, err = s.f.Ledger.SwapBaseForAsset(s.f.Ctx, nil, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, deadline)
	s.Require().ErrorIs(err, types.ErrZeroAddress)

	s.f.Advance(2 * time.Minute)
	s.Require().ErrorIs(swap(1_000, 0, types.MaxSlippageBps), types.ErrDeadlineExceeded)

	// nothing moved
	s.Require().Equal(math.NewInt(100_000), s.balance(s.trader, keepertest.NativeDenom))
	s.Require().Equal(math.NewInt(100_000), s.pool(asset).BaseReserve)
}

func (s *KeeperTestSuite) TestSwapAtTradeCap() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(50_000))

	res, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(50_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().True(res.AmountOut.LT(math.NewInt(33_334)))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestSwapEstimateMatchesExecution() {
	s.seedSwapPool()

	est, err := s.f.Ledger.GetSwapEstimate(s.f.Ctx, asset, types.BaseForAsset, math.NewInt(1_000))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(987), est.AmountOut)
	s.Require().Equal(math.NewInt(3), est.Fee)
	s.Require().Equal(uint64(130), est.PriceImpactBps)
	s.Require().Equal(types.PriceScale.String(), est.SpotPrice.String())

	_, err = s.f.Ledger.GetSwapEstimate(s.f.Ctx, asset, types.AssetForBase, math.NewInt(50_001))
	s.Require().ErrorIs(err, types.ErrSwapAmountTooHigh)

	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(1_000))
	res, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), est.AmountOut, est.PriceImpactBps, s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(est.AmountOut, res.AmountOut)
}

func (s *KeeperTestSuite) TestSpotPriceAndDepth() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(123_000_000), math.NewInt(1_000_000))

	price, err := s.f.Ledger.GetSpotPrice(s.f.Ctx, asset)
	s.Require().NoError(err)
	s.Require().Equal("8130081300813008", price.String())

	depth, err := s.f.Ledger.GetLiquidityDepth(s.f.Ctx, asset)
	s.Require().NoError(err)
	s.Require().Equal(types.SqrtFloor(math.NewInt(123_000_000_000_000)), depth)

	info, err := s.f.Ledger.GetPoolInfo(s.f.Ctx, asset)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultFeeBps, info.FeeBps)

	pools := s.f.Ledger.ListPools(s.f.Ctx)
	s.Require().Len(pools, 1)
	s.Require().Equal(asset, pools[0].Asset)
}

func (s *KeeperTestSuite) TestTransferHookCannotReenter() {
	s.seedSwapPool()
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(2_000))

	var inner error
	s.f.Tokens.SetTransferHook(asset, func(ctx context.Context, _, to sdk.AccAddress, _ math.Int) error {
		_, inner = s.f.Ledger.SwapBaseForAsset(ctx, to, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
		return inner
	})
	defer s.f.Tokens.SetTransferHook(asset, nil)

	_, err := s.f.Ledger.SwapBaseForAsset(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.ZeroInt(), types.MaxSlippageBps, s.f.Deadline(time.Minute))
	s.Require().ErrorIs(inner, types.ErrReentrancy)
	s.Require().ErrorIs(err, types.ErrReentrancy)

	s.Require().Equal(math.NewInt(100_000), s.pool(asset).BaseReserve)
	s.Require().Equal(math.NewInt(2_000), s.balance(s.trader, keepertest.NativeDenom))
}
