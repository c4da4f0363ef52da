package keeper_test

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/nativeswap/nativeswap/testutil/keeper"
	"github.com/nativeswap/nativeswap/x/amm/types"
)

func (s *KeeperTestSuite) TestCreatePool() {
	res := s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(1_000_000))

	s.Require().Equal(math.NewInt(999_000), res.Shares)
	s.Require().Equal(math.NewInt(1_000_000), res.AssetUsed)
	s.Require().Equal(math.NewInt(1_000_000), res.BaseUsed)
	s.Require().True(res.BaseRefunded.IsZero())

	pool := s.pool(asset)
	s.Require().Equal(math.NewInt(1_000_000), pool.AssetReserve)
	s.Require().Equal(math.NewInt(1_000_000), pool.BaseReserve)
	s.Require().Equal(math.NewInt(1_000_000), pool.TotalShares)
	s.Require().Equal(types.ShareTokenID(asset), pool.ShareToken)

	locked, err := s.f.Ledger.GetShareBalance(s.f.Ctx, asset, types.MinimumLockSink)
	s.Require().NoError(err)
	s.Require().Equal(types.MinimumLock, locked)

	s.Require().Equal(math.NewInt(1_000_000), s.balance(types.VaultAddress, asset))
	s.Require().Equal(math.NewInt(1_000_000), s.balance(types.VaultAddress, keepertest.NativeDenom))
	s.Require().True(s.balance(s.provider, asset).IsZero())

	s.Require().Equal(uint64(1), s.f.Ledger.PoolCount(s.f.Ctx))
	s.Require().True(s.hasEvent(types.EventTypePoolCreated))
	s.Require().True(s.hasEvent(types.EventTypeLiquidityAdded))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestCreatePoolRequiresMoreThanMinimumLock() {
	for _, amounts := range [][2]int64{{1_000, 1_000}, {123, 1}, {1, 1_000_000}} {
		s.f.Fund(s.T(), s.provider, asset, math.NewInt(amounts[0]))
		s.f.Fund(s.T(), s.provider, keepertest.NativeDenom, math.NewInt(amounts[1]))
		_, err := s.f.Ledger.AddLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(amounts[0]), math.NewInt(amounts[1]))
		s.Require().ErrorIs(err, types.ErrInsufficientInitialLiquidity, "amounts %v", amounts)
	}
	_, found := s.f.Ledger.GetPool(s.f.Ctx, asset)
	s.Require().False(found)
	s.Require().Zero(s.f.Ledger.PoolCount(s.f.Ctx))

	// one unit above the lock works
	res := s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_001), math.NewInt(1_001))
	s.Require().Equal(math.OneInt(), res.Shares)
}

func (s *KeeperTestSuite) TestAddLiquidityRefundsExcessBase() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(2_000_000))
	total := s.pool(asset).TotalShares
	s.Require().Equal(math.NewInt(1_414_213), total)

	s.f.Fund(s.T(), s.trader, asset, math.NewInt(1_000))
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(5_000))

	res, err := s.f.Ledger.AddLiquidity(s.f.Ctx, s.trader, asset, math.NewInt(1_000), math.NewInt(5_000))
	s.Require().NoError(err)
	s.Require().False(res.Created)
	s.Require().Equal(math.NewInt(1_000), res.AssetUsed)
	s.Require().Equal(math.NewInt(2_000), res.BaseUsed)
	s.Require().Equal(math.NewInt(3_000), res.BaseRefunded)
	s.Require().Equal(math.NewInt(1_414), res.Shares)

	// the refunded base never left the provider
	s.Require().Equal(math.NewInt(3_000), s.balance(s.trader, keepertest.NativeDenom))
	s.Require().True(s.balance(s.trader, asset).IsZero())

	pool := s.pool(asset)
	s.Require().Equal(math.NewInt(1_001_000), pool.AssetReserve)
	s.Require().Equal(math.NewInt(2_002_000), pool.BaseReserve)
	s.Require().Equal(total.Add(res.Shares), pool.TotalShares)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestAddLiquidityUsesBaseWhenAssetIsAmple() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(2_000_000))

	s.f.Fund(s.T(), s.trader, asset, math.NewInt(10_000))
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(5_000))

	res, err := s.f.Ledger.AddLiquidity(s.f.Ctx, s.trader, asset, math.NewInt(10_000), math.NewInt(5_000))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(2_500), res.AssetUsed)
	s.Require().Equal(math.NewInt(5_000), res.BaseUsed)
	s.Require().True(res.BaseRefunded.IsZero())
	s.Require().Equal(math.NewInt(7_500), s.balance(s.trader, asset))
}

func (s *KeeperTestSuite) TestAddLiquidityTooSmallToMint() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(1_000_000_000))

	s.f.Fund(s.T(), s.trader, asset, math.NewInt(1))
	s.f.Fund(s.T(), s.trader, keepertest.NativeDenom, math.NewInt(1))
	_, err := s.f.Ledger.AddLiquidity(s.f.Ctx, s.trader, asset, math.NewInt(1), math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)
}

func (s *KeeperTestSuite) TestRemoveLiquidity() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(1_000_000))

	res, err := s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(500_000), math.NewInt(500_000), math.NewInt(500_000), s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(500_000), res.AssetOut)
	s.Require().Equal(math.NewInt(500_000), res.BaseOut)
	s.Require().Equal(math.NewInt(500_000), s.balance(s.provider, asset))
	s.Require().Equal(math.NewInt(500_000), s.balance(s.provider, keepertest.NativeDenom))

	// the provider's last share still leaves the locked minimum behind
	res, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(499_000), math.ZeroInt(), math.ZeroInt(), s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(499_000), res.BaseOut)

	pool := s.pool(asset)
	s.Require().Equal(types.MinimumLock, pool.TotalShares)
	s.Require().Equal(math.NewInt(1_000), pool.AssetReserve)
	s.Require().Equal(math.NewInt(1_000), pool.BaseReserve)
	s.Require().True(s.hasEvent(types.EventTypeLiquidityRemoved))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRemoveLiquidityGuards() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(1_000_000))
	deadline := s.f.Deadline(time.Minute)

	_, err := s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(999_001), math.ZeroInt(), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientShares)

	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.trader, asset, math.OneInt(), math.ZeroInt(), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientShares)

	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(1_000), math.NewInt(1_001), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientOutput)

	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, "uosmo", math.OneInt(), math.ZeroInt(), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrPoolNotExist)

	s.f.Advance(2 * time.Minute)
	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(1_000), math.ZeroInt(), math.ZeroInt(), deadline)
	s.Require().ErrorIs(err, types.ErrDeadlineExceeded)

	// a deadline equal to the block time still passes
	_, err = s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.provider, asset, math.NewInt(1_000), math.ZeroInt(), math.ZeroInt(), s.f.Ctx.BlockTime())
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestShareTransfer() {
	s.f.CreatePool(s.T(), s.provider, asset, math.NewInt(1_000_000), math.NewInt(1_000_000))

	s.Require().NoError(s.f.Ledger.TransferShares(s.f.Ctx, s.provider, asset, s.trader, math.NewInt(100)))
	bal, err := s.f.Ledger.GetShareBalance(s.f.Ctx, asset, s.trader)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100), bal)
	s.Require().True(s.hasEvent(types.EventTypeSharesTransferred))

	total, err := s.f.Ledger.GetTotalShares(s.f.Ctx, asset)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1_000_000), total)

	err = s.f.Ledger.TransferShares(s.f.Ctx, s.trader, asset, s.provider, math.NewInt(101))
	s.Require().ErrorIs(err, types.ErrInsufficientShares)

	err = s.f.Ledger.TransferShares(s.f.Ctx, s.provider, asset, nil, math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrZeroAddress)

	err = s.f.Ledger.TransferShares(s.f.Ctx, types.MinimumLockSink, asset, s.trader, math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrAccessDenied)

	err = s.f.Ledger.TransferShares(s.f.Ctx, s.provider, asset, types.MinimumLockSink, math.NewInt(5))
	s.Require().ErrorIs(err, types.ErrAccessDenied)
	sink, err := s.f.Ledger.GetShareBalance(s.f.Ctx, asset, types.MinimumLockSink)
	s.Require().NoError(err)
	s.Require().Equal(types.MinimumLock.String(), sink.String())

	// the new holder can withdraw
	res, err := s.f.Ledger.RemoveLiquidity(s.f.Ctx, s.trader, asset, math.NewInt(100), math.ZeroInt(), math.ZeroInt(), s.f.Deadline(time.Minute))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100), res.AssetOut)

	holders := 0
	s.Require().NoError(s.f.Ledger.IterateShareHolders(s.f.Ctx, asset, func(_ sdk.AccAddress, _ math.Int) bool {
		holders++
		return false
	}))
	s.Require().Equal(3, holders)
	s.requireInvariants()
}
