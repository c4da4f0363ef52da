package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/nativeswap/nativeswap/testutil/keeper"
	"github.com/nativeswap/nativeswap/testutil/sample"
	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	"github.com/nativeswap/nativeswap/x/emergency/keeper"
	"github.com/nativeswap/nativeswap/x/emergency/types"
)

const asset = "uatom"

type EmergencyTestSuite struct {
	suite.Suite

	f         *keepertest.LedgerFixture
	recipient sdk.AccAddress
}

func TestEmergencyTestSuite(t *testing.T) {
	suite.Run(t, new(EmergencyTestSuite))
}

func (s *EmergencyTestSuite) SetupTest() {
	s.f = keepertest.LedgerKeeper(s.T())
	s.recipient = sample.AccAddress("recovery")
	s.f.CreatePool(s.T(), sample.AccAddress("provider"), asset, math.NewInt(100_000), math.NewInt(100_000))
}

func (s *EmergencyTestSuite) propose(amount int64) string {
	id, err := s.f.Emergency.Propose(s.f.Ctx, s.f.Signers[0], asset, s.recipient, math.NewInt(amount))
	s.Require().NoError(err)
	return id
}

func (s *EmergencyTestSuite) TestProposeValidation() {
	k, ctx := s.f.Emergency, s.f.Ctx

	_, err := k.Propose(ctx, s.f.Admin, asset, s.recipient, math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrAccessDenied)
	_, err = k.Propose(ctx, s.f.Signers[0], "", s.recipient, math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrInvalidAsset)
	_, err = k.Propose(ctx, s.f.Signers[0], asset, nil, math.NewInt(1))
	s.Require().ErrorIs(err, types.ErrInvalidRecipient)
	_, err = k.Propose(ctx, s.f.Signers[0], asset, s.recipient, math.ZeroInt())
	s.Require().ErrorIs(err, types.ErrInvalidAmount)
}

func (s *EmergencyTestSuite) TestProposeCountsProposer() {
	id := s.propose(500)

	p, err := s.f.Emergency.GetProposal(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), p.ApprovalCount)
	s.Require().Equal(s.f.Signers[0], p.Proposer)
	s.Require().True(s.f.Ctx.BlockTime().Add(types.DefaultProposalDuration).Equal(p.Deadline))
	s.Require().True(s.f.Emergency.HasApproved(s.f.Ctx, id, s.f.Signers[0]))
	s.Require().Equal(types.ComputeProposalID(asset, s.recipient, math.NewInt(500), s.f.Ctx.BlockTime()), id)

	// the same content in the same second collides
	_, err = s.f.Emergency.Propose(s.f.Ctx, s.f.Signers[1], asset, s.recipient, math.NewInt(500))
	s.Require().ErrorIs(err, types.ErrProposalAlreadyExists)

	s.f.Advance(time.Second)
	_, err = s.f.Emergency.Propose(s.f.Ctx, s.f.Signers[1], asset, s.recipient, math.NewInt(500))
	s.Require().NoError(err)

	list, err := s.f.Emergency.ListProposals(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Require().Equal(id, list[0].ID)
}

func (s *EmergencyTestSuite) TestApprove() {
	id := s.propose(500)
	k, ctx := s.f.Emergency, s.f.Ctx

	s.Require().ErrorIs(k.Approve(ctx, s.f.Admin, id), types.ErrAccessDenied)
	s.Require().ErrorIs(k.Approve(ctx, s.f.Signers[1], "missing"), types.ErrProposalNotFound)
	s.Require().ErrorIs(k.Approve(ctx, s.f.Signers[0], id), types.ErrProposalAlreadyApproved)

	s.Require().NoError(k.Approve(ctx, s.f.Signers[1], id))
	s.Require().ErrorIs(k.Approve(ctx, s.f.Signers[1], id), types.ErrProposalAlreadyApproved)
	s.Require().NoError(k.Approve(ctx, s.f.Signers[2], id))

	p, err := k.GetProposal(ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(uint64(3), p.ApprovalCount)
}

func (s *EmergencyTestSuite) TestExecuteTwoOfThree() {
	id := s.propose(40_000)
	k := s.f.Emergency

	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Signers[0], id), types.ErrAccessDenied)
	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, "missing"), types.ErrProposalDoesNotExist)
	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, id), types.ErrInsufficientApprovals)

	s.Require().NoError(k.Approve(s.f.Ctx, s.f.Signers[2], id))

	// the ledger only releases funds while paused; the failed attempt must
	// not latch the proposal
	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, id), ammtypes.ErrNotPaused)
	status, err := k.ProposalStatus(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(types.StatusProposed, status)

	s.f.Pause(s.T())
	s.Require().NoError(k.Execute(s.f.Ctx, s.f.Admin, id))
	s.Require().Equal(math.NewInt(40_000), s.f.Tokens.BalanceOf(s.f.Ctx, s.recipient, asset))

	status, err = k.ProposalStatus(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(types.StatusExecuted, status)

	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, id), types.ErrProposalAlreadyExecuted)
	s.Require().ErrorIs(k.Approve(s.f.Ctx, s.f.Signers[1], id), types.ErrProposalAlreadyExecuted)
	s.Require().Equal(math.NewInt(40_000), s.f.Tokens.BalanceOf(s.f.Ctx, s.recipient, asset))
}

func (s *EmergencyTestSuite) TestExecuteWithoutExecutor() {
	id := s.propose(1_000)
	s.Require().NoError(s.f.Emergency.Approve(s.f.Ctx, s.f.Signers[1], id))

	k := keeper.NewKeeper(s.f.EmergencyKey, s.f.Policy, nil)
	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, "missing"), types.ErrProposalDoesNotExist)
	s.Require().ErrorIs(k.Execute(s.f.Ctx, s.f.Admin, id), types.ErrExecutorNotSet)

	status, err := k.ProposalStatus(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(types.StatusProposed, status)
}

func (s *EmergencyTestSuite) TestExpiry() {
	id := s.propose(500)
	s.f.Pause(s.T())

	s.f.Advance(types.DefaultProposalDuration - time.Second)
	s.Require().NoError(s.f.Emergency.Approve(s.f.Ctx, s.f.Signers[1], id))

	s.f.Advance(time.Second)
	s.Require().ErrorIs(s.f.Emergency.Approve(s.f.Ctx, s.f.Signers[2], id), types.ErrProposalExpired)
	s.Require().ErrorIs(s.f.Emergency.Execute(s.f.Ctx, s.f.Admin, id), types.ErrProposalExpired)

	status, err := s.f.Emergency.ProposalStatus(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(types.StatusExpired, status)
	s.Require().True(s.f.Tokens.BalanceOf(s.f.Ctx, s.recipient, asset).IsZero())
}

func (s *EmergencyTestSuite) TestFailedWithdrawalKeepsProposalOpen() {
	id := s.propose(1_000_000)
	s.Require().NoError(s.f.Emergency.Approve(s.f.Ctx, s.f.Signers[1], id))
	s.f.Pause(s.T())

	s.Require().ErrorIs(s.f.Emergency.Execute(s.f.Ctx, s.f.Admin, id), ammtypes.ErrTransferFailed)
	p, err := s.f.Emergency.GetProposal(s.f.Ctx, id)
	s.Require().NoError(err)
	s.Require().False(p.Executed)
}

func (s *EmergencyTestSuite) TestParams() {
	k, ctx := s.f.Emergency, s.f.Ctx
	s.Require().Equal(types.DefaultParams(), k.GetParams(ctx))

	s.Require().ErrorIs(k.SetParams(ctx, types.Params{RequiredApprovals: 4, ProposalDuration: time.Hour}, 3), types.ErrInvalidParams)
	s.Require().NoError(k.SetParams(ctx, types.Params{RequiredApprovals: 1, ProposalDuration: time.Hour}, 3))

	id := s.propose(10)
	s.f.Pause(s.T())
	s.Require().NoError(k.Execute(s.f.Ctx, s.f.Admin, id))
}
