package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/emergency/types"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
)

// getProposal loads a proposal record.
func (k Keeper) getProposal(ctx context.Context, id string) (types.Proposal, bool, error) {
	bz := k.getStore(ctx).Get(types.ProposalKey(id))
	if bz == nil {
		return types.Proposal{}, false, nil
	}
	var p types.Proposal
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.Proposal{}, false, fmt.Errorf("failed to unmarshal proposal %s: %w", id, err)
	}
	return p, true, nil
}

// setProposal persists p as JSON under its id; the record layout has no
// generated codec.
func (k Keeper) setProposal(ctx context.Context, p types.Proposal) error {
	bz, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("failed to marshal proposal %s: %w", p.ID, err)
	}
	k.getStore(ctx).Set(types.ProposalKey(p.ID), bz)
	return nil
}

func (k Keeper) markApproved(ctx context.Context, id string, signer sdk.AccAddress) {
	k.getStore(ctx).Set(types.ApprovalKey(id, signer), []byte{1})
}

// HasApproved reports whether signer has approved proposal id.
func (k Keeper) HasApproved(ctx context.Context, id string, signer sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.ApprovalKey(id, signer))
}

// Propose records a withdrawal proposal and counts the proposer's own
// approval. Signers only.
func (k Keeper) Propose(ctx context.Context, caller sdk.AccAddress, asset string, recipient sdk.AccAddress, amount math.Int) (string, error) {
	if err := requireSigner(k.policy, caller); err != nil {
		return "", err
	}
	if asset == "" {
		return "", types.ErrInvalidAsset.Wrap("asset cannot be empty")
	}
	if sharedtypes.IsZeroAddress(recipient) {
		return "", types.ErrInvalidRecipient.Wrap("recipient cannot be the zero address")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return "", types.ErrInvalidAmount.Wrap("amount must be positive")
	}

	var id string
	err := k.atomic(ctx, "propose", func(ctx sdk.Context) error {
		now := ctx.BlockTime()
		params := k.GetParams(ctx)
		id = types.ComputeProposalID(asset, recipient, amount, now)

		_, exists, err := k.getProposal(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return types.ErrProposalAlreadyExists.Wrapf("proposal %s", id)
		}

		p := types.Proposal{
			ID:            id,
			Asset:         asset,
			Recipient:     recipient,
			Amount:        amount,
			Proposer:      caller,
			CreatedAt:     now,
			Deadline:      now.Add(params.ProposalDuration),
			ApprovalCount: 1,
		}
		if err := k.setProposal(ctx, p); err != nil {
			return err
		}
		k.markApproved(ctx, id, caller)

		store := k.getStore(ctx)
		n := sdk.BigEndianToUint64(store.Get(types.ProposalCountKey))
		store.Set(types.ProposalIndexKey(n), []byte(id))
		store.Set(types.ProposalCountKey, sdk.Uint64ToBigEndian(n+1))

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeProposalCreated,
				sdk.NewAttribute(types.AttributeKeyProposalID, id),
				sdk.NewAttribute(types.AttributeKeyAsset, asset),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
				sdk.NewAttribute(types.AttributeKeySigner, caller.String()),
				sdk.NewAttribute(types.AttributeKeyDeadline, p.Deadline.UTC().Format(time.RFC3339)),
			),
		)
		k.metrics.Proposals.WithLabelValues("created").Inc()
		k.Logger(ctx).Info("emergency withdrawal proposed",
			"proposal_id", id,
			"asset", asset,
			"recipient", recipient.String(),
			"amount", amount.String(),
			"proposer", caller.String(),
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Approve adds caller's approval to proposal id. Signers only; each signer
// counts once.
func (k Keeper) Approve(ctx context.Context, caller sdk.AccAddress, id string) error {
	if err := requireSigner(k.policy, caller); err != nil {
		return err
	}
	return k.atomic(ctx, "approve", func(ctx sdk.Context) error {
		p, found, err := k.getProposal(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrProposalNotFound.Wrapf("proposal %s", id)
		}
		if p.Executed {
			return types.ErrProposalAlreadyExecuted.Wrapf("proposal %s", id)
		}
		if p.Expired(ctx.BlockTime()) {
			return types.ErrProposalExpired.Wrapf("proposal %s expired at %s", id, p.Deadline.UTC().Format(time.RFC3339))
		}
		if k.HasApproved(ctx, id, caller) {
			return types.ErrProposalAlreadyApproved.Wrapf("%s already approved %s", caller, id)
		}

		p.ApprovalCount++
		if err := k.setProposal(ctx, p); err != nil {
			return err
		}
		k.markApproved(ctx, id, caller)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeProposalApproved,
				sdk.NewAttribute(types.AttributeKeyProposalID, id),
				sdk.NewAttribute(types.AttributeKeySigner, caller.String()),
				sdk.NewAttribute(types.AttributeKeyApprovalCount, fmt.Sprintf("%d", p.ApprovalCount)),
			),
		)
		k.metrics.Proposals.WithLabelValues("approved").Inc()
		k.Logger(ctx).Info("emergency withdrawal approved", "proposal_id", id, "signer", caller.String(), "approvals", p.ApprovalCount)
		return nil
	})
}

// Execute performs an approved withdrawal. Administrators only. The
// executed latch is persisted before the executor runs, so a re-entrant
// Execute of the same proposal observes it as executed.
func (k Keeper) Execute(ctx context.Context, caller sdk.AccAddress, id string) error {
	if err := sharedkeeper.RequireRole(k.policy, sharedtypes.RoleAdmin, caller); err != nil {
		return err
	}
	return k.atomic(ctx, "execute", func(ctx sdk.Context) error {
		p, found, err := k.getProposal(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrProposalDoesNotExist.Wrapf("proposal %s", id)
		}
		if k.executor == nil {
			return types.ErrExecutorNotSet
		}
		if p.Executed {
			return types.ErrProposalAlreadyExecuted.Wrapf("proposal %s", id)
		}
		if p.Expired(ctx.BlockTime()) {
			return types.ErrProposalExpired.Wrapf("proposal %s expired at %s", id, p.Deadline.UTC().Format(time.RFC3339))
		}
		required := k.GetParams(ctx).RequiredApprovals
		if p.ApprovalCount < required {
			return types.ErrInsufficientApprovals.Wrapf("%d of %d approvals", p.ApprovalCount, required)
		}

		p.Executed = true
		if err := k.setProposal(ctx, p); err != nil {
			return err
		}

		if err := k.executor.ExecuteEmergencyWithdraw(ctx, types.ModuleAddress, p.Asset, p.Recipient, p.Amount); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeProposalExecuted,
				sdk.NewAttribute(types.AttributeKeyProposalID, id),
				sdk.NewAttribute(types.AttributeKeyAsset, p.Asset),
				sdk.NewAttribute(types.AttributeKeyRecipient, p.Recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, p.Amount.String()),
			),
		)
		k.metrics.Proposals.WithLabelValues("executed").Inc()
		k.Logger(ctx).Warn("emergency withdrawal executed",
			"proposal_id", id,
			"asset", p.Asset,
			"recipient", p.Recipient.String(),
			"amount", p.Amount.String(),
		)
		return nil
	})
}
