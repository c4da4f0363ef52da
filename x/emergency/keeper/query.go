package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/emergency/types"
)

// GetProposal returns proposal id or ErrProposalNotFound.
func (k Keeper) GetProposal(ctx context.Context, id string) (types.Proposal, error) {
	p, found, err := k.getProposal(ctx, id)
	if err != nil {
		return types.Proposal{}, err
	}
	if !found {
		return types.Proposal{}, types.ErrProposalNotFound.Wrapf("proposal %s", id)
	}
	return p, nil
}

// ProposalStatus returns the lifecycle status of proposal id at the
// context's block time.
func (k Keeper) ProposalStatus(ctx context.Context, id string) (types.ProposalStatus, error) {
	p, err := k.GetProposal(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Status(sdk.UnwrapSDKContext(ctx).BlockTime()), nil
}

// ListProposals returns every proposal in creation order, expired and
// executed ones included.
func (k Keeper) ListProposals(ctx context.Context) ([]types.Proposal, error) {
	store := k.getStore(ctx)
	count := sdk.BigEndianToUint64(store.Get(types.ProposalCountKey))
	out := make([]types.Proposal, 0, count)
	for i := uint64(0); i < count; i++ {
		id := string(store.Get(types.ProposalIndexKey(i)))
		p, found, err := k.getProposal(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, p)
		}
	}
	return out, nil
}
