package app

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
	tokenstypes "github.com/nativeswap/nativeswap/x/tokens/types"
)

// GenesisState is the initial state applied to an empty database.
type GenesisState struct {
	FeeBps      uint64                   `json:"fee_bps"`
	Emergency   emergencytypes.Params    `json:"emergency"`
	Allocations []tokenstypes.Allocation `json:"allocations"`
}

// NewDefaultGenesisState returns the default fee and approval parameters
// with no allocations.
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		FeeBps:    ammtypes.DefaultFeeBps,
		Emergency: emergencytypes.DefaultParams(),
	}
}

// Validate checks the genesis against the configured signer count.
func (gs GenesisState) Validate(signerCount int) error {
	if err := ammtypes.ValidateFeeBps(gs.FeeBps); err != nil {
		return err
	}
	if err := gs.Emergency.Validate(signerCount); err != nil {
		return err
	}
	for i, a := range gs.Allocations {
		if a.Address.Empty() {
			return fmt.Errorf("allocation %d: empty address", i)
		}
		if err := sdk.ValidateDenom(a.Denom); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		if a.Amount.IsNil() || !a.Amount.IsPositive() {
			return fmt.Errorf("allocation %d: amount must be positive", i)
		}
	}
	return nil
}

// TotalAllocated sums allocations of denom.
func (gs GenesisState) TotalAllocated(denom string) math.Int {
	total := math.ZeroInt()
	for _, a := range gs.Allocations {
		if a.Denom == denom {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// LoadGenesisFile reads a JSON genesis document.
func LoadGenesisFile(path string) (GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return GenesisState{}, fmt.Errorf("failed to read genesis: %w", err)
	}
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return GenesisState{}, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return gs, nil
}

// WriteGenesisFile writes gs as indented JSON.
func WriteGenesisFile(path string, gs GenesisState) error {
	bz, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal genesis: %w", err)
	}
	return os.WriteFile(path, bz, 0o600)
}
