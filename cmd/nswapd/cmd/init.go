package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/nativeswap/nativeswap/app"
	tokenstypes "github.com/nativeswap/nativeswap/x/tokens/types"
)

const (
	flagAdmin             = "admin"
	flagFeeOperator       = "fee-operator"
	flagSigner            = "signer"
	flagAllocation        = "allocation"
	flagFeeBps            = "fee-bps"
	flagRequiredApprovals = "required-approvals"
	flagNativeDenom       = "native-denom"
	flagOverwrite         = "overwrite"
)

// InitCmd writes the node configuration and genesis file.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and genesis",
		Long: `Write $HOME/config/nswapd.toml and $HOME/config/genesis.json.

Allocations take the form address:denom:amount and may be repeated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			chainID, _ := cmd.Flags().GetString(flagChainID)
			denom, _ := cmd.Flags().GetString(flagNativeDenom)
			admins, _ := cmd.Flags().GetStringSlice(flagAdmin)
			feeOps, _ := cmd.Flags().GetStringSlice(flagFeeOperator)
			signers, _ := cmd.Flags().GetStringSlice(flagSigner)
			allocs, _ := cmd.Flags().GetStringArray(flagAllocation)
			feeBps, _ := cmd.Flags().GetUint64(flagFeeBps)
			required, _ := cmd.Flags().GetUint64(flagRequiredApprovals)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			if len(admins) == 0 {
				return fmt.Errorf("at least one --%s is required", flagAdmin)
			}
			for role, list := range map[string][]string{"admin": admins, "fee operator": feeOps, "signer": signers} {
				if _, err := parseAddresses(role, list); err != nil {
					return err
				}
			}

			gs := app.NewDefaultGenesisState()
			gs.FeeBps = feeBps
			gs.Emergency.RequiredApprovals = required
			for _, raw := range allocs {
				a, err := parseAllocation(raw)
				if err != nil {
					return err
				}
				gs.Allocations = append(gs.Allocations, a)
			}
			if err := gs.Validate(len(signers)); err != nil {
				return fmt.Errorf("invalid genesis: %w", err)
			}

			dir := configDir(home)
			configPath := filepath.Join(dir, configFileName+".toml")
			genesisPath := filepath.Join(dir, genesisFile)
			if !overwrite {
				for _, p := range []string{configPath, genesisPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("%s already exists; use --%s to replace it", p, flagOverwrite)
					}
				}
			}
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create config dir: %w", err)
			}

			secret, err := randomSecret()
			if err != nil {
				return err
			}
			if err := writeDefaultConfig(configPath, chainID, denom, secret, admins, feeOps, signers); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if err := app.WriteGenesisFile(genesisPath, gs); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (chain %s)\n", home, chainID)
			return nil
		},
	}

	defaults := app.NewDefaultGenesisState()
	cmd.Flags().String(flagChainID, "nativeswap-1", "chain identifier")
	cmd.Flags().String(flagNativeDenom, app.DefaultNativeDenom, "settlement asset denom")
	cmd.Flags().StringSlice(flagAdmin, nil, "administrator address (repeatable)")
	cmd.Flags().StringSlice(flagFeeOperator, nil, "fee operator address (repeatable)")
	cmd.Flags().StringSlice(flagSigner, nil, "emergency signer address (repeatable)")
	cmd.Flags().StringArray(flagAllocation, nil, "initial balance as address:denom:amount (repeatable)")
	cmd.Flags().Uint64(flagFeeBps, defaults.FeeBps, "swap fee in basis points")
	cmd.Flags().Uint64(flagRequiredApprovals, defaults.Emergency.RequiredApprovals, "approvals needed to execute an emergency withdrawal")
	cmd.Flags().Bool(flagOverwrite, false, "replace existing config and genesis")
	return cmd
}

func parseAllocation(raw string) (tokenstypes.Allocation, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return tokenstypes.Allocation{}, fmt.Errorf("invalid allocation %q: want address:denom:amount", raw)
	}
	addr, err := sdk.AccAddressFromBech32(parts[0])
	if err != nil {
		return tokenstypes.Allocation{}, fmt.Errorf("invalid allocation address %q: %w", parts[0], err)
	}
	amount, ok := math.NewIntFromString(parts[2])
	if !ok {
		return tokenstypes.Allocation{}, fmt.Errorf("invalid allocation amount %q", parts[2])
	}
	return tokenstypes.Allocation{Address: addr, Denom: parts[1], Amount: amount}, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
