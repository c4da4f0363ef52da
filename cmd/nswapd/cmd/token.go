package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/nativeswap/nativeswap/api"
)

// TokenCmd issues a gateway bearer token for an address using the
// configured secret.
func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [address]",
		Short: "Issue an API bearer token for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := nodeConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.API.JWTSecret == "" {
				return fmt.Errorf("api.jwt-secret is not configured")
			}
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}

			token, err := api.NewAuthService([]byte(cfg.API.JWTSecret), cfg.API.TokenTTL).GenerateToken(addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
