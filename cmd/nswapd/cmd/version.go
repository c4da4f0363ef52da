package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// VersionCmd prints the daemon and ledger versions.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nswapd %s (ledger %s, %s)\n", Version, ammtypes.DefaultLedgerVersion, runtime.Version())
		},
	}
}
