package cmd

import (
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagHome     = "home"
	flagChainID  = "chain-id"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
)

// DefaultNodeHome is the default home directory for nswapd.
var DefaultNodeHome = defaultHome()

func defaultHome() string {
	if home := os.Getenv("NSWAP_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".nswapd"
	}
	return filepath.Join(userHome, ".nswapd")
}

// NewRootCmd creates the nswapd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nswapd",
		Short:         "NativeSwap exchange engine daemon",
		Long:          `nswapd runs the NativeSwap constant-product exchange engine and its HTTP gateway.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level, e.g. info or engine:debug,*:info")
	rootCmd.PersistentFlags().Bool(flagLogJSON, false, "emit logs as JSON")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		TokenCmd(),
		KeysCmd(),
		VersionCmd(),
	)
	return rootCmd
}

// nodeConfig resolves the home directory and loads the layered config,
// with explicitly set flags taking precedence.
func nodeConfig(cmd *cobra.Command) (string, NodeConfig, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return "", NodeConfig{}, err
	}
	v := newViper(home)
	if err := bindChangedFlags(v, cmd.Flags()); err != nil {
		return "", NodeConfig{}, err
	}
	cfg, err := loadConfig(v)
	return home, cfg, err
}

// bindChangedFlags binds only flags the user set, so flag defaults do not
// shadow the config file.
func bindChangedFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == flagHome || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	return bindErr
}

// newLogger builds the process logger from the node config.
func newLogger(cfg NodeConfig) (log.Logger, error) {
	filter, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.FilterOption(filter)}
	if cfg.LogJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stdout, opts...), nil
}

func configDir(home string) string {
	return filepath.Join(home, "config")
}

func dataDir(home string) string {
	return filepath.Join(home, "data")
}
