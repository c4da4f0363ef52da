package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"
)

const (
	flagMnemonicLength = "mnemonic-length"
	flagRecover        = "recover"
	flagAccount        = "account"
	flagIndex          = "index"
	flagNoBackup       = "no-backup"
)

// KeysCmd groups offline key helpers. Keys are never stored; the operator
// keeps the mnemonic and configures the derived address as a role.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate or recover role addresses",
	}
	cmd.AddCommand(keysNewCmd())
	return cmd
}

func keysNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Derive a secp256k1 address from a new or recovered BIP39 mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonicLength, _ := cmd.Flags().GetInt(flagMnemonicLength)
			recoverExisting, _ := cmd.Flags().GetBool(flagRecover)
			noBackup, _ := cmd.Flags().GetBool(flagNoBackup)
			account, _ := cmd.Flags().GetUint32(flagAccount)
			index, _ := cmd.Flags().GetUint32(flagIndex)

			var (
				mnemonic string
				err      error
			)
			if recoverExisting {
				mnemonic, err = readMnemonic(cmd)
			} else {
				mnemonic, err = newMnemonic(mnemonicLength)
			}
			if err != nil {
				return err
			}

			hdPath := hd.CreateHDPath(sdk.CoinType, account, index).String()
			addr, err := deriveAddress(mnemonic, hdPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "address: %s\n", addr.String())
			fmt.Fprintf(out, "hd-path: %s\n", hdPath)
			if !recoverExisting && !noBackup {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "**IMPORTANT** Write this mnemonic phrase in a safe place.")
				fmt.Fprintln(out, mnemonic)
			}
			return nil
		},
	}

	cmd.Flags().Int(flagMnemonicLength, 24, "mnemonic length (12 or 24 words)")
	cmd.Flags().Bool(flagRecover, false, "read an existing mnemonic from stdin instead of generating one")
	cmd.Flags().Bool(flagNoBackup, false, "do not print the generated mnemonic")
	cmd.Flags().Uint32(flagAccount, 0, "account number for HD derivation")
	cmd.Flags().Uint32(flagIndex, 0, "address index for HD derivation")
	return cmd
}

// newMnemonic returns a fresh 12 or 24 word mnemonic.
func newMnemonic(words int) (string, error) {
	var entropySize int
	switch words {
	case 12:
		entropySize = 128 / 8
	case 24:
		entropySize = 256 / 8
	default:
		return "", fmt.Errorf("mnemonic length must be 12 or 24 words")
	}

	entropy := make([]byte, entropySize)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate secure entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

func readMnemonic(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read mnemonic: %w", err)
	}
	mnemonic := strings.Join(strings.Fields(line), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", fmt.Errorf("invalid mnemonic")
	}
	return mnemonic, nil
}

// deriveAddress derives the secp256k1 account address for mnemonic at hdPath.
func deriveAddress(mnemonic, hdPath string) (sdk.AccAddress, error) {
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", hdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	priv := hd.Secp256k1.Generate()(derived)
	return sdk.AccAddress(priv.PubKey().Address()), nil
}
