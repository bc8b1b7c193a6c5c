package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the winston balance of the wallet or a given address",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var address string
		if len(args) == 1 {
			address = args[0]
		} else {
			signer, signerErr := newSigner()
			if signerErr != nil {
				return signerErr
			}
			address = signer.Address().String()
		}

		balance, err := newClient().GetWalletBalance(ctx, address)
		if err != nil {
			return
		}

		fmt.Printf("%s has a balance of %s winstons (%.6f AR).\n",
			address, balance.String(), winstonsToAR(balance.Uint64()))
		return
	},
}

func init() {
	RootCmd.AddCommand(balanceCmd)
}
