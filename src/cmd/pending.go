package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Poll the pending transaction count, one sample per second",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		client := newClient()

		info, err := client.GetNetworkInfo(ctx)
		if err != nil {
			return
		}
		fmt.Printf("height %d, current block %s\n", info.Height, info.Current)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for i := 0; i < 60; i++ {
			count, countErr := client.GetPendingCount(ctx)
			if countErr != nil {
				return countErr
			}

			fmt.Printf(" %5d %s\n", count, strings.Repeat("|", count/50+1))

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		return
	},
}

func init() {
	RootCmd.AddCommand(pendingCmd)
}
