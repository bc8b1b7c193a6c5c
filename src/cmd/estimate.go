package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/uploader"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <glob>...",
	Short: "Estimate the cost of uploading the matched files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		applyUploadFlags(cmd)

		paths, err := uploader.DiscoverPaths(args)
		if err != nil {
			return
		}

		terms, err := uploader.GetPriceTerms(ctx, newClient(), conf.Uploader.RewardMultiplier)
		if err != nil {
			return
		}

		var total uint64
		if flagNoBundle {
			for _, path := range paths {
				groups, groupErr := uploader.GroupPaths([]string{path}, ^uint64(0))
				if groupErr != nil {
					return groupErr
				}
				total += terms.Reward(groups[0].DataSize)
			}
		} else {
			groups, groupErr := uploader.GroupPaths(paths, uint64(conf.Uploader.BundleSizeMiB)<<20)
			if groupErr != nil {
				return groupErr
			}
			for _, group := range groups {
				total += terms.Reward(group.DataSize)
			}
		}

		fmt.Printf("The price to upload %d files is %d winstons (%.6f AR).\n",
			len(paths), total, winstonsToAR(total))
		return
	},
}

func init() {
	estimateCmd.Flags().Int64Var(&flagBundleSize, "bundle-size", 10, "max bundle payload in MiB")
	estimateCmd.Flags().Float64Var(&flagRewardMultiplier, "reward-multiplier", 1.0, "multiplies the gateway price, between 0 and 10")
	estimateCmd.Flags().BoolVar(&flagNoBundle, "no-bundle", false, "estimate one transaction per file instead of bundles")
	RootCmd.AddCommand(estimateCmd)
}
