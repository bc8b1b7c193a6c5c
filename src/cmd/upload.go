package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/uploader"
)

var (
	flagLogDir           string
	flagBundleSize       int64
	flagRewardMultiplier float64
	flagWithSol          bool
	flagNoBundle         bool
	flagBuffer           int

	uploadCmd = &cobra.Command{
		Use:   "upload <glob>...",
		Short: "Upload files, packed into bundles unless --no-bundle is set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			applyUploadFlags(cmd)

			paths, err := uploader.DiscoverPaths(args)
			if err != nil {
				return
			}

			logDir, err := uploader.EnsureLogDir(conf.Uploader.LogDir, paths[0])
			if err != nil {
				return
			}

			summary, err := runUpload(paths, logDir)
			if err != nil {
				return
			}

			fmt.Printf("\nSubmitted %d of %d planned bundles (%d failed). Statuses in %s\n",
				summary.Submitted, summary.Planned, summary.Failed, logDir)
			fmt.Printf("Run `arloader update-status --log-dir %s` to confirm transactions.\n", logDir)
			return
		},
	}
)

func applyUploadFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("log-dir") {
		conf.Uploader.LogDir = flagLogDir
	}
	if cmd.Flags().Changed("bundle-size") {
		conf.Uploader.BundleSizeMiB = flagBundleSize
	}
	if cmd.Flags().Changed("reward-multiplier") {
		conf.Uploader.RewardMultiplier = flagRewardMultiplier
	}
	if cmd.Flags().Changed("buffer") {
		conf.Uploader.Buffer = flagBuffer
	}
}

func runUpload(paths []string, logDir string) (summary *uploader.Summary, err error) {
	if conf.Uploader.BundleSizeMiB > conf.Uploader.MaxBundleSizeMiB {
		err = fmt.Errorf("%w: %d MiB (max %d)", uploader.ErrBundleSizeCap,
			conf.Uploader.BundleSizeMiB, conf.Uploader.MaxBundleSizeMiB)
		return
	}
	if conf.Uploader.RewardMultiplier < 0 || conf.Uploader.RewardMultiplier > 10 {
		err = fmt.Errorf("reward multiplier %v out of range [0, 10]", conf.Uploader.RewardMultiplier)
		return
	}

	client := newClient()

	signer, err := newSigner()
	if err != nil {
		return
	}

	store, err := newStore(logDir)
	if err != nil {
		return
	}

	terms, err := uploader.GetPriceTerms(ctx, client, conf.Uploader.RewardMultiplier)
	if err != nil {
		return
	}

	var groups []uploader.PathsGroup
	if flagNoBundle {
		for _, path := range paths {
			single, groupErr := uploader.GroupPaths([]string{path}, ^uint64(0))
			if groupErr != nil {
				return nil, groupErr
			}
			groups = append(groups, single...)
		}
	} else {
		groups, err = uploader.GroupPaths(paths, uint64(conf.Uploader.BundleSizeMiB)<<20)
		if err != nil {
			return
		}
	}

	up := uploader.NewUploader(conf).
		WithClient(client).
		WithSigner(signer).
		WithStore(store).
		WithPriceTerms(terms).
		WithNoBundle(flagNoBundle).
		WithOnProgress(func(progress *uploader.Progress) {
			if progress.Err != nil {
				fmt.Printf(" %-43s  %-9s  %d files  %v\n", progress.Id, "Failed", progress.NumberOfFiles, progress.Err)
				return
			}
			fmt.Printf(" %-43s  %-9s  %d files  %d bytes\n", progress.Id, progress.Status, progress.NumberOfFiles, progress.DataSize)
		})

	if flagWithSol {
		solClient, solKeypair, solErr := newSolana()
		if solErr != nil {
			return nil, solErr
		}
		up = up.WithSolana(solClient, solKeypair)
	} else if flagArDefaultKeypair {
		err = errors.New("--ar-default-keypair requires --with-sol")
		return
	}

	return up.Execute(ctx, groups)
}

func init() {
	uploadCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the status records are written to")
	uploadCmd.Flags().Int64Var(&flagBundleSize, "bundle-size", 10, "max bundle payload in MiB")
	uploadCmd.Flags().Float64Var(&flagRewardMultiplier, "reward-multiplier", 1.0, "multiplies the gateway price, between 0 and 10")
	uploadCmd.Flags().BoolVar(&flagWithSol, "with-sol", false, "pay for transactions through the Solana co-signer")
	uploadCmd.Flags().BoolVar(&flagNoBundle, "no-bundle", false, "one transaction per file instead of bundling")
	uploadCmd.Flags().IntVar(&flagBuffer, "buffer", 10, "max bundles in flight")
	RootCmd.AddCommand(uploadCmd)
}
