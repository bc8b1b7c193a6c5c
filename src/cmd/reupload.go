package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/uploader"
)

var (
	flagStatuses    []string
	flagMaxConfirms uint64
	flagFilePaths   []string

	reuploadCmd = &cobra.Command{
		Use:   "reupload",
		Short: "Upload files whose records are missing, filtered by status, or under-confirmed",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			applyUploadFlags(cmd)

			logDir := requireLogDir(cmd)
			store, err := newStore(logDir)
			if err != nil {
				return
			}

			records, err := store.Scan()
			if err != nil {
				return
			}

			statuses := make([]status.Code, 0, len(flagStatuses))
			for _, raw := range flagStatuses {
				code, ok := status.ParseCode(raw)
				if !ok {
					return fmt.Errorf("unknown status %q", raw)
				}
				statuses = append(statuses, code)
			}

			var filePaths []string
			if len(flagFilePaths) > 0 {
				filePaths, err = uploader.DiscoverPaths(flagFilePaths)
				if err != nil {
					return
				}
			}

			selected := uploader.SelectForReupload(records, filePaths, statuses, flagMaxConfirms)
			if len(selected) == 0 {
				fmt.Println("Nothing to reupload.")
				return nil
			}

			summary, err := runUpload(selected, logDir)
			if err != nil {
				return
			}

			fmt.Printf("\nReuploaded %d of %d planned bundles (%d failed). Statuses in %s\n",
				summary.Submitted, summary.Planned, summary.Failed, logDir)
			return
		},
	}
)

func init() {
	reuploadCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the status records are read from")
	reuploadCmd.MarkFlagRequired("log-dir")
	reuploadCmd.Flags().StringSliceVar(&flagStatuses, "statuses", nil, "statuses that select a record for reupload")
	reuploadCmd.Flags().Uint64Var(&flagMaxConfirms, "max-confirms", 0, "records under this confirmation count get reuploaded")
	reuploadCmd.Flags().StringSliceVar(&flagFilePaths, "file-paths", nil, "file paths or globs considered for reupload")
	reuploadCmd.Flags().Int64Var(&flagBundleSize, "bundle-size", 10, "max bundle payload in MiB")
	reuploadCmd.Flags().Float64Var(&flagRewardMultiplier, "reward-multiplier", 1.0, "multiplies the gateway price, between 0 and 10")
	reuploadCmd.Flags().BoolVar(&flagWithSol, "with-sol", false, "pay for transactions through the Solana co-signer")
	reuploadCmd.Flags().BoolVar(&flagNoBundle, "no-bundle", false, "one transaction per file instead of bundling")
	reuploadCmd.Flags().IntVar(&flagBuffer, "buffer", 10, "max bundles in flight")
	RootCmd.AddCommand(reuploadCmd)
}
