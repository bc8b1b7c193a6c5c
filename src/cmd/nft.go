package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/nft"
	"github.com/CalebEverett/arloader/src/uploader"
)

var (
	flagManifestPath string
	flagLinkFile     bool

	updateMetadataCmd = &cobra.Command{
		Use:   "update-metadata <glob>...",
		Short: "Patch image and files in metadata JSON from a manifest companion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			paths, err := uploader.DiscoverPaths(args)
			if err != nil {
				return
			}

			err = nft.UpdateMetadata(paths, uploader.ExpandTilde(flagManifestPath), conf.Arweave.BaseUrl, flagLinkFile)
			if err != nil {
				return
			}

			fmt.Printf("Successfully updated %d metadata files.\n", len(paths))
			return
		},
	}

	writeMetaplexItemsCmd = &cobra.Command{
		Use:   "write-metaplex-items <glob>...",
		Short: "Write the Metaplex candy machine items file for uploaded metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			paths, err := uploader.DiscoverPaths(args)
			if err != nil {
				return
			}

			out, err := nft.WriteMetaplexItems(paths, uploader.ExpandTilde(flagManifestPath),
				requireLogDir(cmd), conf.Arweave.BaseUrl, flagLinkFile)
			if err != nil {
				return
			}

			fmt.Printf("Successfully wrote metaplex items for %d metadata files to %s\n", len(paths), out)
			return
		},
	}

	uploadNftsCmd = &cobra.Command{
		Use:   "upload-nfts <glob>...",
		Short: "Upload assets and metadata, link them and emit manifests",
		Long: "Uploads the matched asset files, uploads a path manifest for them, patches each " +
			"sibling metadata file with its uploaded uris, uploads the metadata files and finally " +
			"uploads a manifest for the metadata. Status records land in <log-dir>/assets and " +
			"<log-dir>/metadata.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			applyUploadFlags(cmd)

			assetPaths, err := uploader.DiscoverPaths(args)
			if err != nil {
				return
			}

			baseDir, err := uploader.EnsureLogDir(conf.Uploader.LogDir, assetPaths[0])
			if err != nil {
				return
			}
			assetsDir := filepath.Join(baseDir, "assets")
			metadataDir := filepath.Join(baseDir, "metadata")

			// Assets
			summary, err := runUpload(assetPaths, assetsDir)
			if err != nil {
				return
			}
			fmt.Printf("Submitted %d asset bundles.\n", summary.Submitted)

			assetManifestId, _, err := uploadManifestFromLogDir(assetsDir)
			if err != nil {
				return
			}

			// Patch metadata with the uploaded asset uris
			assetManifestPath := filepath.Join(assetsDir, "manifest_"+assetManifestId+".json")
			err = nft.UpdateMetadata(assetPaths, assetManifestPath, conf.Arweave.BaseUrl, flagLinkFile)
			if err != nil {
				return
			}

			// Metadata
			metadataPaths := nft.MetadataPathsFor(assetPaths)
			summary, err = runUpload(metadataPaths, metadataDir)
			if err != nil {
				return
			}
			fmt.Printf("Submitted %d metadata bundles.\n", summary.Submitted)

			metadataManifestId, _, err := uploadManifestFromLogDir(metadataDir)
			if err != nil {
				return
			}

			fmt.Printf("\nAsset manifest %s, metadata manifest %s. Statuses in %s.\n",
				assetManifestId, metadataManifestId, baseDir)
			fmt.Printf("Run `arloader update-nft-status --log-dir %s` to confirm transactions.\n", baseDir)
			return
		},
	}

	updateNftStatusCmd = &cobra.Command{
		Use:   "update-nft-status",
		Short: "Update the asset and metadata status records of an upload-nfts run",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client := newClient()

			for _, sub := range []string{"assets", "metadata"} {
				store, storeErr := newStore(filepath.Join(requireLogDir(cmd), sub))
				if storeErr != nil {
					return storeErr
				}

				records, reconcileErr := uploader.NewReconciler(conf).
					WithClient(client).
					WithStore(store).
					Reconcile(ctx)
				if reconcileErr != nil {
					return reconcileErr
				}

				fmt.Printf("%s:\n", sub)
				printRecordHeader()
				for _, record := range records {
					printRecord(record)
				}
			}
			return
		},
	}
)

func init() {
	updateMetadataCmd.Flags().StringVar(&flagManifestPath, "manifest-path", "", "path to the manifest companion file")
	updateMetadataCmd.MarkFlagRequired("manifest-path")
	updateMetadataCmd.Flags().BoolVar(&flagLinkFile, "link-file", false, "link to the path-based uri instead of the id-based one")

	writeMetaplexItemsCmd.Flags().StringVar(&flagManifestPath, "manifest-path", "", "path to the manifest companion file")
	writeMetaplexItemsCmd.MarkFlagRequired("manifest-path")
	writeMetaplexItemsCmd.Flags().BoolVar(&flagLinkFile, "link-file", false, "link to the path-based uri instead of the id-based one")
	writeMetaplexItemsCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the items file is written to")
	writeMetaplexItemsCmd.MarkFlagRequired("log-dir")

	uploadNftsCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the status records are written to")
	uploadNftsCmd.Flags().Int64Var(&flagBundleSize, "bundle-size", 10, "max bundle payload in MiB")
	uploadNftsCmd.Flags().Float64Var(&flagRewardMultiplier, "reward-multiplier", 1.0, "multiplies the gateway price, between 0 and 10")
	uploadNftsCmd.Flags().BoolVar(&flagWithSol, "with-sol", false, "pay for transactions through the Solana co-signer")
	uploadNftsCmd.Flags().BoolVar(&flagLinkFile, "link-file", false, "link metadata to path-based uris")
	uploadNftsCmd.Flags().IntVar(&flagBuffer, "buffer", 10, "max bundles in flight")

	updateNftStatusCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "base directory of the upload-nfts run")
	updateNftStatusCmd.MarkFlagRequired("log-dir")

	RootCmd.AddCommand(updateMetadataCmd, writeMetaplexItemsCmd, uploadNftsCmd, updateNftStatusCmd)
}
