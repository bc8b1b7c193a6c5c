package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/manifest"
	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/uploader"
	"github.com/CalebEverett/arloader/src/utils/arweave"
)

var uploadManifestCmd = &cobra.Command{
	Use:   "upload-manifest",
	Short: "Build a path manifest from the records in --log-dir and upload it",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		applyUploadFlags(cmd)

		logDir := requireLogDir(cmd)
		id, count, err := uploadManifestFromLogDir(logDir)
		if err != nil {
			return
		}

		fmt.Printf("Uploaded manifest for %d files and wrote %s/manifest_%s.json.\n", count, logDir, id)
		fmt.Printf("Run `arloader get-status %s` to confirm the manifest transaction.\n", id)
		return
	},
}

func uploadManifestFromLogDir(logDir string) (id string, count int, err error) {
	store, err := newStore(logDir)
	if err != nil {
		return
	}

	records, err := store.Scan()
	if err != nil {
		return
	}
	if len(records) == 0 {
		err = errors.New("no status records found in " + logDir)
		return
	}

	built := manifest.FromRecords(records)
	count = len(built.Paths)

	data, err := built.Marshal()
	if err != nil {
		return
	}

	client := newClient()

	signer, err := newSigner()
	if err != nil {
		return
	}

	terms, err := uploader.GetPriceTerms(ctx, client, conf.Uploader.RewardMultiplier)
	if err != nil {
		return
	}

	tx := &arweave.Transaction{
		Format:   2,
		Quantity: arweave.BigIntFromUint64(0),
		Tags: []arweave.Tag{
			arweave.TagFromStrings("Content-Type", "application/x.arweave-manifest+json"),
		},
	}

	err = tx.PrepareChunks(data)
	if err != nil {
		return
	}

	tx.LastTx, err = client.GetTxAnchor(ctx)
	if err != nil {
		return
	}
	tx.Reward = arweave.BigIntFromUint64(terms.Reward(uint64(len(data))))

	err = tx.Sign(signer)
	if err != nil {
		return
	}

	record := status.NewRecord(tx.ID, tx.Reward.Uint64(), uint64(len(data)))
	record.NumberOfFiles = uint64(count)
	err = store.Write(record)
	if err != nil {
		return
	}

	tx.Data = arweave.Base64String(data)
	err = client.PostTransaction(ctx, tx)
	if err != nil {
		record.Status = status.CodeNotFound
		store.Write(record)
		return
	}

	id = tx.ID.String()
	_, err = built.WriteCompanion(store.Dir(), conf.Arweave.BaseUrl, id)
	return
}

func init() {
	uploadManifestCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the status records are read from")
	uploadManifestCmd.MarkFlagRequired("log-dir")
	uploadManifestCmd.Flags().Float64Var(&flagRewardMultiplier, "reward-multiplier", 1.0, "multiplies the gateway price, between 0 and 10")
	RootCmd.AddCommand(uploadManifestCmd)
}
