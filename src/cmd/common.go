package cmd

import (
	"errors"
	"fmt"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/uploader"
	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/bundlr"
	"github.com/CalebEverett/arloader/src/utils/solana"
)

const winstonsPerAR = 1_000_000_000_000

var errNoKeypair = errors.New("no Arweave keypair, provide --ar-keypair-path or AR_KEYPAIR_PATH")

func newClient() *arweave.Client {
	return arweave.NewClient(conf)
}

func newSigner() (signer *bundlr.ArweaveSigner, err error) {
	if flagArDefaultKeypair {
		return bundlr.NewArweaveSigner(defaultKeypairJWK)
	}
	if conf.Arweave.KeypairPath == "" {
		err = errNoKeypair
		return
	}
	return bundlr.FromKeypairPath(uploader.ExpandTilde(conf.Arweave.KeypairPath))
}

func newSolana() (client *solana.Client, keypair *solana.Keypair, err error) {
	if conf.Solana.KeypairPath == "" {
		err = errors.New("no Solana keypair, provide --sol-keypair-path or SOL_KEYPAIR_PATH")
		return
	}
	keypair, err = solana.KeypairFromPath(uploader.ExpandTilde(conf.Solana.KeypairPath))
	if err != nil {
		return
	}
	client = solana.NewClient(conf)
	return
}

func newStore(logDir string) (*status.Store, error) {
	return status.NewStore(uploader.ExpandTilde(logDir))
}

func winstonsToAR(winstons uint64) float64 {
	return float64(winstons) / winstonsPerAR
}

func printRecord(record *status.Record) {
	fmt.Printf(" %-43s  %-9s  %8d  %6d files  %10d bytes\n",
		record.Id.String(), record.Status, record.NumberOfConfirmations,
		record.NumberOfFiles, record.DataSize)
}

func printRecordHeader() {
	fmt.Printf(" %-43s  %-9s  %8s  %12s  %16s\n%s\n",
		"id", "status", "confirms", "files", "size",
	 "--------------------------------------------------------------------------------------------------")
}
