package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/uploader"
	"github.com/CalebEverett/arloader/src/utils/arweave"
)

var (
	updateStatusCmd = &cobra.Command{
		Use:   "update-status",
		Short: "Query the gateway and update the status records in --log-dir",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := newStore(requireLogDir(cmd))
			if err != nil {
				return
			}

			records, err := uploader.NewReconciler(conf).
				WithClient(newClient()).
				WithStore(store).
				Reconcile(ctx)
			if err != nil {
				return
			}

			printRecordHeader()
			for _, record := range records {
				printRecord(record)
			}
			return
		},
	}

	listStatusCmd = &cobra.Command{
		Use:   "list-status",
		Short: "List the status records in --log-dir",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := newStore(requireLogDir(cmd))
			if err != nil {
				return
			}

			records, err := store.Scan()
			if err != nil {
				return
			}

			printRecordHeader()
			for _, record := range records {
				printRecord(record)
			}
			return
		},
	}

	statusReportCmd = &cobra.Command{
		Use:   "status-report",
		Short: "Summarize the status records in --log-dir",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := newStore(requireLogDir(cmd))
			if err != nil {
				return
			}

			records, err := store.Scan()
			if err != nil {
				return
			}

			counts := make(map[status.Code]int)
			var files, bytes uint64
			for _, record := range records {
				counts[record.Status]++
				files += record.NumberOfFiles
				bytes += record.DataSize
			}

			fmt.Printf("%d records, %d files, %d bytes\n", len(records), files, bytes)
			for _, code := range []status.Code{status.CodeSubmitted, status.CodePending, status.CodeConfirmed, status.CodeNotFound} {
				fmt.Printf(" %-9s  %d\n", code, counts[code])
			}
			return
		},
	}

	getStatusCmd = &cobra.Command{
		Use:   "get-status <txid>",
		Short: "Fetch the network status of one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := arweave.FromBase64String(args[0])
			if err != nil {
				return
			}

			raw, err := newClient().GetTxStatus(ctx, id)
			switch {
			case err == nil:
				var out []byte
				out, err = json.MarshalIndent(raw, "", "  ")
				if err != nil {
					return
				}
				fmt.Printf("%s Confirmed\n%s\n", args[0], out)
			case errors.Is(err, arweave.ErrPending):
				fmt.Printf("%s Pending\n", args[0])
				err = nil
			case errors.Is(err, arweave.ErrNotFound):
				fmt.Printf("%s NotFound\n", args[0])
				err = nil
			}
			return
		},
	}
)

func requireLogDir(cmd *cobra.Command) string {
	if cmd.Flags().Changed("log-dir") {
		return flagLogDir
	}
	return conf.Uploader.LogDir
}

func init() {
	for _, cmd := range []*cobra.Command{updateStatusCmd, listStatusCmd, statusReportCmd} {
		cmd.Flags().StringVar(&flagLogDir, "log-dir", "", "directory the status records are read from")
		cmd.MarkFlagRequired("log-dir")
		RootCmd.AddCommand(cmd)
	}
	RootCmd.AddCommand(getStatusCmd)
}
