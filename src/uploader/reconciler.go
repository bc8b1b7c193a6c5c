package uploader

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/config"
	"github.com/CalebEverett/arloader/src/utils/logger"
)

// Reconciler re-scans a status directory, queries the gateway and folds
// confirmation counts back into the records. It never creates records.
type Reconciler struct {
	client *arweave.Client
	store  *status.Store
	config *config.Config
	log    *logrus.Entry
}

func NewReconciler(config *config.Config) (self *Reconciler) {
	self = new(Reconciler)
	self.config = config
	self.log = logger.NewSublogger("reconciler")
	return
}

func (self *Reconciler) WithClient(client *arweave.Client) *Reconciler {
	self.client = client
	return self
}

func (self *Reconciler) WithStore(store *status.Store) *Reconciler {
	self.store = store
	return self
}

// Reconcile updates every record that is not yet confirmed with the
// required number of confirmations. Queries run concurrently, one
// in-flight update per id.
func (self *Reconciler) Reconcile(ctx context.Context) (records []*status.Record, err error) {
	records, err = self.store.Scan()
	if err != nil {
		return
	}

	var group errgroup.Group
	group.SetLimit(self.config.Uploader.Buffer)

	for _, record := range records {
		if record.IsPermanent(self.config.Uploader.RequiredConfirms) {
			continue
		}

		record := record
		group.Go(func() error {
			return self.reconcileOne(ctx, record)
		})
	}

	err = group.Wait()
	return
}

func (self *Reconciler) reconcileOne(ctx context.Context, record *status.Record) (err error) {
	raw, err := self.client.GetTxStatus(ctx, record.Id)

	switch {
	case err == nil:
		record.ApplyTxStatus(status.CodeConfirmed, raw)
	case errors.Is(err, arweave.ErrPending):
		record.ApplyTxStatus(status.CodePending, nil)
	case errors.Is(err, arweave.ErrNotFound):
		record.ApplyTxStatus(status.CodeNotFound, nil)
	default:
		// Transient failure after retries, leave the record alone
		self.log.WithError(err).WithField("id", record.Id.String()).Warn("Status query failed")
		return err
	}

	return self.store.Write(record)
}

// SelectForReupload returns the union of file paths not represented by
// any record, and paths whose record either has one of the given statuses
// or fewer confirmations than maxConfirms.
func SelectForReupload(records []*status.Record, filePaths []string, statuses []status.Code, maxConfirms uint64) (out []string) {
	wanted := make(map[status.Code]bool, len(statuses))
	for _, code := range statuses {
		wanted[code] = true
	}

	selected := make(map[string]bool)
	covered := make(map[string]bool)

	for _, record := range records {
		take := wanted[record.Status] || record.NumberOfConfirmations < maxConfirms
		for path := range record.FilePaths {
			covered[path] = true
			if take {
				selected[path] = true
			}
		}
	}

	for _, path := range filePaths {
		if !covered[path] {
			selected[path] = true
		}
	}

	out = make([]string, 0, len(selected))
	for path := range selected {
		out = append(out, path)
	}
	sort.Strings(out)
	return
}
