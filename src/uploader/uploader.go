package uploader

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/bundlr"
	"github.com/CalebEverett/arloader/src/utils/config"
	"github.com/CalebEverett/arloader/src/utils/solana"
	"github.com/CalebEverett/arloader/src/utils/task"
)

// Progress event published per bundle for the CLI to render.
type Progress struct {
	Id            string
	Status        status.Code
	NumberOfFiles uint64
	DataSize      uint64
	Err           error
}

// Summary of a finished or cancelled run.
type Summary struct {
	Submitted int
	Failed    int
	Planned   int
	Records   []*status.Record
}

// Uploader drives file groups through data item building, bundling,
// transaction signing and posting. CPU-bound stages run on the worker
// pool, never on the goroutines doing network I/O. At most
// Uploader.Buffer groups are past the discovery stage at any time.
type Uploader struct {
	*task.Task

	client     *arweave.Client
	signer     *bundlr.ArweaveSigner
	store      *status.Store
	solClient  *solana.Client
	solKeypair *solana.Keypair

	terms    PriceTerms
	tags     []bundlr.Tag
	noBundle bool

	groups []PathsGroup
	input  chan PathsGroup

	// Progress events, one per processed group
	Output chan *Progress

	onProgress func(*Progress)

	mtx      sync.Mutex
	summary  Summary
	solSigs  map[string]*solana.SigResponse
	fatalErr error
}

func NewUploader(config *config.Config) (self *Uploader) {
	self = new(Uploader)

	self.input = make(chan PathsGroup)
	self.Output = make(chan *Progress)

	self.Task = task.NewTask(config, "uploader").
		WithWorkerPool(runtime.NumCPU()).
		WithSubtaskFunc(self.produce).
		WithSubtaskFunc(self.run)

	return
}

func (self *Uploader) WithClient(client *arweave.Client) *Uploader {
	self.client = client
	return self
}

func (self *Uploader) WithSigner(signer *bundlr.ArweaveSigner) *Uploader {
	self.signer = signer
	return self
}

func (self *Uploader) WithStore(store *status.Store) *Uploader {
	self.store = store
	return self
}

func (self *Uploader) WithSolana(client *solana.Client, keypair *solana.Keypair) *Uploader {
	self.solClient = client
	self.solKeypair = keypair
	return self
}

func (self *Uploader) WithPriceTerms(terms PriceTerms) *Uploader {
	self.terms = terms
	return self
}

func (self *Uploader) WithTags(tags []bundlr.Tag) *Uploader {
	self.tags = tags
	return self
}

// WithOnProgress registers a callback invoked from Execute for every
// progress event.
func (self *Uploader) WithOnProgress(f func(*Progress)) *Uploader {
	self.onProgress = f
	return self
}

// WithNoBundle switches to one v2 transaction per file, data posted in
// chunks when above the inline threshold.
func (self *Uploader) WithNoBundle(noBundle bool) *Uploader {
	self.noBundle = noBundle
	return self
}

// Execute runs the pipeline over groups until done or ctx is cancelled.
// Cancellation lets in-flight groups finish their current stage so the
// status directory reflects everything that was sent, then returns the
// summary. Only a status write failure is returned as an error.
func (self *Uploader) Execute(ctx context.Context, groups []PathsGroup) (out *Summary, err error) {
	self.groups = groups
	self.summary.Planned = len(groups)

	err = self.Start()
	if err != nil {
		return
	}

	go func() {
		select {
		case <-ctx.Done():
			self.StopWait()
		case <-self.CtxRunning.Done():
		}
	}()

	// Drain progress so processing never blocks on a slow consumer
	for progress := range self.Output {
		if self.onProgress != nil {
			self.onProgress(progress)
		}
	}

	<-self.CtxRunning.Done()

	self.mtx.Lock()
	defer self.mtx.Unlock()
	out = &self.summary
	err = self.fatalErr
	return
}

func (self *Uploader) produce() (err error) {
	defer close(self.input)

	for _, group := range self.groups {
		select {
		case self.input <- group:
		case <-self.StopChannel:
			return nil
		}
	}
	return nil
}

func (self *Uploader) run() (err error) {
	var group errgroup.Group
	group.SetLimit(self.Config.Uploader.Buffer)

	for pathsGroup := range self.input {
		pathsGroup := pathsGroup
		group.Go(func() error {
			self.processGroup(pathsGroup)
			return nil
		})
	}

	group.Wait()
	close(self.Output)
	return nil
}

func (self *Uploader) emit(progress *Progress) {
	select {
	case self.Output <- progress:
	case <-self.StopChannel:
	}
}

func (self *Uploader) fail(group PathsGroup, err error) {
	self.Log.WithError(err).WithField("files", len(group.Paths)).Error("Bundle failed before post")

	self.mtx.Lock()
	self.summary.Failed++
	self.mtx.Unlock()

	self.emit(&Progress{
		NumberOfFiles: uint64(len(group.Paths)),
		DataSize:      group.DataSize,
		Err:           err,
	})
}

func (self *Uploader) fatal(err error) {
	self.mtx.Lock()
	if self.fatalErr == nil {
		self.fatalErr = err
	}
	self.mtx.Unlock()
	self.Stop()
}

func (self *Uploader) processGroup(group PathsGroup) {
	payload, entries, err := self.buildPayload(group)
	if err != nil {
		self.fail(group, err)
		return
	}

	tx, err := self.buildTransaction(payload, group)
	if err != nil {
		self.fail(group, err)
		return
	}

	if self.noBundle {
		// Without a bundle the file is the transaction itself
		for path, entry := range entries {
			entry.Id = tx.ID
			entries[path] = entry
		}
	}

	record := status.NewRecord(tx.ID, tx.Reward.Uint64(), group.DataSize)
	record.FilePaths = entries
	record.NumberOfFiles = uint64(len(group.Paths))
	record.SolSig = self.lastSolSig(tx)

	// The record goes to disk before anything hits the network so no
	// transaction is ever sent whose id is not already on disk.
	err = self.store.Write(record)
	if err != nil {
		self.fatal(err)
		return
	}

	err = self.post(tx, payload)
	if err != nil && (errors.Is(err, context.Canceled) || self.IsStopping.Load()) {
		// Cancelled mid-post. The record stays Submitted on disk, the
		// reconciler settles what actually made it.
		return
	}
	if err != nil {
		record.Status = status.CodeNotFound
		if writeErr := self.store.Write(record); writeErr != nil {
			self.fatal(writeErr)
			return
		}

		self.Log.WithError(err).WithField("id", record.Id.String()).Error("Gateway rejected transaction")
		self.mtx.Lock()
		self.summary.Failed++
		self.summary.Records = append(self.summary.Records, record)
		self.mtx.Unlock()

		self.emit(&Progress{
			Id:            record.Id.String(),
			Status:        record.Status,
			NumberOfFiles: record.NumberOfFiles,
			DataSize:      record.DataSize,
			Err:           err,
		})
		return
	}

	self.mtx.Lock()
	self.summary.Submitted++
	self.summary.Records = append(self.summary.Records, record)
	self.mtx.Unlock()

	self.emit(&Progress{
		Id:            record.Id.String(),
		Status:        record.Status,
		NumberOfFiles: record.NumberOfFiles,
		DataSize:      record.DataSize,
	})
}

// buildPayload produces the transaction payload: a packed bundle of data
// items, or the raw file in no-bundle mode. Data items are computed in
// parallel on the worker pool and joined in input order.
func (self *Uploader) buildPayload(group PathsGroup) (payload []byte, entries map[string]status.FileEntry, err error) {
	entries = make(map[string]status.FileEntry, len(group.Paths))

	if self.noBundle {
		payload, err = os.ReadFile(group.Paths[0])
		if err != nil {
			return
		}
		entries[group.Paths[0]] = status.FileEntry{ContentType: ContentType(group.Paths[0])}
		return
	}

	items := make([]*bundlr.BundleItem, len(group.Paths))
	errs := make([]error, len(group.Paths))

	var wait sync.WaitGroup
	for i, path := range group.Paths {
		i, path := i, path
		wait.Add(1)
		self.Workers.Submit(func() {
			defer wait.Done()
			items[i], errs[i] = self.buildItem(path)
		})
	}
	wait.Wait()

	for _, itemErr := range errs {
		if itemErr != nil {
			err = itemErr
			return
		}
	}

	bundle := bundlr.Bundle{Items: items}
	payload, err = bundle.Pack()
	if err != nil {
		return
	}

	for i, path := range group.Paths {
		contentType, _ := items[i].Tags.Get("Content-Type")
		entries[path] = status.FileEntry{
			Id:          items[i].Id,
			ContentType: contentType,
		}
	}
	return
}

func (self *Uploader) buildItem(path string) (item *bundlr.BundleItem, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	tags := bundlr.Tags{{Name: "Content-Type", Value: ContentType(path)}}
	tags = tags.Append(self.tags)

	item = &bundlr.BundleItem{
		Data: data,
		Tags: tags,
	}

	// Reader signs the item, the serialized form is rebuilt by Pack
	_, err = item.Reader(self.signer)
	if err != nil {
		item = nil
	}
	return
}

func (self *Uploader) buildTransaction(payload []byte, group PathsGroup) (tx *arweave.Transaction, err error) {
	tx = &arweave.Transaction{
		Format:   2,
		Quantity: arweave.BigIntFromUint64(0),
	}

	if self.noBundle {
		tx.Tags = []arweave.Tag{
			arweave.TagFromStrings("Content-Type", ContentType(group.Paths[0])),
		}
	} else {
		tx.Tags = []arweave.Tag{
			arweave.TagFromStrings("Bundle-Format", "binary"),
			arweave.TagFromStrings("Bundle-Version", "2.0.0"),
		}
	}

	err = tx.PrepareChunks(payload)
	if err != nil {
		return nil, err
	}

	tx.LastTx, err = self.client.GetTxAnchor(self.Ctx)
	if err != nil {
		return nil, err
	}

	tx.Reward = arweave.BigIntFromUint64(self.terms.Reward(uint64(len(payload))))

	if self.solClient != nil && self.solKeypair != nil {
		err = self.signWithSol(tx)
	} else {
		err = tx.Sign(self.signer)
	}
	if err != nil {
		return nil, err
	}

	return
}

func (self *Uploader) signWithSol(tx *arweave.Transaction) (err error) {
	digest := tx.SignatureData()

	response, err := self.solClient.Sign(self.Ctx, self.solKeypair, digest[:], tx.Reward.Uint64())
	if err != nil {
		return
	}

	tx.AttachSignature(response.ArTxOwner, response.ArTxSig)
	self.rememberSolSig(tx.ID.String(), response)
	return
}

// post sends the transaction, inline when the payload fits the inline
// threshold, otherwise headers first and the data in chunks with a
// bounded number in flight. An inline post bounced with 413 falls back to
// chunks.
func (self *Uploader) post(tx *arweave.Transaction, payload []byte) (err error) {
	inlineCap := uint64(self.Config.Uploader.BundleSizeMiB) << 20

	if uint64(len(payload)) <= inlineCap {
		inlineTx := *tx
		inlineTx.Data = arweave.Base64String(payload)

		err = self.client.PostTransaction(self.Ctx, &inlineTx)
		if err == nil || !errors.Is(err, arweave.ErrPayloadTooLarge) {
			return
		}
	}

	headerTx := tx.WithoutData()
	err = self.client.PostTransaction(self.Ctx, &headerTx)
	if err != nil {
		return
	}

	var chunks errgroup.Group
	chunks.SetLimit(self.Config.Arweave.MaxChunkWorkers)

	for i := range tx.Chunks.Chunks {
		i := i
		chunks.Go(func() error {
			chunk, chunkErr := tx.GetChunk(i, payload)
			if chunkErr != nil {
				return chunkErr
			}
			return self.client.PostChunk(self.Ctx, chunk)
		})
	}

	return chunks.Wait()
}

// Co-signer responses are attached to the record created right after
// signing, keyed by transaction id.
func (self *Uploader) rememberSolSig(id string, response *solana.SigResponse) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	if self.solSigs == nil {
		self.solSigs = make(map[string]*solana.SigResponse)
	}
	self.solSigs[id] = response
}

func (self *Uploader) lastSolSig(tx *arweave.Transaction) *solana.SigResponse {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return self.solSigs[tx.ID.String()]
}
