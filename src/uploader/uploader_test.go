package uploader

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/bundlr"
	"github.com/CalebEverett/arloader/src/utils/config"
)

// Mock gateway recording what the pipeline sends.
type mockGateway struct {
	t        *testing.T
	statusOk func() bool

	mtx       sync.Mutex
	txs       []arweave.Transaction
	chunks    []arweave.ChunkUpload
	txStatus  int
	onPostTx  func(tx *arweave.Transaction)
	inlineCap int
}

func newMockGateway(t *testing.T) *mockGateway {
	return &mockGateway{t: t, txStatus: http.StatusOK, inlineCap: -1}
}

func (self *mockGateway) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/price/262144":
			w.Write([]byte("1000"))
		case r.URL.Path == "/price/524288":
			w.Write([]byte("1600"))
		case r.URL.Path == "/tx_anchor":
			w.Write([]byte(arweave.Base64String(make([]byte, 48)).String()))
		case r.URL.Path == "/tx" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var tx arweave.Transaction
			require.NoError(self.t, json.Unmarshal(body, &tx))

			self.mtx.Lock()
			self.txs = append(self.txs, tx)
			txStatus := self.txStatus
			onPostTx := self.onPostTx
			self.mtx.Unlock()

			if self.inlineCap >= 0 && len(tx.Data) > self.inlineCap {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}

			if onPostTx != nil {
				onPostTx(&tx)
			}
			w.WriteHeader(txStatus)
		case r.URL.Path == "/chunk" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var chunk arweave.ChunkUpload
			require.NoError(self.t, json.Unmarshal(body, &chunk))

			self.mtx.Lock()
			self.chunks = append(self.chunks, chunk)
			self.mtx.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (self *mockGateway) postedTxs() []arweave.Transaction {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return append([]arweave.Transaction{}, self.txs...)
}

func (self *mockGateway) postedChunks() []arweave.ChunkUpload {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return append([]arweave.ChunkUpload{}, self.chunks...)
}

func testUploader(t *testing.T, conf *config.Config, store *status.Store) *Uploader {
	signer, err := bundlr.FromKeypairPath("testdata/arweave-key.json")
	require.NoError(t, err)

	return NewUploader(conf).
		WithClient(arweave.NewClient(conf)).
		WithSigner(signer).
		WithStore(store).
		WithPriceTerms(PriceTerms{Base: 1000, Incremental: 600})
}

func writeTestFiles(t *testing.T, count, size int) (dir string, paths []string) {
	dir = t.TempDir()
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, string(rune('a'+i))+".bin")
		data := make([]byte, size)
		for j := range data {
			data[j] = byte((i + j) % 256)
		}
		require.NoError(t, os.WriteFile(path, data, 0o644))
		paths = append(paths, path)
	}
	return
}

func TestUploadTenFilesOneBundle(t *testing.T) {
	gateway := newMockGateway(t)
	server := httptest.NewServer(gateway.handler())
	defer server.Close()

	conf := testConfig(server.URL)
	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)

	_, paths := writeTestFiles(t, 10, 1000)
	groups, err := GroupPaths(paths, uint64(conf.Uploader.BundleSizeMiB)<<20)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	// The record must be on disk before its transaction is posted
	gateway.onPostTx = func(tx *arweave.Transaction) {
		_, readErr := store.Read(tx.ID.String())
		assert.NoError(t, readErr)
	}

	summary, err := testUploader(t, conf, store).Execute(context.Background(), groups)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Submitted)
	assert.Zero(t, summary.Failed)

	txs := gateway.postedTxs()
	require.Len(t, txs, 1)
	assert.Equal(t, 2, txs[0].Format)

	// Bundle tags present
	var names []string
	for _, tag := range txs[0].Tags {
		names = append(names, string(tag.Name.Bytes()))
	}
	assert.Contains(t, names, "Bundle-Format")
	assert.Contains(t, names, "Bundle-Version")

	// The payload is a parseable bundle of ten verified items
	bundle, err := bundlr.Unpack(txs[0].Data.Bytes())
	require.NoError(t, err)
	assert.Len(t, bundle.Items, 10)

	// One record with an entry per file, item ids distinct from the
	// bundle transaction id
	records, err := store.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, status.CodeSubmitted, record.Status)
	assert.Equal(t, uint64(10), record.NumberOfFiles)
	assert.Equal(t, uint64(10000), record.DataSize)
	assert.Len(t, record.FilePaths, 10)
	for _, entry := range record.FilePaths {
		assert.Len(t, entry.Id.Bytes(), 32)
		assert.NotEqual(t, record.Id, entry.Id)
	}
}

func TestUploadPermanentFailureFlipsRecord(t *testing.T) {
	gateway := newMockGateway(t)
	gateway.txStatus = http.StatusBadRequest
	server := httptest.NewServer(gateway.handler())
	defer server.Close()

	conf := testConfig(server.URL)
	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)

	_, paths := writeTestFiles(t, 2, 100)
	groups, err := GroupPaths(paths, 1<<20)
	require.NoError(t, err)

	summary, err := testUploader(t, conf, store).Execute(context.Background(), groups)
	require.NoError(t, err)
	assert.Zero(t, summary.Submitted)
	assert.Equal(t, 1, summary.Failed)

	records, err := store.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, status.CodeNotFound, records[0].Status)
}

func TestUploadFallsBackToChunks(t *testing.T) {
	gateway := newMockGateway(t)
	gateway.inlineCap = 0 // every inline post bounces with 413
	server := httptest.NewServer(gateway.handler())
	defer server.Close()

	conf := testConfig(server.URL)
	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)

	_, paths := writeTestFiles(t, 1, 600*1024)
	groups := []PathsGroup{{Paths: paths, DataSize: 600 * 1024}}

	summary, err := testUploader(t, conf, store).
		WithNoBundle(true).
		Execute(context.Background(), groups)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Submitted)

	// Second post carries no data, the payload went through /chunk
	txs := gateway.postedTxs()
	require.Len(t, txs, 2)
	assert.Empty(t, txs[1].Data.Bytes())

	chunks := gateway.postedChunks()
	require.Len(t, chunks, 3)

	// Every posted chunk proof validates against the data root
	for _, posted := range chunks {
		hash := sha256.Sum256(posted.Chunk.Bytes())
		chunk := arweave.Chunk{
			DataHash:     hash[:],
			MaxByteRange: posted.Offset.Uint64() + 1,
		}
		chunk.MinByteRange = chunk.MaxByteRange - uint64(len(posted.Chunk.Bytes()))

		assert.NoError(t, arweave.ValidateChunk(posted.DataRoot.Bytes(), chunk,
			arweave.Proof{Offset: posted.Offset.Uint64(), Proof: posted.DataPath.Bytes()}))
	}
}

func TestUploadCancellation(t *testing.T) {
	gateway := newMockGateway(t)
	server := httptest.NewServer(gateway.handler())
	defer server.Close()

	conf := testConfig(server.URL)
	conf.Uploader.Buffer = 1

	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)

	_, paths := writeTestFiles(t, 5, 100)
	var groups []PathsGroup
	for _, path := range paths {
		groups = append(groups, PathsGroup{Paths: []string{path}, DataSize: 100})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// With buffer 1 the groups run strictly in order. The third anchor
	// fetch triggers the cancellation and blocks until it lands, so two
	// bundles complete and the third never reaches the persist stage.
	var anchors int
	var anchorMtx sync.Mutex
	outer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tx_anchor" {
			anchorMtx.Lock()
			anchors++
			blocked := anchors > 2
			anchorMtx.Unlock()
			if blocked {
				cancel()
				<-r.Context().Done()
				return
			}
		}
		gateway.handler().ServeHTTP(w, r)
	}))
	defer outer.Close()
	conf.Arweave.BaseUrl = outer.URL

	summary, err := testUploader(t, conf, store).Execute(ctx, groups)
	require.NoError(t, err)

	// Two bundles made it out before the cancellation, the rest left no
	// trace on disk. Clean shutdown, no error.
	assert.Equal(t, 2, summary.Submitted)
	assert.Equal(t, 5, summary.Planned)

	records, scanErr := store.Scan()
	require.NoError(t, scanErr)
	assert.Len(t, records, 2)
}
