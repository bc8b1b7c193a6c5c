package status

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

func testId(fill byte) arweave.Base64String {
	id := make([]byte, 32)
	for i := range id {
		id[i] = fill
	}
	return arweave.Base64String(id)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	record := NewRecord(testId(1), 1234, 3546)
	record.NumberOfFiles = 1
	record.FilePaths["a/b.png"] = FileEntry{Id: testId(2), ContentType: "image/png"}

	require.NoError(t, store.Write(record))

	loaded, err := store.Read(record.Id.String())
	require.NoError(t, err)

	assert.Equal(t, record.Id, loaded.Id)
	assert.Equal(t, CodeSubmitted, loaded.Status)
	assert.Equal(t, uint64(3546), loaded.DataSize)
	assert.Equal(t, record.FilePaths, loaded.FilePaths)
	assert.True(t, loaded.CreatedAt.Equal(record.CreatedAt))
}

func TestReadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(testId(9).String())
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestScanSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(NewRecord(testId(1), 1, 1)))
	require.NoError(t, store.Write(NewRecord(testId(2), 2, 2)))

	// Leftover temp file from an induced crash, a companion manifest and
	// a file with a non-id stem must all be ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, testId(3).String()+".json.tmp"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest_abc.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	records, err := store.Scan()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	record := NewRecord(testId(7), 1, 1)
	require.NoError(t, store.Write(record))

	// No temp file survives a successful write
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, record.Id.String()+".json", entries[0].Name())
}

func TestFileStemIsValidTxId(t *testing.T) {
	assert.True(t, FileStemIsValidTxId(base64.RawURLEncoding.EncodeToString(make([]byte, 32))))
	assert.False(t, FileStemIsValidTxId("manifest_abc"))
	assert.False(t, FileStemIsValidTxId(base64.RawURLEncoding.EncodeToString(make([]byte, 16))))
}

func TestApplyTxStatusMonotonicConfirms(t *testing.T) {
	record := NewRecord(testId(1), 1, 1)

	record.ApplyTxStatus(CodeConfirmed, &arweave.TxStatus{NumberOfConfirmations: 45, BlockHeight: 10})
	assert.Equal(t, uint64(45), record.NumberOfConfirmations)
	assert.Equal(t, CodeConfirmed, record.Status)

	// A lower count from a lagging gateway never decreases the record
	record.ApplyTxStatus(CodeConfirmed, &arweave.TxStatus{NumberOfConfirmations: 30, BlockHeight: 10})
	assert.Equal(t, uint64(45), record.NumberOfConfirmations)
}

func TestTimestampsAreUTC(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	record := NewRecord(testId(1), 1, 1)
	require.NoError(t, store.Write(record))

	loaded, err := store.Read(record.Id.String())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loaded.CreatedAt.Location())
}
