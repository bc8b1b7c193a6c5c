package uploader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalebEverett/arloader/src/status"
	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/config"
)

func testId(fill byte) arweave.Base64String {
	id := make([]byte, 32)
	for i := range id {
		id[i] = fill
	}
	return arweave.Base64String(id)
}

func recordWith(id arweave.Base64String, code status.Code, confirms uint64, paths ...string) *status.Record {
	record := status.NewRecord(id, 1, 1)
	record.Status = code
	record.NumberOfConfirmations = confirms
	for _, path := range paths {
		record.FilePaths[path] = status.FileEntry{Id: id}
	}
	return record
}

func TestSelectForReupload(t *testing.T) {
	records := []*status.Record{
		recordWith(testId(1), status.CodeConfirmed, 30, "a"),
		recordWith(testId(2), status.CodeConfirmed, 10, "b"),
		recordWith(testId(3), status.CodeNotFound, 0, "c"),
		recordWith(testId(4), status.CodePending, 0, "d"),
	}

	selected := SelectForReupload(records,
		[]string{"a", "e"},
		[]status.Code{status.CodeNotFound, status.CodePending},
		25)

	// b is under-confirmed, c and d match the status filter, e is not
	// covered by any record. a is permanent and stays out.
	assert.Equal(t, []string{"b", "c", "d", "e"}, selected)
}

func TestSelectForReuploadNoFilters(t *testing.T) {
	records := []*status.Record{
		recordWith(testId(1), status.CodeConfirmed, 30, "a"),
	}

	selected := SelectForReupload(records, []string{"a", "b"}, nil, 0)
	assert.Equal(t, []string{"b"}, selected)
}

func testConfig(baseUrl string) *config.Config {
	conf := config.Default()
	conf.Arweave.BaseUrl = baseUrl
	conf.Arweave.RetryBaseInterval = time.Millisecond
	conf.Arweave.RetryMaxInterval = 5 * time.Millisecond
	conf.Arweave.RetryMaxAttempts = 2
	conf.Arweave.LimiterRPS = 10000
	return conf
}

func TestReconcileUpdatesRecords(t *testing.T) {
	confirmedId := testId(1)
	pendingId := testId(2)
	droppedId := testId(3)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, confirmedId.String()):
			w.Write([]byte(`{"block_height": 7, "block_indep_hash": "` +
				arweave.Base64String(make([]byte, 48)).String() + `", "number_of_confirmations": 45}`))
		case strings.Contains(r.URL.Path, pendingId.String()):
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	conf := testConfig(server.URL)

	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Write(recordWith(confirmedId, status.CodeSubmitted, 0, "a")))
	require.NoError(t, store.Write(recordWith(pendingId, status.CodeSubmitted, 0, "b")))
	require.NoError(t, store.Write(recordWith(droppedId, status.CodeSubmitted, 0, "c")))

	_, err = NewReconciler(conf).
		WithClient(arweave.NewClient(conf)).
		WithStore(store).
		Reconcile(context.Background())
	require.NoError(t, err)

	confirmed, err := store.Read(confirmedId.String())
	require.NoError(t, err)
	assert.Equal(t, status.CodeConfirmed, confirmed.Status)
	assert.Equal(t, uint64(45), confirmed.NumberOfConfirmations)
	assert.Equal(t, uint64(7), confirmed.BlockHeight)

	pending, err := store.Read(pendingId.String())
	require.NoError(t, err)
	assert.Equal(t, status.CodePending, pending.Status)

	dropped, err := store.Read(droppedId.String())
	require.NoError(t, err)
	assert.Equal(t, status.CodeNotFound, dropped.Status)
}

func TestReconcileSkipsPermanentRecords(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	conf := testConfig(server.URL)

	store, err := status.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Write(recordWith(testId(1), status.CodeConfirmed, 45, "a")))

	_, err = NewReconciler(conf).
		WithClient(arweave.NewClient(conf)).
		WithStore(store).
		Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, calls)
}
