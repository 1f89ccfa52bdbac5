package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/storage/sheetfake"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (SheetClient, *sheetfake.Server) {
	t.Helper()
	fake := sheetfake.New()
	t.Cleanup(fake.Close)
	return NewSheetClient(fake.URL(), SheetClientOptions{Timeout: 5 * time.Second}), fake
}

func TestGetDataNormalisesCells(t *testing.T) {
	client, fake := newTestClient(t)
	fake.SetSheet("Login", [][]interface{}{
		{"Serial", "Name"},
		{"SN-001", 42, 8500.5, true, nil, 1e3},
	})

	rows, err := client.GetData(context.Background(), "Login")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"SN-001", "42", "8500.5", "true", "", "1000"}, rows[1])
	assert.Equal(t, "getData", fake.Calls()[0].Action)
}

func TestGetDataUnknownSheet(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetData(context.Background(), "Missing")
	assert.ErrorContains(t, err, "Sheet not found")
}

func TestGetDataNon2xx(t *testing.T) {
	client, fake := newTestClient(t)
	fake.FailStatus(http.StatusBadGateway)

	_, err := client.GetData(context.Background(), "Dispatch")
	assert.ErrorContains(t, err, "status code 502")
}

func TestInsertSendsRowData(t *testing.T) {
	client, fake := newTestClient(t)
	fake.SetSheet("Login", nil)

	require.NoError(t, client.Insert(context.Background(), "Login", []string{"SN-001", "Ramesh"}))

	calls := fake.CallsFor("insert")
	require.Len(t, calls, 1)
	assert.Equal(t, "Login", calls[0].Sheet)
	assert.Equal(t, []string{"SN-001", "Ramesh"}, calls[0].RowData)
}

func TestUpdateSendsDensePatch(t *testing.T) {
	client, fake := newTestClient(t)
	fake.SetSheet("Dispatch", [][]interface{}{{"a", "b", "c", "d"}})

	patch := RowPatch{}.Set(3, "new").Set(1, "B")
	require.NoError(t, client.Update(context.Background(), "Dispatch", 1, patch))

	calls := fake.CallsFor("update")
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].RowIndex)
	assert.Equal(t, []string{"", "B", "", "new"}, calls[0].RowData)
	assert.Equal(t, []string{"a", "B", "c", "new"}, fake.Sheet("Dispatch")[0])
}

func TestUpdateRejectsBadRowIndex(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Error(t, client.Update(context.Background(), "Dispatch", 0, RowPatch{0: "x"}))
}

func TestFailureCarriesEndpointError(t *testing.T) {
	client, fake := newTestClient(t)
	fake.FailAction("delete", "Sheet is locked")

	err := client.Delete(context.Background(), "Dispatch", 3)
	assert.ErrorContains(t, err, "Sheet is locked")
}

func TestUploadFileReturnsURL(t *testing.T) {
	client, fake := newTestClient(t)

	url, err := client.UploadFile(context.Background(), UploadRequest{
		DataURL:  "data:image/jpeg;base64,AAAA",
		FileName: "vehicle_1.jpg",
		MimeType: "image/jpeg",
		FolderID: "folder",
	})
	require.NoError(t, err)
	assert.Contains(t, url, "drive.google.com/file/d/")

	uploads := fake.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "folder", uploads[0].FolderID)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", uploads[0].DataURL)
}

func TestColumnLetters(t *testing.T) {
	for letter, idx := range map[string]int{"A": 0, "Z": 25, "AA": 26, "AL": 37, "BP": 67} {
		got, err := ColumnIndex(letter)
		require.NoError(t, err)
		assert.Equal(t, idx, got, letter)
		assert.Equal(t, letter, ColumnLetter(idx))
	}
	_, err := ColumnIndex("A1")
	assert.Error(t, err)
}

func TestRowHelpers(t *testing.T) {
	r := Row{" x ", "  ", ""}
	assert.Equal(t, "x", r.Cell(0))
	assert.True(t, r.Present(0))
	assert.False(t, r.Present(1))
	assert.False(t, r.Present(9))

	p := RowPatch{37: "a", 2: "b"}
	assert.Equal(t, []string{"C", "AL"}, p.Columns())
	assert.Len(t, p.Dense(), 38)
}

// dropConnection closes the connection without writing a response, the way a
// proxy timeout looks to the client after the request was already processed.
func dropConnection(w http.ResponseWriter) {
	conn, _, err := w.(http.Hijacker).Hijack()
	if err != nil {
		return
	}
	_ = conn.Close()
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWritesAreNotRetriedAfterTransportError(t *testing.T) {
	var posts, gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&posts, 1)
			dropConnection(w)
			return
		}
		if atomic.AddInt32(&gets, 1) == 1 {
			dropConnection(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[["a"]]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewSheetClient(srv.URL, SheetClientOptions{Timeout: 5 * time.Second, Retries: 3})

	err := client.Insert(context.Background(), "Dispatch", []string{"SN-001"})
	assert.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&posts))

	err = client.Delete(context.Background(), "Dispatch", 2)
	assert.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&posts))

	rows, err := client.GetData(context.Background(), "Dispatch")
	require.NoError(t, err)
	assert.Equal(t, []Row{{"a"}}, rows)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&gets), int32(2))
}

func TestTransportWarningsGoThroughLogrus(t *testing.T) {
	buf := &lockedBuffer{}
	old := log.StandardLogger().Out
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(old) })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dropConnection(w)
	}))
	t.Cleanup(srv.Close)

	client := NewSheetClient(srv.URL, SheetClientOptions{Timeout: 5 * time.Second, Retries: 1})
	_, err := client.GetData(context.Background(), "Dispatch")
	require.Error(t, err)

	assert.Eventually(t, func() bool {
		out := buf.String()
		return strings.Contains(out, "RESTY") && strings.Contains(out, "level=warning")
	}, 2*time.Second, 20*time.Millisecond)
}

func TestCellStringKeepsLongNumbers(t *testing.T) {
	client, fake := newTestClient(t)
	fake.SetSheet("Dispatch", [][]interface{}{{
		"12345678901234567890",
		json.Number("12345678901234567890"),
		json.Number("9007199254740993"),
		json.Number("0.1"),
		json.Number("1e3"),
	}})

	rows, err := client.GetData(context.Background(), "Dispatch")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"12345678901234567890", "12345678901234567890", "9007199254740993", "0.1", "1000"}, rows[0])
}
