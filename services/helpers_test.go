package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/storage"
	"dispatch/storage/sheetfake"

	"github.com/stretchr/testify/require"
)

const (
	dispatchSheet = "Dispatch"
	loginSheet    = "Login"
	dropSheet     = "Drop-Down"
)

var fixedNow = time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)

var testActor = Actor{UserID: "admin", UserName: "Admin", IP: "127.0.0.1", HostName: "test-host"}

type recordingNotifier struct {
	mu      sync.Mutex
	indents []models.Indent
	err     error
}

func (n *recordingNotifier) NotifyGatePass(_ context.Context, indent models.Indent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.indents = append(n.indents, indent)
	return n.err
}

type memoryActivityStore struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
}

func (m *memoryActivityStore) Record(_ context.Context, entry models.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryActivityStore) List(context.Context, storage.ActivityQuery) ([]models.ActivityLogGorm, int64, error) {
	return nil, 0, nil
}

func (m *memoryActivityStore) last() models.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[len(m.entries)-1]
}

func newFakeClient(t *testing.T) (*sheetfake.Server, storage.SheetClient) {
	t.Helper()
	fake := sheetfake.New()
	t.Cleanup(fake.Close)
	return fake, storage.NewSheetClient(fake.URL(), storage.SheetClientOptions{Timeout: 5 * time.Second})
}

// indentRow is a dispatch row with the indent columns filled; extra cells
// override or add to them.
func indentRow(no string, extra map[int]interface{}) []interface{} {
	cells := map[int]interface{}{
		storage.ColCreatedAt:        "01/02/2025 09:00:00",
		storage.ColIndentNo:         no,
		storage.ColPlantName:        "North Plant",
		storage.ColOfficeDispatcher: "Ramesh",
		storage.ColPartyName:        "ABC Traders",
		storage.ColVehicleNo:        "CG04AB1234",
		storage.ColCommodityType:    "Rice",
		storage.ColTareWeight:       "8500",
	}
	for k, v := range extra {
		cells[k] = v
	}
	return sheetfake.RowWith(cells)
}

type dispatchFixture struct {
	fake     *sheetfake.Server
	svc      *DispatchService
	notifier *recordingNotifier
	activity *memoryActivityStore
}

// newDispatchFixture seeds the dispatch sheet with six header rows, so the
// first indent sits at row index 7.
func newDispatchFixture(t *testing.T, rows ...[]interface{}) *dispatchFixture {
	t.Helper()
	fake, client := newFakeClient(t)
	fake.SetSheet(dispatchSheet, sheetfake.WithHeader(storage.DispatchFirstDataRow, rows...))

	notifier := &recordingNotifier{}
	activity := &memoryActivityStore{}
	svc := NewDispatchService(repository.NewIndentRepository(client, dispatchSheet), DispatchServiceOptions{
		Images:   NewImageService(client, "folder-1"),
		Activity: NewActivityRecorder(activity),
		Notifier: notifier,
		Location: time.UTC,
	})
	svc.now = func() time.Time { return fixedNow }
	svc.images.now = func() time.Time { return fixedNow }
	return &dispatchFixture{fake: fake, svc: svc, notifier: notifier, activity: activity}
}

func requireIndent(t *testing.T, indents []models.Indent, no string) models.Indent {
	t.Helper()
	for _, i := range indents {
		if i.IndentNo == no {
			return i
		}
	}
	require.Failf(t, "indent not found", "%s not in list", no)
	return models.Indent{}
}
