package repository

import (
	"context"
	"testing"
	"time"

	"dispatch/models"
	"dispatch/storage"
	"dispatch/storage/sheetfake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indentRow(no string, extra map[int]interface{}) []interface{} {
	cells := map[int]interface{}{
		storage.ColCreatedAt:        "01/02/2025 10:00:00",
		storage.ColIndentNo:         no,
		storage.ColPlantName:        "North Plant",
		storage.ColOfficeDispatcher: "Ramesh",
		storage.ColPartyName:        "ABC Traders",
		storage.ColVehicleNo:        "CG04AB1234",
		storage.ColCommodityType:    "Rice",
	}
	for k, v := range extra {
		cells[k] = v
	}
	return sheetfake.RowWith(cells)
}

func newFake(t *testing.T) (*sheetfake.Server, storage.SheetClient) {
	t.Helper()
	fake := sheetfake.New()
	t.Cleanup(fake.Close)
	return fake, storage.NewSheetClient(fake.URL(), storage.SheetClientOptions{Timeout: 5 * time.Second})
}

func TestIndentListSkipsHeaderAndBlankRows(t *testing.T) {
	fake, client := newFake(t)
	fake.SetSheet("Dispatch", sheetfake.WithHeader(6,
		indentRow("IN-001", nil),
		sheetfake.RowWith(map[int]interface{}{storage.ColPlantName: "orphan"}),
		indentRow("IN-002", map[int]interface{}{storage.ColVehicleImage: "https://drive.google.com/file/d/xyz/view"}),
	))
	repo := NewIndentRepository(client, "Dispatch")

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 7, list[0].RowIndex)
	assert.Equal(t, 7, list[0].ID)
	assert.Equal(t, 9, list[1].RowIndex)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=xyz", list[1].Loading.VehicleImageView)

	rec, err := repo.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "IN-002", rec.IndentNo)

	_, err = repo.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBucket(t *testing.T) {
	records := []IndentRecord{
		{Indent: models.Indent{IndentNo: "pending"}, Row: rowWith(storage.ColLoadingPointPlanned, "x")},
		{Indent: models.Indent{IndentNo: "done"}, Row: rowWith(storage.ColLoadingPointPlanned, "x", storage.ColLoadingPointActual, "y")},
		{Indent: models.Indent{IndentNo: "unplanned"}, Row: rowWith(storage.ColLoadingPointActual, "y")},
		{Indent: models.Indent{IndentNo: "blank"}, Row: rowWith(storage.ColLoadingPointPlanned, "  ")},
	}

	q := Bucket(records, StageLoadingPoint)
	require.Len(t, q.Pending, 1)
	require.Len(t, q.History, 1)
	assert.Equal(t, "pending", q.Pending[0].IndentNo)
	assert.Equal(t, "done", q.History[0].IndentNo)

	empty := Bucket(records, StageGatePass)
	assert.Empty(t, empty.Pending)
	assert.Empty(t, empty.History)
}

func rowWith(kv ...interface{}) storage.Row {
	row := make(storage.Row, sheetfake.Width)
	for i := 0; i < len(kv); i += 2 {
		row[kv[i].(int)] = kv[i+1].(string)
	}
	return row
}

func TestFilter(t *testing.T) {
	records := []IndentRecord{
		{Indent: models.Indent{IndentNo: "IN-001", PlantName: "North Plant", PartyName: "ABC"}},
		{Indent: models.Indent{IndentNo: "IN-002", PlantName: "South Plant", PartyName: "XYZ"}},
	}

	assert.Len(t, Filter(records, models.IndentFilter{}), 2)
	got := Filter(records, models.IndentFilter{PlantName: "north"})
	require.Len(t, got, 1)
	assert.Equal(t, "IN-001", got[0].IndentNo)
	assert.Empty(t, Filter(records, models.IndentFilter{PlantName: "north", PartyName: "xyz"}))
	assert.Len(t, Filter(records, models.IndentFilter{IndentNo: "in-00"}), 2)
}

func TestNextIndentNo(t *testing.T) {
	assert.Equal(t, "IN-001", NextIndentNo(nil))
	records := []IndentRecord{
		{Indent: models.Indent{IndentNo: "IN-007"}},
		{Indent: models.Indent{IndentNo: "IN-012"}},
		{Indent: models.Indent{IndentNo: "legacy"}},
	}
	assert.Equal(t, "IN-013", NextIndentNo(records))
	assert.Equal(t, "IN-001", NextIndentNo([]IndentRecord{{Indent: models.Indent{IndentNo: "X"}}}))
}

func TestNextSerialNo(t *testing.T) {
	assert.Equal(t, "SN-001", NextSerialNo(nil))
	assert.Equal(t, "SN-005", NextSerialNo([]models.User{{SerialNo: "SN-004"}, {SerialNo: "SN-002"}}))
	assert.Equal(t, "SN-003", NextSerialNo([]models.User{{SerialNo: "A"}, {SerialNo: "B"}}))
}

func TestComputeStats(t *testing.T) {
	rows := make([]storage.Row, storage.DispatchFirstDataRow)
	rows = append(rows,
		rowWith(storage.ColCreatedAt, "t", storage.ColLoadingPointPlanned, "p"),
		rowWith(storage.ColCreatedAt, "t", storage.ColLoadingPointPlanned, "p", storage.ColLoadingPointActual, "a",
			storage.ColLoadingCompletePlanned, "p"),
		rowWith(storage.ColCreatedAt, "t", storage.ColLoadingCompletePlanned, "p", storage.ColLoadingCompleteActual, "a",
			storage.ColGatePassPlanned, "p", storage.ColGatePassActual, "a"),
		rowWith(storage.ColLoadingPointPlanned, "p"),
	)

	stats := ComputeStats(rows)
	assert.Equal(t, models.DashboardStats{
		TotalIndents:      3,
		PendingProcessing: 1,
		ProcessedIndents:  1,
		PendingLoading:    1,
		LoadingCompleted:  1,
		PendingGatePass:   0,
		GatePassCompleted: 1,
	}, stats)
}

func TestUsers(t *testing.T) {
	fake, client := newFake(t)
	fake.SetSheet("Login", [][]interface{}{
		{"Serial", "Name", "ID", "Password", "Role"},
		{"SN-001", "Ramesh", "ramesh", "pw", "Admin"},
		{"", "ghost", "ghost", "pw", ""},
		{"SN-002", "Suresh", "suresh", "pw"},
	})
	repo := NewUserRepository(client, "Login")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 2, users[0].RowIndex)
	assert.Equal(t, "User", users[1].Role)
	assert.Equal(t, 4, users[1].RowIndex)

	u, err := repo.FindByUserID(context.Background(), "RAMESH")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Role)

	_, err = repo.FindByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDropdowns(t *testing.T) {
	fake, client := newFake(t)
	fake.SetSheet("Drop-Down", [][]interface{}{
		{"Plant", "Dispatcher", "Commodity", "Munsi", "Sub"},
		{"North", "Ramesh", "Rice", "Mohan", "Broken"},
		{" North ", "", "Wheat", "", "Broken"},
		{"South", "Suresh"},
	})

	opts, err := NewDropdownRepository(client, "Drop-Down").Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, opts.PlantNames)
	assert.Equal(t, []string{"Ramesh", "Suresh"}, opts.OfficeDispatchers)
	assert.Equal(t, []string{"Rice", "Wheat"}, opts.CommodityTypes)
	assert.Equal(t, []string{"Mohan"}, opts.MunsiNames)
	assert.Equal(t, []string{"Broken"}, opts.SubCommodities)
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("gate_pass")
	require.NoError(t, err)
	planned, actual := s.Columns()
	assert.Equal(t, storage.ColGatePassPlanned, planned)
	assert.Equal(t, storage.ColGatePassActual, actual)

	_, err = ParseStage("bogus")
	assert.Error(t, err)
}
