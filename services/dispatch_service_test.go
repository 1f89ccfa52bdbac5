package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"dispatch/models"
	"dispatch/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const stamp = "01/02/2025 10:30:00"

func sampleIndentForm() models.IndentForm {
	return models.IndentForm{
		PlantName:        " South Plant ",
		OfficeDispatcher: "Suresh",
		PartyName:        "XYZ Mills",
		VehicleNo:        "CG07ZZ0001",
		CommodityType:    "Wheat",
		NoOfPkts:         "400",
		TareWeight:       "9000",
	}
}

func TestCreateIndentContinuesFromHighestNumber(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-007", nil), indentRow("IN-003", nil))

	no, err := f.svc.CreateIndent(context.Background(), testActor, sampleIndentForm())
	require.NoError(t, err)
	assert.Equal(t, "IN-008", no)

	rows := f.fake.Sheet(dispatchSheet)
	last := rows[len(rows)-1]
	assert.Equal(t, stamp, last[storage.ColCreatedAt])
	assert.Equal(t, "IN-008", last[storage.ColIndentNo])
	assert.Equal(t, "South Plant", last[storage.ColPlantName])
	assert.Equal(t, "9000", last[storage.ColTareWeight])

	entry := f.activity.last()
	assert.Equal(t, "indent", entry.EventContext)
	assert.Equal(t, "create", entry.EventName)
	assert.Equal(t, testActor.UserName, entry.UserName)
}

func TestCreateIndentOnEmptySheetStartsAtOne(t *testing.T) {
	f := newDispatchFixture(t)

	no, err := f.svc.CreateIndent(context.Background(), testActor, sampleIndentForm())
	require.NoError(t, err)
	assert.Equal(t, "IN-001", no)
}

func TestCreateIndentRequiresFields(t *testing.T) {
	f := newDispatchFixture(t)
	form := sampleIndentForm()
	form.PartyName = "  "

	_, err := f.svc.CreateIndent(context.Background(), testActor, form)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "partyName")
	assert.Empty(t, f.fake.CallsFor("insert"))
}

func TestUpdateIndentKeepsNumberAndCreationTime(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", nil))

	require.NoError(t, f.svc.UpdateIndent(context.Background(), testActor, 7, sampleIndentForm()))

	assert.Equal(t, "IN-001", f.fake.Cell(dispatchSheet, 7, storage.ColIndentNo))
	assert.Equal(t, "01/02/2025 09:00:00", f.fake.Cell(dispatchSheet, 7, storage.ColCreatedAt))
	assert.Equal(t, "XYZ Mills", f.fake.Cell(dispatchSheet, 7, storage.ColPartyName))

	calls := f.fake.CallsFor("update")
	require.Len(t, calls, 1)
	assert.Equal(t, 7, calls[0].RowIndex)
	assert.Empty(t, calls[0].RowData[storage.ColIndentNo])
	assert.Contains(t, f.activity.last().ChangedColumns, "E")
}

func TestUpdateIndentUnknownRow(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", nil))

	err := f.svc.UpdateIndent(context.Background(), testActor, 3, sampleIndentForm())
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.svc.UpdateIndent(context.Background(), testActor, 42, sampleIndentForm())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIndent(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", nil), indentRow("IN-002", nil))

	require.NoError(t, f.svc.DeleteIndent(context.Background(), testActor, 7))

	list, err := f.svc.ListIndents(context.Background(), models.IndentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "IN-002", list[0].IndentNo)
	assert.Equal(t, 7, list[0].RowIndex)
}

func TestListIndentsFilter(t *testing.T) {
	f := newDispatchFixture(t,
		indentRow("IN-001", nil),
		indentRow("IN-002", map[int]interface{}{storage.ColPartyName: "Shree Agro"}),
	)

	list, err := f.svc.ListIndents(context.Background(), models.IndentFilter{PartyName: "agro"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "IN-002", list[0].IndentNo)
}

func TestMarkVehicleReached(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingPointPlanned: "01/02/2025 09:05:00",
	}))

	require.NoError(t, f.svc.MarkVehicleReached(context.Background(), testActor, 7, ""))
	assert.Equal(t, stamp, f.fake.Cell(dispatchSheet, 7, storage.ColLoadingPointActual))
	assert.Equal(t, "Yes", f.fake.Cell(dispatchSheet, 7, storage.ColVehicleReached))

	err := f.svc.MarkVehicleReached(context.Background(), testActor, 7, "Yes")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestMarkVehicleReachedWithoutPlannedTime(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", nil))

	err := f.svc.MarkVehicleReached(context.Background(), testActor, 7, "Yes")
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Empty(t, f.fake.CallsFor("update"))
}

func TestLoadingPointQueue(t *testing.T) {
	f := newDispatchFixture(t,
		indentRow("IN-001", map[int]interface{}{storage.ColLoadingPointPlanned: "p"}),
		indentRow("IN-002", map[int]interface{}{storage.ColLoadingPointPlanned: "p", storage.ColLoadingPointActual: "a"}),
		indentRow("IN-003", nil),
	)

	queue, err := f.svc.LoadingPointQueue(context.Background(), models.IndentFilter{})
	require.NoError(t, err)
	require.Len(t, queue.Pending, 1)
	require.Len(t, queue.History, 1)
	assert.Equal(t, "IN-001", queue.Pending[0].IndentNo)
	assert.Equal(t, "IN-002", queue.History[0].IndentNo)
}

func TestEditLoadingPoint(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingPointPlanned: "p",
		storage.ColLoadingPointActual:  "a",
		storage.ColVehicleReached:      "Yes",
	}))

	form := models.LoadingPointForm{IndentForm: sampleIndentForm(), VehicleReached: "No"}
	require.NoError(t, f.svc.EditLoadingPoint(context.Background(), testActor, 7, form))
	assert.Equal(t, "No", f.fake.Cell(dispatchSheet, 7, storage.ColVehicleReached))
	assert.Equal(t, "a", f.fake.Cell(dispatchSheet, 7, storage.ColLoadingPointActual))
}

func loadingForm() models.LoadingCompleteForm {
	return models.LoadingCompleteForm{
		MunsiName:         "Mohan",
		DriverName:        "Raju",
		DriverNumber:      "9876543210",
		SubCommodity1:     "Rice A",
		Pkts1:             "10",
		SubCommodity2:     "Rice B",
		Pkts2:             "20",
		Pkts3:             "abc",
		LoadingPacketName: "Jute",
	}
}

func TestCompleteLoadingUploadsImage(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingCompletePlanned: "01/02/2025 09:30:00",
	}))
	form := loadingForm()
	form.ImageBytes = []byte("\xff\xd8\xff\xe0fake-jpeg")
	form.ImageMimeType = "image/jpeg"

	require.NoError(t, f.svc.CompleteLoading(context.Background(), testActor, 7, form))

	uploads := f.fake.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "vehicle_1738405800000.jpg", uploads[0].FileName)
	assert.Equal(t, "folder-1", uploads[0].FolderID)
	assert.True(t, strings.HasPrefix(uploads[0].DataURL, "data:image/jpeg;base64,"))

	cell := func(col int) string { return f.fake.Cell(dispatchSheet, 7, col) }
	assert.Equal(t, stamp, cell(storage.ColLoadingCompleteActual))
	assert.Equal(t, "30", cell(storage.ColTotalPackets))
	assert.Equal(t, uploads[0].FileURL, cell(storage.ColVehicleImage))
	assert.Equal(t, "Complete", cell(storage.ColLoadingStatus))
	assert.Equal(t, "Jute", cell(storage.ColLoadingPacketName))

	err := f.svc.CompleteLoading(context.Background(), testActor, 7, form)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestCompleteLoadingWithDataURL(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingCompletePlanned: "p",
	}))
	form := loadingForm()
	form.VehicleImage = "data:image/png;base64,iVBORw0KGgo="

	require.NoError(t, f.svc.CompleteLoading(context.Background(), testActor, 7, form))
	uploads := f.fake.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "image/png", uploads[0].MimeType)
}

func TestCompleteLoadingUploadFailureWritesNothing(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingCompletePlanned: "p",
	}))
	f.fake.FailAction("uploadFile", "Drive quota exceeded")
	form := loadingForm()
	form.ImageBytes = []byte("\xff\xd8\xff\xe0")
	form.ImageMimeType = "image/jpeg"

	err := f.svc.CompleteLoading(context.Background(), testActor, 7, form)
	assert.ErrorContains(t, err, "Drive quota exceeded")
	assert.Empty(t, f.fake.CallsFor("update"))
}

func TestEditLoadingKeepsImageAndActual(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColLoadingCompletePlanned: "p",
		storage.ColLoadingCompleteActual:  "a",
		storage.ColVehicleImage:           "https://drive.google.com/file/d/old/view",
	}))
	form := loadingForm()
	form.LoadingStatus = "Partial"

	require.NoError(t, f.svc.EditLoading(context.Background(), testActor, 7, form))
	assert.Equal(t, "a", f.fake.Cell(dispatchSheet, 7, storage.ColLoadingCompleteActual))
	assert.Equal(t, "https://drive.google.com/file/d/old/view", f.fake.Cell(dispatchSheet, 7, storage.ColVehicleImage))
	assert.Equal(t, "Partial", f.fake.Cell(dispatchSheet, 7, storage.ColLoadingStatus))
	assert.Empty(t, f.fake.Uploads())
}

func gatePassForm() models.GatePassForm {
	return models.GatePassForm{
		LoadingWeight: "28500",
		GPNumber:      "GP-1001",
		Date:          "2025-02-01T10:30",
		VehicleNumber: "CG04AB1234",
		Transporter:   "Fast Movers",
		Pkts1:         "100",
		Pkts2:         "50",
		CMRNo:         "CMR-9",
		LotNo:         "L-2",
		KMSYear:       "2024-25",
		Rate:          "2100",
		InvoiceNo:     "INV-77",
	}
}

func gatePassPendingRow() []interface{} {
	return indentRow("IN-001", map[int]interface{}{storage.ColGatePassPlanned: "01/02/2025 10:00:00"})
}

func TestIssueGatePassCivilSupply(t *testing.T) {
	f := newDispatchFixture(t, gatePassPendingRow())

	require.NoError(t, f.svc.IssueGatePass(context.Background(), testActor, 7, gatePassForm()))

	cell := func(col int) string { return f.fake.Cell(dispatchSheet, 7, col) }
	assert.Equal(t, stamp, cell(storage.ColGatePassActual))
	assert.Equal(t, "28500", cell(storage.ColGPLoadingWeight))
	assert.Equal(t, "20000", cell(storage.ColGPNetWeight))
	assert.Equal(t, "200", cell(storage.ColGPNetWeightQuintal))
	assert.Equal(t, GatePassCivilSupply, cell(storage.ColGatePassType))
	assert.Equal(t, stamp, cell(storage.ColGPDate))
	assert.Equal(t, "150", cell(storage.ColGPTotalPackets))
	assert.Equal(t, "CMR-9", cell(storage.ColGPCMRNo))
	assert.Empty(t, cell(storage.ColGPRate))
	assert.Empty(t, cell(storage.ColGPInvoiceNo))
	assert.Empty(t, cell(storage.ColGatePassActual+1))

	require.Len(t, f.notifier.indents, 1)
	assert.Equal(t, "GP-1001", f.notifier.indents[0].GatePass.Number)
	assert.Equal(t, "20000", f.notifier.indents[0].GatePass.NetWeight)
}

func TestIssueGatePassNormal(t *testing.T) {
	f := newDispatchFixture(t, gatePassPendingRow())
	form := gatePassForm()
	form.GatePassType = "normal gate pass"

	require.NoError(t, f.svc.IssueGatePass(context.Background(), testActor, 7, form))

	cell := func(col int) string { return f.fake.Cell(dispatchSheet, 7, col) }
	assert.Equal(t, GatePassNormal, cell(storage.ColGatePassType))
	assert.Equal(t, "2100", cell(storage.ColGPRate))
	assert.Equal(t, "INV-77", cell(storage.ColGPInvoiceNo))
	assert.Empty(t, cell(storage.ColGPCMRNo))
}

func TestIssueGatePassUnknownType(t *testing.T) {
	f := newDispatchFixture(t, gatePassPendingRow())
	form := gatePassForm()
	form.GatePassType = "Express"

	err := f.svc.IssueGatePass(context.Background(), testActor, 7, form)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.fake.CallsFor("update"))
}

func TestIssueGatePassNotifierFailureIsNotFatal(t *testing.T) {
	f := newDispatchFixture(t, gatePassPendingRow())
	f.notifier.err = errors.New("smtp down")

	require.NoError(t, f.svc.IssueGatePass(context.Background(), testActor, 7, gatePassForm()))
	assert.Equal(t, stamp, f.fake.Cell(dispatchSheet, 7, storage.ColGatePassActual))
}

func TestEditGatePassLeavesActual(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", map[int]interface{}{
		storage.ColGatePassPlanned: "p",
		storage.ColGatePassActual:  "a",
	}))
	form := gatePassForm()
	form.LoadingWeight = "30000"

	require.NoError(t, f.svc.EditGatePass(context.Background(), testActor, 7, form))
	assert.Equal(t, "a", f.fake.Cell(dispatchSheet, 7, storage.ColGatePassActual))
	assert.Equal(t, "21500", f.fake.Cell(dispatchSheet, 7, storage.ColGPNetWeight))
	assert.Empty(t, f.notifier.indents)
}

func TestHistoryEditsRejectPendingRows(t *testing.T) {
	f := newDispatchFixture(t,
		indentRow("IN-001", map[int]interface{}{storage.ColLoadingPointPlanned: "p"}),
		indentRow("IN-002", map[int]interface{}{storage.ColLoadingCompletePlanned: "p"}),
		gatePassPendingRow(),
		indentRow("IN-004", nil),
	)

	err := f.svc.EditLoadingPoint(context.Background(), testActor, 7, models.LoadingPointForm{IndentForm: sampleIndentForm()})
	assert.ErrorIs(t, err, ErrNotCompleted)

	form := loadingForm()
	form.ImageBytes = []byte("\xff\xd8\xff\xe0")
	form.ImageMimeType = "image/jpeg"
	err = f.svc.EditLoading(context.Background(), testActor, 8, form)
	assert.ErrorIs(t, err, ErrNotCompleted)

	err = f.svc.EditGatePass(context.Background(), testActor, 9, gatePassForm())
	assert.ErrorIs(t, err, ErrNotCompleted)

	// Rows that never entered a stage are not editable either.
	err = f.svc.EditGatePass(context.Background(), testActor, 10, gatePassForm())
	assert.ErrorIs(t, err, ErrNotCompleted)

	assert.Empty(t, f.fake.CallsFor("update"))
	assert.Empty(t, f.fake.Uploads())
	assert.Empty(t, f.fake.Cell(dispatchSheet, 8, storage.ColLoadingCompleteActual))
	assert.Empty(t, f.fake.Cell(dispatchSheet, 9, storage.ColGatePassActual))
}

func TestGatePassRequiresIssue(t *testing.T) {
	f := newDispatchFixture(t, gatePassPendingRow(), indentRow("IN-002", map[int]interface{}{
		storage.ColGatePassPlanned: "p",
		storage.ColGatePassActual:  "a",
		storage.ColGatePassNo:      "GP-5",
	}))

	_, err := f.svc.GatePass(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotCompleted)

	indent, err := f.svc.GatePass(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "GP-5", indent.GatePass.Number)
}

func TestStats(t *testing.T) {
	f := newDispatchFixture(t,
		indentRow("IN-001", map[int]interface{}{storage.ColLoadingPointPlanned: "p"}),
		indentRow("IN-002", map[int]interface{}{
			storage.ColLoadingPointPlanned:    "p",
			storage.ColLoadingPointActual:     "a",
			storage.ColLoadingCompletePlanned: "p",
		}),
		indentRow("IN-003", map[int]interface{}{storage.ColCreatedAt: ""}),
	)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalIndents:      2,
		PendingProcessing: 1,
		ProcessedIndents:  1,
		PendingLoading:    1,
	}, stats)
}

func TestExportStageBucket(t *testing.T) {
	f := newDispatchFixture(t,
		indentRow("IN-001", map[int]interface{}{storage.ColGatePassPlanned: "p"}),
		indentRow("IN-002", map[int]interface{}{
			storage.ColGatePassPlanned: "p",
			storage.ColGatePassActual:  "a",
			storage.ColGatePassNo:      "GP-9",
		}),
	)

	data, name, err := f.svc.Export(context.Background(), "gate_pass", "history", models.IndentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "gate_pass_history_20250201.xlsx", name)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("gate pass history")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Indent No", rows[0][0])
	assert.Contains(t, rows[0], "GP No")
	assert.Equal(t, "IN-002", rows[1][0])
	assert.Contains(t, rows[1], "GP-9")
}

func TestExportIndentsAndBadInput(t *testing.T) {
	f := newDispatchFixture(t, indentRow("IN-001", nil))

	data, name, err := f.svc.Export(context.Background(), ExportIndents, "history", models.IndentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "indents_20250201.xlsx", name)
	assert.NotEmpty(t, data)

	_, _, err = f.svc.Export(context.Background(), "weighbridge", "", models.IndentFilter{})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.svc.Export(context.Background(), "loading_point", "archived", models.IndentFilter{})
	assert.ErrorIs(t, err, ErrValidation)
}
