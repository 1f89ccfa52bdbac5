package repository

import (
	"context"
	"fmt"
	"strings"

	"dispatch/models"
	"dispatch/storage"
	"dispatch/utils"
)

// Stage is one workflow step derived from a planned/actual column pair.
type Stage string

const (
	StageLoadingPoint    Stage = "loading_point"
	StageLoadingComplete Stage = "loading_complete"
	StageGatePass        Stage = "gate_pass"
)

var stageColumns = map[Stage][2]int{
	StageLoadingPoint:    {storage.ColLoadingPointPlanned, storage.ColLoadingPointActual},
	StageLoadingComplete: {storage.ColLoadingCompletePlanned, storage.ColLoadingCompleteActual},
	StageGatePass:        {storage.ColGatePassPlanned, storage.ColGatePassActual},
}

// ParseStage validates a stage name from a request.
func ParseStage(name string) (Stage, error) {
	s := Stage(strings.TrimSpace(name))
	if _, ok := stageColumns[s]; !ok {
		return "", fmt.Errorf("unknown stage %q", name)
	}
	return s, nil
}

// Columns returns the planned and actual column indexes of the stage.
func (s Stage) Columns() (planned, actual int) {
	cols := stageColumns[s]
	return cols[0], cols[1]
}

// IsPending reports planned present and actual absent.
func (s Stage) IsPending(row storage.Row) bool {
	planned, actual := s.Columns()
	return row.Present(planned) && !row.Present(actual)
}

// IsDone reports planned and actual both present.
func (s Stage) IsDone(row storage.Row) bool {
	planned, actual := s.Columns()
	return row.Present(planned) && row.Present(actual)
}

// IndentRecord pairs a mapped indent with the raw row it came from.
type IndentRecord struct {
	models.Indent
	Row storage.Row `json:"-"`
}

type IndentRepository struct {
	client storage.SheetClient
	sheet  string
}

func NewIndentRepository(client storage.SheetClient, sheet string) *IndentRepository {
	return &IndentRepository{client: client, sheet: sheet}
}

func (r *IndentRepository) Sheet() string { return r.sheet }

// Rows returns every raw row of the dispatch sheet, headers included.
func (r *IndentRepository) Rows(ctx context.Context) ([]storage.Row, error) {
	return r.client.GetData(ctx, r.sheet)
}

// List returns every indent: rows from DispatchFirstDataRow with an indent number.
func (r *IndentRepository) List(ctx context.Context) ([]IndentRecord, error) {
	rows, err := r.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return MapIndents(rows), nil
}

// Get returns the indent stored at a 1-based sheet row.
func (r *IndentRepository) Get(ctx context.Context, rowIndex int) (*IndentRecord, error) {
	rows, err := r.Rows(ctx)
	if err != nil {
		return nil, err
	}
	i := rowIndex - 1
	if i < storage.DispatchFirstDataRow || i >= len(rows) || !rows[i].Present(storage.ColIndentNo) {
		return nil, fmt.Errorf("indent at row %d: %w", rowIndex, ErrNotFound)
	}
	rec := IndentRecord{Indent: MapIndent(rows[i], i), Row: rows[i]}
	return &rec, nil
}

func (r *IndentRepository) Insert(ctx context.Context, values []string) error {
	return r.client.Insert(ctx, r.sheet, values)
}

func (r *IndentRepository) Update(ctx context.Context, rowIndex int, patch storage.RowPatch) error {
	return r.client.Update(ctx, r.sheet, rowIndex, patch)
}

func (r *IndentRepository) Delete(ctx context.Context, rowIndex int) error {
	return r.client.Delete(ctx, r.sheet, rowIndex)
}

func MapIndents(rows []storage.Row) []IndentRecord {
	var out []IndentRecord
	for i := storage.DispatchFirstDataRow; i < len(rows); i++ {
		if !rows[i].Present(storage.ColIndentNo) {
			continue
		}
		out = append(out, IndentRecord{Indent: MapIndent(rows[i], i), Row: rows[i]})
	}
	return out
}

// MapIndent rebuilds an indent from the row at 0-based data index i.
func MapIndent(row storage.Row, i int) models.Indent {
	c := row.Cell
	return models.Indent{
		ID:               i + 1,
		RowIndex:         i + 1,
		CreatedAt:        c(storage.ColCreatedAt),
		IndentNo:         c(storage.ColIndentNo),
		PlantName:        c(storage.ColPlantName),
		OfficeDispatcher: c(storage.ColOfficeDispatcher),
		PartyName:        c(storage.ColPartyName),
		VehicleNo:        c(storage.ColVehicleNo),
		CommodityType:    c(storage.ColCommodityType),
		NoOfPkts:         c(storage.ColNoOfPkts),
		BhartiSize:       c(storage.ColBhartiSize),
		TotalQty:         c(storage.ColTotalQty),
		TareWeight:       c(storage.ColTareWeight),
		Remarks:          c(storage.ColRemarks),

		LoadingPointPlanned: c(storage.ColLoadingPointPlanned),
		LoadingPointActual:  c(storage.ColLoadingPointActual),
		VehicleReached:      c(storage.ColVehicleReached),

		LoadingCompletePlanned: c(storage.ColLoadingCompletePlanned),
		LoadingCompleteActual:  c(storage.ColLoadingCompleteActual),
		Loading: models.LoadingDetails{
			MunsiName:        c(storage.ColMunsiName),
			DriverName:       c(storage.ColDriverName),
			DriverNumber:     c(storage.ColDriverNumber),
			SubCommodity1:    c(storage.ColSubCommodity1),
			Pkts1:            c(storage.ColPkts1),
			SubCommodity2:    c(storage.ColSubCommodity2),
			Pkts2:            c(storage.ColPkts2),
			SubCommodity3:    c(storage.ColSubCommodity3),
			Pkts3:            c(storage.ColPkts3),
			TotalPackets:     c(storage.ColTotalPackets),
			BhartiSize:       c(storage.ColLoadingBhartiSize),
			Quantity:         c(storage.ColLoadingQuantity),
			PacketType:       c(storage.ColLoadingPacketType),
			PacketName:       c(storage.ColLoadingPacketName),
			VehicleImage:     c(storage.ColVehicleImage),
			VehicleImageView: utils.ImageViewURL(c(storage.ColVehicleImage)),
			Status:           c(storage.ColLoadingStatus),
		},

		GatePassPlanned: c(storage.ColGatePassPlanned),
		GatePassActual:  c(storage.ColGatePassActual),
		GatePass: models.GatePassDetails{
			LoadingWeight:    c(storage.ColGPLoadingWeight),
			NetWeight:        c(storage.ColGPNetWeight),
			Type:             c(storage.ColGatePassType),
			Number:           c(storage.ColGatePassNo),
			Date:             c(storage.ColGPDate),
			VehicleNumber:    c(storage.ColGPVehicleNumber),
			VehicleType:      c(storage.ColGPVehicleType),
			Transporter:      c(storage.ColGPTransporter),
			Advance:          c(storage.ColGPAdvance),
			FreightPerQty:    c(storage.ColGPFreightPerQty),
			Pump:             c(storage.ColGPPump),
			Diesel:           c(storage.ColGPDiesel),
			SubCommodity1:    c(storage.ColGPSubCommodity1),
			Pkts1:            c(storage.ColGPPkts1),
			SubCommodity2:    c(storage.ColGPSubCommodity2),
			Pkts2:            c(storage.ColGPPkts2),
			SubCommodity3:    c(storage.ColGPSubCommodity3),
			Pkts3:            c(storage.ColGPPkts3),
			TotalPackets:     c(storage.ColGPTotalPackets),
			NetWeightQuintal: c(storage.ColGPNetWeightQuintal),
			Rate:             c(storage.ColGPRate),
			BillDetails:      c(storage.ColGPBillDetails),
			BillWeight:       c(storage.ColGPBillWeight),
			InvoiceNo:        c(storage.ColGPInvoiceNo),
			InvoiceValue:     c(storage.ColGPInvoiceValue),
			DriverName:       c(storage.ColGPDriverName),
			DriverNumber:     c(storage.ColGPDriverNumber),
			CMRNo:            c(storage.ColGPCMRNo),
			LotNo:            c(storage.ColGPLotNo),
			KMSYear:          c(storage.ColGPKMSYear),
		},
	}
}

// Bucket splits indents into the pending and history lists of a stage.
// Rows whose planned cell is blank belong to neither.
func Bucket(records []IndentRecord, stage Stage) models.StageQueue {
	queue := models.StageQueue{Pending: []models.Indent{}, History: []models.Indent{}}
	for _, rec := range records {
		switch {
		case stage.IsPending(rec.Row):
			queue.Pending = append(queue.Pending, rec.Indent)
		case stage.IsDone(rec.Row):
			queue.History = append(queue.History, rec.Indent)
		}
	}
	return queue
}

type fieldCheck struct {
	want string
	get  func(models.Indent) string
}

// Filter keeps records matching every non-empty filter field as a
// case-insensitive substring.
func Filter(records []IndentRecord, f models.IndentFilter) []IndentRecord {
	checks := []fieldCheck{
		{f.PlantName, func(i models.Indent) string { return i.PlantName }},
		{f.OfficeDispatcher, func(i models.Indent) string { return i.OfficeDispatcher }},
		{f.PartyName, func(i models.Indent) string { return i.PartyName }},
		{f.VehicleNo, func(i models.Indent) string { return i.VehicleNo }},
		{f.CommodityType, func(i models.Indent) string { return i.CommodityType }},
		{f.IndentNo, func(i models.Indent) string { return i.IndentNo }},
	}

	out := make([]IndentRecord, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, chk := range checks {
			want := strings.ToLower(strings.TrimSpace(chk.want))
			if want != "" && !strings.Contains(strings.ToLower(chk.get(rec.Indent)), want) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// NextIndentNo returns the indent number following the highest IN-<n>.
func NextIndentNo(records []IndentRecord) string {
	codes := make([]string, len(records))
	for i, rec := range records {
		codes[i] = rec.IndentNo
	}
	return GenerateSequenceCode("IN", codes, 1)
}

// ComputeStats counts dashboard totals over rows from DispatchFirstDataRow
// whose column A is filled.
func ComputeStats(rows []storage.Row) models.DashboardStats {
	var stats models.DashboardStats
	for i := storage.DispatchFirstDataRow; i < len(rows); i++ {
		row := rows[i]
		if !row.Present(storage.ColCreatedAt) {
			continue
		}
		stats.TotalIndents++
		if StageLoadingPoint.IsPending(row) {
			stats.PendingProcessing++
		}
		if StageLoadingPoint.IsDone(row) {
			stats.ProcessedIndents++
		}
		if StageLoadingComplete.IsPending(row) {
			stats.PendingLoading++
		}
		if StageLoadingComplete.IsDone(row) {
			stats.LoadingCompleted++
		}
		if StageGatePass.IsPending(row) {
			stats.PendingGatePass++
		}
		if StageGatePass.IsDone(row) {
			stats.GatePassCompleted++
		}
	}
	return stats
}
