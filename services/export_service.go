package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"dispatch/models"
	"dispatch/repository"

	"github.com/xuri/excelize/v2"
)

// ExportIndents is the export name for the full indent list.
const ExportIndents = "indents"

const (
	BucketPending = "pending"
	BucketHistory = "history"
)

type exportColumn struct {
	header string
	width  float64
	value  func(models.Indent) string
}

var indentExportColumns = []exportColumn{
	{"Indent No", 12, func(i models.Indent) string { return i.IndentNo }},
	{"Created At", 20, func(i models.Indent) string { return i.CreatedAt }},
	{"Plant", 18, func(i models.Indent) string { return i.PlantName }},
	{"Office Dispatcher", 20, func(i models.Indent) string { return i.OfficeDispatcher }},
	{"Party", 24, func(i models.Indent) string { return i.PartyName }},
	{"Vehicle No", 14, func(i models.Indent) string { return i.VehicleNo }},
	{"Commodity", 16, func(i models.Indent) string { return i.CommodityType }},
	{"No. of Pkts", 12, func(i models.Indent) string { return i.NoOfPkts }},
	{"Bharti Size", 12, func(i models.Indent) string { return i.BhartiSize }},
	{"Total Qty", 12, func(i models.Indent) string { return i.TotalQty }},
	{"Tare Weight", 12, func(i models.Indent) string { return i.TareWeight }},
	{"Remarks", 24, func(i models.Indent) string { return i.Remarks }},
}

var stageExportColumns = map[repository.Stage][]exportColumn{
	repository.StageLoadingPoint: {
		{"Planned", 20, func(i models.Indent) string { return i.LoadingPointPlanned }},
		{"Actual", 20, func(i models.Indent) string { return i.LoadingPointActual }},
		{"Vehicle Reached", 14, func(i models.Indent) string { return i.VehicleReached }},
	},
	repository.StageLoadingComplete: {
		{"Planned", 20, func(i models.Indent) string { return i.LoadingCompletePlanned }},
		{"Actual", 20, func(i models.Indent) string { return i.LoadingCompleteActual }},
		{"Munsi", 16, func(i models.Indent) string { return i.Loading.MunsiName }},
		{"Driver", 16, func(i models.Indent) string { return i.Loading.DriverName }},
		{"Driver No", 14, func(i models.Indent) string { return i.Loading.DriverNumber }},
		{"Total Packets", 14, func(i models.Indent) string { return i.Loading.TotalPackets }},
		{"Loading Qty", 12, func(i models.Indent) string { return i.Loading.Quantity }},
		{"Packet Type", 14, func(i models.Indent) string { return i.Loading.PacketType }},
		{"Packet Name", 14, func(i models.Indent) string { return i.Loading.PacketName }},
		{"Status", 12, func(i models.Indent) string { return i.Loading.Status }},
		{"Vehicle Image", 40, func(i models.Indent) string { return i.Loading.VehicleImage }},
	},
	repository.StageGatePass: {
		{"Planned", 20, func(i models.Indent) string { return i.GatePassPlanned }},
		{"Actual", 20, func(i models.Indent) string { return i.GatePassActual }},
		{"Gate Pass Type", 16, func(i models.Indent) string { return i.GatePass.Type }},
		{"GP No", 12, func(i models.Indent) string { return i.GatePass.Number }},
		{"GP Date", 20, func(i models.Indent) string { return i.GatePass.Date }},
		{"Loading Weight", 14, func(i models.Indent) string { return i.GatePass.LoadingWeight }},
		{"Net Weight", 12, func(i models.Indent) string { return i.GatePass.NetWeight }},
		{"Net Weight (Qtl)", 14, func(i models.Indent) string { return i.GatePass.NetWeightQuintal }},
		{"Transporter", 18, func(i models.Indent) string { return i.GatePass.Transporter }},
		{"Total Packets", 14, func(i models.Indent) string { return i.GatePass.TotalPackets }},
		{"Invoice No", 14, func(i models.Indent) string { return i.GatePass.InvoiceNo }},
		{"CMR No", 12, func(i models.Indent) string { return i.GatePass.CMRNo }},
	},
}

// Export builds an xlsx workbook of the indent list or of one bucket of a
// stage queue, honouring the list filter. It returns the file bytes and a
// download name.
func (s *DispatchService) Export(ctx context.Context, name, bucket string, filter models.IndentFilter) ([]byte, string, error) {
	columns := indentExportColumns
	var indents []models.Indent

	if name == ExportIndents {
		list, err := s.ListIndents(ctx, filter)
		if err != nil {
			return nil, "", err
		}
		indents = list
		bucket = ""
	} else {
		stage, err := repository.ParseStage(name)
		if err != nil {
			return nil, "", validationError("%v", err)
		}
		bucket = strings.ToLower(strings.TrimSpace(bucket))
		if bucket == "" {
			bucket = BucketPending
		}
		if bucket != BucketPending && bucket != BucketHistory {
			return nil, "", validationError("bucket must be %s or %s", BucketPending, BucketHistory)
		}
		queue, err := s.Queue(ctx, stage, filter)
		if err != nil {
			return nil, "", err
		}
		indents = queue.Pending
		if bucket == BucketHistory {
			indents = queue.History
		}
		columns = append(append([]exportColumn{}, indentExportColumns...), stageExportColumns[stage]...)
	}

	data, err := buildWorkbook(sheetTitle(name, bucket), columns, indents)
	if err != nil {
		return nil, "", err
	}
	fileName := name
	if bucket != "" {
		fileName += "_" + bucket
	}
	return data, fmt.Sprintf("%s_%s.xlsx", fileName, s.now().In(s.loc).Format("20060102")), nil
}

func sheetTitle(name, bucket string) string {
	title := strings.ReplaceAll(name, "_", " ")
	if bucket != "" {
		title += " " + bucket
	}
	// excelize rejects sheet names over 31 characters
	if len(title) > 31 {
		title = title[:31]
	}
	return title
}

func buildWorkbook(sheet string, columns []exportColumn, indents []models.Indent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, c.header)
		name, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(sheet, name, name, c.width)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for r, indent := range indents {
		for col, c := range columns {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheet, cell, c.value(indent))
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
