package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"dispatch/models"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GatePassPDF renders a printable gate pass for an issued indent.
func GatePassPDF(indent models.Indent, generatedAt time.Time) ([]byte, error) {
	titleCaser := cases.Title(language.Und)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	generatePDFHeader(pdf, indent, titleCaser)

	qr, err := GatePassQRPNG(indent, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to build gate pass QR: %w", err)
	}
	pdf.RegisterImageOptionsReader("gatepass-qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions("gatepass-qr", 160, 30, 38, 38, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	y := 30.0
	y = generatePDFSection(pdf, y, "Indent Details", [][2]string{
		{"Indent No", indent.IndentNo},
		{"Plant", indent.PlantName},
		{"Party", indent.PartyName},
		{"Dispatcher", indent.OfficeDispatcher},
		{"Commodity", indent.CommodityType},
	}, 145)

	gp := indent.GatePass
	y = generatePDFSection(pdf, y, "Vehicle Details", [][2]string{
		{"Vehicle No", firstNonBlank(gp.VehicleNumber, indent.VehicleNo)},
		{"Vehicle Type", gp.VehicleType},
		{"Transporter", gp.Transporter},
		{"Driver", strings.TrimSpace(gp.DriverName + " " + gp.DriverNumber)},
		{"Advance", gp.Advance},
		{"Freight / Qty", gp.FreightPerQty},
		{"Pump / Diesel", strings.Trim(gp.Pump+" / "+gp.Diesel, " /")},
	}, 190)

	y = generatePDFSection(pdf, y, "Weight Details", [][2]string{
		{"Loading Weight", gp.LoadingWeight},
		{"Tare Weight", indent.TareWeight},
		{"Net Weight", gp.NetWeight},
		{"Net Weight (Qtl)", gp.NetWeightQuintal},
	}, 190)

	y = generatePDFPacketsTable(pdf, y, gp)

	if gp.Type == GatePassNormal {
		y = generatePDFSection(pdf, y, "Billing", [][2]string{
			{"Rate", gp.Rate},
			{"Bill Details", gp.BillDetails},
			{"Bill Weight", gp.BillWeight},
			{"Invoice No", gp.InvoiceNo},
			{"Invoice Value", gp.InvoiceValue},
		}, 190)
	} else {
		y = generatePDFSection(pdf, y, "Civil Supply", [][2]string{
			{"CMR No", gp.CMRNo},
			{"Lot No", gp.LotNo},
			{"KMS Year", gp.KMSYear},
		}, 190)
	}

	generatePDFSignatures(pdf, y+6)
	generatePDFFooter(pdf, generatedAt)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func generatePDFHeader(pdf *gofpdf.Fpdf, indent models.Indent, titleCaser cases.Caser) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, 10, 190, 15, "F")
	pdf.SetXY(12, 12)
	pdf.Cell(120, 10, "Gate Pass")

	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(120, 11)
	pdf.CellFormat(78, 6, "No: "+indent.GatePass.Number, "", 2, "R", false, 0, "")
	pdf.CellFormat(78, 6, titleCaser.String(strings.ToLower(indent.GatePass.Type))+"  |  "+indent.GatePass.Date, "", 0, "R", false, 0, "")
}

// generatePDFSection prints a titled label/value block and returns the next y.
func generatePDFSection(pdf *gofpdf.Fpdf, y float64, title string, rows [][2]string, width float64) float64 {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(10, y, width-10, 8, "F")
	pdf.SetXY(12, y+1)
	pdf.Cell(width-14, 6, title)
	y += 10

	for _, r := range rows {
		pdf.SetXY(12, y)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 6, r[0]+":")
		pdf.SetFont("Arial", "B", 10)
		value := r[1]
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		pdf.Cell(width-54, 6, value)
		y += 6
	}
	return y + 3
}

func generatePDFPacketsTable(pdf *gofpdf.Fpdf, y float64, gp models.GatePassDetails) float64 {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(10, y, 180, 8, "F")
	pdf.SetXY(12, y+1)
	pdf.Cell(176, 6, "Packets")
	y += 10

	pdf.SetXY(10, y)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 7, "Sub Commodity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Packets", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	items := [][2]string{{gp.SubCommodity1, gp.Pkts1}, {gp.SubCommodity2, gp.Pkts2}, {gp.SubCommodity3, gp.Pkts3}}
	for _, it := range items {
		if strings.TrimSpace(it[0]) == "" && strings.TrimSpace(it[1]) == "" {
			continue
		}
		pdf.CellFormat(120, 7, it[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, it[1], "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, gp.TotalPackets, "1", 1, "C", false, 0, "")
	return pdf.GetY() + 4
}

func generatePDFSignatures(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFont("Arial", "", 10)
	boxes := []struct {
		x     float64
		label string
	}{
		{10, "Dispatcher Signature"},
		{75, "Driver Signature"},
		{140, "Security Signature"},
	}
	for _, b := range boxes {
		pdf.Rect(b.x, y, 60, 25, "D")
		pdf.SetXY(b.x+2, y+3)
		pdf.Cell(56, 6, b.label)
		pdf.SetXY(b.x+2, y+16)
		pdf.Cell(56, 6, "Name: ______________")
	}
}

func generatePDFFooter(pdf *gofpdf.Fpdf, generatedAt time.Time) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(190, 5, "This is a computer-generated gate pass.")
	pdf.Ln(4)
	pdf.Cell(190, 5, "Generated on: "+generatedAt.Format("02/01/2006 15:04:05"))
}
