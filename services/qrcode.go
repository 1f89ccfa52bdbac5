package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"dispatch/models"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// gatePassQRData is the payload scanned at the weighbridge and the gate.
type gatePassQRData struct {
	IndentNo   string `json:"indentNo"`
	GatePassNo string `json:"gpNumber"`
	Vehicle    string `json:"vehicle"`
	Type       string `json:"type,omitempty"`
	NetWeight  string `json:"netWeight,omitempty"`
	Date       string `json:"date,omitempty"`
}

func gatePassQRContent(indent models.Indent) (string, error) {
	data, err := json.Marshal(gatePassQRData{
		IndentNo:   indent.IndentNo,
		GatePassNo: indent.GatePass.Number,
		Vehicle:    firstNonBlank(indent.GatePass.VehicleNumber, indent.VehicleNo),
		Type:       indent.GatePass.Type,
		NetWeight:  indent.GatePass.NetWeight,
		Date:       indent.GatePass.Date,
	})
	return string(data), err
}

// GatePassQRPNG returns the bare QR code as PNG for embedding in documents.
func GatePassQRPNG(indent models.Indent, size int) ([]byte, error) {
	content, err := gatePassQRContent(indent)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// addLabel draws text with its baseline at (x, y).
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	face := inconsolata.Regular8x16
	col := color.RGBA{0, 0, 0, 255}
	if bold {
		face = inconsolata.Bold8x16
		col = color.RGBA{30, 30, 30, 255}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// GatePassQRJPEG renders the gate pass QR code with a caption block listing
// indent, gate pass, vehicle and net weight.
func GatePassQRJPEG(indent models.Indent) ([]byte, error) {
	content, err := gatePassQRContent(indent)
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("QR code generation failed: %w", err)
	}
	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 30
	lineHeight := 28
	lines := [][2]string{
		{"Indent No:", indent.IndentNo},
		{"Gate Pass:", indent.GatePass.Number},
		{"Vehicle:", firstNonBlank(indent.GatePass.VehicleNumber, indent.VehicleNo)},
		{"Party:", indent.PartyName},
		{"Net Weight:", indent.GatePass.NetWeight},
	}
	totalHeight := qrSize + padding + len(lines)*lineHeight + padding

	img := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	separatorY := qrSize + padding/2
	for x := 0; x < qrSize; x++ {
		img.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight/2
	for i, l := range lines {
		y := startY + i*lineHeight
		addLabel(img, 20, y, l[0], true)
		addLabel(img, 140, y, truncateLabel(l[1], 40), false)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("JPEG encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
