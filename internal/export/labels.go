package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/rodcut/internal/model"
)

// LabelInfo holds the data encoded into each rod label's QR code.
type LabelInfo struct {
	JobLabel  string                `json:"job"`
	RodLength int                   `json:"rod_mm"`
	Pattern   [model.PieceTypes]int `json:"pattern"`
	Rods      int                   `json:"rods"`
	Waste     int                   `json:"waste_mm"`
	BatchSize int                   `json:"batch_size"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per rod in the recipe,
// so each physical rod at the saw carries its own pattern tag. Labels are
// laid out on a standard label sheet format (Avery 5160 / 3 columns x 10 rows
// on US Letter).
func ExportLabels(path string, job model.Job, trial model.Trial) error {
	var labels []LabelInfo
	for _, ln := range trial.Recipe.Lines {
		info := LabelInfo{
			JobLabel:  job.Label,
			RodLength: job.RodLength,
			Pattern:   ln.Pattern.Counts,
			Rods:      ln.Count,
			Waste:     ln.Pattern.Waste(job),
			BatchSize: trial.BatchSize,
		}
		for i := 0; i < ln.Count; i++ {
			labels = append(labels, info)
		}
	}

	if len(labels) == 0 {
		return fmt.Errorf("no rods to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, job, label); err != nil {
			return fmt.Errorf("failed to render label %d: %w", i+1, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, job model.Job, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.JobLabel, seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := info.JobLabel
	if pdf.GetStringWidth(title) > textW {
		// Trim by rune so multi-byte labels are not split mid-character.
		runes := []rune(title)
		for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > textW {
			runes = runes[:len(runes)-1]
		}
		title = string(runes) + "..."
	}
	pdf.CellFormat(textW, 4, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pattern := model.Pattern{Counts: info.Pattern}
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Pattern %s", pattern), "", 0, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Rod %d mm, waste %d mm", info.RodLength, info.Waste), "", 0, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+13)
	cuts := ""
	for i, c := range info.Pattern {
		if c > 0 {
			if cuts != "" {
				cuts += ", "
			}
			cuts += fmt.Sprintf("%dx %d", c, job.PieceLengths[i])
		}
	}
	if cuts == "" {
		cuts = "uncut"
	}
	pdf.CellFormat(textW, 3.5, cuts, "", 0, "L", false, 0, "")

	return nil
}
