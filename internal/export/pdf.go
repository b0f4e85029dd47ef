// Package export provides functionality for exporting cutting plans to
// various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/rodcut/internal/model"
)

// pieceColor represents an RGB color for a piece segment.
type pieceColor struct {
	R, G, B int
}

// pieceColors assigns one color per piece length, longest first.
var pieceColors = [model.PieceTypes]pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	barHeight    = 10.0
	barSpacing   = 18.0
	countColW    = 22.0
)

// ExportPDF generates a PDF cutting plan. Each recipe line is rendered as a
// scaled rod diagram with one colored segment per piece and the waste tail
// hatched, followed by a legend and the batch totals.
func ExportPDF(path string, job model.Job, trial model.Trial) error {
	if len(trial.Recipe.Lines) == 0 {
		return fmt.Errorf("no recipe lines to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	drawWidth := pageWidth - marginLeft - marginRight - countColW
	scale := drawWidth / float64(job.RodLength)

	barsPerPage := int(math.Floor((pageHeight - drawAreaTop - marginBottom - 20) / barSpacing))
	if barsPerPage < 1 {
		barsPerPage = 1
	}

	for i, ln := range trial.Recipe.Lines {
		if i%barsPerPage == 0 {
			pdf.AddPage()
			renderHeader(pdf, job, trial)
		}
		y := drawAreaTop + float64(i%barsPerPage)*barSpacing
		renderRodBar(pdf, job, ln, scale, y)
	}

	renderLegend(pdf, job)

	return pdf.OutputFileAndClose(path)
}

// renderHeader draws the title and stats line on the current page.
func renderHeader(pdf *fpdf.Fpdf, job model.Job, trial model.Trial) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting plan: %s (rod %d mm)", job.Label, job.RodLength)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	totalLen := trial.Recipe.Rods() * job.RodLength
	efficiency := 0.0
	if totalLen > 0 {
		efficiency = 100 * float64(totalLen-trial.Waste) / float64(totalLen)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Batch size: %d | Rods: %d | Waste: %d mm | Efficiency: %.1f%%",
		trial.BatchSize, trial.Recipe.Rods(), trial.Waste, efficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// renderRodBar draws one recipe line: the rod outline, a segment per piece,
// the hatched waste tail, and the pattern with its rod count to the right.
func renderRodBar(pdf *fpdf.Fpdf, job model.Job, ln model.RecipeLine, scale, y float64) {
	rodW := float64(job.RodLength) * scale

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, y, rodW, barHeight, "FD")

	x := marginLeft
	for i, count := range ln.Pattern.Counts {
		col := pieceColors[i]
		segW := float64(job.PieceLengths[i]) * scale
		for c := 0; c < count; c++ {
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, segW, barHeight, "FD")

			label := fmt.Sprintf("%d", job.PieceLengths[i])
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(0, 0, 0)
			if labelW := pdf.GetStringWidth(label); labelW < segW-1 {
				pdf.SetXY(x+(segW-labelW)/2, y+barHeight/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			x += segW
		}
	}

	if waste := ln.Pattern.Waste(job); waste > 0 {
		wasteW := float64(waste) * scale
		drawHatchPattern(pdf, x, y, wasteW, barHeight)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft+rodW+3, y+barHeight/2-2)
	pdf.CellFormat(countColW-3, 4, fmt.Sprintf("%s x %d", ln.Pattern, ln.Count), "", 0, "L", false, 0, "")
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark waste.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)
	pdf.Rect(x, y, w, h, "D")

	spacing := 3.0
	maxDist := w + h
	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// renderLegend lists the piece lengths with their colors below the last bar.
func renderLegend(pdf *fpdf.Fpdf, job model.Job) {
	y := pageHeight - marginBottom - 8

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(20, 4, "Pieces:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft + 22
	for i, l := range job.PieceLengths {
		col := pieceColors[i]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y, 4, 4, "F")
		label := fmt.Sprintf("l%d = %d mm (x%d per batch unit)", i+1, l, job.Multiplicities[i])
		pdf.SetXY(x+5, y)
		pdf.CellFormat(pdf.GetStringWidth(label)+2, 4, label, "", 0, "L", false, 0, "")
		x += pdf.GetStringWidth(label) + 14
	}
}
