package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rodcut/internal/model"
)

// ExportExcel writes the cutting plan to an .xlsx workbook with a Recipe
// sheet (one row per pattern line) and a Summary sheet with the batch totals.
func ExportExcel(path string, job model.Job, trial model.Trial) error {
	if len(trial.Recipe.Lines) == 0 {
		return fmt.Errorf("no recipe lines to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	recipeSheet := f.GetSheetName(0)
	if err := f.SetSheetName(recipeSheet, "Recipe"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	recipeSheet = "Recipe"

	header := []interface{}{
		"Pattern",
		fmt.Sprintf("Pieces %d mm", job.PieceLengths[0]),
		fmt.Sprintf("Pieces %d mm", job.PieceLengths[1]),
		fmt.Sprintf("Pieces %d mm", job.PieceLengths[2]),
		"Rods", "Waste per rod (mm)", "Waste total (mm)",
	}
	if err := f.SetSheetRow(recipeSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, ln := range trial.Recipe.Lines {
		waste := ln.Pattern.Waste(job)
		row := []interface{}{
			ln.Pattern.String(),
			ln.Pattern.Counts[0],
			ln.Pattern.Counts[1],
			ln.Pattern.Counts[2],
			ln.Count,
			waste,
			ln.Count * waste,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(recipeSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write recipe row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	produced := trial.Recipe.Produced()
	demands := job.Demands(trial.BatchSize)
	summary := [][]interface{}{
		{"Job", job.Label},
		{"Rod length (mm)", job.RodLength},
		{"Batch size", trial.BatchSize},
		{"Total rods", trial.Recipe.Rods()},
		{"Total waste (mm)", trial.Waste},
		{},
		{"Length (mm)", "Required", "Produced"},
		{job.PieceLengths[0], demands[0], produced[0]},
		{job.PieceLengths[1], demands[1], produced[1]},
		{job.PieceLengths[2], demands[2], produced[2]},
	}
	for i, row := range summary {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
