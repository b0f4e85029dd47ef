// Package importer provides CSV and Excel import functionality for cutting
// job lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rodcut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []model.Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label      int
	Rod        int
	Lengths    [model.PieceTypes]int
	Mults      [model.PieceTypes]int
	BatchBound int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label": {"label", "name", "job", "job name", "description", "desc"},
	"rod":   {"rod", "rod length", "rod_length", "stock", "l"},
	"l1":    {"l1", "length1", "length 1", "piece1"},
	"l2":    {"l2", "length2", "length 2", "piece2"},
	"l3":    {"l3", "length3", "length 3", "piece3"},
	"m1":    {"m1", "mult1", "qty1", "quantity1"},
	"m2":    {"m2", "mult2", "qty2", "quantity2"},
	"m3":    {"m3", "mult3", "qty3", "quantity3"},
	"bound": {"bound", "batch_bound", "batch bound", "n_bound", "max batch", "max_batch"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV
// delimiter. It tries comma, semicolon, tab, and pipe; the delimiter that
// produces the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases for each column role. When no
// header is recognized it returns a positional mapping
// (rod, l1, l2, l3, m1, m2, m3, bound, label) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:      -1,
		Rod:        -1,
		Lengths:    [model.PieceTypes]int{-1, -1, -1},
		Mults:      [model.PieceTypes]int{-1, -1, -1},
		BatchBound: -1,
	}

	assign := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					assign(&mapping.Label, i)
				case "rod":
					assign(&mapping.Rod, i)
				case "l1":
					assign(&mapping.Lengths[0], i)
				case "l2":
					assign(&mapping.Lengths[1], i)
				case "l3":
					assign(&mapping.Lengths[2], i)
				case "m1":
					assign(&mapping.Mults[0], i)
				case "m2":
					assign(&mapping.Mults[1], i)
				case "m3":
					assign(&mapping.Mults[2], i)
				case "bound":
					assign(&mapping.BatchBound, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Rod:        0,
			Lengths:    [model.PieceTypes]int{1, 2, 3},
			Mults:      [model.PieceTypes]int{4, 5, 6},
			BatchBound: 7,
			Label:      8,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseIntCell(row []string, idx int, what, rowLabel string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, what)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	return v, ""
}

// parseRow extracts a Job from a row using the given column mapping.
// Returns the job and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, jobCount int) (model.Job, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Job %d", jobCount+1)
	}

	rod, errMsg := parseIntCell(row, mapping.Rod, "rod length", rowLabel)
	if errMsg != "" {
		return model.Job{}, errMsg
	}

	var lengths, mults [model.PieceTypes]int
	for i := 0; i < model.PieceTypes; i++ {
		v, errMsg := parseIntCell(row, mapping.Lengths[i], fmt.Sprintf("l%d", i+1), rowLabel)
		if errMsg != "" {
			return model.Job{}, errMsg
		}
		lengths[i] = v

		v, errMsg = parseIntCell(row, mapping.Mults[i], fmt.Sprintf("m%d", i+1), rowLabel)
		if errMsg != "" {
			return model.Job{}, errMsg
		}
		mults[i] = v
	}

	bound, errMsg := parseIntCell(row, mapping.BatchBound, "batch bound", rowLabel)
	if errMsg != "" {
		return model.Job{}, errMsg
	}

	job := model.NewJob(label, rod, lengths, mults, bound)
	if err := job.Validate(); err != nil {
		return model.Job{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}

	return job, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports jobs from a CSV file. It automatically detects the
// delimiter and maps columns by header names. Supports comma, semicolon,
// tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports jobs from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports jobs from an Excel (.xlsx) file. Reads the first sheet
// and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into jobs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Rod == -1 {
			missing = append(missing, "rod")
		}
		for i := 0; i < model.PieceTypes; i++ {
			if mapping.Lengths[i] == -1 {
				missing = append(missing, fmt.Sprintf("l%d", i+1))
			}
			if mapping.Mults[i] == -1 {
				missing = append(missing, fmt.Sprintf("m%d", i+1))
			}
		}
		if mapping.BatchBound == -1 {
			missing = append(missing, "bound")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		job, errMsg := parseRow(row, mapping, rowLabel, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Jobs = append(result.Jobs, job)
	}

	if len(result.Jobs) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No valid jobs found in file")
	}

	return result
}
