package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rodcut/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("rod,l1,l2,l3,m1,m2,m3,bound\n300,100,70,50,1,1,1,3\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("rod;l1;l2;l3;m1;m2;m3;bound\n300;100;70;50;1;1;1;3\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("rod\tl1\tl2\tl3\tm1\tm2\tm3\tbound\n300\t100\t70\t50\t1\t1\t1\t3\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ──────────────────────────────

func TestDetectColumns_Header(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Label", "Rod", "L1", "L2", "L3", "M1", "M2", "M3", "Bound"})
	if !hasHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Rod != 1 || mapping.BatchBound != 8 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
	if mapping.Lengths != [model.PieceTypes]int{2, 3, 4} {
		t.Errorf("unexpected length mapping: %v", mapping.Lengths)
	}
	if mapping.Mults != [model.PieceTypes]int{5, 6, 7} {
		t.Errorf("unexpected multiplicity mapping: %v", mapping.Mults)
	}
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"rod length", "length1", "length2", "length3", "qty1", "qty2", "qty3", "n_bound"})
	if !hasHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Rod != 0 || mapping.BatchBound != 7 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"300", "100", "70", "50", "1", "1", "1", "3"})
	if hasHeader {
		t.Fatal("expected positional fallback")
	}
	if mapping.Rod != 0 || mapping.Lengths[0] != 1 || mapping.BatchBound != 7 || mapping.Label != 8 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────

func TestImportCSVFromReader_WithHeader(t *testing.T) {
	csv := "label,rod,l1,l2,l3,m1,m2,m3,bound\nrailing,300,100,70,50,1,1,1,3\nfence,220,100,70,50,2,1,4,5\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}

	j := result.Jobs[0]
	if j.Label != "railing" || j.RodLength != 300 || j.BatchBound != 3 {
		t.Errorf("unexpected first job: %+v", j)
	}
	if j.PieceLengths != [model.PieceTypes]int{100, 70, 50} {
		t.Errorf("unexpected piece lengths: %v", j.PieceLengths)
	}
	if result.Jobs[1].Multiplicities != [model.PieceTypes]int{2, 1, 4} {
		t.Errorf("unexpected multiplicities: %v", result.Jobs[1].Multiplicities)
	}
}

func TestImportCSVFromReader_PositionalWithoutHeader(t *testing.T) {
	csv := "300,100,70,50,1,1,1,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(result.Jobs))
	}
	if result.Jobs[0].Label != "Job 1" {
		t.Errorf("expected generated label, got %q", result.Jobs[0].Label)
	}
}

func TestImportCSVFromReader_SkipsEmptyRows(t *testing.T) {
	csv := "rod,l1,l2,l3,m1,m2,m3,bound\n\n300,100,70,50,1,1,1,3\n,,,,,,,\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d (errors %v)", len(result.Jobs), result.Errors)
	}
}

func TestImportCSVFromReader_ReportsBadRows(t *testing.T) {
	csv := "rod,l1,l2,l3,m1,m2,m3,bound\n300,100,70,50,1,1,1,3\n300,100,seventy,50,1,1,1,3\n300,50,70,100,1,1,1,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 valid job, got %d", len(result.Jobs))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid l2 'seventy'") {
		t.Errorf("unexpected error message: %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "l1 > l2 > l3") {
		t.Errorf("unexpected error message: %q", result.Errors[1])
	}
}

func TestImportCSVFromReader_MissingColumn(t *testing.T) {
	csv := "rod,l1,l2,l3,m1,m2,m3\n300,100,70,50,1,1,1\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(result.Jobs))
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "bound") {
		t.Errorf("expected missing-column error naming bound, got %v", result.Errors)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a missing file")
	}
}

// ─── Excel Import Tests ──────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Rod", "L1", "L2", "L3", "M1", "M2", "M3", "Bound"},
		{"railing", 300, 100, 70, 50, 1, 1, 1, 3},
		{"fence", 220, 100, 70, 50, 2, 1, 4, 5},
	})

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}
	if result.Jobs[1].Label != "fence" || result.Jobs[1].BatchBound != 5 {
		t.Errorf("unexpected second job: %+v", result.Jobs[1])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a missing file")
	}
}
