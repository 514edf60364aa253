package export

import (
	"fmt"
	"io"

	"career-match/internal/domain/gap"
	"career-match/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	skillsSheet      = "Skills"
	knowledgeSheet   = "Knowledge"
	performanceSheet = "Performance"
)

// WriteExcel renders a report workbook to w.
func WriteExcel(w io.Writer, data report.Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	for _, s := range []string{skillsSheet, knowledgeSheet, performanceSheet} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("create sheet %s: %w", s, err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeSummary(f, styles, data); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeEntries(f, styles, skillsSheet, data.Gap.Skills); err != nil {
		return fmt.Errorf("failed to create skills sheet: %w", err)
	}
	if err := writeEntries(f, styles, knowledgeSheet, data.Gap.Knowledge); err != nil {
		return fmt.Errorf("failed to create knowledge sheet: %w", err)
	}
	if err := writePerformance(f, styles, data); err != nil {
		return fmt.Errorf("failed to create performance sheet: %w", err)
	}

	return f.Write(w)
}

type sheetStyles struct {
	header int
	label  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sheetStyles{}, err
	}
	return sheetStyles{header: header, label: label}, nil
}

func writeSummary(f *excelize.File, st sheetStyles, data report.Data) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", "Career Match Report"); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", st.header); err != nil {
		return err
	}

	counts := data.StatusCounts
	rows := [][2]any{
		{"Job Title:", data.JobTitle},
		{"Company:", data.Company},
		{"Similarity (%):", data.Similarity},
		{"Attempt:", data.Attempt},
		{"Generated:", data.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Achieved:", counts.Achieved},
		{"Weak:", counts.Weak},
		{"Missing:", counts.Missing},
		{"Profile:", data.ProfileText},
	}
	for i, r := range rows {
		row := i + 3
		a := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(summarySheet, a, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, a, a, st.label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeEntries(f *excelize.File, st sheetStyles, sheet string, entries []gap.Entry) error {
	headers := []string{"Name", "Required Level", "User Level", "Status"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", st.header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "D", 22); err != nil {
		return err
	}

	for i, e := range entries {
		row := i + 2
		values := []any{e.Name, e.RequiredLevel.String(), e.UserLevel.String(), string(e.Status)}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writePerformance(f *excelize.File, st sheetStyles, data report.Data) error {
	p := data.Performance
	rows := [][]any{
		{"Metric", "Value"},
		{"Correct", p.Correct},
		{"Incorrect", p.Incorrect()},
		{"Total", p.Total},
		{"Score (%)", p.Percentage},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(performanceSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(performanceSheet, "A1", "B1", st.header); err != nil {
		return err
	}
	return f.SetColWidth(performanceSheet, "A", "B", 18)
}
