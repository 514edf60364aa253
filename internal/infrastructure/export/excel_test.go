package export

import (
	"bytes"
	"testing"
	"time"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/level"
	"career-match/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

func TestWriteExcel(t *testing.T) {
	data := report.Data{
		JobTitle:    "Data Analyst",
		Company:     "Acme",
		Similarity:  87.5,
		Attempt:     2,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Gap: gap.Report{
			Skills: []gap.Entry{
				{Name: "Python", RequiredLevel: level.Advanced, UserLevel: level.Advanced, Status: level.StatusAchieved},
				{Name: "SQL", RequiredLevel: level.Advanced, UserLevel: level.Basic, Status: level.StatusWeak},
			},
			Knowledge: []gap.Entry{
				{Name: "Statistics", RequiredLevel: level.Intermediate, UserLevel: level.NotProvided, Status: level.StatusMissing},
			},
		},
		Performance: attempt.Result{Correct: 3, Total: 4, Percentage: 75},
	}
	data.StatusCounts = report.CountStatuses(data.Gap)

	var buf bytes.Buffer
	if err := WriteExcel(&buf, data); err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(summarySheet, "B3"); v != "Data Analyst" {
		t.Fatalf("expected job title in B3, got %q", v)
	}
	if v, _ := f.GetCellValue(skillsSheet, "D3"); v != "Weak" {
		t.Fatalf("expected SQL status Weak, got %q", v)
	}
	if v, _ := f.GetCellValue(knowledgeSheet, "C2"); v != "Not Provided" {
		t.Fatalf("expected Not Provided user level, got %q", v)
	}
	if v, _ := f.GetCellValue(performanceSheet, "B3"); v != "1" {
		t.Fatalf("expected 1 incorrect, got %q", v)
	}
}
