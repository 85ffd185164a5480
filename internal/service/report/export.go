package report

import (
	"context"
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/constants"
)

const (
	sheetTests           = "Peak test dates"
	sheetTreatments      = "Peak treatment dates"
	sheetAppointments    = "Peak appointment dates"
	sheetSpecializations = "Specializations"
)

// ExportWorkbook writes every report to w as an xlsx workbook with one
// sheet per report. Empty reports produce a sheet with only headers.
func (s *reportService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	tests, err := s.store.PeakTestDates(ctx, constants.DefaultPeakLimit)
	if err != nil {
		return fmt.Errorf("peak test dates: %w", err)
	}
	treatments, err := s.store.PeakTreatmentDates(ctx, constants.DefaultPeakLimit)
	if err != nil {
		return fmt.Errorf("peak treatment dates: %w", err)
	}
	appointments, err := s.store.PeakAppointmentDates(ctx)
	if err != nil {
		return fmt.Errorf("peak appointment dates: %w", err)
	}
	specs, err := s.store.SpecializationCounts(ctx)
	if err != nil {
		return fmt.Errorf("specialization counts: %w", err)
	}

	file := excelize.NewFile()
	first := file.NewSheet(sheetTests)
	file.DeleteSheet("Sheet1")

	writeDates(file, sheetTests, tests)

	file.NewSheet(sheetTreatments)
	writeDates(file, sheetTreatments, treatments)

	file.NewSheet(sheetAppointments)
	writeDates(file, sheetAppointments, appointments)

	file.NewSheet(sheetSpecializations)
	file.SetCellValue(sheetSpecializations, "A1", "Specialization")
	file.SetCellValue(sheetSpecializations, "B1", "Doctors")
	for i, row := range specs {
		file.SetCellValue(sheetSpecializations, fmt.Sprintf("A%d", i+2), row.Specialization)
		file.SetCellValue(sheetSpecializations, fmt.Sprintf("B%d", i+2), row.Count)
	}

	file.SetActiveSheet(first)
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeDates(file *excelize.File, sheet string, rows []repo.DateCount) {
	file.SetCellValue(sheet, "A1", "Date")
	file.SetCellValue(sheet, "B1", "Count")
	for i, row := range rows {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Label())
		file.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Count)
	}
}
