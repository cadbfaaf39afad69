package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
)

var entryReportHeaders = []string{
	"ID", "Entry date", "Location", "Department", "Activity type",
	"Activity amount", "Factor value", "Emission (tCO2e)", "Status",
	"Submitter", "Submitted at", "Notes",
}

type ReportServiceInterface interface {
	ExportEntries(ctx context.Context, filter dto.EntrySearchFilter) (*excelize.File, error)
}

// ReportService renders filtered entry lists as an xlsx workbook. This is
// the presentation boundary: stored emission values keep full precision and
// are only formatted here.
type ReportService struct {
	entryService DataEntryServiceInterface
	logger       *zap.Logger
}

func NewReportService(entryService DataEntryServiceInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{entryService: entryService, logger: logger}
}

func (s *ReportService) ExportEntries(ctx context.Context, filter dto.EntrySearchFilter) (*excelize.File, error) {
	// Exports ignore pagination: the whole filtered set goes into the file.
	filter.Limit = 0
	filter.Offset = 0

	entries, err := s.entryService.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Data entries"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &entryReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, entry := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := entryReportRow(entry)
		f.SetSheetRow(sheet, cell, &row)
	}

	f.SetColWidth(sheet, "B", "E", 20)
	f.SetColWidth(sheet, "F", "H", 16)
	f.SetColWidth(sheet, "J", "K", 22)
	f.SetColWidth(sheet, "L", "L", 40)

	s.logger.Info("entry report generated", zap.Int("rows", len(entries)))
	return f, nil
}

func entryReportRow(entry dto.DataEntryDTO) []interface{} {
	return []interface{}{
		entry.ID,
		entry.EntryDate,
		entry.LocationName,
		entry.DepartmentName,
		entry.ActivityType,
		entry.ActivityAmount,
		entry.FactorValue,
		fmt.Sprintf("%.2f", entry.Emission),
		entry.Status,
		entry.SubmitterName,
		entry.SubmittedAt,
		entry.Notes,
	}
}
