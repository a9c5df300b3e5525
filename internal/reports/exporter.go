package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter defines the interface for exporting reports in different formats
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeBoardActivity:
		return e.exportBoardActivityByFormat(format, timestamp, data.BoardActivity)
	case ReportTypeShortlists:
		return e.exportShortlistsByFormat(format, timestamp, data.Shortlists)
	case ReportTypeCatalog:
		return e.exportCatalogByFormat(format, timestamp, data.Catalog)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// BOARD ACTIVITY EXPORTS
//// ============================

func (e *reportExporter) exportBoardActivityByFormat(format, timestamp string, rows []BoardActivityRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportBoardActivityCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("board_activity_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportBoardActivityExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("board_activity_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportBoardActivityPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("board_activity_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for board activity: %s", format)
	}
}

func (e *reportExporter) exportBoardActivityCSV(rows []BoardActivityRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Board ID", "Property ID", "House", "Society", "Pin Code", "Tenant ID", "Tenant Name", "Shared At", "Viewed At", "Shortlisted", "Shortlisted At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.LedgerID), 10),
			strconv.FormatUint(uint64(r.BoardID), 10),
			strconv.FormatUint(uint64(r.PropertyID), 10),
			r.HouseName,
			r.SocietyName,
			r.PinCode,
			strconv.FormatUint(uint64(r.TenantID), 10),
			r.TenantName,
			formatTime(r.SharedAt),
			formatTime(r.ViewedAt),
			strconv.FormatBool(r.IsShortlisted),
			formatTime(r.ShortListedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportBoardActivityExcel(rows []BoardActivityRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Board Activity"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Board ID", "Property ID", "House", "Society", "Pin Code", "Tenant ID", "Tenant Name", "Shared At", "Viewed At", "Shortlisted", "Shortlisted At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		values := []interface{}{
			r.LedgerID, r.BoardID, r.PropertyID,
			r.HouseName, r.SocietyName, r.PinCode,
			r.TenantID, r.TenantName,
			formatTime(r.SharedAt), formatTime(r.ViewedAt),
			r.IsShortlisted, formatTime(r.ShortListedAt),
		}
		for cIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportBoardActivityPDF(rows []BoardActivityRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Board Activity Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"Board", "Property", "House", "Society", "Pin", "Tenant", "Shared At", "Viewed At", "Shortlisted"}
	widths := []float64{18, 20, 50, 50, 20, 35, 30, 30, 24}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.BoardID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprint(r.PropertyID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.HouseName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.SocietyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.PinCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.TenantName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 6, formatTime(r.SharedAt), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, formatTime(r.ViewedAt), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[8], 6, strconv.FormatBool(r.IsShortlisted), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// SHORTLIST EXPORTS
//// ============================

func (e *reportExporter) exportShortlistsByFormat(format, timestamp string, rows []ShortlistRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportShortlistsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("shortlists_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportShortlistsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("shortlists_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportShortlistsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("shortlists_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for shortlists: %s", format)
	}
}

func (e *reportExporter) exportShortlistsCSV(rows []ShortlistRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Tenant ID", "Tenant Name", "Property ID", "House", "Society", "Pin Code", "Shortlisted At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.TenantID), 10),
			r.TenantName,
			strconv.FormatUint(uint64(r.PropertyID), 10),
			r.HouseName,
			r.SocietyName,
			r.PinCode,
			formatTime(r.ShortListedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportShortlistsExcel(rows []ShortlistRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Shortlists"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Tenant ID", "Tenant Name", "Property ID", "House", "Society", "Pin Code", "Shortlisted At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.TenantID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.TenantName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.PropertyID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.HouseName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.SocietyName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.PinCode)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), formatTime(r.ShortListedAt))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportShortlistsPDF(rows []ShortlistRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Shortlists Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Tenant", "Property", "House", "Society", "Pin", "Shortlisted At"}
	widths := []float64{30, 20, 45, 45, 20, 30}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.TenantName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprint(r.PropertyID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.HouseName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.SocietyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.PinCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, formatTime(r.ShortListedAt), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// CATALOG EXPORTS
//// ============================

func (e *reportExporter) exportCatalogByFormat(format, timestamp string, rows []CatalogRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportCatalogCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("catalog_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportCatalogExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("catalog_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportCatalogPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("catalog_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for catalog: %s", format)
	}
}

func (e *reportExporter) exportCatalogCSV(rows []CatalogRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "House", "Society", "Pin Code", "Status", "Versions", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.PropertyID), 10),
			r.HouseName,
			r.SocietyName,
			r.PinCode,
			r.Status,
			strconv.Itoa(r.Versions),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportCatalogExcel(rows []CatalogRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Catalog"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "House", "Society", "Pin Code", "Status", "Versions", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.PropertyID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.HouseName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.SocietyName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.PinCode)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Versions)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportCatalogPDF(rows []CatalogRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Property Catalog Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "House", "Society", "Pin", "Status", "Versions"}
	widths := []float64{15, 55, 55, 20, 25, 20}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.PropertyID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.HouseName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.SocietyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.PinCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(r.Versions), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
