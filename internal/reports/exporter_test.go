package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func sampleActivity() []BoardActivityRow {
	shared := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []BoardActivityRow{
		{
			LedgerID:    1,
			BoardID:     2,
			PropertyID:  10,
			HouseName:   "Rose Villa",
			SocietyName: "Green Meadows",
			PinCode:     "560037",
			TenantID:    3,
			TenantName:  "Asha Rao",
			SharedAt:    &shared,
		},
		{
			LedgerID:      2,
			BoardID:       2,
			PropertyID:    11,
			HouseName:     "Lotus Villa",
			SocietyName:   "Green Meadows",
			PinCode:       "560037",
			TenantID:      3,
			TenantName:    "Asha Rao",
			IsShortlisted: true,
		},
	}
}

func TestExportBoardActivityCSV(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, mimeType, err := exporter.Export(ReportTypeBoardActivity, FormatCSV, ReportData{BoardActivity: sampleActivity()})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if !strings.HasPrefix(filename, "board_activity_report_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q", filename)
	}
	if mimeType != "text/csv" {
		t.Errorf("mime = %q", mimeType)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[1][3] != "Rose Villa" {
		t.Errorf("row 1 house = %q", records[1][3])
	}
	if records[2][10] != "true" {
		t.Errorf("row 2 shortlisted = %q", records[2][10])
	}
	if records[1][8] != "2025-03-01 10:00:00" {
		t.Errorf("row 1 shared at = %q", records[1][8])
	}
	if records[2][8] != "" {
		t.Errorf("row 2 shared at = %q, want empty", records[2][8])
	}
}

func TestExportShortlistsFormats(t *testing.T) {
	exporter := NewReportExporter()
	at := time.Now()
	rows := []ShortlistRow{{
		TenantID:      3,
		TenantName:    "Asha Rao",
		PropertyID:    10,
		HouseName:     "Rose Villa",
		SocietyName:   "Green Meadows",
		PinCode:       "560037",
		ShortListedAt: &at,
	}}

	for _, format := range []string{FormatCSV, FormatExcel, FormatPDF} {
		data, filename, mimeType, err := exporter.Export(ReportTypeShortlists, format, ReportData{Shortlists: rows})
		if err != nil {
			t.Fatalf("Export(%s) returned error: %v", format, err)
		}
		if len(data) == 0 {
			t.Errorf("Export(%s) produced no bytes", format)
		}
		if filename == "" || mimeType == "" {
			t.Errorf("Export(%s) metadata = (%q, %q)", format, filename, mimeType)
		}
	}
}

func TestExportCatalogExcel(t *testing.T) {
	exporter := NewReportExporter()
	rows := []CatalogRow{{
		PropertyID:  10,
		HouseName:   "Rose Villa",
		SocietyName: "Green Meadows",
		PinCode:     "560037",
		Status:      "Verified",
		Versions:    3,
		CreatedAt:   time.Now(),
	}}

	data, filename, _, err := exporter.Export(ReportTypeCatalog, FormatExcel, ReportData{Catalog: rows})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(data) == 0 {
		t.Error("no bytes produced")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
}

func TestExportUnsupported(t *testing.T) {
	exporter := NewReportExporter()

	if _, _, _, err := exporter.Export("bookings", FormatCSV, ReportData{}); err == nil {
		t.Error("unknown report type accepted")
	}
	if _, _, _, err := exporter.Export(ReportTypeCatalog, "xml", ReportData{}); err == nil {
		t.Error("unknown format accepted")
	}
}
