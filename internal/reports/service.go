package reports

import (
	"context"
	"fmt"
)

type Service interface {
	// ExportReport builds a report of the given type in the given
	// format. Returns file bytes, filename and MIME type.
	ExportReport(ctx context.Context, reportType, format string, filter ReportFilter) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter ReportExporter
}

func NewService(repo Repository, exporter ReportExporter) Service {
	return &service{repo: repo, exporter: exporter}
}

func (s *service) ExportReport(ctx context.Context, reportType, format string, filter ReportFilter) ([]byte, string, string, error) {
	var data ReportData

	switch reportType {
	case ReportTypeBoardActivity:
		rows, err := s.repo.GetBoardActivity(ctx, filter)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load board activity: %w", err)
		}
		data.BoardActivity = rows

	case ReportTypeShortlists:
		rows, err := s.repo.GetShortlists(ctx, filter)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load shortlists: %w", err)
		}
		data.Shortlists = rows

	case ReportTypeCatalog:
		rows, err := s.repo.GetCatalog(ctx, filter)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load catalog: %w", err)
		}
		data.Catalog = rows

	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}

	return s.exporter.Export(reportType, format, data)
}
