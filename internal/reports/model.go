package reports

import "time"

// Report types
const (
	ReportTypeBoardActivity = "board_activity"
	ReportTypeShortlists    = "shortlists"
	ReportTypeCatalog       = "catalog"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// BoardActivityRow is one ledger record joined with its board, listing
// and recipient.
type BoardActivityRow struct {
	LedgerID      uint       `json:"ledger_id"`
	BoardID       uint       `json:"board_id"`
	PropertyID    uint       `json:"property_id"`
	HouseName     string     `json:"house_name"`
	SocietyName   string     `json:"society_name"`
	PinCode       string     `json:"pin_code"`
	TenantID      uint       `json:"tenant_id"`
	TenantName    string     `json:"tenant_name"`
	SharedAt      *time.Time `json:"shared_at"`
	ViewedAt      *time.Time `json:"viewed_at"`
	IsShortlisted bool       `json:"is_shortlisted"`
	ShortListedAt *time.Time `json:"short_listed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ShortlistRow is one shortlisted property for one recipient.
type ShortlistRow struct {
	TenantID      uint       `json:"tenant_id"`
	TenantName    string     `json:"tenant_name"`
	PropertyID    uint       `json:"property_id"`
	HouseName     string     `json:"house_name"`
	SocietyName   string     `json:"society_name"`
	PinCode       string     `json:"pin_code"`
	ShortListedAt *time.Time `json:"short_listed_at"`
}

// CatalogRow is one catalog listing with its version count.
type CatalogRow struct {
	PropertyID  uint      `json:"property_id"`
	HouseName   string    `json:"house_name"`
	SocietyName string    `json:"society_name"`
	PinCode     string    `json:"pin_code"`
	Status      string    `json:"status"`
	Versions    int       `json:"versions"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportData bundles the rows an export call may carry.
type ReportData struct {
	BoardActivity []BoardActivityRow
	Shortlists    []ShortlistRow
	Catalog       []CatalogRow
}

// ReportFilter narrows report queries.
type ReportFilter struct {
	AgentID  *uint
	TenantID *uint
	FromDate *time.Time
	ToDate   *time.Time
}
