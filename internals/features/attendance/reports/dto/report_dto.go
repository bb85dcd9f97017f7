package dto

// ReportQuery: query string GET /api/reports/attendance
type ReportQuery struct {
	Month   string `query:"month"`
	Year    string `query:"year"`
	ClassID string `query:"classId"`
	Format  string `query:"format"`
}

type ReportResult struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	URL      string `json:"url"`
}
