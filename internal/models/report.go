package models

// Status classifies a coverage percentage against fixed thresholds.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// StatusFor maps a coverage percentage to its status band.
func StatusFor(percentage float64) Status {
	switch {
	case percentage >= 80:
		return StatusGreen
	case percentage >= 60:
		return StatusYellow
	default:
		return StatusRed
	}
}

// Emoji returns the marker used when rendering the status.
func (s Status) Emoji() string {
	switch s {
	case StatusGreen:
		return "🟢"
	case StatusYellow:
		return "🟡"
	default:
		return "🔴"
	}
}

// Operation represents one declared API operation from an OpenAPI schema.
type Operation struct {
	OperationID string   `json:"operationId"`
	Path        string   `json:"path"` // Path pattern e.g., /users/{id}
	Method      string   `json:"method"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
}

// TagMapping maps an operationId to the feature files that reference it.
// A file appears once per occurrence of the marker within it.
type TagMapping map[string][]string

// BucketStats holds aggregated counts for one method or one functional tag.
type BucketStats struct {
	Total      int     `json:"total"`
	Covered    int     `json:"covered"`
	Percentage float64 `json:"percentage"`
	Status     Status  `json:"status"`
}

// CoverageReport is the complete result of one coverage analysis run.
type CoverageReport struct {
	TotalEndpoints      int                    `json:"totalEndpoints"`
	CoveredEndpoints    int                    `json:"coveredEndpoints"`
	UncoveredEndpoints  int                    `json:"uncoveredEndpoints"`
	CoveragePercentage  float64                `json:"coveragePercentage"`
	CoveredOperations   []Operation            `json:"coveredOperations"`
	UncoveredOperations []Operation            `json:"uncoveredOperations"`
	ByTag               map[string]BucketStats `json:"coverageByTag"`
	ByMethod            map[string]BucketStats `json:"coverageByMethod"`
}
