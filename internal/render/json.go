package render

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/apicover/apicover/internal/models"
)

// JSON renders a lossless structured re-expression of the report.
type JSON struct{}

type jsonLegendEntry struct {
	Emoji       string `json:"emoji"`
	Threshold   string `json:"threshold"`
	Description string `json:"description"`
}

type jsonSummary struct {
	TotalEndpoints     int     `json:"totalEndpoints"`
	CoveredEndpoints   int     `json:"coveredEndpoints"`
	UncoveredEndpoints int     `json:"uncoveredEndpoints"`
	CoveragePercentage float64 `json:"coveragePercentage"`
}

type jsonCoveredOperation struct {
	models.Operation
	TestedInFiles []string `json:"testedInFiles"`
}

type jsonReport struct {
	Legend              map[string]jsonLegendEntry    `json:"legend"`
	Summary             jsonSummary                   `json:"summary"`
	CoverageByMethod    map[string]models.BucketStats `json:"coverageByMethod"`
	CoverageByTag       map[string]models.BucketStats `json:"coverageByTag"`
	CoveredOperations   []jsonCoveredOperation        `json:"coveredOperations"`
	UncoveredOperations []models.Operation            `json:"uncoveredOperations"`
}

// Render implements Renderer.
func (j *JSON) Render(report *models.CoverageReport, mapping models.TagMapping) (string, error) {
	covered := make([]jsonCoveredOperation, 0, len(report.CoveredOperations))
	for _, op := range report.CoveredOperations {
		files := mapping[op.OperationID]
		if files == nil {
			files = []string{}
		}
		covered = append(covered, jsonCoveredOperation{Operation: op, TestedInFiles: files})
	}

	uncovered := report.UncoveredOperations
	if uncovered == nil {
		uncovered = []models.Operation{}
	}

	doc := jsonReport{
		Legend: map[string]jsonLegendEntry{
			"green":  {Emoji: models.StatusGreen.Emoji(), Threshold: ">= 80%", Description: "Good coverage"},
			"yellow": {Emoji: models.StatusYellow.Emoji(), Threshold: ">= 60%", Description: "Needs improvement"},
			"red":    {Emoji: models.StatusRed.Emoji(), Threshold: "< 60%", Description: "Critical - needs attention"},
		},
		Summary: jsonSummary{
			TotalEndpoints:     report.TotalEndpoints,
			CoveredEndpoints:   report.CoveredEndpoints,
			UncoveredEndpoints: report.UncoveredEndpoints,
			CoveragePercentage: math.Round(report.CoveragePercentage*100) / 100,
		},
		CoverageByMethod:    report.ByMethod,
		CoverageByTag:       report.ByTag,
		CoveredOperations:   covered,
		UncoveredOperations: uncovered,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
