// Package analyzer classifies declared operations against coverage markers
// and aggregates the result per HTTP method and per functional tag.
package analyzer

import (
	"github.com/apicover/apicover/internal/models"
)

// Analyze cross-references operations with the scanned tag mapping and builds
// the coverage report. It never fails: degenerate inputs produce a report
// with all counts at zero.
//
// Input order is preserved within the covered and uncovered lists.
func Analyze(operations []models.Operation, mapping models.TagMapping) *models.CoverageReport {
	covered := make([]models.Operation, 0)
	uncovered := make([]models.Operation, 0)

	for _, op := range operations {
		if _, ok := mapping[op.OperationID]; ok {
			covered = append(covered, op)
		} else {
			uncovered = append(uncovered, op)
		}
	}

	total := len(operations)
	return &models.CoverageReport{
		TotalEndpoints:      total,
		CoveredEndpoints:    len(covered),
		UncoveredEndpoints:  total - len(covered),
		CoveragePercentage:  percentage(len(covered), total),
		CoveredOperations:   covered,
		UncoveredOperations: uncovered,
		ByTag:               coverageByTag(operations, mapping),
		ByMethod:            coverageByMethod(operations, mapping),
	}
}

// coverageByMethod buckets every operation by its HTTP method. Each operation
// has exactly one method, so the buckets partition the operation list.
func coverageByMethod(operations []models.Operation, mapping models.TagMapping) map[string]models.BucketStats {
	counts := map[string]*counter{}

	for _, op := range operations {
		c := counts[op.Method]
		if c == nil {
			c = &counter{}
			counts[op.Method] = c
		}
		c.total++
		if _, ok := mapping[op.OperationID]; ok {
			c.covered++
		}
	}

	return finalize(counts)
}

// coverageByTag buckets every operation under each of its functional tags.
// An operation with N tags contributes to N buckets; one with no tags is
// invisible here and only shows up in the method buckets and the
// covered/uncovered lists.
func coverageByTag(operations []models.Operation, mapping models.TagMapping) map[string]models.BucketStats {
	counts := map[string]*counter{}

	for _, op := range operations {
		_, isCovered := mapping[op.OperationID]
		for _, tag := range op.Tags {
			c := counts[tag]
			if c == nil {
				c = &counter{}
				counts[tag] = c
			}
			c.total++
			if isCovered {
				c.covered++
			}
		}
	}

	return finalize(counts)
}

type counter struct {
	total   int
	covered int
}

func finalize(counts map[string]*counter) map[string]models.BucketStats {
	stats := make(map[string]models.BucketStats, len(counts))
	for key, c := range counts {
		pct := percentage(c.covered, c.total)
		stats[key] = models.BucketStats{
			Total:      c.total,
			Covered:    c.covered,
			Percentage: pct,
			Status:     models.StatusFor(pct),
		}
	}
	return stats
}

func percentage(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}
