// Package render turns a coverage report into one of several presentation
// formats. All renderers are pure functions of the report and the tag
// mapping; the markdown footer timestamp is the single permitted exception
// and is injected through a clock so tests stay reproducible.
package render

import (
	"fmt"
	"sort"
	"time"

	"github.com/apicover/apicover/internal/models"
)

// Format identifies an output representation.
type Format string

const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatConsole, FormatJSON, FormatHTML, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected console, json, html or markdown)", s)
}

// Renderer renders a coverage report into its output representation.
type Renderer interface {
	Render(report *models.CoverageReport, mapping models.TagMapping) (string, error)
}

// New returns the renderer for a format.
func New(format Format) (Renderer, error) {
	switch format {
	case FormatConsole:
		return &Console{}, nil
	case FormatJSON:
		return &JSON{}, nil
	case FormatHTML:
		return &HTML{}, nil
	case FormatMarkdown:
		return &Markdown{Now: time.Now}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// sortedKeys returns bucket keys in ascending order.
func sortedKeys(buckets map[string]models.BucketStats) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// keysByPercentage returns bucket keys sorted by coverage percentage
// descending, ties broken by ascending key.
func keysByPercentage(buckets map[string]models.BucketStats) []string {
	keys := sortedKeys(buckets)
	sort.SliceStable(keys, func(i, j int) bool {
		return buckets[keys[i]].Percentage > buckets[keys[j]].Percentage
	})
	return keys
}

// byOperationID sorts a copy of ops by operationId ascending.
func byOperationID(ops []models.Operation) []models.Operation {
	sorted := make([]models.Operation, len(ops))
	copy(sorted, ops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OperationID < sorted[j].OperationID
	})
	return sorted
}

// byFirstTag sorts a copy of ops by (first tag or empty string, operationId)
// ascending.
func byFirstTag(ops []models.Operation) []models.Operation {
	sorted := make([]models.Operation, len(ops))
	copy(sorted, ops)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := firstTag(sorted[i]), firstTag(sorted[j])
		if ti != tj {
			return ti < tj
		}
		return sorted[i].OperationID < sorted[j].OperationID
	})
	return sorted
}

func firstTag(op models.Operation) string {
	if len(op.Tags) > 0 {
		return op.Tags[0]
	}
	return ""
}
