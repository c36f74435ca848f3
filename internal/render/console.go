package render

import (
	"fmt"
	"strings"

	"github.com/apicover/apicover/internal/models"
)

const (
	consoleWidth    = 80
	coveredEntryCap = 20
	coveredFileCap  = 3
)

// Console renders a fixed-width plain-text report.
type Console struct{}

// Render implements Renderer.
func (c *Console) Render(report *models.CoverageReport, mapping models.TagMapping) (string, error) {
	var b strings.Builder
	rule := strings.Repeat("=", consoleWidth)
	divider := strings.Repeat("-", consoleWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "API ENDPOINT COVERAGE REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "COVERAGE STATUS LEGEND")
	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b, "  🟢 Green:  >= 80% coverage (Good)")
	fmt.Fprintln(&b, "  🟡 Yellow: >= 60% coverage (Needs Improvement)")
	fmt.Fprintln(&b, "  🔴 Red:    <  60% coverage (Critical)")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SUMMARY")
	fmt.Fprintln(&b, divider)
	fmt.Fprintf(&b, "Total Endpoints:      %d\n", report.TotalEndpoints)
	fmt.Fprintf(&b, "Covered Endpoints:    %d\n", report.CoveredEndpoints)
	fmt.Fprintf(&b, "Uncovered Endpoints:  %d\n", report.UncoveredEndpoints)
	fmt.Fprintf(&b, "Coverage:             %.2f%%\n", report.CoveragePercentage)
	fmt.Fprintln(&b)

	if len(report.ByMethod) > 0 {
		fmt.Fprintln(&b, "COVERAGE BY HTTP METHOD")
		fmt.Fprintln(&b, divider)
		for _, method := range sortedKeys(report.ByMethod) {
			stats := report.ByMethod[method]
			fmt.Fprintf(&b, "  %s %-8s  %3d/%3d  (%5.1f%%)\n",
				stats.Status.Emoji(), method, stats.Covered, stats.Total, stats.Percentage)
		}
		fmt.Fprintln(&b)
	}

	if len(report.ByTag) > 0 {
		fmt.Fprintln(&b, "COVERAGE BY API TAG")
		fmt.Fprintln(&b, divider)
		for _, tag := range keysByPercentage(report.ByTag) {
			stats := report.ByTag[tag]
			fmt.Fprintf(&b, "  %s %-20s  %3d/%3d  (%5.1f%%)\n",
				stats.Status.Emoji(), tag, stats.Covered, stats.Total, stats.Percentage)
		}
		fmt.Fprintln(&b)
	}

	if len(report.UncoveredOperations) > 0 {
		fmt.Fprintln(&b, "UNCOVERED ENDPOINTS")
		fmt.Fprintln(&b, divider)
		fmt.Fprintf(&b, "%-40s %-8s %s\n", "OperationId", "Method", "Path")
		fmt.Fprintln(&b, divider)
		for _, op := range byFirstTag(report.UncoveredOperations) {
			prefix := ""
			if len(op.Tags) > 0 {
				prefix = fmt.Sprintf("[%s] ", op.Tags[0])
			}
			fmt.Fprintf(&b, "%s%-40s %-8s %s\n", prefix, op.OperationID, op.Method, op.Path)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "COVERED ENDPOINTS (%d total)\n", len(report.CoveredOperations))
	fmt.Fprintln(&b, divider)
	covered := byOperationID(report.CoveredOperations)
	shown := covered
	if len(shown) > coveredEntryCap {
		shown = shown[:coveredEntryCap]
	}
	for _, op := range shown {
		fmt.Fprintf(&b, "  ✓ %s (%s %s)\n", op.OperationID, op.Method, op.Path)
		files := mapping[op.OperationID]
		for i, f := range files {
			if i == coveredFileCap {
				fmt.Fprintf(&b, "      → +%d more\n", len(files)-coveredFileCap)
				break
			}
			fmt.Fprintf(&b, "      → %s\n", f)
		}
	}
	if len(covered) > coveredEntryCap {
		fmt.Fprintf(&b, "  ... and %d more\n", len(covered)-coveredEntryCap)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, rule)
	return b.String(), nil
}
