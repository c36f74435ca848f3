package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/apicover/apicover/internal/models"
)

// Markdown renders a lightweight-markup report suitable for embedding in
// documentation. Now supplies the footer timestamp; everything else is a pure
// function of the inputs.
type Markdown struct {
	Now func() time.Time
}

// Render implements Renderer.
func (m *Markdown) Render(report *models.CoverageReport, mapping models.TagMapping) (string, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	var b strings.Builder
	badge := models.StatusFor(report.CoveragePercentage).Emoji()

	fmt.Fprintln(&b, "# API Endpoint Coverage Report")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s **Coverage: %.2f%%**\n", badge, report.CoveragePercentage)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "## Coverage Status Legend")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Status | Threshold | Description |")
	fmt.Fprintln(&b, "|--------|-----------|-------------|")
	fmt.Fprintln(&b, "| 🟢 Green | ≥ 80% | Good coverage |")
	fmt.Fprintln(&b, "| 🟡 Yellow | ≥ 60% | Needs improvement |")
	fmt.Fprintln(&b, "| 🔴 Red | < 60% | Critical - needs attention |")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "## Summary")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Metric | Count |")
	fmt.Fprintln(&b, "|--------|------:|")
	fmt.Fprintf(&b, "| Total Endpoints | %d |\n", report.TotalEndpoints)
	fmt.Fprintf(&b, "| Covered Endpoints | %d |\n", report.CoveredEndpoints)
	fmt.Fprintf(&b, "| Uncovered Endpoints | %d |\n", report.UncoveredEndpoints)
	fmt.Fprintf(&b, "| **Coverage Percentage** | **%s %.2f%%** |\n", badge, report.CoveragePercentage)
	fmt.Fprintln(&b)

	if len(report.ByMethod) > 0 {
		fmt.Fprintln(&b, "## Coverage by HTTP Method")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Method | Covered | Total | Percentage |")
		fmt.Fprintln(&b, "|--------|--------:|------:|-----------:|")
		for _, method := range sortedKeys(report.ByMethod) {
			stats := report.ByMethod[method]
			fmt.Fprintf(&b, "| %s %s | %d | %d | %.1f%% |\n",
				stats.Status.Emoji(), method, stats.Covered, stats.Total, stats.Percentage)
		}
		fmt.Fprintln(&b)
	}

	if len(report.ByTag) > 0 {
		fmt.Fprintln(&b, "## Coverage by API Tag")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Tag | Covered | Total | Percentage |")
		fmt.Fprintln(&b, "|-----|--------:|------:|-----------:|")
		for _, tag := range keysByPercentage(report.ByTag) {
			stats := report.ByTag[tag]
			fmt.Fprintf(&b, "| %s %s | %d | %d | %.1f%% |\n",
				stats.Status.Emoji(), tag, stats.Covered, stats.Total, stats.Percentage)
		}
		fmt.Fprintln(&b)
	}

	if len(report.UncoveredOperations) > 0 {
		fmt.Fprintf(&b, "## Uncovered Endpoints (%d endpoints)\n", len(report.UncoveredOperations))
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Operation ID | Method | Path | Tags |")
		fmt.Fprintln(&b, "|-------------|--------|------|------|")
		for _, op := range byOperationID(report.UncoveredOperations) {
			fmt.Fprintf(&b, "| `%s` | %s | `%s` | %s |\n",
				op.OperationID, op.Method, op.Path, strings.Join(op.Tags, ", "))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "---")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "*Report generated: %s*\n", now().Format("2006-01-02 15:04:05"))

	return b.String(), nil
}
