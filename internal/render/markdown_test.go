package render

import (
	"strings"
	"testing"
	"time"
)

func TestMarkdownRender(t *testing.T) {
	report, mapping := testReport()
	m := &Markdown{Now: func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}}

	out, err := m.Render(report, mapping)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"# API Endpoint Coverage Report",
		"**Coverage: 66.67%**",
		"| Total Endpoints | 3 |",
		"| Covered Endpoints | 2 |",
		"| Uncovered Endpoints | 1 |",
		"## Coverage by HTTP Method",
		"## Coverage by API Tag",
		"## Uncovered Endpoints (1 endpoints)",
		"| `postX` | POST | `/x` | x |",
		"*Report generated: 2025-06-01 12:30:00*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestMarkdownRender_Deterministic(t *testing.T) {
	report, mapping := testReport()
	clock := func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	first, err := (&Markdown{Now: clock}).Render(report, mapping)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := (&Markdown{Now: clock}).Render(report, mapping)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if first != second {
		t.Error("Renders with a pinned clock must be identical")
	}
}

func TestMarkdownRender_TagOrder(t *testing.T) {
	report, mapping := testReport()

	out, err := (&Markdown{}).Render(report, mapping)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	yIdx := strings.Index(out, "| 🟢 y |")
	xIdx := strings.Index(out, "| 🔴 x |")
	if yIdx == -1 || xIdx == -1 || yIdx > xIdx {
		t.Errorf("Expected tag y before tag x, indexes %d / %d", yIdx, xIdx)
	}
}
