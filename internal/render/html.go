package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/apicover/apicover/internal/models"
)

const htmlFileCap = 5

// HTML renders the report as a standalone hypertext document.
type HTML struct{}

type htmlBucketRow struct {
	Name       string
	Emoji      string
	Total      int
	Covered    int
	Uncovered  int
	Percentage string
}

type htmlCoveredRow struct {
	Op        models.Operation
	Files     []string
	MoreFiles int
}

type htmlView struct {
	Total        int
	Covered      int
	Uncovered    int
	Percentage   string
	ProgressPct  string
	Methods      []htmlBucketRow
	Tags         []htmlBucketRow
	UncoveredOps []models.Operation
	CoveredOps   []htmlCoveredRow
}

// Render implements Renderer.
func (h *HTML) Render(report *models.CoverageReport, mapping models.TagMapping) (string, error) {
	view := htmlView{
		Total:        report.TotalEndpoints,
		Covered:      report.CoveredEndpoints,
		Uncovered:    report.UncoveredEndpoints,
		Percentage:   fmt.Sprintf("%.0f", report.CoveragePercentage),
		ProgressPct:  fmt.Sprintf("%.2f", report.CoveragePercentage),
		Methods:      bucketRows(report.ByMethod, sortedKeys(report.ByMethod)),
		Tags:         bucketRows(report.ByTag, keysByPercentage(report.ByTag)),
		UncoveredOps: byOperationID(report.UncoveredOperations),
	}

	for _, op := range byOperationID(report.CoveredOperations) {
		files := mapping[op.OperationID]
		row := htmlCoveredRow{Op: op, Files: files}
		if len(files) > htmlFileCap {
			row.Files = files[:htmlFileCap]
			row.MoreFiles = len(files) - htmlFileCap
		}
		view.CoveredOps = append(view.CoveredOps, row)
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return b.String(), nil
}

func bucketRows(buckets map[string]models.BucketStats, keys []string) []htmlBucketRow {
	rows := make([]htmlBucketRow, 0, len(keys))
	for _, key := range keys {
		stats := buckets[key]
		rows = append(rows, htmlBucketRow{
			Name:       key,
			Emoji:      stats.Status.Emoji(),
			Total:      stats.Total,
			Covered:    stats.Covered,
			Uncovered:  stats.Total - stats.Covered,
			Percentage: fmt.Sprintf("%.1f", stats.Percentage),
		})
	}
	return rows
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>API Coverage Report</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #333; border-bottom: 3px solid #4CAF50; padding-bottom: 10px; }
        h2 { color: #555; margin-top: 30px; border-bottom: 2px solid #ddd; padding-bottom: 5px; }
        .legend { background-color: #f8f9fa; padding: 15px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #667eea; }
        .legend-items { display: flex; gap: 30px; flex-wrap: wrap; }
        .summary { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin: 20px 0; }
        .stat-box { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 8px; text-align: center; }
        .stat-box.covered { background: linear-gradient(135deg, #11998e 0%, #38ef7d 100%); }
        .stat-box.uncovered { background: linear-gradient(135deg, #ee0979 0%, #ff6a00 100%); }
        .stat-box h3 { margin: 0; font-size: 2em; font-weight: bold; }
        .stat-box p { margin: 5px 0 0 0; opacity: 0.9; }
        .progress-bar { width: 100%; height: 30px; background-color: #e0e0e0; border-radius: 15px; overflow: hidden; margin: 20px 0; }
        .progress-fill { height: 100%; background: linear-gradient(90deg, #11998e 0%, #38ef7d 100%); display: flex; align-items: center; color: white; font-weight: bold; }
        .progress-text { min-width: 12%; padding-left: 8px; white-space: nowrap; color: #000; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; table-layout: fixed; }
        th { background-color: #667eea; color: white; padding: 12px; text-align: left; font-weight: 600; overflow-wrap: anywhere; }
        td { padding: 10px 12px; border-bottom: 1px solid #ddd; word-break: break-all; }
        tr:hover { background-color: #f5f5f5; }
        .method { display: inline-block; padding: 4px 8px; border-radius: 4px; font-weight: bold; font-size: 0.85em; color: white; }
        .method.GET { background-color: #61affe; }
        .method.POST { background-color: #49cc90; }
        .method.PUT { background-color: #fca130; }
        .method.PATCH { background-color: #50e3c2; }
        .method.DELETE { background-color: #f93e3e; }
        .tag { display: inline-block; background-color: #e0e0e0; padding: 2px 8px; border-radius: 3px; font-size: 0.85em; margin: 2px; }
        .covered-icon { color: #4CAF50; }
        .uncovered-icon { color: #f44336; }
        .file-link { color: #667eea; font-size: 0.9em; margin-left: 20px; display: block; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🎯 API Endpoint Coverage Report</h1>

        <div class="legend">
            <h3>Coverage Status Legend</h3>
            <div class="legend-items">
                <div><strong>🟢 Green:</strong> ≥ 80% coverage (Good)</div>
                <div><strong>🟡 Yellow:</strong> ≥ 60% coverage (Needs Improvement)</div>
                <div><strong>🔴 Red:</strong> &lt; 60% coverage (Critical)</div>
            </div>
        </div>

        <div class="summary">
            <div class="stat-box"><h3>{{.Total}}</h3><p>Total Endpoints</p></div>
            <div class="stat-box covered"><h3>{{.Covered}}</h3><p>Covered</p></div>
            <div class="stat-box uncovered"><h3>{{.Uncovered}}</h3><p>Uncovered</p></div>
        </div>

        <div class="progress-bar">
            <div class="progress-fill" style="width: {{.ProgressPct}}%">
                <span class="progress-text">{{.Percentage}}% Coverage</span>
            </div>
        </div>

        <h2>📊 Coverage by HTTP Method</h2>
        <table>
            <thead><tr><th>Status</th><th>Method</th><th>Total</th><th>Covered</th><th>Uncovered</th><th>Coverage</th></tr></thead>
            <tbody>
            {{- range .Methods}}
                <tr>
                    <td>{{.Emoji}}</td>
                    <td><span class="method {{.Name}}">{{.Name}}</span></td>
                    <td>{{.Total}}</td>
                    <td>{{.Covered}}</td>
                    <td>{{.Uncovered}}</td>
                    <td>{{.Percentage}}%</td>
                </tr>
            {{- end}}
            </tbody>
        </table>

        <h2>🏷️ Coverage by API Tag</h2>
        <table>
            <thead><tr><th>Status</th><th>Tag</th><th>Total</th><th>Covered</th><th>Uncovered</th><th>Coverage</th></tr></thead>
            <tbody>
            {{- range .Tags}}
                <tr>
                    <td>{{.Emoji}}</td>
                    <td><span class="tag">{{.Name}}</span></td>
                    <td>{{.Total}}</td>
                    <td>{{.Covered}}</td>
                    <td>{{.Uncovered}}</td>
                    <td>{{.Percentage}}%</td>
                </tr>
            {{- end}}
            </tbody>
        </table>

        <h2>❌ Uncovered Endpoints</h2>
        <table>
            <thead><tr><th>Operation ID</th><th>Method</th><th>Path</th><th>Tags</th></tr></thead>
            <tbody>
            {{- range .UncoveredOps}}
                <tr>
                    <td><span class="uncovered-icon">✗</span> {{.OperationID}}</td>
                    <td><span class="method {{.Method}}">{{.Method}}</span></td>
                    <td><code>{{.Path}}</code></td>
                    <td>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</td>
                </tr>
            {{- end}}
            </tbody>
        </table>

        <h2>✅ Covered Endpoints</h2>
        <table>
            <thead><tr><th>Operation ID</th><th>Method</th><th>Path</th><th>Tested In</th></tr></thead>
            <tbody>
            {{- range .CoveredOps}}
                <tr>
                    <td><span class="covered-icon">✓</span> {{.Op.OperationID}}</td>
                    <td><span class="method {{.Op.Method}}">{{.Op.Method}}</span></td>
                    <td><code>{{.Op.Path}}</code></td>
                    <td>
                        {{- range .Files}}<span class="file-link">→ {{.}}</span>{{end}}
                        {{- if .MoreFiles}}<span class="file-link">... +{{.MoreFiles}} more</span>{{end}}
                    </td>
                </tr>
            {{- end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`))
