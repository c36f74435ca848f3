package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/apicover/apicover/internal/analyzer"
	"github.com/apicover/apicover/internal/config"
	"github.com/apicover/apicover/internal/models"
	"github.com/apicover/apicover/internal/parser"
	"github.com/apicover/apicover/internal/render"
	"github.com/apicover/apicover/internal/scanner"
	"github.com/apicover/apicover/internal/storage"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an API endpoint coverage report",
	Long: `Runs the coverage pipeline once: extracts operations from the OpenAPI
schema, scans feature files for @apiOperation markers, analyzes coverage and
renders the report.

The console format is written to stdout; other formats are written to the
report directory unless --output is given. With --save an HTML copy is also
archived under a dated file name.`,
	RunE: runReport,
}

var (
	schemaFlag   string
	featuresFlag string
	baseFlag     string
	formatFlag   string
	outputFlag   string
	saveFlag     bool
)

func init() {
	reportCmd.Flags().StringVar(&schemaFlag, "schema", "", "Path to OpenAPI schema file (overrides config)")
	reportCmd.Flags().StringVar(&featuresFlag, "features", "", "Path to features directory (overrides config)")
	reportCmd.Flags().StringVar(&baseFlag, "base", "", "Directory report file paths are relative to (overrides config)")
	reportCmd.Flags().StringVarP(&formatFlag, "format", "f", "console", "Output format (console|json|html|markdown)")
	reportCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")
	reportCmd.Flags().BoolVar(&saveFlag, "save", false, "Also archive a dated HTML copy of the report")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	if schemaFlag != "" {
		cfg.Schema.Path = schemaFlag
	}
	if featuresFlag != "" {
		cfg.Features.Dir = featuresFlag
	}
	if baseFlag != "" {
		cfg.Features.Base = baseFlag
	}

	format, err := render.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	report, mapping, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	renderer, err := render.New(format)
	if err != nil {
		return err
	}
	out, err := renderer.Render(report, mapping)
	if err != nil {
		return err
	}

	writer := storage.NewWriter(cfg.Report.Dir, cfg.Report.ArchiveDir)

	if saveFlag {
		html, err := (&render.HTML{}).Render(report, mapping)
		if err != nil {
			return err
		}
		paths, err := writer.Archive(html, time.Now())
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Printf("Report archived to: %s", p)
		}
	}

	switch {
	case outputFlag != "":
		if err := writer.Write(outputFlag, out); err != nil {
			return err
		}
		log.Printf("Report saved to: %s", outputFlag)
	case format == render.FormatConsole:
		fmt.Println(out)
	default:
		path := writer.ReportPath(defaultFileName(format))
		if err := writer.Write(path, out); err != nil {
			return err
		}
		log.Printf("Report saved to: %s", path)
	}

	return nil
}

// runPipeline executes extraction, scanning and analysis once.
func runPipeline(cfg *config.Config) (*models.CoverageReport, models.TagMapping, error) {
	log.Printf("Reading OpenAPI schema from: %s", cfg.Schema.Path)
	operations, err := parser.New().ParseFile(cfg.Schema.Path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Found %d operations", len(operations))

	log.Printf("Scanning feature files in: %s", cfg.Features.Dir)
	mapping, err := scanner.New(cfg.Features.Dir, cfg.Features.Base).Scan()
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Found %d operation IDs tagged in tests", len(mapping))

	return analyzer.Analyze(operations, mapping), mapping, nil
}

func defaultFileName(format render.Format) string {
	switch format {
	case render.FormatHTML:
		return "api_coverage.html"
	case render.FormatMarkdown:
		return "coverage_report.md"
	default:
		return "coverage_report." + string(format)
	}
}
