// Package storage persists rendered reports to disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const archiveBaseName = "api_coverage"

// Writer writes rendered reports to the report directory and keeps dated
// copies in the archive directory.
type Writer struct {
	reportDir  string
	archiveDir string
}

// NewWriter creates a report writer.
func NewWriter(reportDir, archiveDir string) *Writer {
	return &Writer{reportDir: reportDir, archiveDir: archiveDir}
}

// Write stores content at path, creating parent directories as needed.
func (w *Writer) Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Archive writes the canonical report into the report directory and a dated
// copy into the archive directory. It returns the paths written.
func (w *Writer) Archive(content string, now time.Time) ([]string, error) {
	paths := []string{
		filepath.Join(w.reportDir, archiveBaseName+".html"),
		filepath.Join(w.archiveDir, fmt.Sprintf("%s_%s.html", archiveBaseName, now.Format("2006-01-02"))),
	}

	for _, path := range paths {
		if err := w.Write(path, content); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// ReportPath returns the canonical report location for a file name.
func (w *Writer) ReportPath(name string) string {
	return filepath.Join(w.reportDir, name)
}
