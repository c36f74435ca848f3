// Package scanner discovers coverage markers in BDD feature files.
package scanner

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/apicover/apicover/internal/models"
)

const featureExt = ".feature"

// markerPattern matches @apiOperation:<operationId> markers.
var markerPattern = regexp.MustCompile(`@apiOperation:(\w+)`)

// Scanner walks a feature-file tree and collects coverage markers.
type Scanner struct {
	root string
	base string
}

// New creates a scanner over root. Collected file paths are reported relative
// to base; an empty base means relative to root itself.
func New(root, base string) *Scanner {
	if base == "" {
		base = root
	}
	return &Scanner{root: root, base: base}
}

// Scan recursively reads every *.feature file under the root and returns the
// mapping from operationId to the files referencing it. Each occurrence of a
// marker contributes one entry, so a file may appear more than once for the
// same operationId.
//
// A file that cannot be read is skipped with a warning; its markers are simply
// absent from the mapping, which can only undercount coverage. A missing root
// is a fatal input error.
func (s *Scanner) Scan() (models.TagMapping, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("features directory not accessible: %w", err)
	}

	mapping := models.TagMapping{}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: could not access %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != featureExt {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: could not read %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(s.base, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for _, match := range markerPattern.FindAllSubmatch(content, -1) {
			operationID := string(match[1])
			mapping[operationID] = append(mapping[operationID], rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan features directory: %w", err)
	}

	return mapping, nil
}
