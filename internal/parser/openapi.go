package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apicover/apicover/internal/models"
)

// Parser extracts declared operations from an OpenAPI 3 schema document.
type Parser struct{}

// New creates a new OpenAPI parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile loads a schema document from disk and extracts its operations.
// A missing or unparsable file is a fatal input error.
func (p *Parser) ParseFile(path string) ([]models.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	ops, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	return ops, nil
}

// Parse extracts all operations from a schema document.
//
// Only the five verbs that can be correlated with coverage markers are
// considered; an operation without an operationId is skipped because it can
// never match a marker. Paths are iterated in sorted key order so repeated
// runs over the same document produce identical output.
func (p *Parser) Parse(data []byte) ([]models.Operation, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	if doc.Paths == nil {
		return nil, nil
	}

	pathItems := doc.Paths.Map()
	paths := make([]string, 0, len(pathItems))
	for path := range pathItems {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var operations []models.Operation
	for _, pathPattern := range paths {
		pathItem := pathItems[pathPattern]
		if pathItem == nil {
			continue
		}

		verbs := []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", pathItem.Get},
			{"POST", pathItem.Post},
			{"PUT", pathItem.Put},
			{"PATCH", pathItem.Patch},
			{"DELETE", pathItem.Delete},
		}

		for _, v := range verbs {
			if v.op == nil || v.op.OperationID == "" {
				continue
			}

			tags := v.op.Tags
			if tags == nil {
				tags = []string{}
			}

			operations = append(operations, models.Operation{
				OperationID: v.op.OperationID,
				Path:        pathPattern,
				Method:      v.method,
				Summary:     v.op.Summary,
				Tags:        tags,
			})
		}
	}

	return operations, nil
}
