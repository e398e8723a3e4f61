// Package pipeline provides the scan orchestration engine for deadweight.
// It resolves detectors, runs them concurrently, validates their output,
// and aggregates results into a ScanResult.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davetashner/deadweight/internal/resource"
)

// ValidationError describes a single validation failure for a Candidate.
type ValidationError struct {
	// Field is the struct field that failed validation.
	Field string

	// Message describes what went wrong.
	Message string
}

// Error implements the error interface.
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidateCandidate checks a Candidate reported for the given category and
// returns all validation errors found. An empty slice means the candidate
// is valid.
func ValidateCandidate(cat resource.Category, c resource.Candidate) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Key) == "" {
		errs = append(errs, ValidationError{
			Field:   "Key",
			Message: "must not be empty",
		})
	}

	switch cat {
	case resource.CategoryAssets, resource.CategoryFiles:
		if c.Path == "" {
			errs = append(errs, ValidationError{
				Field:   "Path",
				Message: fmt.Sprintf("must not be empty for %s", cat),
			})
		}
	case resource.CategoryDependencies:
		if c.Path != "" {
			errs = append(errs, ValidationError{
				Field:   "Path",
				Message: "must be empty for dependencies",
			})
		}
	}

	if filepath.IsAbs(c.Path) {
		errs = append(errs, ValidationError{
			Field:   "Path",
			Message: "must be a relative path, got absolute path",
		})
	}

	return errs
}
