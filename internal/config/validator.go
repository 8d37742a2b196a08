package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/proofscout/proofscout/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "scan.workers")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// labelRegex validates issue label characters. GitHub labels may contain
// spaces but not leading/trailing whitespace.
var labelRegex = regexp.MustCompile(`^\S(.*\S)?$`)

// ValidLogLevels returns the accepted logging.level values: the logger's
// level names, lowercased as they appear in config files.
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	out := make([]string, len(levels))
	for i, level := range levels {
		out[i] = strings.ToLower(level)
	}
	return out
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateScan()...)
	errors = append(errors, c.validateIssues()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateScan validates the ScanConfig
func (c *Config) validateScan() []ValidationError {
	var errors []ValidationError

	if c.Scan.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "scan.model",
			Value:   c.Scan.Model,
			Message: "cannot be empty",
		})
	}

	// 0 means one worker per CPU; negative is invalid
	if c.Scan.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.workers",
			Value:   c.Scan.Workers,
			Message: "must be non-negative (0 uses one worker per CPU)",
		})
	}

	const maxWorkers = 64
	if c.Scan.Workers > maxWorkers {
		errors = append(errors, ValidationError{
			Field:   "scan.workers",
			Value:   c.Scan.Workers,
			Message: fmt.Sprintf("exceeds maximum of %d", maxWorkers),
		})
	}

	if c.Scan.MaxImportFileSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.max_import_file_size",
			Value:   c.Scan.MaxImportFileSize,
			Message: "must be positive",
		})
	}

	// Bound the threshold so a misconfiguration cannot balloon prompts
	const maxImportSizeLimit = 10_000_000 // 10MB
	if c.Scan.MaxImportFileSize > maxImportSizeLimit {
		errors = append(errors, ValidationError{
			Field:   "scan.max_import_file_size",
			Value:   c.Scan.MaxImportFileSize,
			Message: fmt.Sprintf("exceeds maximum of %d bytes", maxImportSizeLimit),
		})
	}

	return errors
}

// validateIssues validates the IssuesConfig
func (c *Config) validateIssues() []ValidationError {
	var errors []ValidationError

	if c.Issues.Label == "" {
		errors = append(errors, ValidationError{
			Field:   "issues.label",
			Value:   c.Issues.Label,
			Message: "cannot be empty",
		})
	} else if !labelRegex.MatchString(c.Issues.Label) {
		errors = append(errors, ValidationError{
			Field:   "issues.label",
			Value:   c.Issues.Label,
			Message: "must not have leading or trailing whitespace",
		})
	}

	const maxLabelLength = 50
	if len(c.Issues.Label) > maxLabelLength {
		errors = append(errors, ValidationError{
			Field:   "issues.label",
			Value:   c.Issues.Label,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", maxLabelLength),
		})
	}

	if c.Issues.Branch == "" {
		errors = append(errors, ValidationError{
			Field:   "issues.branch",
			Value:   c.Issues.Branch,
			Message: "cannot be empty",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "path contains invalid null character",
		})
	}

	return errors
}
