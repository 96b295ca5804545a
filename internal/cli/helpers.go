package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
)

// ParsePriority normalizes a priority flag value.
func ParsePriority(priority string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(priority))
	if !models.ValidPriority(p) {
		return "", apperr.Validation("priority",
			fmt.Sprintf("invalid priority '%s' (must be: low, medium, high, critical)", priority))
	}
	return p, nil
}

// ParseDate checks a YYYY-MM-DD flag value. Empty is allowed.
func ParseDate(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return "", apperr.Validation(field, fmt.Sprintf("%s must be a date like 2025-01-31, got: %s", field, value))
	}
	return value, nil
}

// ParseRiskScore checks an impact or probability value.
func ParseRiskScore(field string, v int) (int, error) {
	if !models.ValidRiskScore(v) {
		return 0, apperr.Validation(field, fmt.Sprintf("%s must be between %d and %d, got: %d",
			field, models.MinRiskScore, models.MaxRiskScore, v))
	}
	return v, nil
}

// OptionalString returns the flag value only when the user set it.
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalInt returns the flag value only when the user set it.
func OptionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

// ReadContent returns --content, or the contents of --file ("-" reads stdin).
// The second result is false when neither flag was given.
func ReadContent(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("content") {
		v, _ := cmd.Flags().GetString("content")
		return v, true, nil
	}
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return "", false, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", false, Exit(ExitDataErr, fmt.Errorf("read %s: %w", path, err))
	}
	return string(data), true, nil
}
