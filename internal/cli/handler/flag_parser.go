package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/types"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd       *cobra.Command
	formatter *cli.OutputFormatter
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command, formatter *cli.OutputFormatter) *FlagParser {
	return &FlagParser{
		cmd:       cmd,
		formatter: formatter,
	}
}

// ProjectID extracts the project from --project or SCOPE_PROJECT. A missing
// project is reported as a usage error.
func (p *FlagParser) ProjectID() (types.ProjectID, error) {
	projectID, err := cli.GetProjectID(p.cmd)
	if err != nil {
		return "", p.formatter.Usage(err, "Pass --project or run: eval $(scope use project <project-id>)")
	}
	return projectID, nil
}

// String extracts a required string flag
func (p *FlagParser) String(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation(flagName, flagName+" is required")
	}
	return value, nil
}

// StringOptional extracts an optional string flag
func (p *FlagParser) StringOptional(flagName string) string {
	value, _ := p.cmd.Flags().GetString(flagName)
	return value
}

// Int extracts an int flag
func (p *FlagParser) Int(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// Bool extracts a boolean flag
func (p *FlagParser) Bool(flagName string) bool {
	value, _ := p.cmd.Flags().GetBool(flagName)
	return value
}

// Priority extracts and normalizes a priority flag. Unset yields "".
func (p *FlagParser) Priority(flagName string) (string, error) {
	value := p.StringOptional(flagName)
	if value == "" {
		return "", nil
	}
	return cli.ParsePriority(value)
}

// Date extracts a YYYY-MM-DD flag.
func (p *FlagParser) Date(flagName string) (string, error) {
	return cli.ParseDate(flagName, p.StringOptional(flagName))
}

// RiskScore extracts an impact or probability flag.
func (p *FlagParser) RiskScore(flagName string) (int, error) {
	value, err := p.Int(flagName)
	if err != nil {
		return 0, err
	}
	return cli.ParseRiskScore(flagName, value)
}

// OptionalString returns the flag value only when it was set.
func (p *FlagParser) OptionalString(flagName string) *string {
	return cli.OptionalString(p.cmd, flagName)
}

// OptionalDate is OptionalString with date validation.
func (p *FlagParser) OptionalDate(flagName string) (*string, error) {
	v := p.OptionalString(flagName)
	if v == nil {
		return nil, nil
	}
	d, err := cli.ParseDate(flagName, *v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// OptionalPriority is OptionalString with priority validation.
func (p *FlagParser) OptionalPriority(flagName string) (*string, error) {
	v := p.OptionalString(flagName)
	if v == nil {
		return nil, nil
	}
	pr, err := cli.ParsePriority(*v)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// OptionalRiskScore is cli.OptionalInt with range validation.
func (p *FlagParser) OptionalRiskScore(flagName string) (*int, error) {
	v := cli.OptionalInt(p.cmd, flagName)
	if v == nil {
		return nil, nil
	}
	score, err := cli.ParseRiskScore(flagName, *v)
	if err != nil {
		return nil, err
	}
	return &score, nil
}
