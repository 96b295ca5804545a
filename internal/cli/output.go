package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// NewFormatter reads --json and --quiet from cmd and writes to its streams.
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs a successful result under the "data" key.
func (f *OutputFormatter) Success(data any) error {
	if f.JSON {
		return f.Object("data", data)
	}
	return f.prettyPrint(data)
}

// Object writes {"success": true, key: data}.
func (f *OutputFormatter) Object(key string, data any) error {
	return f.encode(map[string]any{
		"success": true,
		key:       data,
	})
}

// IDs prints one identifier per line for shell capture.
func (f *OutputFormatter) IDs(ids ...string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(f.out(), id); err != nil {
			return err
		}
	}
	return nil
}

// Printf writes human-readable output.
func (f *OutputFormatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.out(), format, args...)
}

// Println writes a human-readable line.
func (f *OutputFormatter) Println(args ...any) {
	fmt.Fprintln(f.out(), args...)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err once and returns it wrapped with its exit code. An
// CodeError keeps its code.
func (f *OutputFormatter) Fail(err error) error {
	var ee *CodeError
	if errors.As(err, &ee) {
		if !ee.reported {
			f.report(errorCodeFor(ee), err.Error(), suggestionFor(err))
			ee.reported = true
		}
		return err
	}
	f.report(ErrorCode(err), err.Error(), suggestionFor(err))
	return &CodeError{Code: ExitCodeFor(err), Err: err, reported: true}
}

// Usage reports a usage problem and returns it with ExitUsage.
func (f *OutputFormatter) Usage(err error, suggestion string) error {
	f.report("USAGE_ERROR", err.Error(), suggestion)
	return &CodeError{Code: ExitUsage, Err: err, reported: true}
}

func (f *OutputFormatter) report(code, message, suggestion string) {
	if fmtErr := f.ErrorWithSuggestion(code, message, suggestion); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
}

func errorCodeFor(ee *CodeError) string {
	switch ee.Code {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitDataErr:
		return "DATA_ERROR"
	}
	return ErrorCode(ee.Err)
}

func suggestionFor(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindAuth:
		return "Run 'scope login' to start a new session"
	case apperr.KindConnectivity:
		return "Check remote.url in the config file or SCOPE_REMOTE_URL"
	case apperr.KindImmutableColumn:
		return "Default columns can be renamed but not deleted"
	case apperr.KindDuplicateAssociation:
		return "The task is already in this sprint"
	default:
		return ""
	}
}

func (f *OutputFormatter) encode(v any) error {
	enc := sonic.ConfigStd.NewEncoder(f.out())
	return enc.Encode(v)
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}
