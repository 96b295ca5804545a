package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/scope/internal/apperr"
)

func newTestFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

func decode(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, output)
	}
	return result
}

// ============================================================================
// Success / Object
// ============================================================================

func TestOutputFormatter_Object_JSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)

	if err := f.Object("task", map[string]string{"id": "T1"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result := decode(t, out.String())
	if result["success"] != true {
		t.Error("Expected success to be true")
	}
	task, ok := result["task"].(map[string]any)
	if !ok || task["id"] != "T1" {
		t.Errorf("Expected task.id T1, got %v", result["task"])
	}
}

func TestOutputFormatter_Success(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	if err := f.Success([]int{1, 2}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := decode(t, out.String())["data"]; !ok {
		t.Error("Expected 'data' key in JSON output")
	}

	f, out, _ = newTestFormatter(false, false)
	if err := f.Success(struct{ Name string }{"scope"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "scope") {
		t.Errorf("Expected human output to contain the value, got %q", out.String())
	}
}

func TestOutputFormatter_IDs(t *testing.T) {
	f, out, _ := newTestFormatter(false, true)
	if err := f.IDs("T1", "T2"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.String() != "T1\nT2\n" {
		t.Errorf("Expected one ID per line, got %q", out.String())
	}
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	tests := []struct {
		name       string
		suggestion string
		wantKey    bool
	}{
		{"with suggestion", "try this instead", true},
		{"without suggestion", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, errOut := newTestFormatter(true, false)
			if err := f.ErrorWithSuggestion("TEST_ERROR", "something went wrong", tt.suggestion); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if errOut.Len() != 0 {
				t.Errorf("Expected nothing on stderr in JSON mode, got %q", errOut.String())
			}

			result := decode(t, out.String())
			if result["success"] != false {
				t.Error("Expected success to be false")
			}
			errData := result["error"].(map[string]any)
			if errData["code"] != "TEST_ERROR" {
				t.Errorf("Expected code TEST_ERROR, got %v", errData["code"])
			}
			if _, has := errData["suggestion"]; has != tt.wantKey {
				t.Errorf("suggestion present = %v, want %v", has, tt.wantKey)
			}
		})
	}
}

func TestOutputFormatter_ErrorWithSuggestion_HumanReadable(t *testing.T) {
	f, out, errOut := newTestFormatter(false, false)
	if err := f.ErrorWithSuggestion("X", "Unicode error: 你好", "Try again"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", out.String())
	}
	for _, want := range []string{"Error:", "你好", "Suggestion:", "Try again"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("Expected stderr to contain %q, got %q", want, errOut.String())
		}
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantJSON string
	}{
		{"not found", apperr.NotFound("task", "T9"), ExitNotFound, "NOT_FOUND"},
		{"validation", apperr.Validation("title", "title is required"), ExitValidation, "VALIDATION_ERROR"},
		{"auth", apperr.New(apperr.KindAuth, "token expired"), ExitAuth, "AUTH_ERROR"},
		{"plain", errors.New("disk full"), ExitError, "ERROR"},
		{"data", Exit(ExitDataErr, errors.New("read x: no such file")), ExitDataErr, "DATA_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newTestFormatter(true, false)
			err := f.Fail(tt.err)
			if got := ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", got, tt.wantCode)
			}
			errData := decode(t, out.String())["error"].(map[string]any)
			if errData["code"] != tt.wantJSON {
				t.Errorf("code = %v, want %s", errData["code"], tt.wantJSON)
			}
		})
	}
}

func TestOutputFormatter_Fail_ReportsOnce(t *testing.T) {
	f, _, errOut := newTestFormatter(false, false)

	err := f.Usage(errors.New("no project specified"), "Pass --project")
	err = f.Fail(err)

	if got := strings.Count(errOut.String(), "Error:"); got != 1 {
		t.Errorf("Expected the error to be printed once, got %d times:\n%s", got, errOut.String())
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("Expected ExitUsage, got %d", ExitCode(err))
	}
	if !Reported(err) {
		t.Error("Expected the error to be marked as reported")
	}
	if Reported(Exit(ExitDataErr, errors.New("bad file"))) {
		t.Error("Expected a fresh CodeError to be unreported")
	}
}

func TestExitCode_Nil(t *testing.T) {
	if ExitCode(nil) != ExitSuccess {
		t.Error("Expected ExitSuccess for a nil error")
	}
}

func TestCodeError_WrapsCause(t *testing.T) {
	cause := apperr.NotFound("task", "T9")
	err := Exit(ExitError, cause)

	var ce *CodeError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected a *CodeError, got %T", err)
	}
	if ce.Code != ExitError {
		t.Errorf("Code = %d, want %d", ce.Code, ExitError)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be reachable through Unwrap")
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if got := (&CodeError{Code: ExitUsage}).Error(); got != "exit status 2" {
		t.Errorf("Error() without cause = %q", got)
	}
}
