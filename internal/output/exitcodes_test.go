package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitConflict", ExitConflict, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantMsg  string
	}{
		{
			name:     "user error",
			err:      NewUserError("unknown treeish: bogus"),
			wantCode: ExitUserError,
			wantMsg:  "unknown treeish: bogus",
		},
		{
			name:     "system error",
			err:      NewSystemError("git archive failed"),
			wantCode: ExitSystemError,
			wantMsg:  "git archive failed",
		},
		{
			name:     "conflict error",
			err:      NewConflictError("output file already exists"),
			wantCode: ExitConflict,
			wantMsg:  "output file already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	cause := errors.New("exit status 2")
	err := NewSystemErrorWithCause("compressor failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	wrapped := fmt.Errorf("assembling archive: %w", err)
	var exitErr *ExitError
	if !errors.As(wrapped, &exitErr) {
		t.Fatal("errors.As should find the ExitError through wrapping")
	}
	if exitErr.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystemError)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"user error", NewUserError("bad args"), ExitUserError},
		{"system error", NewSystemError("git failed"), ExitSystemError},
		{"conflict error", NewConflictError("exists"), ExitConflict},
		{"untyped error", errors.New("plain"), ExitUserError},
		{"wrapped system error", fmt.Errorf("outer: %w", NewSystemError("inner")), ExitSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
