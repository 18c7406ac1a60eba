package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("upstream.base_url", "base URL is required")

	expected := "config error in upstream.base_url: base URL is required"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("connection refused")
	err := NewCommandError("ask", underlyingErr)

	expected := "command ask failed: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should see through CommandError")
	}
}

func TestExitError(t *testing.T) {
	underlyingErr := errors.New("upstream failed")

	if got := NewExitError(2, underlyingErr).Error(); got != "upstream failed" {
		t.Errorf("Error() = %q, want underlying message", got)
	}
	if got := NewExitError(3, nil).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q, want %q", got, "exit status 3")
	}
	if !errors.Is(NewExitError(1, underlyingErr), underlyingErr) {
		t.Error("errors.Is() should see through ExitError")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"exit error", NewExitError(2, nil), 2},
		{"wrapped exit error", fmt.Errorf("serve: %w", NewExitError(3, errors.New("x"))), 3},
		{"command error", NewCommandError("serve", errors.New("x")), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
