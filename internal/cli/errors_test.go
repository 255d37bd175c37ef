package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/launch"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"child exit", &launch.ExitError{Code: 3}, 3},
		{"wrapped child exit", stageErr(StageRun, &launch.ExitError{Code: 42}), 42},
		{"config failure", stageErr(StageConfig, errors.New("boom")), 1},
		{"plain error", errors.New("boom"), 1},
		{"interrupted download", stageErr(StageInstall, fmt.Errorf("fetch: %w", context.Canceled)), 130},
		{"interrupted config", stageErr(StageConfig, context.Canceled), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"stage error", stageErr(StageInstall, fmt.Errorf("fetch: %w", errors.New("status 404"))), "binwrap: install: fetch: status 404\n"},
		{"child exit is silent", stageErr(StageRun, &launch.ExitError{Code: 3}), ""},
		{"abnormal exit is silent", &launch.AbnormalExitError{}, ""},
		{"interrupt is silent", stageErr(StageInstall, fmt.Errorf("fetch: %w", context.Canceled)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Report(&buf, "binwrap", tt.err)
			if buf.String() != tt.want {
				t.Errorf("Report() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"loud", false},
	}

	for _, tt := range tests {
		if _, ok := parseLevel(tt.in); ok != tt.wantOK {
			t.Errorf("parseLevel(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
	}
}
