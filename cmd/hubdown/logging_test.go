package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		format       string
		quiet        bool
		verbose      bool
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "default shows warnings",
			format:       "text",
			wantContains: []string{"level=WARN", "msg=warn"},
			wantExcludes: []string{"msg=debug"},
		},
		{
			name:         "verbose shows debug",
			format:       "text",
			verbose:      true,
			wantContains: []string{"msg=debug", "msg=warn"},
		},
		{
			name:         "quiet hides warnings",
			format:       "text",
			quiet:        true,
			wantContains: []string{"msg=error"},
			wantExcludes: []string{"msg=warn"},
		},
		{
			name:         "json format",
			format:       "JSON",
			wantContains: []string{`"msg":"warn"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.format, tt.quiet, tt.verbose)
			logger.Debug("debug")
			logger.Warn("warn")
			logger.Error("error")

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("log should contain %q, got %q", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("log should not contain %q, got %q", exclude, got)
				}
			}
		})
	}
}
