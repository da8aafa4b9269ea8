package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"CacheKey", KeyCacheKey, "abc", CacheKey("abc")},
		{"Stage", KeyStage, "emoji", Stage("emoji")},
		{"File", KeyFile, "doc.md", File("doc.md")},
		{"Output", KeyOutput, "doc.html", Output("doc.html")},
		{"Driver", KeyDriver, "sqlite", Driver("sqlite")},
		{"Outcome", KeyOutcome, "hit", Outcome("hit")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Errorf("%s: key = %s, want %s", tc.name, tc.attr.Key, tc.attrKey)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Errorf("%s: value = %s, want %s", tc.name, got, tc.attrVal)
		}
	}
}

// TestNumericHelpers verifies keys for numeric helpers.
func TestNumericHelpers(t *testing.T) {
	t.Parallel()

	if v := DurationMS(12.5); v.Key != KeyDurationMS || v.Value.Float64() != 12.5 {
		t.Errorf("DurationMS = %v", v)
	}
	if v := Workers(4); v.Key != KeyWorkers || v.Value.Int64() != 4 {
		t.Errorf("Workers = %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	t.Parallel()

	if attr := Error(nil); attr.Key != KeyError || attr.Value.String() != "" {
		t.Errorf("Error(nil) = %v", attr)
	}
	if attr := Error(errors.New("boom")); attr.Value.String() != "boom" {
		t.Errorf("Error(boom) = %v", attr)
	}
}
