package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Root", KeyRoot, ".", Root(".")},
		{"Path", KeyPath, "docs/a.md", Path("docs/a.md")},
		{"Dir", KeyDir, "docs", Dir("docs")},
		{"File", KeyFile, "a.md", File("a.md")},
		{"Output", KeyOutput, "docs/index.html", Output("docs/index.html")},
		{"Outcome", KeyOutcome, "written", Outcome("written")},
		{"Config", KeyConfig, ".html-indexer", Config(".html-indexer")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %q, got %q", tc.name, tc.attrVal, got)
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", a)
	}
	if a := Children(3); a.Value.Int64() != 3 {
		t.Fatalf("expected 3 children, got %d", a.Value.Int64())
	}
	if a := DryRun(true); !a.Value.Bool() {
		t.Fatalf("expected dry_run true")
	}
}
