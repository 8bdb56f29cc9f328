package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyOutcome    = "outcome"
	KeyChildren   = "children"
	KeyConfig     = "config"
	KeyPredicate  = "predicate"
	KeyDurationMS = "duration_ms"
	KeyDryRun     = "dry_run"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Children(n int) slog.Attr        { return slog.Int(KeyChildren, n) }
func Config(p string) slog.Attr       { return slog.String(KeyConfig, p) }
func Predicate(k string) slog.Attr    { return slog.String(KeyPredicate, k) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func DryRun(b bool) slog.Attr         { return slog.Bool(KeyDryRun, b) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
