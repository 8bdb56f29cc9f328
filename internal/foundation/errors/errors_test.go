package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", ".html-indexer").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != ".html-indexer" {
			t.Errorf("expected context file=.html-indexer, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("run: %w", ConfigError("bad pattern").Build())

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified error to report internal category")
		}
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("disk full")
		err := WrapError(cause, CategoryFileSystem, "write index").Fatal().Build()

		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable")
		}
		if !errors.Is(err, FileSystemError("write index").Build()) {
			t.Error("expected classified errors with same category and message to match")
		}
		if !err.IsFatal() {
			t.Error("expected fatal severity")
		}
		want := "[filesystem:fatal] write index: disk full"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"a": 1, "shared": "a"}
	b := ErrorContext{"b": 2, "shared": "b"}

	merged := a.Merge(b)
	if merged["a"] != 1 || merged["b"] != 2 || merged["shared"] != "b" {
		t.Fatalf("unexpected merge result %v", merged)
	}
	if ErrorContext(nil).Merge(b)["b"] != 2 {
		t.Fatalf("nil receiver merge should return other")
	}
	if _, ok := ErrorContext(nil).Get("x"); ok {
		t.Fatalf("nil context should not contain keys")
	}
}
