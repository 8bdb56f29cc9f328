// Package errors provides classified error primitives used across htmlindexer.
//
// A ClassifiedError carries a category, a severity and structured context on
// top of the wrapped cause. The CLI adapter turns any error into a one-line
// diagnostic and a process exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render listing").
//		WithContext("dir", dir).
//		Build()
package errors
