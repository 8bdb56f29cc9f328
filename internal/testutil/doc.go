// Package testutil contains helpers shared by package tests: fixture tree
// builders, a fault-injecting filesystem and assertions on generated listings.
package testutil

const (
	// testDirPermissions is the permission mode for creating test directories.
	testDirPermissions = 0o750

	// testFilePermissions is the permission mode for creating test files.
	testFilePermissions = 0o600
)
