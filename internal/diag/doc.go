// Package diag provides the diagnostic output helpers used across the CLI.
// Warnings and notes go to a caller-supplied writer (stderr in production,
// a buffer in tests) so the reconciler's user-visible output is testable.
package diag
