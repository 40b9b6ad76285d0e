// Package reconcile implements the core reconciliation pipeline: collect a
// version record from every registered installation, group records by
// reported version, pick exactly one canonical installation per version
// (operator pin first, deterministic tie-break otherwise), and apply the
// resulting alias set to the shared versions directory without ever
// touching an alias owned by something else.
package reconcile
