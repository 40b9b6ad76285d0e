// Package override persists operator pins that select the canonical
// installation for a version alias. The store is a flat tab-delimited file,
// one "alias<TAB>target" line per pin, replaced atomically on every write so
// a concurrent reader never observes a half-written file.
package override
