// Package uv wraps the uv binary for the operations the plugin delegates:
// installing and uninstalling CPython builds, and discovering the directory
// uv keeps them in. That directory is the provenance root: an alias whose
// target lies under it is owned by this plugin.
package uv
