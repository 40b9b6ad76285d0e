// Package probe asks an installed CPython toolchain to report its own exact
// version. It locates the interpreter inside an installation directory and
// spawns it in isolated mode with a bounded timeout; the reported version
// must be a strict MAJOR.MINOR.PATCH string.
package probe
