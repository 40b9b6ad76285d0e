// Package pyenv locates the host pyenv installation and wraps the two
// host-side contracts the plugin depends on: the shared versions directory
// under $PYENV_ROOT, and the `pyenv rehash` shim-cache invalidation hook
// that must run after every refresh.
package pyenv
