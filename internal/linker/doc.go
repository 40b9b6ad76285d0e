// Package linker owns write access to version alias symlinks in the shared
// versions directory. Every alias mutation in the plugin goes through
// Manager.Link or Manager.Unlink, so the ownership rule (system-owned versus
// foreign alias) is enforced in exactly one place.
package linker
