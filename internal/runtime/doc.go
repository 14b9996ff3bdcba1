// Package runtime provides the execution context for carve commands.
//
// It bundles the dependencies every command needs: the git runner for the
// current repository, the logger, the effective configuration and the
// repository root path.
package runtime
