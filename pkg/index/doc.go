// Package index answers "which source archives may hold an original copy of
// this path?" without scanning every archive for every file a mod touches.
//
// Paths are reduced to a prefix of at most three folder segments. The index
// has two tiers: the lightning tier is a small hand-maintained table for the
// folders mods touch most, the quick tier is derived by listing every source
// archive once at startup. Both are read-only after Build.
package index
