// Package merge drives a complete build of the composite ("omni") archive.
//
// A run resolves the load order, indexes the game's source archives, then
// walks every mod archive in order. Opaque entries replace whatever the
// composite holds at their path. Text entries are diffed against the
// original game file and the resulting edits are placed into the evolving
// composite with package area, so later mods stack on top of earlier ones.
// Finally all composite entries are written into a single output archive.
//
// Mods are processed strictly in load order. An edit that cannot be placed
// at all stops the run with an errors.ErrAreaMatch naming the mod and path.
package merge
