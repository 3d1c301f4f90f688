// Package testutil provides fixtures for testing omnipak components.
//
// Game lays out a throwaway game installation on the real filesystem
// (<root>/Bin/Win64/Game.exe, <root>/Data, <root>/omnipak/mods) and writes
// archives into it with the regular pak writer, so tests exercise the same
// decoder the tool uses on real files.
package testutil
