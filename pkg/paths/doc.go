// Package paths derives the directory layout of a run from the game
// executable. The game root is three levels above the executable
// (<root>/Bin/Win64/Game.exe); game data lives under it and everything
// omnipak owns lives in <root>/omnipak unless overridden in the config.
package paths
