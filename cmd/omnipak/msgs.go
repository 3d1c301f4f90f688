package omnipak

// Command descriptions
const (
	MsgRootShort = "Merge game mods into a single composite archive"
	MsgRootLong  = `omnipak merges every mod archive in the mods folder into one composite
archive that the game loads last. Text files touched by several mods are
merged line by line against the original game files, so mods that edit
different parts of the same file no longer overwrite each other.`

	MsgMergeShort = "Build the composite archive from all mods"
	MsgMergeLong  = `Merge reads the load order, indexes the game's archives and applies every
mod in order. The result is written to the data folder as a single archive.

Binary files (textures, sounds, ...) are copied; the last mod in the load
order wins. Text files are diffed against the original and the edits are
placed into the merged file by context.`
	MsgMergeExample = `  omnipak merge                 # Build and write the composite archive
  omnipak merge --dry-run       # Run the whole merge without writing
  omnipak merge --no-wait       # Exit without waiting for Enter`

	MsgOrderShort      = "Inspect or regenerate the load order"
	MsgOrderListShort  = "Print the resolved load order"
	MsgOrderResetShort = "Regenerate the load order file from the mods folder"

	MsgIndexShort       = "Inspect the search index"
	MsgIndexLookupShort = "Show which archives may hold a file"

	MsgGenConfigShort   = "Generate a starter configuration file"
	MsgGenConfigLong    = "Output the default configuration to stdout, or write it to the user config directory with -w."
	MsgGenConfigExample = `  omnipak genconfig --executable "C:/Games/KCD/Bin/Win64/Game.exe"
  omnipak genconfig --executable ./Bin/Win64/Game.exe -w`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"
)

// Flag descriptions
const (
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default ./omnipak.toml, then the user config directory)"
	MsgFlagFormat     = "Output format: auto, term or text"
	MsgFlagDryRun     = "Run the merge without writing the output archive"
	MsgFlagNoWait     = "Do not wait for Enter before exiting"
	MsgFlagNoReports  = "Do not write diff reports"
	MsgFlagExecutable = "Path to the game executable"
	MsgFlagWrite      = "Write the config file instead of printing it"
	MsgFlagForce      = "Overwrite an existing config file"
)

// Output messages
const (
	MsgLoadOrderCreated = "Created load order file %s\n"
	MsgMissingMod       = "listed in load order but not found: %s"
	MsgUnlistedMod      = "not in load order, merged first: %s"
	MsgDuplicateMod     = "listed more than once: %s"
	MsgFailedMod        = "could not be read, skipped: %s"
	MsgInvalidXML       = "merged XML no longer parses: %s"
	MsgSkippedSource    = "game archive could not be indexed: %s"
	MsgMergeStats       = "%d mods, %d files: %d merged, %d new, %d copied\n"
	MsgMergeSuccess     = "Composite archive written to %s"
	MsgDryRunSuccess    = "Dry run complete, nothing written"
	MsgElapsed          = "Finished in %s\n"
	MsgPressEnter       = "Press Enter to exit..."
	MsgNoMods           = "No mods found in %s\n"
	MsgConfigWritten    = "Wrote %s\n"
	MsgConfigExists     = "config file %s already exists, use --force to overwrite"
	MsgLookupNone       = "%s: no archive known, treated as a new file\n"
	MsgLookupTier       = "%s (%s tier):\n"
	MsgLookupPrefixes   = "directory prefixes indexed: %d\n"
)
