// Package config loads the run configuration.
//
// Values are layered: the embedded defaults, then the first omnipak.toml
// found (explicit path, working directory, XDG config dir), then OMNIPAK_*
// environment variables. OMNIPAK_MERGE_AREA_SIZE maps to merge.area_size.
package config
