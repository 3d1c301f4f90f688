// Package filesystem provides filesystem implementations for omnipak.
//
// Both the OS and the in-memory implementation are backed by afero, so the
// load order and report code can be tested without touching disk.
package filesystem
