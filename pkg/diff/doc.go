// Package diff turns an original file and a modified copy into an edit
// script of single-line additions and removals.
//
// Alignment uses go-difflib's SequenceMatcher (Ratcliff/Obershelp). Every
// operation records the text of an anchor line and where that anchor sits,
// so package area can later find the matching spot in a third file whose
// line numbers have drifted. Anchors are plain line text and need not be
// unique.
//
// The package also provides the 0-100 similarity ratio used for fuzzy line
// matching.
package diff
