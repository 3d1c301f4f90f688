// Package area applies edit operations computed against one file to a
// different, drifting version of that file.
//
// An operation's anchor line is scored against every line of the target;
// the best few become candidates. Each candidate is then judged by its
// surroundings: a window of lines (an "area") around the candidate is
// compared position by position with the window around the anchor in the
// file the operation came from. The candidate whose area scores highest
// wins. There is no guarantee the chosen spot is semantically right, only
// that it is the most similar one.
package area
