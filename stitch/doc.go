// Package stitch rebuilds sessions from the flat, unordered samples native
// health stores return: sleep stages become sleep sessions and heart-rate
// samples become heart-rate series.
package stitch
