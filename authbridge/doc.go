// Package authbridge turns a callback-driven permission surface into a single
// awaitable result. At most one request waits at a time; a new request
// supersedes the pending one.
package authbridge
