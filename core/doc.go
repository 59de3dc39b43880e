// Package core contains the health facade, the platform adapter contracts and
// the orchestration that ties records, stitching and authorization together.
// Platform adapters depend on this package; core never depends on a specific
// adapter.
package core
