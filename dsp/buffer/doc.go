// Package buffer provides a reusable interleaved stereo buffer type and
// pool for allocation-friendly block processing. All DSP functions accept
// raw []float64 slices; Buffer is an optional convenience that helps
// callers manage allocation and channel interleaving in hot paths.
package buffer
