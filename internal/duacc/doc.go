// Package duacc implements the parallel directory-accounting engine: a
// worker pool of accountants that enumerate and stat directory trees
// concurrently, a coordinator that detects when the recursive work has
// quiesced, and a post-traversal aggregator that rolls per-directory
// tallies up to ancestors subject to depth and threshold filters.
package duacc
