// Package engine implements the bootstrap and extension-install procedures
// behind the public nbenv API: sequential steps with two-tier outcomes
// (fatal step errors versus per-item failures that are recorded and
// skipped past).
package engine
