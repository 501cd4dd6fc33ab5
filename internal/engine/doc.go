// Package engine runs a complete project analysis. It detects the project
// type, walks the tree, gathers statistics and assembles the report handed
// to renderers. This package is internal; external consumers should use the
// stable facade in pkg/core.
package engine
