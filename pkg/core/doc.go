// Package core provides a small, stable facade over codetree's internal
// engine for external integrations. It re-exports a narrow API surface so
// other tools can depend on a stable import path without importing internal
// packages.
//
// Example:
//
//	rep, err := core.Analyze(ctx, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, rep)
package core
