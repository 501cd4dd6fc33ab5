// Package codetree provides the command-line interface for codetree. The
// root command analyzes a directory and writes a report; subcommands manage
// configuration and run history.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/codetree/codetree/cmd/codetree"
//	func main() { codetree.Execute() }
package codetree
