package main

import "github.com/codetree/codetree/cmd/codetree"

func main() { codetree.Execute() }
