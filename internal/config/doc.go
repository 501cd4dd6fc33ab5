// Package config loads codetree configuration from local and global YAML
// files. It is internal; CLI code maps flags and files into engine
// configuration.
package config
