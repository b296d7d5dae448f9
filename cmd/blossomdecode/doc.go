// Command blossomdecode is the CLI front door for the sparseblossom
// decoder: it reads a detector error model from a text file, builds the
// matching graph via dem.Builder, and either decodes a syndrome or
// reports the discretized graph's shape.
//
// Subcommands:
//
//	blossomdecode decode   --dem <path> --syndrome <d0,d1,...>
//	blossomdecode validate --dem <path>
//	blossomdecode version
//
// Global flags --config (a TOML file of default settings) and --verbose
// (logrus level) apply to every subcommand. Every invocation is stamped
// with a google/uuid run ID attached to its log lines.
package main
