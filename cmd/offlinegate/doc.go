// Package offlinegate provides the command-line interface for the offline
// build gate. It parses flags, merges the optional config file, runs the
// source and binary scans and exits with the verdict's status.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/offlinegate/offlinegate/cmd/offlinegate"
//	func main() { offlinegate.Execute() }
package offlinegate
