// Package policy holds the forbidden-pattern registry shared by the binary and
// source scanners. A Registry is built once per run and never mutated; callers
// that need extra patterns derive a new Registry with With.
package policy
