// Package config loads the optional offlinegate YAML file. Command-line flags
// take precedence over the file, and the file over built-in defaults; the CLI
// performs the merge.
package config
