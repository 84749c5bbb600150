// Package engine contains the source-tree half of offlinegate. It walks the
// configured roots in lexical order, reads eligible source and header files,
// and matches their content against the registry's source-text patterns.
// Unreadable files and missing roots degrade to diagnostics; only pattern
// matches affect the result.
package engine
