// Package symdump runs external symbol-dump tools (nm, objdump) as scanner
// extractors. Tools are looked up on $PATH unless an explicit path is given
// and are only ever asked to list symbols, never to link or execute the
// inspected binary.
package symdump
