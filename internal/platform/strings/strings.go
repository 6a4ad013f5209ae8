// Package strings checks module names and route prefixes at wiring time
package strings

import std "strings"

// MustString returns s unless it is blank, then panics naming what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns " tickets/ " into "/tickets"; a blank or root prefix panics
func MustPrefix(s string) string {
	p := "/" + std.Trim(s, " /")
	if p == "/" {
		panic("root path is required")
	}
	return p
}
