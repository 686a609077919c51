// Package kmap carries the release version of the kmap tool.
package kmap

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version reports the release recorded in VERSION.
func Version() string { return strings.TrimSpace(version) }
