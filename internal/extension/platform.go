package extension

import (
	"path/filepath"
	"runtime"
	"strings"
)

// exeSuffix is the executable file suffix for the current build target.
var exeSuffix = suffixFor(runtime.GOOS)

func suffixFor(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

// matchesBinaryName reports whether a file name follows the extension
// binary convention. On platforms whose executable suffix is empty, any
// file extension disqualifies the entry, so leftovers like just-foo.tmp
// are not mistaken for extensions.
func matchesBinaryName(name string) bool {
	if !strings.HasPrefix(name, Prefix) {
		return false
	}
	if exeSuffix == "" {
		return filepath.Ext(name) == ""
	}
	return strings.HasSuffix(name, exeSuffix)
}
