package depgraph

import (
	"path"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph/specifier"
)

// IsTestFile reports whether a script path follows the .test/.spec or __tests__
// naming conventions.
func IsTestFile(filePath string) bool {
	if !specifier.IsScriptFile(filePath) {
		return false
	}

	fileName := path.Base(filePath)
	ext := path.Ext(fileName)
	if strings.HasSuffix(fileName, ".test"+ext) || strings.HasSuffix(fileName, ".spec"+ext) {
		return true
	}

	return strings.Contains(filePath, "/__tests__/")
}
