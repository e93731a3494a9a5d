// Package resolve maps import specifiers to files in a virtual tree.
package resolve

import (
	"path"
	"strings"
)

// DefaultExtensions is the probing order used when a specifier has no exact match.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".json", ".css", ".scss"}

// Tree is the read side of the file tree the resolver probes.
type Tree interface {
	IsFile(p string) bool
	IsFolder(p string) bool
	FilePaths() []string
}

// Resolver resolves intra-project specifiers against a Tree.
type Resolver struct {
	tree       Tree
	extensions []string
}

// New returns a resolver probing the given extensions, or DefaultExtensions when none are given.
func New(tree Tree, extensions ...string) *Resolver {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Resolver{tree: tree, extensions: append([]string(nil), extensions...)}
}

// Extensions returns the probing order.
func (r *Resolver) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// IsIntraProject reports whether specifier names a project path rather than a package.
func IsIntraProject(specifier string) bool {
	return strings.HasPrefix(specifier, "./") ||
		strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/")
}

// Base returns the path a specifier points at before any probing. The result is
// empty for specifiers that are not intra-project. A specifier ending in "/" names
// a folder, and its base keeps the trailing slash so only the folder's index is probed.
func Base(fromPath, specifier string) string {
	var base string
	switch {
	case strings.HasPrefix(specifier, "/"):
		base = path.Clean(specifier)
	case IsIntraProject(specifier):
		base = path.Join(path.Dir(fromPath), specifier)
	default:
		return ""
	}
	if strings.HasSuffix(specifier, "/") && base != "/" {
		base += "/"
	}
	return base
}

func isFolderBase(base string) bool {
	return strings.HasSuffix(base, "/")
}

// Resolve returns the file that specifier, imported from fromPath, refers to.
func (r *Resolver) Resolve(fromPath, specifier string) (string, bool) {
	base := Base(fromPath, specifier)
	if base == "" {
		return "", false
	}
	return r.ResolveBase(base)
}

// ResolveBase probes a computed base path: the exact file, then each extension,
// then the folder's index file, and finally a case-insensitive match of any of those.
// Folder bases skip the file probes.
func (r *Resolver) ResolveBase(base string) (string, bool) {
	if !isFolderBase(base) {
		if r.tree.IsFile(base) {
			return base, true
		}
		for _, ext := range r.extensions {
			if candidate := base + ext; r.tree.IsFile(candidate) {
				return candidate, true
			}
		}
	}

	if dir := folderPath(base); r.tree.IsFolder(dir) {
		for _, ext := range r.extensions {
			if candidate := path.Join(dir, "index"+ext); r.tree.IsFile(candidate) {
				return candidate, true
			}
		}
	}

	return r.resolveFold(base)
}

// Candidates lists every path ResolveBase may match for base, in probing order.
func (r *Resolver) Candidates(base string) []string {
	candidates := make([]string, 0, 1+2*len(r.extensions))
	if !isFolderBase(base) {
		candidates = append(candidates, base)
		for _, ext := range r.extensions {
			candidates = append(candidates, base+ext)
		}
	}
	dir := folderPath(base)
	for _, ext := range r.extensions {
		candidates = append(candidates, path.Join(dir, "index"+ext))
	}
	return candidates
}

func folderPath(base string) string {
	if base == "/" {
		return base
	}
	return strings.TrimSuffix(base, "/")
}

// resolveFold is the fallback for imports whose casing differs from the stored path.
func (r *Resolver) resolveFold(base string) (string, bool) {
	folded := make(map[string]string)
	for _, p := range r.tree.FilePaths() {
		key := strings.ToLower(p)
		if _, exists := folded[key]; !exists {
			folded[key] = p
		}
	}

	for _, candidate := range r.Candidates(base) {
		if actual, ok := folded[strings.ToLower(candidate)]; ok {
			return actual, true
		}
	}
	return "", false
}

// Relative returns a "./" or "../" specifier leading from the folder fromDir to target.
func Relative(fromDir, target string) string {
	fromParts := splitPath(fromDir)
	toParts := splitPath(target)

	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}

	up := len(fromParts) - common
	down := strings.Join(toParts[common:], "/")

	switch {
	case up == 0 && down != "":
		return "./" + down
	case up > 0:
		return strings.Repeat("../", up) + down
	default:
		return "./"
	}
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
