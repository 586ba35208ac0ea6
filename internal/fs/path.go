package fs

import (
	"path"
	"strings"

	"vfsh/internal/logging"
)

var (
	pathLogger = logging.GetLogger().WithPrefix("path")
)

// VirtualPath is the absolute namespace path of a mounted node. The adapter
// always addresses the namespace with absolute paths so the shell cursor
// never affects what the mount sees.
type VirtualPath struct {
	// always starts with /
	path string
}

// NewVirtualPath creates a new VirtualPath instance.
// It cleans the path and ensures it's absolute.
func NewVirtualPath(p string) *VirtualPath {
	cleaned := path.Clean("/" + strings.TrimPrefix(p, "/"))
	pathLogger.Trace("Creating new virtual path: %q -> %q", p, cleaned)
	return &VirtualPath{path: cleaned}
}

// String returns the string representation of the path
func (vp *VirtualPath) String() string {
	return vp.path
}

// Join returns the path of the named child.
func (vp *VirtualPath) Join(name string) *VirtualPath {
	if vp.IsRoot() {
		return &VirtualPath{path: "/" + name}
	}
	return &VirtualPath{path: vp.path + "/" + name}
}

// Base returns the last element of the path
func (vp *VirtualPath) Base() string {
	return path.Base(vp.path)
}

// IsRoot returns true if this is the root virtual path "/"
func (vp *VirtualPath) IsRoot() bool {
	return vp.path == "/"
}
