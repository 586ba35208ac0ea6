package namespace

import (
	"sort"
)

// Kind tags the two node variants.
type Kind uint8

const (
	// KindDirectory is a node holding named children
	KindDirectory Kind = iota
	// KindFile is a node holding a single string of content
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// node is owned by exactly one parent directory (the root by the Namespace).
// children is nil for files; content is unused for directories.
type node struct {
	kind     Kind
	children map[string]*node
	content  string
}

func newDirectory() *node {
	return &node{kind: KindDirectory, children: make(map[string]*node)}
}

func newFile(content string) *node {
	return &node{kind: KindFile, content: content}
}

func (n *node) isDir() bool {
	return n.kind == KindDirectory
}

// child returns the named child of a directory. Files have no children.
func (n *node) child(name string) (*node, bool) {
	if !n.isDir() {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// names returns child names in lexical order.
func (n *node) names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info describes a resolved node without exposing it.
type Info struct {
	Name string
	Kind Kind
	// Size is the content length for files and the child count for directories.
	Size int
}

// IsDir reports whether the node is a directory.
func (i Info) IsDir() bool {
	return i.Kind == KindDirectory
}

func infoOf(name string, n *node) Info {
	if n.isDir() {
		return Info{Name: name, Kind: KindDirectory, Size: len(n.children)}
	}
	return Info{Name: name, Kind: KindFile, Size: len(n.content)}
}
