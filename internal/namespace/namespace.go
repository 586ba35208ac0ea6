package namespace

import (
	"strings"

	"vfsh/internal/logging"
)

var (
	nsLogger = logging.GetLogger().WithPrefix("namespace")
)

const (
	// EmptyMarker is how an empty directory listing is shown
	EmptyMarker = "(empty)"
	// DirectoryMarker is shown in place of content when cat targets a directory
	DirectoryMarker = "(directory)"
)

// ConflictPolicy decides what mkdir and touch do when a file occupies a
// segment that has to be a directory.
type ConflictPolicy int

const (
	// ConflictOverwrite replaces the file with an empty directory.
	ConflictOverwrite ConflictPolicy = iota
	// ConflictFail leaves the tree untouched and returns ErrConflict.
	ConflictFail
)

type options struct {
	conflict        ConflictPolicy
	normalizeCursor bool
}

// Option configures a Namespace.
type Option func(*options)

// WithConflictPolicy selects how file/directory collisions are handled.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(o *options) {
		o.conflict = p
	}
}

// WithNormalizedCursor makes cd store the segment-normalized absolute path
// instead of the cursor and argument joined as text.
func WithNormalizedCursor() Option {
	return func(o *options) {
		o.normalizeCursor = true
	}
}

// Namespace owns a directory tree and the cursor used to resolve relative paths.
// It is not safe for concurrent use; callers serialize access.
type Namespace struct {
	root   *node
	cursor string
	opts   options
}

// Listing is the result of List.
type Listing struct {
	Names []string
}

// Empty reports whether the listed directory has no children.
func (l Listing) Empty() bool {
	return len(l.Names) == 0
}

// String renders the names separated by two spaces, or EmptyMarker.
func (l Listing) String() string {
	if l.Empty() {
		return EmptyMarker
	}
	return strings.Join(l.Names, "  ")
}

// Content is the result of ReadFile: file text, or a marker for directories.
type Content struct {
	Text      string
	Directory bool
}

// String renders the content verbatim, or DirectoryMarker.
func (c Content) String() string {
	if c.Directory {
		return DirectoryMarker
	}
	return c.Text
}

// New creates a namespace holding only the root directory, with the cursor at "/".
func New(opts ...Option) *Namespace {
	ns := &Namespace{
		root:   newDirectory(),
		cursor: separator,
	}
	for _, opt := range opts {
		opt(&ns.opts)
	}
	nsLogger.Debug("Created namespace (conflict policy %d, normalized cursor %v)",
		ns.opts.conflict, ns.opts.normalizeCursor)
	return ns
}

// Cursor returns the current directory path.
func (ns *Namespace) Cursor() string {
	return ns.cursor
}

// absolute returns p unchanged if it is absolute, otherwise the cursor and p joined.
func (ns *Namespace) absolute(p string) string {
	if isAbs(p) {
		return p
	}
	return joinCursor(ns.cursor, p)
}

// walk follows every segment of p from the root. Each step must land on an
// existing child of a directory; the final node may be of either kind.
func (ns *Namespace) walk(p string) (*node, string, bool) {
	full := ns.absolute(p)
	current := ns.root
	name := separator
	for _, segment := range splitPath(full) {
		next, ok := current.child(segment)
		if !ok {
			nsLogger.Trace("Resolve %q: missing segment %q", full, segment)
			return nil, "", false
		}
		current, name = next, segment
	}
	nsLogger.Trace("Resolved %q to %s", full, current.kind)
	return current, name, true
}

// resolveDir maps p to an existing directory.
func (ns *Namespace) resolveDir(op, p string) (*node, error) {
	n, _, ok := ns.walk(p)
	if !ok || !n.isDir() {
		return nil, newError(op, p, ErrNotFound)
	}
	return n, nil
}

// start returns the directory that mkdir and touch walk from.
func (ns *Namespace) start(op, p string) (*node, error) {
	from := ns.cursor
	if isAbs(p) {
		from = separator
	}
	dir, err := ns.resolveDir(op, from)
	if err != nil {
		return nil, newError(op, p, ErrNotFound)
	}
	return dir, nil
}

// checkConflict reports the first existing file among segments, walking from dir.
func checkConflict(dir *node, segments []string) (string, bool) {
	current := dir
	for i, segment := range segments {
		next, ok := current.child(segment)
		if !ok {
			return "", false
		}
		if !next.isDir() {
			return strings.Join(segments[:i+1], separator), true
		}
		current = next
	}
	return "", false
}

// lookupFrom follows segments from dir without creating anything.
func lookupFrom(dir *node, segments []string) (*node, bool) {
	current := dir
	for _, segment := range segments {
		next, ok := current.child(segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// ensureDirs walks segments from dir, creating missing directories and
// replacing files, and returns the last directory reached.
func ensureDirs(dir *node, segments []string) *node {
	current := dir
	for _, segment := range segments {
		next, ok := current.children[segment]
		if !ok || !next.isDir() {
			if ok {
				nsLogger.Warn("Replacing file %q with a directory", segment)
			}
			next = newDirectory()
			current.children[segment] = next
		}
		current = next
	}
	return current
}

// List returns the names in the directory at p, or the cursor directory when p is empty.
func (ns *Namespace) List(p string) (Listing, error) {
	if p == "" {
		p = ns.cursor
	}
	dir, err := ns.resolveDir(OpList, p)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Names: dir.names()}, nil
}

// ChangeDirectory moves the cursor to the directory at p. The cursor is left
// unchanged on failure.
func (ns *Namespace) ChangeDirectory(p string) error {
	if _, err := ns.resolveDir(OpChangeDirectory, p); err != nil {
		return err
	}

	next := ns.absolute(p)
	if ns.opts.normalizeCursor {
		next = normalize(next)
	}
	nsLogger.Debug("Cursor %q -> %q", ns.cursor, next)
	ns.cursor = next
	return nil
}

// MakeDirectory creates every missing directory along p. Existing directories
// are reused, so repeating the call changes nothing.
func (ns *Namespace) MakeDirectory(p string) error {
	dir, err := ns.start(OpMakeDirectory, p)
	if err != nil {
		return err
	}

	segments := splitPath(p)
	if ns.opts.conflict == ConflictFail {
		if at, found := checkConflict(dir, segments); found {
			nsLogger.Debug("mkdir %q blocked by file at %q", p, at)
			return newError(OpMakeDirectory, p, ErrConflict)
		}
	}

	ensureDirs(dir, segments)
	nsLogger.Debug("Made directory %q", p)
	return nil
}

// CreateOrTruncateFile sets the final segment of p to an empty file, replacing
// whatever was there. Missing parents are created as by MakeDirectory.
func (ns *Namespace) CreateOrTruncateFile(p string) error {
	dir, err := ns.start(OpCreateFile, p)
	if err != nil {
		return err
	}

	segments := splitPath(p)
	if len(segments) == 0 {
		return newError(OpCreateFile, p, ErrInvalidPath)
	}
	parents, leaf := segments[:len(segments)-1], segments[len(segments)-1]

	if ns.opts.conflict == ConflictFail {
		if at, found := checkConflict(dir, parents); found {
			nsLogger.Debug("touch %q blocked by file at %q", p, at)
			return newError(OpCreateFile, p, ErrConflict)
		}
		if existing, ok := lookupFrom(dir, segments); ok && existing.isDir() {
			nsLogger.Debug("touch %q would replace a directory", p)
			return newError(OpCreateFile, p, ErrIsDirectory)
		}
	}

	parent := ensureDirs(dir, parents)
	parent.children[leaf] = newFile("")
	nsLogger.Debug("Created file %q", p)
	return nil
}

// ReadFile returns the content of the file at p. A directory at p yields a
// Content with Directory set instead of an error.
func (ns *Namespace) ReadFile(p string) (Content, error) {
	parentPath, leaf := splitLeaf(ns.cursor, p)
	parent, _, ok := ns.walk(parentPath)
	if !ok || !parent.isDir() {
		return Content{}, newError(OpReadFile, p, ErrNotFound)
	}

	n, ok := parent.children[leaf]
	if !ok {
		return Content{}, newError(OpReadFile, p, ErrNotFound)
	}
	if n.isDir() {
		return Content{Directory: true}, nil
	}
	return Content{Text: n.content}, nil
}

// Stat describes the node at p, which may be a file or a directory.
func (ns *Namespace) Stat(p string) (Info, error) {
	n, name, ok := ns.walk(p)
	if !ok {
		return Info{}, newError(OpStat, p, ErrNotFound)
	}
	return infoOf(name, n), nil
}
