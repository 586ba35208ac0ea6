package fs

import (
	"context"
	"syscall"

	"vfsh/internal/logging"
	"vfsh/internal/namespace"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	fileLogger = logging.GetLogger().WithPrefix("file")
)

// File represents a file of the mounted namespace. Its content is a single
// scalar that can only be emptied, never written.
type File struct {
	fs   *VFS
	path *VirtualPath
}

// Attr implements the Node interface, returning the file's attributes.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	fileLogger.Trace("Getting attributes for file: %q", f.path.String())

	info, err := f.fs.stat(f.path)
	if err != nil {
		fileLogger.Warn("File not found: %q", f.path.String())
		return ToFuseError(err)
	}
	if info.IsDir() {
		// Replaced by a directory since lookup
		fileLogger.Debug("File %q is now a directory", f.path.String())
		return syscall.ENOENT
	}
	f.fs.fillAttr(a, info)
	return nil
}

// truncate empties the file through the namespace.
func (f *File) truncate() error {
	return f.fs.do(func(ns *namespace.Namespace) error {
		return ns.CreateOrTruncateFile(f.path.String())
	})
}

// Setattr implements the NodeSetattrer interface. Truncating to zero is the
// only size change allowed.
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	if req.Valid.Size() {
		if req.Size != 0 {
			fileLogger.Warn("Refusing to resize %q to %d bytes", f.path.String(), req.Size)
			return syscall.EPERM
		}
		fileLogger.Debug("Truncating file %q", f.path.String())
		if err := f.truncate(); err != nil {
			return ToFuseError(err)
		}
	}
	return f.Attr(ctx, &resp.Attr)
}

// Open implements the NodeOpener interface. Opening for write is allowed only
// together with truncation.
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	fileLogger.Debug("Opening file %q with flags %v", f.path.String(), req.Flags)

	if !req.Flags.IsReadOnly() {
		if req.Flags&fuse.OpenTruncate == 0 {
			fileLogger.Warn("Attempted write access without truncate: %q", f.path.String())
			return nil, syscall.EPERM
		}
		if err := f.truncate(); err != nil {
			return nil, ToFuseError(err)
		}
	}

	resp.Flags |= fuse.OpenDirectIO
	return &FileHandle{file: f}, nil
}

// FileHandle represents an open file. Reads always see the current content.
type FileHandle struct {
	file *File
}

// ReadAll implements the HandleReadAller interface, returning the whole content.
func (fh *FileHandle) ReadAll(_ context.Context) ([]byte, error) {
	var content namespace.Content
	err := fh.file.fs.do(func(ns *namespace.Namespace) error {
		var readErr error
		content, readErr = ns.ReadFile(fh.file.path.String())
		return readErr
	})
	if err != nil {
		fileLogger.Error("Failed to read %q: %v", fh.file.path.String(), err)
		return nil, ToFuseError(err)
	}
	if content.Directory {
		return nil, syscall.EISDIR
	}

	fileLogger.Trace("Read %d bytes from %q", len(content.Text), fh.file.path.String())
	return []byte(content.Text), nil
}

// Write implements the HandleWriter interface. Content is set only by
// truncation, so any data is rejected.
func (fh *FileHandle) Write(_ context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	if len(req.Data) == 0 {
		return nil
	}
	fileLogger.Warn("Rejected %d-byte write to %q", len(req.Data), fh.file.path.String())
	return syscall.EPERM
}
