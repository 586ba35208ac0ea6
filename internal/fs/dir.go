package fs

import (
	"context"

	"vfsh/internal/logging"
	"vfsh/internal/namespace"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	dirLogger = logging.GetLogger().WithPrefix("dir")
)

// Dir represents a directory of the mounted namespace.
type Dir struct {
	fs   *VFS
	path *VirtualPath
}

// Attr implements the Node interface, returning directory attributes.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	dirLogger.Trace("Getting attributes for directory: %q", d.path.String())

	info, err := d.fs.stat(d.path)
	if err != nil {
		return ToFuseError(err)
	}
	d.fs.fillAttr(a, info)
	return nil
}

// Setattr implements the NodeSetattrer interface. There is no permission
// model, so mode and ownership changes are accepted and ignored.
func (d *Dir) Setattr(ctx context.Context, _ *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	dirLogger.Trace("Ignoring setattr on directory: %q", d.path.String())
	return d.Attr(ctx, &resp.Attr)
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	dirLogger.Debug("Looking up %q in directory %q", name, d.path.String())
	childPath := d.path.Join(name)

	info, err := d.fs.stat(childPath)
	if err != nil {
		dirLogger.Debug("Path not found: %q", childPath.String())
		return nil, ToFuseError(err)
	}
	dirLogger.Trace("Found %s %q", info.Kind, childPath.Base())
	return d.fs.node(childPath, info), nil
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	dirLogger.Debug("Reading directory contents: %q", d.path.String())

	entries := []fuse.Dirent{
		{Name: ".", Type: fuse.DT_Dir},
		{Name: "..", Type: fuse.DT_Dir},
	}

	err := d.fs.do(func(ns *namespace.Namespace) error {
		listing, err := ns.List(d.path.String())
		if err != nil {
			return err
		}
		for _, name := range listing.Names {
			info, err := ns.Stat(d.path.Join(name).String())
			if err != nil {
				return err
			}
			entry := fuse.Dirent{Name: name, Type: fuse.DT_File}
			if info.IsDir() {
				entry.Type = fuse.DT_Dir
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		dirLogger.Warn("Failed to list %q: %v", d.path.String(), err)
		return nil, ToFuseError(err)
	}

	dirLogger.Debug("Directory %q contains %d entries", d.path.String(), len(entries))
	return entries, nil
}

// Mkdir implements the NodeMkdirer interface, creating a new directory.
func (d *Dir) Mkdir(_ context.Context, req *fuse.MkdirRequest) (fusefs.Node, error) {
	dirLogger.Info("Creating new directory %q in %q", req.Name, d.path.String())
	newPath := d.path.Join(req.Name)

	err := d.fs.do(func(ns *namespace.Namespace) error {
		return ns.MakeDirectory(newPath.String())
	})
	if err != nil {
		dirLogger.Error("Failed to create directory %q: %v", newPath.String(), err)
		return nil, ToFuseError(err)
	}

	return &Dir{fs: d.fs, path: newPath}, nil
}

// Create implements the NodeCreater interface, creating an empty file or
// truncating an existing one.
func (d *Dir) Create(_ context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fusefs.Node, fusefs.Handle, error) {
	dirLogger.Info("Creating file %q in %q", req.Name, d.path.String())
	newPath := d.path.Join(req.Name)

	err := d.fs.do(func(ns *namespace.Namespace) error {
		return ns.CreateOrTruncateFile(newPath.String())
	})
	if err != nil {
		dirLogger.Error("Failed to create file %q: %v", newPath.String(), err)
		return nil, nil, ToFuseError(err)
	}

	resp.Flags |= fuse.OpenDirectIO
	file := &File{fs: d.fs, path: newPath}
	return file, &FileHandle{file: file}, nil
}
