package fs

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"vfsh/internal/logging"
	"vfsh/internal/namespace"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	vfsLogger = logging.GetLogger().WithPrefix("vfs")
)

// Kernel-facing operations served by each node type.
var (
	_ fusefs.FS                 = (*VFS)(nil)
	_ fusefs.NodeStringLookuper = (*Dir)(nil)
	_ fusefs.HandleReadDirAller = (*Dir)(nil)
	_ fusefs.NodeMkdirer        = (*Dir)(nil)
	_ fusefs.NodeCreater        = (*Dir)(nil)
	_ fusefs.NodeSetattrer      = (*Dir)(nil)
	_ fusefs.NodeOpener         = (*File)(nil)
	_ fusefs.NodeSetattrer      = (*File)(nil)
	_ fusefs.HandleReadAller    = (*FileHandle)(nil)
	_ fusefs.HandleWriter       = (*FileHandle)(nil)
)

// VFS serves a namespace over FUSE. FUSE requests arrive concurrently while
// the namespace is single-threaded, so every call into it holds mu.
type VFS struct {
	ns    *namespace.Namespace
	conn  *fuse.Conn // FUSE connection
	uid   uint32     // User ID reported for every node
	gid   uint32     // Group ID reported for every node
	mu    sync.Mutex // Serializes namespace access
	done  chan error // Receives the Serve result
	mtime time.Time  // Reported as the modification time of every node
}

// NewVFS wraps ns for mounting.
func NewVFS(ns *namespace.Namespace) *VFS {
	vfsLogger.Info("Creating new virtual filesystem")

	uid := ownerID("PUID", os.Getuid())
	gid := ownerID("PGID", os.Getgid())

	return &VFS{
		ns:    ns,
		uid:   uid,
		gid:   gid,
		mtime: time.Now(),
	}
}

// ownerID returns the numeric ID in the named environment variable, or
// fallback when it is unset or invalid. Negative fallbacks (no such ID on
// this platform) become 0.
func ownerID(env string, fallback int) uint32 {
	if raw := os.Getenv(env); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			vfsLogger.Debug("Using %s from environment: %d", env, id)
			return uint32(id)
		}
		vfsLogger.Warn("Ignoring invalid %s %q: %v", env, raw, err)
	}
	return uint32(max(fallback, 0))
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (vfs *VFS) Root() (fusefs.Node, error) {
	vfsLogger.Trace("Getting root directory node")
	return &Dir{
		fs:   vfs,
		path: NewVirtualPath("/"),
	}, nil
}

// do runs fn with exclusive access to the namespace.
func (vfs *VFS) do(fn func(ns *namespace.Namespace) error) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()
	return fn(vfs.ns)
}

// stat returns the info for p under the namespace lock.
func (vfs *VFS) stat(p *VirtualPath) (namespace.Info, error) {
	var info namespace.Info
	err := vfs.do(func(ns *namespace.Namespace) error {
		var statErr error
		info, statErr = ns.Stat(p.String())
		return statErr
	})
	return info, err
}

// node builds the FUSE node for p according to its kind.
func (vfs *VFS) node(p *VirtualPath, info namespace.Info) fusefs.Node {
	if info.IsDir() {
		return &Dir{fs: vfs, path: p}
	}
	return &File{fs: vfs, path: p}
}

func (vfs *VFS) fillAttr(a *fuse.Attr, info namespace.Info) {
	if info.IsDir() {
		a.Mode = os.ModeDir | 0755
	} else {
		a.Mode = 0644
		a.Size = uint64(max(info.Size, 0))
		a.Blocks = (a.Size + 511) / 512
	}
	a.Uid = vfs.uid
	a.Gid = vfs.gid
	a.Mtime = vfs.mtime
	a.Ctime = vfs.mtime
	a.Atime = vfs.mtime
}

func waitForMount(mountpoint string) error {
	for i := 0; i < 30; i++ {
		info, err := os.Stat(mountpoint)
		if err == nil && info.IsDir() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("mount point not available after 3 seconds")
}

// Mount mounts the filesystem and starts serving it in the background.
// Done reports when serving stops.
func (vfs *VFS) Mount(mountPoint string) error {
	vfsLogger.Info("Mounting virtual filesystem")
	vfsLogger.Debug("Mount point: %s", mountPoint)
	vfsLogger.Debug("UID: %d, GID: %d", vfs.uid, vfs.gid)

	mountOpts := []fuse.MountOption{
		fuse.FSName("vfsh"),
		fuse.Subtype("vfsh"),
		fuse.DefaultPermissions(),
	}

	c, err := fuse.Mount(mountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	vfs.conn = c
	vfs.done = make(chan error, 1)

	go func() {
		err := fusefs.Serve(c, vfs)
		if err != nil {
			vfsLogger.Error("FUSE server error: %v", err)
		}
		vfs.done <- err
	}()

	if err := waitForMount(mountPoint); err != nil {
		c.Close()
		vfsLogger.Error("Mount point not ready: %v", err)
		return fmt.Errorf("mount point failed to initialize: %w", err)
	}

	vfsLogger.Info("Filesystem mounted successfully")
	return nil
}

// Done returns a channel that receives the serve result once the mount ends.
// It is nil before Mount.
func (vfs *VFS) Done() <-chan error {
	return vfs.done
}

// Unmount cleanly unmounts the filesystem.
func (vfs *VFS) Unmount(mountPoint string) error {
	vfsLogger.Info("Unmounting filesystem from: %s", mountPoint)
	if vfs.conn == nil {
		return nil
	}
	if err := fuse.Unmount(mountPoint); err != nil {
		vfsLogger.Error("Unmount failed: %v", err)
		return err
	}
	vfsLogger.Info("Unmount completed successfully")
	return vfs.conn.Close()
}
