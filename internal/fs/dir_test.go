package fs

import (
	"context"
	"os"
	"syscall"
	"testing"

	"vfsh/internal/namespace"

	"bazil.org/fuse"
)

func setupTestFS(t *testing.T, opts ...namespace.Option) (*VFS, *namespace.Namespace) {
	t.Helper()

	ns := namespace.New(opts...)
	// Build a small tree to browse
	for _, p := range []string{"/dir1/dir2", "/empty"} {
		if err := ns.MakeDirectory(p); err != nil {
			t.Fatalf("Failed to create directory %q: %v", p, err)
		}
	}
	for _, p := range []string{"/file1.txt", "/dir1/file2.txt"} {
		if err := ns.CreateOrTruncateFile(p); err != nil {
			t.Fatalf("Failed to create file %q: %v", p, err)
		}
	}

	return NewVFS(ns), ns
}

func rootDir(t *testing.T, vfs *VFS) *Dir {
	t.Helper()
	root, err := vfs.Root()
	if err != nil {
		t.Fatalf("Failed to get root: %v", err)
	}
	dir, ok := root.(*Dir)
	if !ok {
		t.Fatalf("Root is %T, want *Dir", root)
	}
	return dir
}

func TestDirOperations(t *testing.T) {
	vfs, ns := setupTestFS(t)
	ctx := context.Background()

	// Test root directory
	t.Run("RootDirectory", func(t *testing.T) {
		root := rootDir(t, vfs)

		var attr fuse.Attr
		if err := root.Attr(ctx, &attr); err != nil {
			t.Fatalf("Failed to get root attributes: %v", err)
		}
		if !attr.Mode.IsDir() {
			t.Error("Root is not a directory")
		}
		if attr.Mode.Perm() != 0755 {
			t.Errorf("Root permissions = %v, want 0755", attr.Mode.Perm())
		}
	})

	t.Run("ReadDirAll", func(t *testing.T) {
		root := rootDir(t, vfs)

		entries, err := root.ReadDirAll(ctx)
		if err != nil {
			t.Fatalf("Failed to read root directory: %v", err)
		}

		want := map[string]fuse.DirentType{
			".":         fuse.DT_Dir,
			"..":        fuse.DT_Dir,
			"dir1":      fuse.DT_Dir,
			"empty":     fuse.DT_Dir,
			"file1.txt": fuse.DT_File,
		}
		if len(entries) != len(want) {
			t.Fatalf("Got %d entries, want %d: %v", len(entries), len(want), entries)
		}
		for _, entry := range entries {
			typ, ok := want[entry.Name]
			if !ok {
				t.Errorf("Unexpected entry %q", entry.Name)
				continue
			}
			if entry.Type != typ {
				t.Errorf("Entry %q has type %v, want %v", entry.Name, entry.Type, typ)
			}
		}
	})

	t.Run("ReadDirAllEmpty", func(t *testing.T) {
		node, err := rootDir(t, vfs).Lookup(ctx, "empty")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		entries, err := node.(*Dir).ReadDirAll(ctx)
		if err != nil {
			t.Fatalf("ReadDirAll failed: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Got %d entries, want only . and ..", len(entries))
		}
	})

	t.Run("LookupKinds", func(t *testing.T) {
		root := rootDir(t, vfs)

		node, err := root.Lookup(ctx, "dir1")
		if err != nil {
			t.Fatalf("Lookup dir1 failed: %v", err)
		}
		dir1, ok := node.(*Dir)
		if !ok {
			t.Fatalf("dir1 is %T, want *Dir", node)
		}

		node, err = dir1.Lookup(ctx, "file2.txt")
		if err != nil {
			t.Fatalf("Lookup file2.txt failed: %v", err)
		}
		file, ok := node.(*File)
		if !ok {
			t.Fatalf("file2.txt is %T, want *File", node)
		}
		if got := file.path.String(); got != "/dir1/file2.txt" {
			t.Errorf("File path = %q, want /dir1/file2.txt", got)
		}
	})

	t.Run("LookupMissing", func(t *testing.T) {
		_, err := rootDir(t, vfs).Lookup(ctx, "nope")
		if err != syscall.ENOENT {
			t.Errorf("Lookup missing = %v, want ENOENT", err)
		}
	})

	t.Run("LookupIgnoresCursor", func(t *testing.T) {
		if err := ns.ChangeDirectory("/dir1"); err != nil {
			t.Fatalf("cd failed: %v", err)
		}
		defer func() {
			_ = ns.ChangeDirectory("/")
		}()

		if _, err := rootDir(t, vfs).Lookup(ctx, "file1.txt"); err != nil {
			t.Errorf("Lookup from root should not depend on the cursor: %v", err)
		}
	})

	t.Run("Mkdir", func(t *testing.T) {
		root := rootDir(t, vfs)

		node, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "newdir", Mode: os.ModeDir | 0755})
		if err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if _, ok := node.(*Dir); !ok {
			t.Fatalf("Mkdir returned %T, want *Dir", node)
		}

		info, err := ns.Stat("/newdir")
		if err != nil || !info.IsDir() {
			t.Errorf("Namespace does not hold /newdir: %+v %v", info, err)
		}

		// Idempotent like mkdir in the shell
		if _, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "newdir"}); err != nil {
			t.Errorf("Second Mkdir failed: %v", err)
		}
	})

	t.Run("Create", func(t *testing.T) {
		node, err := rootDir(t, vfs).Lookup(ctx, "dir1")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}

		req := &fuse.CreateRequest{Name: "created.txt", Flags: fuse.OpenWriteOnly | fuse.OpenCreate}
		resp := &fuse.CreateResponse{}
		created, handle, err := node.(*Dir).Create(ctx, req, resp)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, ok := created.(*File); !ok {
			t.Errorf("Create returned node %T, want *File", created)
		}
		if _, ok := handle.(*FileHandle); !ok {
			t.Errorf("Create returned handle %T, want *FileHandle", handle)
		}

		content, err := ns.ReadFile("/dir1/created.txt")
		if err != nil {
			t.Fatalf("Namespace does not hold the new file: %v", err)
		}
		if content.Text != "" {
			t.Errorf("New file content = %q, want empty", content.Text)
		}
	})
}

func TestDirConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("OverwriteReplacesFile", func(t *testing.T) {
		vfs, ns := setupTestFS(t)

		if _, err := rootDir(t, vfs).Mkdir(ctx, &fuse.MkdirRequest{Name: "file1.txt"}); err != nil {
			t.Fatalf("Mkdir over a file failed: %v", err)
		}
		info, err := ns.Stat("/file1.txt")
		if err != nil || !info.IsDir() {
			t.Errorf("file1.txt should now be a directory: %+v %v", info, err)
		}
	})

	t.Run("FailReportsENOTDIR", func(t *testing.T) {
		vfs, ns := setupTestFS(t, namespace.WithConflictPolicy(namespace.ConflictFail))

		_, err := rootDir(t, vfs).Mkdir(ctx, &fuse.MkdirRequest{Name: "file1.txt"})
		if err != syscall.ENOTDIR {
			t.Errorf("Mkdir over a file = %v, want ENOTDIR", err)
		}
		info, err := ns.Stat("/file1.txt")
		if err != nil || info.IsDir() {
			t.Errorf("file1.txt should still be a file: %+v %v", info, err)
		}
	})

	t.Run("CreateOverDirectoryFails", func(t *testing.T) {
		vfs, _ := setupTestFS(t, namespace.WithConflictPolicy(namespace.ConflictFail))

		req := &fuse.CreateRequest{Name: "empty"}
		_, _, err := rootDir(t, vfs).Create(ctx, req, &fuse.CreateResponse{})
		if err != syscall.EISDIR {
			t.Errorf("Create over a directory = %v, want EISDIR", err)
		}
	})
}
