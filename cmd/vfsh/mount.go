package main

import (
	"fmt"
	"io"
	"path/filepath"

	"vfsh/internal/display"
	"vfsh/internal/fs"
	"vfsh/internal/shell"

	"github.com/spf13/cobra"
)

func newMountCommand(flags *rootFlags) *cobra.Command {
	var script string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "mount <mountpoint>",
		Short: "Expose a namespace as a FUSE filesystem",
		Long: `Mount builds a namespace, optionally replays a script into it, and
serves it at the mount point until interrupted.

Files can be created, truncated, and read through the mount. Writing
content, removing, and renaming are refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, flags, filepath.Clean(args[0]), script, quiet)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "script to replay before mounting")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the replay transcript")
	return cmd
}

func runMount(cmd *cobra.Command, flags *rootFlags, mountPoint, script string, quiet bool) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	ns := newNamespace(cfg)
	ctx := cmd.Context()

	if script != "" {
		opts, err := dispatcherOptions(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if quiet {
			out = io.Discard
		}
		d := shell.NewDispatcher(ns, display.NewWriter(out), opts...)
		if err := sessionResult(d.ReplayFile(ctx, script)); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	vfs := fs.NewVFS(ns)
	if err := vfs.Mount(mountPoint); err != nil {
		return err
	}
	logger.Info("Serving %s, interrupt to unmount", mountPoint)

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-vfs.Done():
		if err != nil {
			return fmt.Errorf("serve failed: %w", err)
		}
		logger.Info("Filesystem unmounted externally")
		return nil
	}

	if err := vfs.Unmount(mountPoint); err != nil {
		return fmt.Errorf("unmount failed: %w", err)
	}
	logger.Info("Clean shutdown complete")
	return nil
}
