package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Replay feeds each non-blank line of r, trimmed, through Execute in order.
// It stops early on exit (returning ErrExit) or when ctx is done.
func (d *Dispatcher) Replay(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	replayed := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		replayed++
		if err := d.Execute(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	shellLogger.Debug("Replayed %d lines", replayed)
	return nil
}

// ReplayFile replays the script at path. A path that does not exist is
// skipped without error.
func (d *Dispatcher) ReplayFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		shellLogger.Info("Script %s not found, skipping replay", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	shellLogger.Info("Replaying script %s", path)
	return d.Replay(ctx, f)
}

// Serve runs an interactive session over a line stream such as stdin.
// Unlike Replay, blank lines are shown and re-prompt. It returns nil at end
// of input, ErrExit after the exit command, and the context error as soon as
// ctx is done, even while waiting for input.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return inputResult(ctx, <-readErr)
			}
			if err := d.execute(line, d.echoInput); err != nil {
				return err
			}
		}
	}
}

// inputResult maps the reader's final error to Serve's result.
func inputResult(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
