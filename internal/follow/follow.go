// File: follow.go
// Title: File Follower
// Description: Tails a growing file and emits every complete line appended
//              after the follower started. Wake-ups come from fsnotify write
//              events on the file's directory, with a poll interval as the
//              fallback for filesystems that do not deliver events.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package follow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
)

// DefaultPollInterval is used when Options.PollInterval is zero
const DefaultPollInterval = 100 * time.Millisecond

// Options configures Follow
type Options struct {
	PollInterval time.Duration
	// FromStart emits the existing content before following
	FromStart bool
	Logger    *mdwlog.Logger
}

// Follow emits appended lines of path until ctx is cancelled. Lines are
// delivered without their line terminator. A fatal read error is sent on
// the error channel; both channels are closed when following stops.
func Follow(ctx context.Context, path string, opts Options) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	f, err := os.Open(path)
	if err != nil {
		errs <- mdwerror.Wrap(err, fmt.Sprintf("cannot open %s", path)).
			WithCode(mdwerror.CodeIOError).
			WithOperation("follow.Follow").
			WithDetail("path", path)
		close(lines)
		close(errs)
		return lines, errs
	}

	t := &tail{
		path:     path,
		file:     f,
		reader:   bufio.NewReader(f),
		lines:    lines,
		interval: interval,
		logger:   logger.WithName("follow").WithField("path", path),
	}

	if !opts.FromStart {
		offset, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			f.Close()
			errs <- mdwerror.Wrap(err, "cannot seek to end").
				WithCode(mdwerror.CodeIOError).
				WithOperation("follow.Follow")
			close(lines)
			close(errs)
			return lines, errs
		}
		t.offset = offset
	}

	go func() {
		defer close(errs)
		defer close(lines)
		defer t.file.Close()

		if err := t.run(ctx); err != nil {
			errs <- err
		}
	}()

	return lines, errs
}

type tail struct {
	path     string
	file     *os.File
	reader   *bufio.Reader
	offset   int64
	partial  strings.Builder
	lines    chan<- string
	interval time.Duration
	logger   *mdwlog.Logger
}

func (t *tail) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.logger.WarnWithErr("file events unavailable, polling only", err)
		watcher = nil
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(t.path)); err != nil {
			t.logger.WarnWithErr("cannot watch directory, polling only", err)
		}
	}

	var (
		events  <-chan fsnotify.Event
		werrors <-chan error
	)
	if watcher != nil {
		events = watcher.Events
		werrors = watcher.Errors
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Debug("following", mdwlog.Field("offset", t.offset))

	for {
		if err := t.drain(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(t.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
		case err, ok := <-werrors:
			if !ok {
				werrors = nil
				continue
			}
			t.logger.WarnWithErr("watcher error", err)
		}
	}
}

// drain emits every complete line currently available
func (t *tail) drain(ctx context.Context) error {
	if err := t.checkTruncated(); err != nil {
		return err
	}

	for {
		chunk, err := t.reader.ReadString('\n')
		t.offset += int64(len(chunk))
		if strings.HasSuffix(chunk, "\n") {
			t.partial.WriteString(chunk)
			line := strings.TrimRight(t.partial.String(), "\r\n")
			t.partial.Reset()
			select {
			case t.lines <- line:
			case <-ctx.Done():
				return nil
			}
		} else {
			t.partial.WriteString(chunk)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return mdwerror.Wrap(err, fmt.Sprintf("cannot read %s", t.path)).
				WithCode(mdwerror.CodeIOError).
				WithOperation("follow.Follow")
		}
	}
}

// checkTruncated restarts from the beginning when the file shrank
func (t *tail) checkTruncated() error {
	info, err := t.file.Stat()
	if err != nil {
		return mdwerror.Wrap(err, fmt.Sprintf("cannot stat %s", t.path)).
			WithCode(mdwerror.CodeIOError).
			WithOperation("follow.Follow")
	}
	if info.Size() >= t.offset {
		return nil
	}

	t.logger.Info("file truncated, restarting from the beginning")
	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return mdwerror.Wrap(err, "cannot seek to start").
			WithCode(mdwerror.CodeIOError).
			WithOperation("follow.Follow")
	}
	t.offset = 0
	t.partial.Reset()
	t.reader.Reset(t.file)
	return nil
}
