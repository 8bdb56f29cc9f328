// Package traverse implements a depth-first, pre-order directory walker with
// ignore and prune predicates.
//
// Every entry that survives the ignore predicate is handed to the visitor
// exactly once. Directories are visited before their children, and a pruned
// directory is visited but never descended into. Not-found and
// permission-denied errors skip the affected subtree; any other filesystem
// error aborts the walk.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/htmlindexer/internal/fsys"
	"git.home.luguber.info/inful/htmlindexer/internal/logfields"
	"git.home.luguber.info/inful/htmlindexer/internal/observability"
)

// ErrTraversalAborted marks a filesystem failure that stopped the whole walk.
var ErrTraversalAborted = errors.New("traversal aborted")

// Node describes one visited filesystem entry.
type Node struct {
	ParentDir   string
	Name        string
	FullPath    string // normalized
	IsDirectory bool
	Children    []string // directories only, ignored names removed, sorted
}

// Visitor is called once per visited entry. A non-nil error aborts the walk.
type Visitor func(ctx context.Context, node Node) error

// Predicate reports whether a normalized path matches. Errors and panics are
// treated as a non-match.
type Predicate func(path string) (bool, error)

// Options configures the walk. Both predicates are optional.
type Options struct {
	// Ignore excludes an entry from its parent's listing and from the walk.
	Ignore Predicate
	// Prune stops descent below a directory after the directory itself was visited.
	Prune Predicate
}

// Stats summarizes a walk.
type Stats struct {
	Directories int
	Files       int
	Ignored     int
	Pruned      int
	Skipped     int
}

// AbortError carries the filesystem error that aborted a walk.
type AbortError struct {
	Op   string
	Path string
	Err  error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrTraversalAborted, e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *AbortError) Unwrap() []error {
	return []error{ErrTraversalAborted, e.Err}
}

type walker struct {
	fs    fsys.FS
	visit Visitor
	opts  Options
	stats Stats
}

// Walk traverses root and calls visit for every entry that is not ignored.
func Walk(ctx context.Context, fs fsys.FS, root string, visit Visitor, opts Options) (Stats, error) {
	if visit == nil {
		return Stats{}, errors.New("traverse: nil visitor")
	}
	root = filepath.Clean(root)
	w := &walker{fs: fs, visit: visit, opts: opts}
	err := w.walk(ctx, filepath.Dir(root), filepath.Base(root), true)
	return w.stats, err
}

// walk handles one entry. checkIgnore is false for children that were already
// filtered while listing their parent.
func (w *walker) walk(ctx context.Context, parent, name string, checkIgnore bool) error {
	full := filepath.Clean(filepath.Join(parent, name))

	if checkIgnore && w.matches(ctx, w.opts.Ignore, "ignore", full) {
		w.stats.Ignored++
		observability.DebugContext(ctx, "Ignoring entry", logfields.Path(full))
		return nil
	}

	info, err := w.fs.Stat(full)
	if err != nil {
		return w.handleFSError(ctx, "stat", full, err)
	}

	if !info.IsDir() {
		w.stats.Files++
		if err := w.visit(ctx, Node{ParentDir: parent, Name: name, FullPath: full}); err != nil {
			return fmt.Errorf("visit %s: %w", full, err)
		}
		return nil
	}

	names, err := w.fs.ReadDir(full)
	if err != nil {
		return w.handleFSError(ctx, "readdir", full, err)
	}

	children := make([]string, 0, len(names))
	for _, child := range names {
		childPath := filepath.Join(full, child)
		if w.matches(ctx, w.opts.Ignore, "ignore", childPath) {
			w.stats.Ignored++
			observability.DebugContext(ctx, "Ignoring entry", logfields.Path(childPath))
			continue
		}
		children = append(children, child)
	}
	slices.Sort(children)

	w.stats.Directories++
	node := Node{
		ParentDir:   parent,
		Name:        name,
		FullPath:    full,
		IsDirectory: true,
		Children:    slices.Clone(children),
	}
	if err := w.visit(ctx, node); err != nil {
		return fmt.Errorf("visit %s: %w", full, err)
	}

	if w.matches(ctx, w.opts.Prune, "prune", full) {
		w.stats.Pruned++
		observability.DebugContext(ctx, "Pruning directory", logfields.Dir(full))
		return nil
	}

	for _, child := range children {
		if err := w.walk(ctx, full, child, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) handleFSError(ctx context.Context, op, path string, err error) error {
	if fsys.IsSkippable(err) {
		w.stats.Skipped++
		observability.WarnContext(ctx, "Skipping inaccessible path",
			logfields.Path(path), logfields.Error(err))
		return nil
	}
	observability.ErrorContext(ctx, "Filesystem error aborted traversal",
		logfields.Path(path), logfields.Error(err))
	return &AbortError{Op: op, Path: path, Err: err}
}

// matches evaluates a predicate, degrading any failure to false.
func (w *walker) matches(ctx context.Context, p Predicate, kind, path string) (matched bool) {
	if p == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			observability.WarnContext(ctx, "Predicate panicked, treating as no match",
				logfields.Path(path), logfields.Predicate(kind), logfields.Error(fmt.Errorf("%v", r)))
			matched = false
		}
	}()
	ok, err := p(path)
	if err != nil {
		observability.WarnContext(ctx, "Predicate failed, treating as no match",
			logfields.Path(path), logfields.Predicate(kind), logfields.Error(err))
		return false
	}
	return ok
}
