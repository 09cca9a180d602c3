package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Stage marks where a file is in its run.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParsing
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageParsing:
		return "parsing"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Event reports per-file progress to an optional observer (the CLI's
// progress UI). Failed is meaningful only at StageDone.
type Event struct {
	Path   string
	Stage  Stage
	Failed bool
}

// ListFiles walks root and returns the relative paths the grammar
// would pick up, sorted for determinism.
func ListFiles(root string, g Grammar) ([]string, error) {
	var files []string
	exts := g.Extensions()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every eligible file under root concurrently, one
// worker per core, and returns the results sorted by path. A parse
// failure is carried in its Result, not as the walk error; the error
// return covers filesystem problems only.
func ParseDir(ctx context.Context, root string, opts Options, events chan<- Event) ([]*Result, error) {
	files, err := ListFiles(root, opts.Grammar)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(events, Event{Path: rel, Stage: StageParsing})
			res, err := ParseFile(filepath.Join(root, rel), opts)
			if err != nil {
				return err
			}
			res.Path = rel
			results[i] = res
			emit(events, Event{Path: rel, Stage: StageDone, Failed: res.Failed()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func emit(events chan<- Event, ev Event) {
	if events != nil {
		events <- ev
	}
}
