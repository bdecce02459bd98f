package filesystem

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Search yields every non-hidden file under directory, as paths relative to
// the sandbox root. An empty directory or "/" searches the whole sandbox.
//
// Each range over the sequence performs one fresh walk; nothing is cached
// between iterations. Only file names are checked for the hidden marker,
// so files inside a hidden directory are still listed. Errors end the
// sequence.
func (s *Store) Search(directory string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		matches, err := s.walk(directory)
		if err != nil {
			yield("", err)
			return
		}
		for _, m := range matches {
			if !yield(m, nil) {
				return
			}
		}
	}
}

// SearchAll collects Search into a slice
func (s *Store) SearchAll(directory string) ([]string, error) {
	var out []string
	for p, err := range s.Search(directory) {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) walk(directory string) (matches []string, err error) {
	start := time.Now()
	defer func() { s.finish(OpSearch, directory, start, err) }()

	root := s.guard.Root()
	if !paths.IsRootMarker(directory) {
		root, err = s.guard.Resolve(directory)
		if err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, classify(OpSearch, directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search %s: not a directory: %w", directory, errs.ErrInvalidConfiguration)
	}

	// fastwalk calls back from several goroutines
	var mu sync.Mutex
	matches = []string{}
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if paths.IsHidden(d.Name()) {
			return nil
		}

		rel, err := s.guard.Rel(p)
		if err != nil {
			return nil
		}
		mu.Lock()
		matches = append(matches, rel)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, classify(OpSearch, directory, err)
	}

	slices.Sort(matches)
	return matches, nil
}

// Glob returns non-hidden files matching a doublestar pattern such as
// "**/*.md", relative to the sandbox root. The pattern itself must stay
// inside the sandbox.
func (s *Store) Glob(pattern string) (matches []string, err error) {
	start := time.Now()
	defer func() { s.finish(OpGlob, pattern, start, err) }()

	resolved, err := s.guard.Resolve(pattern)
	if err != nil {
		return nil, err
	}
	rel, err := s.guard.Rel(resolved)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %v: %w", pattern, err, errs.ErrInvalidConfiguration)
	}

	slashed := filepath.ToSlash(rel)
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("glob %q: bad pattern: %w", pattern, errs.ErrInvalidConfiguration)
	}

	found, err := doublestar.Glob(os.DirFS(s.guard.Root()), slashed, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %v: %w", pattern, err, errs.ErrIO)
	}

	matches = make([]string, 0, len(found))
	for _, f := range found {
		if paths.IsHidden(filepath.Base(f)) {
			continue
		}
		matches = append(matches, filepath.FromSlash(f))
	}
	slices.Sort(matches)
	return matches, nil
}
