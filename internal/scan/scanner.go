package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// Root is one directory tree to scan. Non-recursive roots only probe
// the well-known locations instead of walking the whole tree.
type Root struct {
	Path      string
	Recursive bool
}

// Options tune a Scanner.
type Options struct {
	// IncludeHidden lets the walk descend into dot directories.
	// .claude is always entered either way.
	IncludeHidden bool
	// Exclude holds extra glob patterns matched against directory
	// basenames, on top of the built-in denylist.
	Exclude []string
	// Home overrides the user's home directory, mainly for tests.
	Home string
}

// Batch is the merged outcome of one scan pass. Warnings carry the
// per-file failures that were skipped without aborting the scan.
type Batch struct {
	Records  []Record
	Warnings []string
}

type Scanner struct {
	opts    Options
	exclude []glob.Glob
	home    string
	log     logr.Logger
}

func New(opts Options, log logr.Logger) (*Scanner, error) {
	home := opts.Home
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	s := &Scanner{opts: opts, home: home, log: log}
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		s.exclude = append(s.exclude, g)
	}
	return s, nil
}

// DefaultRoots scans the working tree recursively plus the fixed home
// locations.
func DefaultRoots(cwd, home string) []Root {
	roots := []Root{{Path: cwd, Recursive: true}}
	if home != "" && home != cwd {
		roots = append(roots, Root{Path: home})
	}
	return roots
}

// Scan walks every root concurrently and merges the results into one
// batch. A root that does not exist contributes nothing. A root that
// fails outright contributes an error without discarding the other
// roots; the joined error is returned alongside whatever succeeded.
func (s *Scanner) Scan(ctx context.Context, roots []Root) (Batch, error) {
	var (
		mu    sync.Mutex
		batch Batch
		errs  []error
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root // per-iteration copy; the goroutine must not share the loop variable
		g.Go(func() error {
			part, err := s.scanRoot(ctx, root)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", root.Path, err))
				return nil
			}
			batch.Records = append(batch.Records, part.Records...)
			batch.Warnings = append(batch.Warnings, part.Warnings...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}
	batch = finalize(batch)
	s.log.V(1).Info("scan finished",
		"roots", len(roots), "records", len(batch.Records), "warnings", len(batch.Warnings))
	return batch, errors.Join(errs...)
}

// finalize removes duplicate paths from overlapping roots and puts the
// records into canonical order: case-insensitive name ascending, full
// path as tiebreaker.
func finalize(batch Batch) Batch {
	seen := make(map[string]struct{}, len(batch.Records))
	out := batch.Records[:0]
	for _, rec := range batch.Records {
		if _, dup := seen[rec.Path]; dup {
			continue
		}
		seen[rec.Path] = struct{}{}
		out = append(out, rec)
	}
	batch.Records = out
	sort.SliceStable(batch.Records, func(i, j int) bool {
		a, b := batch.Records[i], batch.Records[j]
		an, bn := strings.ToLower(a.Name()), strings.ToLower(b.Name())
		if an != bn {
			return an < bn
		}
		return a.Path < b.Path
	})
	return batch
}

func (s *Scanner) scanRoot(ctx context.Context, root Root) (Batch, error) {
	path := filepath.Clean(root.Path)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Batch{}, nil
	}
	if err != nil {
		return Batch{}, err
	}
	if !info.IsDir() {
		return Batch{}, fmt.Errorf("not a directory")
	}
	if root.Recursive {
		return s.walkRoot(ctx, path)
	}
	return s.probeRoot(path), nil
}

func (s *Scanner) walkRoot(ctx context.Context, root string) (Batch, error) {
	var batch Batch
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, walkErr))
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if s.excludedDir(name) {
				return fs.SkipDir
			}
			if hiddenName(name) && name != claudeDirName && !s.opts.IncludeHidden {
				return fs.SkipDir
			}
			return nil
		}
		if !candidate(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, err))
			return nil
		}
		s.collect(&batch, path, info)
		return nil
	})
	return batch, err
}

// probeRoot checks only the fixed locations Claude Code uses, without
// descending into the rest of the tree. Command directories are read
// one namespace level deep.
func (s *Scanner) probeRoot(root string) Batch {
	var batch Batch
	claude := filepath.Join(root, claudeDirName)
	for _, path := range []string{
		filepath.Join(root, memoryFileName),
		filepath.Join(root, localMemoryFileName),
		filepath.Join(claude, memoryFileName),
		filepath.Join(claude, localMemoryFileName),
		filepath.Join(claude, settingsFileName),
		filepath.Join(claude, localSettingsFileName),
	} {
		s.probeFile(&batch, path)
	}
	s.probeCommands(&batch, filepath.Join(claude, commandsDirName))
	return batch
}

func (s *Scanner) probeFile(batch *Batch, path string) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, err))
		return
	}
	if info.IsDir() {
		return
	}
	s.collect(batch, path, info)
}

func (s *Scanner) probeCommands(batch *Batch, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", dir, err))
		}
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if s.excludedDir(entry.Name()) {
				continue
			}
			if hiddenName(entry.Name()) && !s.opts.IncludeHidden {
				continue
			}
			sub, err := os.ReadDir(path)
			if err != nil {
				batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, err))
				continue
			}
			for _, file := range sub {
				if file.IsDir() || !strings.HasSuffix(file.Name(), commandExt) {
					continue
				}
				s.probeFile(batch, filepath.Join(path, file.Name()))
			}
			continue
		}
		if !strings.HasSuffix(entry.Name(), commandExt) {
			continue
		}
		s.probeFile(batch, path)
	}
}

// collect classifies one matched file and runs the parser strategy for
// its classification. Oversized files are rejected on stat data alone;
// their content is never read.
func (s *Scanner) collect(batch *Batch, path string, info fs.FileInfo) {
	class := Classify(path, s.home)
	if class == ClassUnknown {
		return
	}
	p := parserFor(class)
	var content []byte
	if p.wantsContent() {
		if info.Size() > MaxContentBytes {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, oversized(info.Size())))
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, err))
			return
		}
		content = data
	}
	rec, err := p.parse(path, info, scopeOf(path, s.home), content)
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("[WARN] %s: %v", path, err))
		return
	}
	if rec != nil {
		batch.Records = append(batch.Records, *rec)
	}
}

// candidate reports whether path matches one of the tracked filename
// patterns. Full classification happens later; this check keeps the
// walk from stating every file it passes.
func candidate(path string) bool {
	base := filepath.Base(path)
	switch base {
	case memoryFileName, localMemoryFileName:
		return true
	case settingsFileName, localSettingsFileName:
		return filepath.Base(filepath.Dir(path)) == claudeDirName
	}
	return strings.HasSuffix(base, commandExt) && underClaudeCommands(path)
}

func (s *Scanner) excludedDir(name string) bool {
	if deniedDir(name) {
		return true
	}
	for _, g := range s.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
