// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package morefs

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🌳 CopyTree recursively copies the directory from to to and returns the number of file bytes copied.
//
// The destination root is created with its missing parents; every other directory is created on its
// own, which is enough because the walker always yields a directory before anything inside it.
// Directories already present at the destination are merged into; files there are overwritten.
// The first failure stops the copy and is returned; whatever was copied before it stays on disk and
// the partial byte count is dropped. Use Recover to clean up.
func (f *FS) CopyTree(ctx context.Context, from, to string) (int64, error) {
	return f.copyTree(ctx, OpCopyTreeAll, from, to, f.exclude)
}

func (f *FS) copyTree(ctx context.Context, op Operation, from, to string, exclude []string) (copied int64, err error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", op.String()).Str("from", from).Str("to", to).Logger()

	defer func() {
		f.observer.TreeReplicated(ctx, op, from, to, copied, err)
	}()

	if err := f.checkTreeSource(op, from, to); err != nil {
		return 0, err
	}

	logger.Debug().Msg("copying tree")

	skip := newSkipper(exclude)
	for entry, werr := range f.walker.Walk(from) {
		if werr != nil {
			return 0, werr
		}
		if cerr := ctx.Err(); cerr != nil {
			return 0, errors.Errorf("copying tree %s: %w", from, cerr)
		}

		target, err := Remap(from, to, entry.Path)
		if err != nil {
			return 0, err
		}

		if skip.skip(from, entry) {
			logger.Trace().Str("path", entry.Path).Msg("excluded")
			continue
		}

		n, err := f.copyOrCreate(ctx, entry, target, isRoot(from, entry.Path))
		if err != nil {
			return 0, err
		}
		copied += n
		f.observer.EntryReplicated(ctx, op, entry, target, n)
	}

	logger.Debug().Int64("bytes", copied).Msg("copied tree")
	return copied, nil
}

// copyOrCreate replays one entry in walk order; parents already exist at target. A directory that is
// already there is merged into, as CreateDirAll does for the parallel replicator.
func (f *FS) copyOrCreate(ctx context.Context, entry Entry, target string, root bool) (int64, error) {
	switch {
	case entry.IsDir() && root:
		return 0, f.CreateDirAll(ctx, target)
	case entry.IsDir():
		err := f.CreateDir(ctx, target)
		if err != nil && errors.Is(err, fs.ErrExist) && f.isDir(target) {
			return 0, nil
		}
		return 0, err
	default:
		return f.Copy(ctx, entry.Path, target)
	}
}

func (f *FS) isDir(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.IsDir()
}

// checkTreeSource fails fast when from is missing or not a directory, or when to lies inside from or
// inside the directory a symlinked from points at.
func (f *FS) checkTreeSource(op Operation, from, to string) error {
	info, err := f.fs.Stat(from)
	if err != nil {
		return newPathError(op, from, err)
	}
	if !info.IsDir() {
		return errors.WithStack(&NotDirectoryError{Path: from})
	}
	if isWithin(from, to) {
		return newLinkError(op, from, to, ErrDestinationInsideSource)
	}
	if resolved, err := resolveRoot(f.fs, from); err == nil && resolved != from && isWithin(resolved, to) {
		return newLinkError(op, from, to, ErrDestinationInsideSource)
	}
	return nil
}

func isRoot(root, path string) bool {
	return filepath.Clean(root) == filepath.Clean(path)
}

// 🔍 skipper applies exclude patterns in walk order. Excluded directories are remembered so that
// their descendants are pruned without matching each one.
type skipper struct {
	patterns []string
	pruned   []string
}

func newSkipper(patterns []string) *skipper {
	return &skipper{patterns: patterns}
}

func (s *skipper) skip(root string, entry Entry) bool {
	if len(s.patterns) == 0 || isRoot(root, entry.Path) {
		return false
	}
	rel, err := stripPrefix(root, entry.Path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, dir := range s.pruned {
		if strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}

	if !matchAny(s.patterns, rel) {
		return false
	}
	if entry.IsDir() {
		s.pruned = append(s.pruned, rel)
	}
	return true
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// a bare name also matches the last path element, like a .gitignore line
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, rel[strings.LastIndex(rel, "/")+1:]); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// ValidateExclude checks that every pattern is a valid doublestar pattern
func ValidateExclude(patterns ...string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}
