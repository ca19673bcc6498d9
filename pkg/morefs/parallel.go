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
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ⚡ CopyTreeParallel has the same result as CopyTree but replicates entries on a pool of Workers()
// goroutines.
//
// The walk is drained up front, so a walk failure aborts before anything is written. Entries are then
// handed to the pool with no ordering between them: directories are created with CreateDirAll and
// files with CopyCreateParents, so a file may land before its directory entry is processed and two
// workers may race on the same ancestor without failing. The first worker error cancels the entries
// that have not started yet and is returned; which error wins among concurrent failures is not defined.
func (f *FS) CopyTreeParallel(ctx context.Context, from, to string) (int64, error) {
	return f.copyTreeParallel(ctx, OpCopyTreeAll, from, to, f.exclude)
}

func (f *FS) copyTreeParallel(ctx context.Context, op Operation, from, to string, exclude []string) (copied int64, err error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", op.String()).Str("from", from).Str("to", to).Logger()

	defer func() {
		f.observer.TreeReplicated(ctx, op, from, to, copied, err)
	}()

	if err := f.checkTreeSource(op, from, to); err != nil {
		return 0, err
	}

	entries, err := f.collect(from, to, exclude)
	if err != nil {
		return 0, err
	}

	logger.Debug().Int("entries", len(entries)).Int("workers", f.workers).Msg("copying tree in parallel")

	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for _, e := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := f.copyOrCreateParallel(gctx, e.entry, e.target)
			if err != nil {
				return err
			}
			total.Add(n)
			f.observer.EntryReplicated(ctx, op, e.entry, e.target, n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, errors.Errorf("copying tree %s: %w", from, err)
		}
		return 0, err
	}
	if cerr := ctx.Err(); cerr != nil {
		return 0, errors.Errorf("copying tree %s: %w", from, cerr)
	}

	logger.Debug().Int64("bytes", total.Load()).Msg("copied tree")
	return total.Load(), nil
}

func (f *FS) copyOrCreateParallel(ctx context.Context, entry Entry, target string) (int64, error) {
	if entry.IsDir() {
		return 0, f.CreateDirAll(ctx, target)
	}
	return f.CopyCreateParents(ctx, entry.Path, target)
}

type remapped struct {
	entry  Entry
	target string
}

// collect drains the walker into an ordered list with every destination already computed
func (f *FS) collect(from, to string, exclude []string) ([]remapped, error) {
	skip := newSkipper(exclude)

	var out []remapped
	for entry, err := range f.walker.Walk(from) {
		if err != nil {
			return nil, err
		}
		if skip.skip(from, entry) {
			continue
		}
		target, err := Remap(from, to, entry.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, remapped{entry: entry, target: target})
	}
	return out, nil
}
