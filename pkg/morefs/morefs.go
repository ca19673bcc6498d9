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
	"runtime"

	"github.com/spf13/afero"
)

const (
	dirPerm = 0o755
)

// 🔧 FS runs every operation against one filesystem provider and one walker
type FS struct {
	fs       afero.Fs
	walker   Walker
	workers  int
	exclude  []string
	observer Observer
}

// 🔧 Option configures an FS
type Option func(*FS)

// WithFs sets the filesystem provider. The default walker follows it unless WithWalker is also given.
func WithFs(fsys afero.Fs) Option {
	return func(f *FS) {
		f.fs = fsys
	}
}

// WithWalker replaces the directory walker
func WithWalker(w Walker) Option {
	return func(f *FS) {
		f.walker = w
	}
}

// WithWorkers bounds the parallel replicator's pool. Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(f *FS) {
		f.workers = n
	}
}

// WithExclude skips entries whose slash-separated path relative to the source root matches one of the
// doublestar patterns. Excludes only apply to CopyTree and CopyTreeParallel.
func WithExclude(patterns ...string) Option {
	return func(f *FS) {
		f.exclude = append(f.exclude, patterns...)
	}
}

// WithObserver receives a callback for every replicated entry and finished tree
func WithObserver(o Observer) Option {
	return func(f *FS) {
		f.observer = o
	}
}

// 🏭 New creates an FS. Without options it works on the OS filesystem.
func New(opts ...Option) *FS {
	f := &FS{}
	for _, opt := range opts {
		opt(f)
	}
	if f.fs == nil {
		f.fs = afero.NewOsFs()
	}
	if f.walker == nil {
		f.walker = NewAferoWalker(f.fs)
	}
	if f.workers < 1 {
		f.workers = runtime.GOMAXPROCS(0)
	}
	if f.observer == nil {
		f.observer = nopObserver{}
	}
	return f
}

// Fs returns the filesystem provider
func (f *FS) Fs() afero.Fs { return f.fs }

// Workers returns the size of the parallel worker pool
func (f *FS) Workers() int { return f.workers }

// Default is the FS used by the package-level functions
var Default = New()

// Copy copies one file with Default. See (*FS).Copy.
func Copy(ctx context.Context, from, to string) (int64, error) {
	return Default.Copy(ctx, from, to)
}

// CopyCreateParents copies one file with Default, creating missing parents of to.
func CopyCreateParents(ctx context.Context, from, to string) (int64, error) {
	return Default.CopyCreateParents(ctx, from, to)
}

// CopyTree copies a directory tree with Default.
func CopyTree(ctx context.Context, from, to string) (int64, error) {
	return Default.CopyTree(ctx, from, to)
}

// CopyTreeParallel copies a directory tree with Default's worker pool.
func CopyTreeParallel(ctx context.Context, from, to string) (int64, error) {
	return Default.CopyTreeParallel(ctx, from, to)
}

// MoveFile moves one file with Default.
func MoveFile(ctx context.Context, from, to string) (int64, error) {
	return Default.MoveFile(ctx, from, to)
}

// MoveTree moves a directory tree with Default.
func MoveTree(ctx context.Context, from, to string) (int64, error) {
	return Default.MoveTree(ctx, from, to)
}

// MoveTreeParallel moves a directory tree with Default's worker pool.
func MoveTreeParallel(ctx context.Context, from, to string) (int64, error) {
	return Default.MoveTreeParallel(ctx, from, to)
}

// RemoveFile removes one file with Default.
func RemoveFile(ctx context.Context, path string) error {
	return Default.RemoveFile(ctx, path)
}

// RemoveTree removes a path and everything under it with Default.
func RemoveTree(ctx context.Context, path string) error {
	return Default.RemoveTree(ctx, path)
}

// CreateDir creates exactly one directory with Default.
func CreateDir(ctx context.Context, path string) error {
	return Default.CreateDir(ctx, path)
}

// CreateDirAll creates a directory and its missing ancestors with Default.
func CreateDirAll(ctx context.Context, path string) error {
	return Default.CreateDirAll(ctx, path)
}
