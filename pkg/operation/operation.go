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

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrIsDirectory is returned when a directory is given to a non-recursive operation
	ErrIsDirectory = errors.Base("is a directory")
)

// 🎯 Operation is one command-level filesystem action
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) (Result, error)
	// String describes the operation for logs
	String() string
}

// 📊 Result reports what an operation did
type Result struct {
	Op      morefs.Operation // Underlying morefs operation
	Bytes   int64            // File bytes copied, zero for removals and mkdir
	Cleaned bool             // A failed copy's destination was removed
}

// 🔧 Options contains configuration shared by all operations
type Options struct {
	// FS runs the filesystem work; morefs.Default when nil
	FS *morefs.FS
	// Parallel selects the parallel tree replicator
	Parallel bool
	// Cleanup removes a partially copied destination after a failed tree copy, when the destination
	// did not exist before
	Cleanup bool
}

// 📦 BaseOperation holds the fields every operation shares
type BaseOperation struct {
	FS       *morefs.FS
	Parallel bool
	Cleanup  bool
}

// 🏭 NewBaseOperation creates a base operation from options
func NewBaseOperation(opts Options) BaseOperation {
	fsys := opts.FS
	if fsys == nil {
		fsys = morefs.Default
	}
	return BaseOperation{
		FS:       fsys,
		Parallel: opts.Parallel,
		Cleanup:  opts.Cleanup,
	}
}

// stat looks path up through the operation's filesystem provider
func (b BaseOperation) stat(path string) (os.FileInfo, error) {
	return b.FS.Fs().Stat(path)
}

// exists reports whether path exists; other stat failures count as existing so that cleanup
// never touches a path it could not inspect
func (b BaseOperation) exists(path string) bool {
	_, err := b.stat(path)
	return err == nil || !os.IsNotExist(err)
}

// intoDir returns to/base(from) when to is an existing directory, like cp and mv do
func (b BaseOperation) intoDir(from, to string) string {
	info, err := b.stat(to)
	if err == nil && info.IsDir() {
		return filepath.Join(to, filepath.Base(from))
	}
	return to
}
