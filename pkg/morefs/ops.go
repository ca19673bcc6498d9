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
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Copy copies the contents and permission bits of the file at from to to, truncating to if it exists.
// A symlink at from is followed and its target's contents are copied; anything that does not resolve to
// a regular file fails with ErrNotRegular. The parent of to must already exist. Failures are returned
// as a *LinkError.
func (f *FS) Copy(ctx context.Context, from, to string) (int64, error) {
	n, err := f.copyFile(from, to)
	if err != nil {
		return 0, newLinkError(OpCopy, from, to, err)
	}
	zerolog.Ctx(ctx).Trace().Str("from", from).Str("to", to).Int64("bytes", n).Msg("copied file")
	return n, nil
}

// 📋 CopyCreateParents is Copy, but first creates the parent chain of to when it is missing.
func (f *FS) CopyCreateParents(ctx context.Context, from, to string) (int64, error) {
	if dir, ok := parent(to); ok {
		if _, err := f.fs.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			if err := f.CreateDirAll(ctx, dir); err != nil {
				return 0, err
			}
		}
	}
	return f.Copy(ctx, from, to)
}

func (f *FS) copyFile(from, to string) (n int64, err error) {
	src, err := f.fs.Open(from)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, ErrNotRegular
	}

	perm := info.Mode().Perm()
	dst, err := f.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n, err = io.Copy(dst, src)
	if err != nil {
		return 0, err
	}

	// OpenFile only applies perm on creation and only through the umask
	if err := f.fs.Chmod(to, perm); err != nil {
		return 0, err
	}
	return n, nil
}

// 🗑️ RemoveFile removes a single file
func (f *FS) RemoveFile(ctx context.Context, path string) error {
	if err := f.fs.Remove(path); err != nil {
		return newPathError(OpRemove, path, err)
	}
	zerolog.Ctx(ctx).Trace().Str("path", path).Msg("removed file")
	return nil
}

// 🗑️ RemoveTree removes path and everything under it, like os.RemoveAll. Unlike a strict directory
// removal it succeeds when path does not exist and also removes a plain file, so cleaning up after a
// failed copy with Recover can run more than once.
func (f *FS) RemoveTree(ctx context.Context, path string) error {
	if err := f.fs.RemoveAll(path); err != nil {
		return newPathError(OpRemoveTreeAll, path, err)
	}
	zerolog.Ctx(ctx).Trace().Str("path", path).Msg("removed tree")
	return nil
}

// 📁 CreateDir creates exactly one directory. It fails when the parent is missing or path already exists.
func (f *FS) CreateDir(ctx context.Context, path string) error {
	if err := f.fs.Mkdir(path, dirPerm); err != nil {
		return newPathError(OpCreateDir, path, err)
	}
	zerolog.Ctx(ctx).Trace().Str("path", path).Msg("created dir")
	return nil
}

// 📁 CreateDirAll creates path and every missing ancestor. It succeeds when path is already a directory,
// which is what lets concurrent workers race on the same ancestors.
func (f *FS) CreateDirAll(ctx context.Context, path string) error {
	if err := f.fs.MkdirAll(filepath.Clean(path), dirPerm); err != nil {
		return newPathError(OpCreateDirPathAll, path, err)
	}
	zerolog.Ctx(ctx).Trace().Str("path", path).Msg("created dir path")
	return nil
}
