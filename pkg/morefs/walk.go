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
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📂 EntryType is the file-type tag of a walked entry
type EntryType int

const (
	EntryOther EntryType = iota
	EntryDirectory
	EntryFile
)

// String returns a string representation of EntryType
func (t EntryType) String() string {
	switch t {
	case EntryDirectory:
		return "dir"
	case EntryFile:
		return "file"
	default:
		return "other"
	}
}

// 📄 Entry is one step of a directory walk
type Entry struct {
	Path string
	Type EntryType
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool { return e.Type == EntryDirectory }

// entryTypeOf maps file mode bits to an EntryType
func entryTypeOf(mode fs.FileMode) EntryType {
	switch {
	case mode.IsDir():
		return EntryDirectory
	case mode.IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}

// 🚶 Walker produces the entries of a tree, every directory strictly before its descendants.
// Each call to Walk starts a fresh traversal. A failed step is yielded as a non-nil error and the
// sequence stops after it.
type Walker interface {
	Walk(root string) iter.Seq2[Entry, error]
}

// AferoWalker walks an afero filesystem in lexical pre-order. Entries are lstat'ed, except for the root:
// a root that is a symlink is followed, and the tree it names is reported under the root path.
type AferoWalker struct {
	Fs afero.Fs
}

// NewAferoWalker creates a walker over fsys
func NewAferoWalker(fsys afero.Fs) *AferoWalker {
	return &AferoWalker{Fs: fsys}
}

// errStopWalk ends an afero.Walk early when the consumer stops ranging
var errStopWalk = errors.Base("walk stopped")

// Walk implements Walker
func (w *AferoWalker) Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		target, err := resolveRoot(w.Fs, root)
		if err != nil {
			yield(Entry{Path: root}, newWalkError(root, err))
			return
		}
		err = afero.Walk(w.Fs, target, func(path string, info os.FileInfo, err error) error {
			path = underRoot(root, target, path)
			if err != nil {
				yield(Entry{Path: path}, newWalkError(path, err))
				return errStopWalk
			}
			if !yield(Entry{Path: path, Type: entryTypeOf(info.Mode())}, nil) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			yield(Entry{Path: root}, newWalkError(root, err))
		}
	}
}

// maxLinkHops bounds the symlink chain followed for a walk root
const maxLinkHops = 40

// resolveRoot follows root while it is a symlink. Filesystems without lstat or readlink support have
// no links to follow, so root is returned as is. Lstat failures are left for the walk to report.
func resolveRoot(fsys afero.Fs, root string) (string, error) {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return root, nil
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return root, nil
	}

	path := root
	for range maxLinkHops {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil || !lstatCalled || info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}
		link, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", errors.Errorf("resolving %s: more than %d symlinks", root, maxLinkHops)
}

// underRoot rewrites a path walked under target so that it lies under root again
func underRoot(root, target, path string) string {
	if target == root {
		return path
	}
	rel, err := stripPrefix(target, path)
	if err != nil {
		return path
	}
	if rel == "" {
		return root
	}
	return filepath.Join(root, rel)
}

// SliceWalker replays a fixed list of entries; handy for tests and for callers that already know the tree
type SliceWalker []Entry

// Walk implements Walker
func (s SliceWalker) Walk(string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for _, e := range s {
			if !yield(e, nil) {
				return
			}
		}
	}
}
