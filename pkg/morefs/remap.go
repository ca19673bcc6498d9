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
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🗺️ Remap returns the location under toRoot that corresponds to path under fromRoot.
// It fails with a *StripPrefixError when path is not fromRoot or one of its descendants.
func Remap(fromRoot, toRoot, path string) (string, error) {
	rel, err := stripPrefix(fromRoot, path)
	if err != nil {
		return "", err
	}
	if rel == "" {
		return filepath.Clean(toRoot), nil
	}
	return filepath.Join(toRoot, rel), nil
}

// stripPrefix removes root from path component-wise; "/a/bc" is not under "/a/b".
func stripPrefix(root, path string) (string, error) {
	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(path)

	if cleanPath == cleanRoot {
		return "", nil
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if cleanRoot == "." && !filepath.IsAbs(cleanPath) && !isParentRef(cleanPath) {
		return cleanPath, nil
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return "", errors.WithStack(&StripPrefixError{Target: path, Strip: root, Err: ErrPrefixMismatch})
	}
	return cleanPath[len(prefix):], nil
}

func isParentRef(path string) bool {
	return path == ".." || strings.HasPrefix(path, ".."+string(filepath.Separator))
}

// isWithin reports whether path is root or lies under it. Both are made absolute first so that relative
// and absolute spellings of the same location compare equal.
func isWithin(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, err = stripPrefix(absRoot, absPath)
	return err == nil
}

// InSameDir reports whether a and b share the same parent directory. A path without a parent
// (a filesystem root) is never in the same directory as anything.
func InSameDir(a, b string) bool {
	pa, ok := parent(a)
	if !ok {
		return false
	}
	pb, ok := parent(b)
	if !ok {
		return false
	}
	return pa == pb
}

func parent(path string) (string, bool) {
	clean := filepath.Clean(path)
	if clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return "", false
	}
	return filepath.Dir(clean), true
}
