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

package morefs_test

import (
	"context"
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/walteh/morefs/pkg/morefs"
)

const randBytes = 512

// 🧪 testCtx returns a context carrying a logger that writes through t
func testCtx(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
	return logger.WithContext(context.Background())
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

// touch writes random bytes to path, creating parents, and returns the bytes written
func touch(t *testing.T, path string, size int) []byte {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := randomBytes(t, size)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return content
}

func mkdirp(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

// 🌳 buildTree creates a tree of depth four with files at each level and empty directories, and
// returns the total number of file bytes written
func buildTree(t *testing.T, root string) int64 {
	t.Helper()
	files := map[string]int{
		"top.txt":                 randBytes,
		"a/one.bin":               randBytes * 2,
		"a/b/two.bin":             17,
		"a/b/c/three.bin":         randBytes,
		"a/b/c/empty.bin":         0,
		"a/b/c/d/four.bin":        4096,
		"x/y/z/deep.bin":          1,
		"x/sibling.bin":           randBytes,
		"zz/last/one/more/f.bin":  33,
		"a/b/c/d/e/f/g/leaf.data": 99,
	}
	var total int64
	for rel, size := range files {
		touch(t, filepath.Join(root, filepath.FromSlash(rel)), size)
		total += int64(size)
	}
	for _, dir := range []string{"empty_dir", "a/empty_nested", "x/y/also_empty"} {
		mkdirp(t, filepath.Join(root, filepath.FromSlash(dir)))
	}
	return total
}

// snapshot maps every slash-separated relative path under root to its content; directories map to nil
func snapshot(t *testing.T, root string) map[string][]byte {
	t.Helper()
	out := map[string][]byte{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel] = nil
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if content == nil {
			content = []byte{}
		}
		out[rel] = content
		return nil
	})
	require.NoError(t, err)
	return out
}

// symlink creates link pointing at target, skipping the test where links are not supported
func symlink(t *testing.T, target, link string) string {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	return link
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// recordingObserver counts callbacks; safe for the parallel path
type recordingObserver struct {
	mu      sync.Mutex
	entries map[string]int64
	trees   []treeCall
}

type treeCall struct {
	op  morefs.Operation
	n   int64
	err error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{entries: map[string]int64{}}
}

func (r *recordingObserver) EntryReplicated(_ context.Context, _ morefs.Operation, _ morefs.Entry, target string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[target] = n
}

func (r *recordingObserver) TreeReplicated(_ context.Context, op morefs.Operation, _, _ string, n int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trees = append(r.trees, treeCall{op: op, n: n, err: err})
}
