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

package status

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

func testTracker(t *testing.T) (*Tracker, context.Context) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
	return New(&logger), logger.WithContext(context.Background())
}

func TestTrackerCounts(t *testing.T) {
	tracker, ctx := testTracker(t)

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	tracker.StartOperation(ctx, 4)
	tracker.EntryReplicated(ctx, morefs.OpCopyTreeAll, morefs.Entry{Path: "/a", Type: morefs.EntryDirectory}, "/b", 0)
	tracker.EntryReplicated(ctx, morefs.OpCopyTreeAll, morefs.Entry{Path: "/a/f", Type: morefs.EntryFile}, "/b/f", 100)
	tracker.EntryReplicated(ctx, morefs.OpCopyTreeAll, morefs.Entry{Path: "/a/g", Type: morefs.EntryFile}, "/b/g", 23)
	tracker.EntryReplicated(ctx, morefs.OpCopyTreeAll, morefs.Entry{Path: "/a/l", Type: morefs.EntryOther}, "/b/l", 7)
	tracker.TreeReplicated(ctx, morefs.OpCopyTreeAll, "/a", "/b", 130, nil)

	clock = clock.Add(1500 * time.Millisecond)
	summary := tracker.FinishOperation(ctx)

	assert.Equal(t, Summary{
		Dirs:    1,
		Files:   2,
		Others:  1,
		Bytes:   130,
		Trees:   1,
		Failed:  0,
		Elapsed: 1500 * time.Millisecond,
	}, summary)
	assert.Equal(t, summary, tracker.Summary())

	info, err := tracker.GetEntry(ctx, "/b/f")
	require.NoError(t, err)
	assert.Equal(t, EntryInfo{Source: "/a/f", Target: "/b/f", Type: morefs.EntryFile, Size: 100, Operation: morefs.OpCopyTreeAll}, info)

	_, err = tracker.GetEntry(ctx, "/b/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not tracked")

	entries := tracker.ListEntries(ctx)
	require.Len(t, entries, 4)
	assert.Equal(t, "/b", entries[0].Target, "entries should be sorted by target")
	assert.Equal(t, "/b/l", entries[3].Target)
}

func TestTrackerFailedTree(t *testing.T) {
	tracker, ctx := testTracker(t)
	cause := errors.New("boom")

	tracker.TreeReplicated(ctx, morefs.OpMoveTreeAll, "/a", "/b", 0, cause)

	summary := tracker.FinishOperation(ctx)
	assert.Equal(t, 1, summary.Failed)
	assert.Zero(t, summary.Elapsed, "no clock without StartOperation")

	trees := tracker.Trees()
	require.Len(t, trees, 1)
	assert.Equal(t, morefs.OpMoveTreeAll, trees[0].Operation)
	assert.ErrorIs(t, trees[0].Err, cause)
}

func TestTrackerConcurrentUse(t *testing.T) {
	tracker, ctx := testTracker(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := filepath.Join("/b", string(rune('a'+i%26)), string(rune('0'+i/26)))
			tracker.EntryReplicated(ctx, morefs.OpCopyTreeAll, morefs.Entry{Path: target, Type: morefs.EntryFile}, target, 2)
		}(i)
	}
	wg.Wait()

	summary := tracker.Summary()
	assert.Equal(t, 50, summary.Files)
	assert.Equal(t, int64(100), summary.Bytes)
	assert.Len(t, tracker.ListEntries(ctx), 50)
}

func TestTrackerObservesParallelCopy(t *testing.T) {
	tracker, ctx := testTracker(t)
	dir := t.TempDir()
	from := filepath.Join(dir, "src")

	files := map[string]int{"a.txt": 10, "sub/b.txt": 20, "sub/deeper/c.txt": 30}
	for rel, size := range files {
		path := filepath.Join(from, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}

	f := morefs.New(morefs.WithObserver(tracker), morefs.WithWorkers(3))
	tracker.StartOperation(ctx, 0)
	n, err := f.CopyTreeParallel(ctx, from, filepath.Join(dir, "dst"))
	require.NoError(t, err)
	summary := tracker.FinishOperation(ctx)

	assert.Equal(t, int64(60), n)
	assert.Equal(t, n, summary.Bytes)
	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 3, summary.Dirs, "src, sub and sub/deeper")
	assert.Equal(t, 1, summary.Trees)
	assert.Zero(t, summary.Failed)
}
