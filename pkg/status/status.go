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
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

// 📄 EntryInfo records one replicated entry
type EntryInfo struct {
	Source    string           // Walked source path
	Target    string           // Destination path
	Type      morefs.EntryType // Directory, file or other
	Size      int64            // Bytes copied, zero for directories
	Operation morefs.Operation // Tree operation that replicated it
}

// 🌳 TreeResult records one finished tree operation
type TreeResult struct {
	Operation morefs.Operation
	From      string
	To        string
	Bytes     int64
	Err       error
}

// 📊 Summary is a snapshot of the tracker's counters
type Summary struct {
	Dirs    int
	Files   int
	Others  int
	Bytes   int64
	Trees   int
	Failed  int
	Elapsed time.Duration
}

// 📈 Reporter tracks replication progress
type Reporter interface {
	morefs.Observer

	// Progress reporting
	StartOperation(ctx context.Context, total int)
	FinishOperation(ctx context.Context) Summary

	// Status lookup
	GetEntry(ctx context.Context, target string) (EntryInfo, error)
	ListEntries(ctx context.Context) []EntryInfo
}

// 🔧 Tracker implements Reporter. It is safe for concurrent use by the parallel replicator.
type Tracker struct {
	logger    *zerolog.Logger
	formatter Formatter
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]EntryInfo
	trees   []TreeResult
	summary Summary
	started time.Time

	// Progress tracking
	total     int
	processed int
}

var _ Reporter = (*Tracker)(nil)

// 🏭 New creates a new tracker that logs through logger
func New(logger *zerolog.Logger) *Tracker {
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		now:       time.Now,
		entries:   make(map[string]EntryInfo),
	}
}

// StartOperation resets progress and starts the clock. total may be zero when unknown.
func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.started = t.now()
	t.logger.Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

// EntryReplicated implements morefs.Observer
func (t *Tracker) EntryReplicated(ctx context.Context, op morefs.Operation, entry morefs.Entry, target string, n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[target] = EntryInfo{
		Source:    entry.Path,
		Target:    target,
		Type:      entry.Type,
		Size:      n,
		Operation: op,
	}

	switch entry.Type {
	case morefs.EntryDirectory:
		t.summary.Dirs++
	case morefs.EntryFile:
		t.summary.Files++
	default:
		t.summary.Others++
	}
	t.summary.Bytes += n
	t.processed++

	t.logger.Trace().Str("target", target).Msg(t.formatter.FormatEntry(entry, target, n))
	if t.total > 0 {
		t.logger.Trace().
			Int("processed", t.processed).
			Int("total", t.total).
			Msg(t.formatter.FormatProgress(t.processed, t.total))
	}
}

// TreeReplicated implements morefs.Observer
func (t *Tracker) TreeReplicated(ctx context.Context, op morefs.Operation, from, to string, n int64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trees = append(t.trees, TreeResult{Operation: op, From: from, To: to, Bytes: n, Err: err})
	t.summary.Trees++
	if err != nil {
		t.summary.Failed++
		t.logger.Debug().Str("from", from).Msg(t.formatter.FormatError(err))
	}
}

// FinishOperation stops the clock and returns the summary
func (t *Tracker) FinishOperation(ctx context.Context) Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started.IsZero() {
		t.summary.Elapsed = t.now().Sub(t.started)
	}
	t.logger.Info().
		Int("dirs", t.summary.Dirs).
		Int("files", t.summary.Files).
		Int64("bytes", t.summary.Bytes).
		Int("failed", t.summary.Failed).
		Msg(t.formatter.FormatSummary(t.summary))
	return t.summary
}

// Summary returns the counters so far
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.summary
}

// Trees returns every finished tree operation in order
func (t *Tracker) Trees() []TreeResult {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]TreeResult(nil), t.trees...)
}

// GetEntry looks up a replicated entry by its destination path
func (t *Tracker) GetEntry(ctx context.Context, target string) (EntryInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.entries[target]
	if !ok {
		return EntryInfo{}, errors.Errorf("entry not tracked: %s", target)
	}
	return info, nil
}

// ListEntries returns every replicated entry sorted by destination path
func (t *Tracker) ListEntries(ctx context.Context) []EntryInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]EntryInfo, 0, len(t.entries))
	for _, info := range t.entries {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}
