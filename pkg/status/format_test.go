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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name        string
		entry       morefs.Entry
		target      string
		n           int64
		want        string
		description string
	}{
		{
			name:        "directory",
			entry:       morefs.Entry{Path: "/a/sub", Type: morefs.EntryDirectory},
			target:      "/b/sub",
			want:        "📁 Created /b/sub",
			description: "directories should show no size",
		},
		{
			name:        "file",
			entry:       morefs.Entry{Path: "/a/f.txt", Type: morefs.EntryFile},
			target:      "/b/f.txt",
			n:           2048,
			want:        "✨ Copied /b/f.txt (2.0 kB)",
			description: "files should show a human readable size",
		},
		{
			name:        "other",
			entry:       morefs.Entry{Path: "/a/link", Type: morefs.EntryOther},
			target:      "/b/link",
			n:           5,
			want:        "🔗 Copied other /b/link (5 B)",
			description: "other entries should name their type",
		},
	}

	f := NewDefaultFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatEntry(tt.entry, tt.target, tt.n), tt.description)
		})
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "start", current: 0, total: 10, want: "⏳ Progress: 0/10 (0%)"},
		{name: "halfway", current: 5, total: 10, want: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, want: "✅ Progress: 10/10 (100%)"},
		{name: "empty", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
		{name: "unknown_total", current: 3, total: 0, want: "✅ Progress: 3/0 (100%)"},
	}

	f := NewDefaultFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	f := NewDefaultFormatter()

	ok := Summary{Dirs: 3, Files: 1200, Bytes: 5_000_000, Trees: 1, Elapsed: 2*time.Second + 345678*time.Microsecond}
	assert.Equal(t, "✅ 5.0 MB in 2.346s: 3 dirs, 1,200 files, 0 other, 0 failed", f.FormatSummary(ok))

	failed := Summary{Trees: 1, Failed: 1}
	assert.Equal(t, "❌ 0 B in 0s: 0 dirs, 0 files, 0 other, 1 failed", f.FormatSummary(failed))
}

func TestFormatError(t *testing.T) {
	f := NewDefaultFormatter()
	assert.Empty(t, f.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
}
