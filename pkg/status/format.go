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
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/walteh/morefs/pkg/morefs"
)

// 🎨 Formatter turns tracker events into messages
type Formatter interface {
	// FormatEntry formats one replicated entry
	FormatEntry(entry morefs.Entry, target string, n int64) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the end-of-run summary
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatEntry formats an entry with an emoji per entry type
func (f *DefaultFormatter) FormatEntry(entry morefs.Entry, target string, n int64) string {
	switch entry.Type {
	case morefs.EntryDirectory:
		return fmt.Sprintf("📁 Created %s", target)
	case morefs.EntryFile:
		return fmt.Sprintf("✨ Copied %s (%s)", target, humanize.Bytes(uint64(n)))
	default:
		return fmt.Sprintf("🔗 Copied %s %s (%s)", entry.Type, target, humanize.Bytes(uint64(n)))
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the totals of a run
func (f *DefaultFormatter) FormatSummary(s Summary) string {
	prefix := "✅"
	if s.Failed > 0 {
		prefix = "❌"
	}
	return fmt.Sprintf("%s %s in %s: %s dirs, %s files, %s other, %d failed",
		prefix,
		humanize.Bytes(uint64(s.Bytes)),
		s.Elapsed.Round(time.Millisecond),
		humanize.Comma(int64(s.Dirs)),
		humanize.Comma(int64(s.Files)),
		humanize.Comma(int64(s.Others)),
		s.Failed)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
