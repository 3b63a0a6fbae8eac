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
)

// FileFormatter defines how file outcomes and progress are rendered
type FileFormatter interface {
	// FormatFileOperation formats a single file outcome
	FormatFileOperation(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the end-of-pass counts
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusModified:
		return fmt.Sprintf("📝 Fixed %s", info.Path)
	case StatusPending:
		return fmt.Sprintf("🔍 Would fix %s", info.Path)
	case StatusFailed:
		if info.Error != nil {
			return fmt.Sprintf("❌ Failed %s: %v", info.Path, info.Error)
		}
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
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

// FormatSummary formats the end-of-pass counts
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	msg := fmt.Sprintf("%d scanned, %d fixed, %d unchanged", s.Scanned, s.Modified, s.Unchanged)
	if s.Pending > 0 {
		msg += fmt.Sprintf(", %d would change", s.Pending)
	}
	if s.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", s.Failed)
	}
	return msg
}
