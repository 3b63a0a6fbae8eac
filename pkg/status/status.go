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
	"sync"

	"github.com/rs/zerolog"
)

// 📊 FileStatus represents the outcome of processing one candidate file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Content changed and was written back
	StatusUnchanged            // No rule matched, or the rules produced identical content
	StatusPending              // Content would change; nothing was written (check mode)
	StatusFailed               // File could not be read, decoded or written
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusPending:
		return "pending"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains the result of processing a file
type FileInfo struct {
	Path         string     // Path to the file
	Status       FileStatus // Outcome
	Replacements int        // Number of pattern matches replaced
	Error        error      // Set when Status is StatusFailed
}

// 📈 Summary counts outcomes across a pass
type Summary struct {
	Scanned   int
	Modified  int
	Unchanged int
	Pending   int
	Failed    int
}

// 🔧 Manager tracks file outcomes and progress for a pass
type Manager struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo

	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return NewWithFormatter(logger, NewDefaultFileFormatter())
}

// 🏭 NewWithFormatter creates a status manager with a custom formatter
func NewWithFormatter(logger *zerolog.Logger, formatter FileFormatter) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		logger:    logger,
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

// TrackFile records the outcome for a file. Tracking the same path twice
// keeps the latest outcome.
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[info.Path] = info

	event := m.logger.Debug()
	if info.Error != nil {
		event = m.logger.Warn().Err(info.Error)
	}
	event.
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(m.formatter.FormatFileOperation(info))
}

// Summary counts tracked outcomes
func (m *Manager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, info := range m.files {
		s.Scanned++
		switch info.Status {
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		case StatusPending:
			s.Pending++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.logger.Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}
