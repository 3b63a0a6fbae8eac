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

package rewrite

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"github.com/walteh/rewriterc/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for a Rewriter
type Options struct {
	Root    string                 // Directory to walk
	Suffix  string                 // Candidate file suffix
	Exclude []string               // doublestar globs relative to Root
	Rules   []text.ReplacementRule // Applied in order
	Check   bool                   // Report files that would change without writing
	Console *log.Logger            // Operator-facing output; discarded when nil
}

// 🎮 Rewriter runs passes over a tree
type Rewriter struct {
	walk     walk.Options
	rules    []text.ReplacementRule
	check    bool
	replacer *text.SimpleTextReplacer
	console  *log.Logger
}

// 🏭 New creates a Rewriter, validating rules and walk options up front
func New(opts Options) (*Rewriter, error) {
	w := walk.Options{
		Root:    opts.Root,
		Suffix:  opts.Suffix,
		Exclude: opts.Exclude,
	}
	if err := w.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	replacer := text.NewSimpleTextReplacer()
	if err := replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	console := opts.Console
	if console == nil {
		console = log.NewWithLogger(io.Discard, zerolog.Nop())
	}

	return &Rewriter{
		walk:     w,
		rules:    opts.Rules,
		check:    opts.Check,
		replacer: replacer,
		console:  console,
	}, nil
}

// 🏃 Run performs one pass: discover candidates, then transform each in turn.
// Per-file failures are recorded in the summary and do not stop the pass.
func (r *Rewriter) Run(ctx context.Context) (status.Summary, error) {
	logger := zerolog.Ctx(ctx)
	mgr := status.New(logger)

	r.console.StartPass(ctx, log.PassOperation{
		Root:   r.walk.Root,
		Suffix: r.walk.Suffix,
		Rules:  len(r.rules),
		Check:  r.check,
	})

	w := r.walk
	w.OnError = func(path string, err error) {
		r.record(ctx, mgr, status.FileInfo{
			Path:   path,
			Status: status.StatusFailed,
			Error:  errors.Errorf("reading directory entry: %w", err),
		})
	}

	files, err := walk.Discover(ctx, w)
	if err != nil {
		return mgr.Summary(), errors.Errorf("discovering files: %w", err)
	}

	mgr.StartOperation(ctx, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return mgr.Summary(), errors.Errorf("pass interrupted after %d of %d files: %w", i, len(files), err)
		}

		info, err := r.TransformFile(ctx, path)
		if err != nil {
			info = status.FileInfo{Path: path, Status: status.StatusFailed, Error: err}
		}
		r.record(ctx, mgr, info)
		mgr.UpdateProgress(ctx, i+1)
	}
	mgr.FinishOperation(ctx)

	summary := mgr.Summary()
	r.console.EndPass(ctx, summary)
	return summary, nil
}

// record tracks an outcome and reports it on the console
func (r *Rewriter) record(ctx context.Context, mgr *status.Manager, info status.FileInfo) {
	mgr.TrackFile(ctx, info)
	r.console.LogFileOperation(ctx, log.FileOperation{
		Path:         info.Path,
		Status:       info.Status,
		Replacements: info.Replacements,
		Err:          info.Error,
	})
}

// 📄 TransformFile applies the rules to one file and writes it back if the
// content changed. In check mode nothing is written and a changed file is
// reported as pending.
func (r *Rewriter) TransformFile(ctx context.Context, path string) (status.FileInfo, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	original, mode, err := readTextFile(path)
	if err != nil {
		return status.FileInfo{}, errors.Errorf("reading %s: %w", path, err)
	}

	result, err := r.replacer.ReplaceText(ctx, bytes.NewReader(original), r.rules)
	if err != nil {
		return status.FileInfo{}, errors.Errorf("rewriting %s: %w", path, err)
	}

	info := status.FileInfo{
		Path:         path,
		Status:       status.StatusUnchanged,
		Replacements: result.ReplacementCount,
	}
	if !result.WasModified {
		logger.Debug().Msg("no changes")
		return info, nil
	}

	stable, err := r.replacer.IsFixedPoint(ctx, result.ModifiedContent, r.rules)
	if err != nil {
		return status.FileInfo{}, errors.Errorf("rewriting %s: %w", path, err)
	}
	if !stable {
		r.console.Warningf("%s: rules change their own output, another pass would rewrite it again", path)
	}

	if r.check {
		info.Status = status.StatusPending
		return info, nil
	}

	if err := writeFileAtomic(path, result.ModifiedContent, mode); err != nil {
		return status.FileInfo{}, errors.Errorf("writing %s: %w", path, err)
	}

	logger.Debug().Int("replacements", result.ReplacementCount).Msg("rewrote file")
	info.Status = status.StatusModified
	return info, nil
}
