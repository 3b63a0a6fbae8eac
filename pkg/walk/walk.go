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

// Package walk finds the candidate files of a pass: every file below a root
// whose name ends with a suffix, minus anything an exclusion glob matches.
package walk

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotDir is returned when the walk root is not a directory
var ErrRootNotDir = errors.Base("root is not a directory")

// Options controls which files Discover returns
type Options struct {
	Root    string   // Directory to walk
	Suffix  string   // Required file name suffix, e.g. ".swift"
	Exclude []string // doublestar globs, matched against slash paths relative to Root

	// OnError is called for entries that could not be read. The walk skips
	// them and continues.
	OnError func(path string, err error)
}

// Validate checks the options before a walk
func (o Options) Validate() error {
	if o.Root == "" {
		return errors.Errorf("root is required")
	}
	if o.Suffix == "" {
		return errors.Errorf("suffix is required")
	}
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Discover returns the candidate files below opts.Root. The order is whatever
// the directory traversal yields.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("validating walk options: %w", err)
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.WithDetails(ErrRootNotDir, "root", opts.Root)
	}

	// godirwalk refuses a symlinked root, so walk its target and report
	// paths under the root as given
	resolved, err := filepath.EvalSymlinks(opts.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}
	display := func(path string) string {
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return path
		}
		return filepath.Join(opts.Root, rel)
	}

	var files []string
	err = godirwalk.Walk(resolved, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path = display(path)
			if path != filepath.Clean(opts.Root) && opts.excluded(path) {
				logger.Debug().Str("path", path).Msg("excluded")
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}

			if de.IsDir() || !strings.HasSuffix(de.Name(), opts.Suffix) {
				return nil
			}

			regular, err := isRegular(path, de)
			if err != nil {
				return err
			}
			if regular {
				files = append(files, path)
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			if ctx.Err() != nil {
				return godirwalk.Halt
			}
			path = display(path)
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if opts.OnError != nil {
				opts.OnError(path, err)
			}
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, errors.Errorf("walking %s: %w", opts.Root, err)
	}

	logger.Debug().Str("root", opts.Root).Int("candidates", len(files)).Msg("discovered files")
	return files, nil
}

// excluded reports whether any exclusion glob matches path
func (o Options) excluded(path string) bool {
	if len(o.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(o.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range o.Exclude {
		// patterns are validated up front
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

// isRegular reports whether the entry is a regular file, following a symlink
// to its target
func isRegular(path string, de *godirwalk.Dirent) (bool, error) {
	if de.IsRegular() {
		return true, nil
	}
	if !de.IsSymlink() {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Errorf("resolving symlink: %w", err)
	}
	return info.Mode().IsRegular(), nil
}
