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
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrNotText is returned for files that are not valid UTF-8 text
var ErrNotText = errors.Base("file is not valid UTF-8 text")

// readTextFile reads the whole file at path and checks that it is text
func readTextFile(path string) ([]byte, os.FileMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, errors.Errorf("reading file info: %w", err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}

	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return nil, 0, errors.WithStack(ErrNotText)
	}

	return content, info.Mode().Perm(), nil
}

// writeFileAtomic replaces the content of path. The new content goes to a
// temp file in the same directory that is renamed over the target, so the
// target never holds a partial write. Symlinks are resolved first so the
// link itself is kept.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errors.Errorf("resolving path: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".rewriterc-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
