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

package config

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Environment variables that override file and default settings
const (
	EnvRoot    = "REWRITERC_ROOT"
	EnvSuffix  = "REWRITERC_SUFFIX"
	EnvExclude = "REWRITERC_EXCLUDE" // comma separated
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(ctx context.Context, files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Errorf("loading %s: %w", file, err)
		}
		zerolog.Ctx(ctx).Debug().Str("file", file).Msg("loaded environment file")
	}
	return nil
}

// ApplyEnv overlays REWRITERC_* variables onto cfg
func (cfg *Config) ApplyEnv() {
	cfg.applyEnv(os.LookupEnv)
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRoot); ok && strings.TrimSpace(v) != "" {
		cfg.Root = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSuffix); ok && strings.TrimSpace(v) != "" {
		cfg.Suffix = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvExclude); ok {
		var patterns []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) > 0 {
			cfg.Exclude = patterns
		}
	}
}
