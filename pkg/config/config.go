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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRoot is the directory walked when none is configured
	DefaultRoot = "Olas"
	// DefaultSuffix selects Swift sources
	DefaultSuffix = ".swift"
)

// DefaultFiles are the config file names looked up in the working directory
var DefaultFiles = []string{".rewriterc.yaml", ".rewriterc.yml", ".rewriterc.hcl", ".rewriterc.json"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is a single rewrite rule as written in a config file
type Rule struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Regex bool   `json:"regex,omitempty" yaml:"regex,omitempty"`
}

// 📚 Config represents the complete configuration of a pass
type Config struct {
	Root    string   `json:"root,omitempty" yaml:"root,omitempty"`
	Suffix  string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Rules   []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// DefaultRules renames the observe/NDKDataSource API to subscribe/NDKSubscription.
// The last two rules are already covered by the first; they are kept so the
// built-in set matches the rename that was originally run.
func DefaultRules() []Rule {
	return []Rule{
		{From: `\.observe\(`, To: ".subscribe(", Regex: true},
		{From: `NDKDataSource<`, To: "NDKSubscription<", Regex: true},
		{From: `NDKDataSource\b`, To: "NDKSubscription", Regex: true},
		{From: `profileManager\.observe\(`, To: "profileManager.subscribe(", Regex: true},
		{From: `ndk\.observe\(`, To: "ndk.subscribe(", Regex: true},
	}
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Root:   DefaultRoot,
		Suffix: DefaultSuffix,
		Rules:  DefaultRules(),
	}
}

// 🎯 Load loads the configuration from a file. Fields the file leaves out
// keep their built-in defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	parsed, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	cfg.Merge(parsed)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 FindDefault returns the first default config file present in dir, or ""
func FindDefault(dir string) string {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Merge overlays the non-empty fields of other onto cfg. A non-empty rule
// list replaces the current one as a whole.
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Root != "" {
		cfg.Root = other.Root
	}
	if other.Suffix != "" {
		cfg.Suffix = other.Suffix
	}
	if len(other.Exclude) > 0 {
		cfg.Exclude = append([]string(nil), other.Exclude...)
	}
	if len(other.Rules) > 0 {
		cfg.Rules = append([]Rule(nil), other.Rules...)
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Suffix == "" {
		return errors.Errorf("suffix is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.TextRules()); err != nil {
		return errors.Errorf("invalid rules: %w", err)
	}

	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// TextRules converts the configured rules for the replacer
func (cfg *Config) TextRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{
			FromText: r.From,
			ToText:   r.To,
			Regex:    r.Regex,
		})
	}
	return rules
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s/**/*%s (%d rules)", cfg.Root, cfg.Suffix, len(cfg.Rules))
	if len(cfg.Exclude) > 0 {
		s += " excluding " + strings.Join(cfg.Exclude, ", ")
	}
	return s
}
