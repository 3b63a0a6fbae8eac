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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_full",
			filename: "config.yaml",
			config: `
root: Sources/App
suffix: .swift
exclude:
  - .build
  - "**/Pods"
rules:
  - from: '\.observe\('
    to: '.subscribe('
    regex: true
  - from: NDKDataSource
    to: NDKSubscription
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Sources/App", cfg.Root, "root should match")
				assert.Equal(t, ".swift", cfg.Suffix, "suffix should match")
				assert.Equal(t, []string{".build", "**/Pods"}, cfg.Exclude, "exclude should match")
				require.Len(t, cfg.Rules, 2, "should have 2 rules")
				assert.Equal(t, Rule{From: `\.observe\(`, To: ".subscribe(", Regex: true}, cfg.Rules[0])
				assert.Equal(t, Rule{From: "NDKDataSource", To: "NDKSubscription"}, cfg.Rules[1])
			},
		},
		{
			name:     "yaml_minimal_keeps_defaults",
			filename: "config.yml",
			config:   "root: ./Sources/\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Sources", cfg.Root, "root should be cleaned")
				assert.Equal(t, DefaultSuffix, cfg.Suffix, "suffix should have default value")
				assert.Equal(t, DefaultRules(), cfg.Rules, "rules should have default value")
				assert.Empty(t, cfg.Exclude, "nothing is excluded by default")
			},
		},
		{
			name:     "hcl_full",
			filename: "config.hcl",
			config: `
root    = default_root
suffix  = ".swift"
exclude = [".build"]

rule {
  from  = "\\.observe\\("
  to    = ".subscribe("
  regex = true
}

rule {
  from = "NDKDataSource"
  to   = "NDKSubscription"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultRoot, cfg.Root)
				assert.Equal(t, []string{".build"}, cfg.Exclude)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, Rule{From: `\.observe\(`, To: ".subscribe(", Regex: true}, cfg.Rules[0])
				assert.Equal(t, Rule{From: "NDKDataSource", To: "NDKSubscription"}, cfg.Rules[1])
			},
		},
		{
			name:     "json_full",
			filename: "config.json",
			config: `{
				"root": "Olas",
				"suffix": ".m",
				"rules": [
					{"from": "observe:", "to": "subscribe:"}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Olas", cfg.Root)
				assert.Equal(t, ".m", cfg.Suffix)
				assert.Equal(t, []Rule{{From: "observe:", To: "subscribe:"}}, cfg.Rules)
			},
		},
		{
			name:        "empty_rule_pattern",
			filename:    "config.yaml",
			config:      "rules:\n  - from: ''\n    to: x\n",
			wantErr:     true,
			errContains: "rule 1: from is required",
		},
		{
			name:        "bad_regex",
			filename:    "config.yaml",
			config:      "rules:\n  - from: 'observe('\n    to: x\n    regex: true\n",
			wantErr:     true,
			errContains: "compiling pattern",
		},
		{
			name:        "bad_exclude",
			filename:    "config.yaml",
			config:      "exclude: ['[a-']\n",
			wantErr:     true,
			errContains: "invalid exclude pattern",
		},
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "config.json",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl_syntax",
			filename:    "config.hcl",
			config:      "root = \n",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "invalid_hcl_block",
			filename:    "config.hcl",
			config:      "unknown_block {\n  foo = \"bar\"\n}\n",
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.toml",
			config:      "root = 'x'",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate(), "built-in config should be valid")
	assert.Equal(t, "Olas", cfg.Root)
	assert.Equal(t, ".swift", cfg.Suffix)
	assert.Len(t, cfg.Rules, 5)
	assert.Equal(t, "Olas/**/*.swift (5 rules)", cfg.String())

	rules := cfg.TextRules()
	require.Len(t, rules, 5)
	assert.Equal(t, `\.observe\(`, rules[0].FromText)
	assert.Equal(t, ".subscribe(", rules[0].ToText)
	assert.True(t, rules[0].Regex)
}

func TestMerge(t *testing.T) {
	cfg := Default()
	cfg.Merge(&Config{Exclude: []string{".build"}})
	assert.Equal(t, DefaultRoot, cfg.Root, "empty fields should not override")
	assert.Equal(t, DefaultRules(), cfg.Rules, "empty rules should not override")
	assert.Equal(t, []string{".build"}, cfg.Exclude)

	cfg.Merge(&Config{Root: "Sources", Rules: []Rule{{From: "a", To: "b"}}})
	assert.Equal(t, "Sources", cfg.Root)
	assert.Equal(t, []Rule{{From: "a", To: "b"}}, cfg.Rules, "rules should be replaced as a whole")
	assert.Equal(t, "Sources/**/*.swift (1 rules) excluding .build", cfg.String())

	cfg.Merge(nil)
	assert.Equal(t, "Sources", cfg.Root)
}

func TestFindDefault(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindDefault(dir), "no config file present")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rewriterc.hcl"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, ".rewriterc.hcl"), FindDefault(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rewriterc.yaml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, ".rewriterc.yaml"), FindDefault(dir), "yaml is preferred")
}
