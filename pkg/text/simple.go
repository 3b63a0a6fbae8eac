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

package text

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gitlab.com/tozd/go/errors"
)

// patternCacheSize bounds the number of compiled patterns kept around
const patternCacheSize = 256

// SimpleTextReplacer implements TextReplacer using literal string replacement
// and RE2 regular expressions
type SimpleTextReplacer struct {
	patterns *lru.Cache[string, *regexp.Regexp]
}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	// lru.New only fails for a non-positive size
	patterns, _ := lru.New[string, *regexp.Regexp](patternCacheSize)
	return &SimpleTextReplacer{patterns: patterns}
}

// compile returns the compiled form of pattern, reusing earlier compilations
func (r *SimpleTextReplacer) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := r.patterns.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
	}
	r.patterns.Add(pattern, re)
	return re, nil
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	modified, count, err := r.apply(ctx, string(originalContent), rules)
	if err != nil {
		return nil, err
	}

	result := &ReplacementResult{
		OriginalContent:  originalContent,
		ModifiedContent:  []byte(modified),
		ReplacementCount: count,
	}
	result.WasModified = !bytes.Equal(result.OriginalContent, result.ModifiedContent)
	return result, nil
}

// IsFixedPoint reports whether applying rules to content leaves it unchanged.
// Content produced by ReplaceText should be a fixed point; when it is not, a
// second pass would rewrite the same files again.
func (r *SimpleTextReplacer) IsFixedPoint(ctx context.Context, content []byte, rules []ReplacementRule) (bool, error) {
	again, _, err := r.apply(ctx, string(content), rules)
	if err != nil {
		return false, err
	}
	return again == string(content), nil
}

func (r *SimpleTextReplacer) apply(ctx context.Context, current string, rules []ReplacementRule) (string, int, error) {
	count := 0
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return "", 0, errors.Errorf("applying rule %d: %w", i+1, err)
		}

		// Skip empty rules
		if rule.FromText == "" {
			continue
		}

		if !rule.Regex {
			count += strings.Count(current, rule.FromText)
			current = strings.ReplaceAll(current, rule.FromText, rule.ToText)
			continue
		}

		re, err := r.compile(rule.FromText)
		if err != nil {
			return "", 0, errors.Errorf("rule %d: %w", i+1, err)
		}
		count += len(re.FindAllStringIndex(current, -1))
		current = re.ReplaceAllLiteralString(current, rule.ToText)
	}
	return current, count, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from is required", i+1)
		}
		if rule.Regex {
			if _, err := r.compile(rule.FromText); err != nil {
				return errors.Errorf("rule %d: %w", i+1, err)
			}
		}
	}
	return nil
}
