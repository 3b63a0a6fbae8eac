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
	"context"
	"io"
)

// ReplacementRule defines a single text replacement operation
type ReplacementRule struct {
	// FromText is the text to replace, or an RE2 pattern when Regex is set
	FromText string

	// ToText is the replacement text. It is always inserted literally.
	ToText string

	// Regex marks FromText as a regular expression
	Regex bool
}

// String returns a short human readable form of the rule
func (r ReplacementRule) String() string {
	if r.Regex {
		return "/" + r.FromText + "/ -> " + r.ToText
	}
	return "\"" + r.FromText + "\" -> " + r.ToText
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content, in order.
	// Each rule sees the output of the previous one.
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
