package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/rewriterc/pkg/text"
)

func ExampleSimpleTextReplacer_ReplaceText() {
	replacer := text.NewSimpleTextReplacer()

	rules := []text.ReplacementRule{
		{FromText: `\.observe\(`, ToText: ".subscribe(", Regex: true},
		{FromText: `NDKDataSource\b`, ToText: "NDKSubscription", Regex: true},
	}

	content := strings.NewReader("let s: NDKDataSource = ndk.observe(filter)")

	result, err := replacer.ReplaceText(context.Background(), content, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: let s: NDKDataSource = ndk.observe(filter)
	// Modified: let s: NDKSubscription = ndk.subscribe(filter)
	// Changes: 2
	// Was Modified: true
}

func ExampleSimpleTextReplacer_ValidateRules() {
	replacer := text.NewSimpleTextReplacer()

	rules := []text.ReplacementRule{
		{FromText: "foo", ToText: "bar"},
		{FromText: "", ToText: "qux"},
	}

	err := replacer.ValidateRules(rules)
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: rule 2: from is required
}
