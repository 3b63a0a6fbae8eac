package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/rewriterc/pkg/config"
)

func ExampleLoad() {
	dir, err := os.MkdirTemp("", "rewriterc")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configYAML := `
root: Sources
exclude:
  - .build
rules:
  - from: NDKDataSource
    to: NDKSubscription
`
	configPath := filepath.Join(dir, ".rewriterc.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	for _, r := range cfg.TextRules() {
		fmt.Println(r)
	}

	// Output:
	// Sources/**/*.swift (1 rules) excluding .build
	// "NDKDataSource" -> NDKSubscription
}
