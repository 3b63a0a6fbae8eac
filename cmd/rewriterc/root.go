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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds flag values shared by all commands
type rootOpts struct {
	configFile string
	envFile    string
	root       string
	suffix     string
	exclude    []string
	check      bool
	debug      bool
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "Rename an API surface across a source tree",
		Long: `rewriterc walks a directory tree and applies an ordered list of
find-and-replace rules to every file with a given suffix, writing back only
the files whose content changed.

With no config file it renames .observe( to .subscribe( and NDKDataSource to
NDKSubscription in every .swift file under Olas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd.Context(), opts, cmd.ErrOrStderr())
			console := log.NewWithLogger(cmd.OutOrStdout(), *zerolog.Ctx(ctx))
			cmd.SetContext(log.NewContext(ctx, console))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, opts)
		},
	}

	addRootFlags(cmd, opts)
	addRunFlags(cmd.Flags(), opts)

	cmd.AddCommand(
		newRunCmd(opts),
		newRulesCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path (default: .rewriterc.{yaml,yml,hcl,json} if present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "environment file to load REWRITERC_* variables from")
	flags.StringVarP(&opts.root, "root", "r", "", "directory to walk (default \""+config.DefaultRoot+"\")")
	flags.StringVarP(&opts.suffix, "suffix", "s", "", "file name suffix of candidate files (default \""+config.DefaultSuffix+"\")")
	flags.StringSliceVarP(&opts.exclude, "exclude", "x", nil, "glob of paths relative to root to skip, repeatable")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write structured logs as JSON")
}

// addRunFlags adds flags that only apply to a pass
func addRunFlags(flags *pflag.FlagSet, opts *rootOpts) {
	flags.BoolVar(&opts.check, "check", false, "report files that would change without writing them")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, opts *rootOpts, w io.Writer) context.Context {
	level := zerolog.WarnLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}

	out := w
	if !opts.logJSON {
		out = zerolog.ConsoleWriter{Out: w}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// loadConfig resolves the effective configuration: flags over environment
// over config file over built-in defaults
func loadConfig(cmd *cobra.Command, opts *rootOpts) (*config.Config, error) {
	ctx := cmd.Context()

	cfg := config.Default()

	path := opts.configFile
	if path == "" {
		path = config.FindDefault(".")
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if opts.envFile != "" {
		if err := config.LoadDotEnv(ctx, opts.envFile); err != nil {
			return nil, errors.Errorf("loading environment: %w", err)
		}
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("suffix") {
		cfg.Suffix = opts.suffix
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("resolved configuration")
	return cfg, nil
}

// runPass runs one pass and turns failed or pending files into an error so
// the process exits non-zero
func runPass(cmd *cobra.Command, opts *rootOpts) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	r, err := rewrite.New(rewrite.Options{
		Root:    cfg.Root,
		Suffix:  cfg.Suffix,
		Exclude: cfg.Exclude,
		Rules:   cfg.TextRules(),
		Check:   opts.check,
		Console: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	summary, err := r.Run(ctx)
	if err != nil {
		return errors.Errorf("running pass: %w", err)
	}

	if summary.Failed > 0 {
		return errors.Errorf("%d of %d files could not be processed", summary.Failed, summary.Scanned)
	}
	if opts.check && summary.Pending > 0 {
		return errors.Errorf("%d files need rewriting", summary.Pending)
	}
	return nil
}

// newRunCmd creates the explicit run command; running the root command
// does the same
func newRunCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply the rules to every candidate file",
		Long: `Run walks the root directory and, for every file whose name ends with
the suffix:
1. Reads the file
2. Applies each rule in order
3. Writes the file back if the content changed
4. Prints one line per changed file, then a completion line`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, opts)
		},
	}

	addRunFlags(cmd.Flags(), opts)

	return cmd
}
