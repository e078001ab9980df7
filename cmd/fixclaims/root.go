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
	"github.com/walteh/fixclaims/pkg/config"
	"github.com/walteh/fixclaims/pkg/log"
	"github.com/walteh/fixclaims/pkg/patch"
	"github.com/walteh/fixclaims/pkg/recipe"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by all commands
type rootFlags struct {
	configFile string
	root       string
	dryRun     bool
	debug      bool
}

// newRootCmd creates the fixclaims command, writing reports to stdout and logs to stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fixclaims",
		Short: "Replace the purchase request claims label with a download button",
		Long: `fixclaims patches frontend/app/purchase-requests/page.tsx in place.
It will:
1. Read the page
2. Replace the read-only claims count label with the download button
3. Write the page back if it changed
4. Otherwise print every line mentioning Claim(s) with 3 lines of context`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), stdout, stderr, flags.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.Context(), flags)
		},
	}

	addRootFlags(cmd, flags)
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "recipe file (.hcl, .yaml, .json), defaults to the built-in claims button recipe")
	cmd.PersistentFlags().StringVarP(&flags.root, "root", "C", ".", "directory the recipe target is relative to")
	cmd.PersistentFlags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print a diff instead of writing")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog and the console reporter based on flags
func setupLogging(ctx context.Context, stdout, stderr io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(stdout, zlog))
}

func runPatch(ctx context.Context, flags *rootFlags) error {
	logger := zerolog.Ctx(ctx)

	rcp := recipe.ClaimsButtonRecipe()
	if flags.configFile != "" {
		loaded, err := config.LoadRecipe(ctx, flags.configFile)
		if err != nil {
			return errors.Errorf("loading recipe: %w", err)
		}
		rcp = loaded
	}

	p, err := patch.New(patch.Options{
		Recipe:  rcp,
		Root:    flags.root,
		DryRun:  flags.dryRun,
		Console: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating patcher: %w", err)
	}

	outcome, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("recipe", rcp.String()).
		Str("location", rcp.Location()).
		Stringer("status", outcome.Status).
		Int("excerpts", len(outcome.Excerpts)).
		Msg("run complete")

	return nil
}
