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

// Package patch applies a single recipe to its target file: read, replace,
// then either write the result back or report where the marker was seen.
package patch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fixclaims/pkg/config"
	"github.com/walteh/fixclaims/pkg/log"
	"github.com/walteh/fixclaims/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Status is the terminal state of a run
type Status int

const (
	// StatusPatched means the target was rewritten
	StatusPatched Status = iota
	// StatusNotFound means the pattern did not match and the target is untouched
	StatusNotFound
	// StatusDryRun means the pattern matched but nothing was written
	StatusDryRun
	// StatusUnchanged means the pattern matched text equal to the replacement
	StatusUnchanged
)

func (s Status) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusNotFound:
		return "not-found"
	case StatusDryRun:
		return "dry-run"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Outcome describes what a run did
type Outcome struct {
	Status     Status
	Path       string
	MatchCount int
	Excerpts   []text.Excerpt
}

// 🔧 Options contains configuration for the patcher
type Options struct {
	// Recipe is the substitution to apply
	Recipe *config.Recipe
	// Root is the directory relative targets are resolved against
	Root string
	// DryRun prints a diff instead of writing
	DryRun bool
	// Console receives the user facing report
	Console *log.Logger
	// Replacer defaults to a text.RegexReplacer
	Replacer text.Replacer
}

// Patcher applies one recipe to one file
type Patcher struct {
	recipe   *config.Recipe
	rule     text.Rule
	path     string
	dryRun   bool
	console  *log.Logger
	replacer text.Replacer
}

// 🏭 New creates a new patcher with the given options
func New(opts Options) (*Patcher, error) {
	if opts.Recipe == nil {
		return nil, errors.Errorf("recipe is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console is required")
	}

	rule, err := opts.Recipe.Rule()
	if err != nil {
		return nil, errors.Errorf("compiling recipe %s: %w", opts.Recipe, err)
	}

	path := opts.Recipe.Target
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.Root, path)
	}

	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewRegexReplacer()
	}

	return &Patcher{
		recipe:   opts.Recipe,
		rule:     rule,
		path:     path,
		dryRun:   opts.DryRun,
		console:  opts.Console,
		replacer: replacer,
	}, nil
}

// Path returns the resolved target path
func (p *Patcher) Path() string {
	return p.path
}

// 🏃 Run applies the recipe. The target is only written once the full
// replacement has been computed, and never when the pattern is missing or ambiguous.
func (p *Patcher) Run(ctx context.Context) (*Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("recipe", p.recipe.Name).Str("target", p.path).Logger()

	info, err := os.Stat(p.path)
	if err != nil {
		return nil, errors.Errorf("reading target: %w", err)
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, errors.Errorf("reading target: %w", err)
	}

	// fragments are matched against "\n" line endings, CRLF is restored on write
	original, ending := text.NormalizeNewlines(raw)
	logger.Debug().Int("bytes", len(raw)).Bool("crlf", ending == text.CRLF).Msg("read target")

	result, err := p.replacer.Replace(ctx, bytes.NewReader(original), p.rule)
	if err != nil {
		if errors.Is(err, text.ErrAmbiguousMatch) {
			p.console.Failuref("Pattern matches more than once in %s. Nothing was written.", p.recipe.Target)
		}
		return nil, errors.Errorf("applying %s: %w", p.recipe, err)
	}

	outcome := &Outcome{
		Path:       p.path,
		MatchCount: result.MatchCount,
	}

	if result.MatchCount == 0 {
		outcome.Status = StatusNotFound
		p.console.Failure("Pattern not found. Trying alternate method...")

		outcome.Excerpts = text.ScanMarker(string(original), p.rule.Marker, p.rule.Context)
		for _, ex := range outcome.Excerpts {
			p.console.Excerpt(ex)
		}
		logger.Debug().Int("excerpts", len(outcome.Excerpts)).Msg("pattern not found")
		return outcome, nil
	}

	if !result.WasModified {
		outcome.Status = StatusUnchanged
		p.console.Successf("Replacement for %s is already in place, nothing written", p.description())
		return outcome, nil
	}

	if p.dryRun {
		outcome.Status = StatusDryRun
		p.console.Diff(p.recipe.Target, string(original), string(result.ModifiedContent))
		p.console.Successf("Would replace %s (dry run, nothing written)", p.description())
		return outcome, nil
	}

	if err := os.WriteFile(p.path, text.RestoreNewlines(result.ModifiedContent, ending), info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing target: %w", err)
	}
	logger.Debug().Int("bytes", len(result.ModifiedContent)).Msg("wrote target")

	outcome.Status = StatusPatched
	p.console.Successf("Successfully replaced %s!", p.description())
	return outcome, nil
}

func (p *Patcher) description() string {
	if p.recipe.Description != "" {
		return p.recipe.Description
	}
	return "pattern in " + p.recipe.Target
}
