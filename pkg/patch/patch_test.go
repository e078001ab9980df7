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

package patch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fixclaims/pkg/config"
	"github.com/walteh/fixclaims/pkg/log"
	"github.com/walteh/fixclaims/pkg/patch"
	"github.com/walteh/fixclaims/pkg/recipe"
	"github.com/walteh/fixclaims/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTestEnv creates a repo root holding the target with the given content
func createTestEnv(t *testing.T, content string) (context.Context, string, *bytes.Buffer, *log.Logger) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	root := t.TempDir()
	target := filepath.Join(root, recipe.ClaimsTarget)
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755), "creating target dir")
	require.NoError(t, os.WriteFile(target, []byte(content), 0644), "writing target")

	zlog := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	ctx := zlog.WithContext(context.Background())

	buf := &bytes.Buffer{}
	return ctx, root, buf, log.New(buf, zlog)
}

func newPatcher(t *testing.T, root string, console *log.Logger, dryRun bool) *patch.Patcher {
	t.Helper()
	p, err := patch.New(patch.Options{
		Recipe:  recipe.ClaimsButtonRecipe(),
		Root:    root,
		DryRun:  dryRun,
		Console: console,
	})
	require.NoError(t, err)
	return p
}

func readTarget(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, recipe.ClaimsTarget))
	require.NoError(t, err)
	return string(data)
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRun_ExactFragment(t *testing.T) {
	ctx, root, buf, console := createTestEnv(t, recipe.ClaimsSpan)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusPatched, outcome.Status)
	assert.Equal(t, 1, outcome.MatchCount)
	assert.Equal(t, recipe.ClaimsButton, readTarget(t, root), "target should equal the new fragment")
	assert.Equal(t, []string{"✓ Successfully replaced span with button!"}, outputLines(buf))
}

func TestRun_FragmentInsidePage(t *testing.T) {
	before := "export default function Page() {\n  return (\n"
	after := "\n  );\n}\n"
	ctx, root, _, console := createTestEnv(t, before+recipe.ClaimsSpan+after)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusPatched, outcome.Status)
	assert.Equal(t, before+recipe.ClaimsButton+after, readTarget(t, root), "only the fragment should change")
}

func TestRun_ReindentedFragment(t *testing.T) {
	// the fragment shifted two columns left no longer matches, but the marker line is still found
	content := "line 1\nline 2\nline 3\n" + strings.ReplaceAll(recipe.ClaimsSpan, "\n  ", "\n") + "\nline 9\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusNotFound, outcome.Status)
	assert.Equal(t, content, readTarget(t, root), "target should be byte identical")

	require.Len(t, outcome.Excerpts, 1)
	assert.Equal(t, 6, outcome.Excerpts[0].Line, "marker should be on line 6")
	assert.Equal(t, 3, outcome.Excerpts[0].Lines[0].Number)
	assert.Equal(t, 9, outcome.Excerpts[0].Lines[len(outcome.Excerpts[0].Lines)-1].Number)

	lines := outputLines(buf)
	require.Len(t, lines, 9)
	assert.Equal(t, "✗ Pattern not found. Trying alternate method...", lines[0])
	assert.Equal(t, "Found at line 6", lines[1])
	assert.Equal(t, "3: line 3", lines[2])
	assert.True(t, strings.HasPrefix(lines[5], "6: "), "hit line should be numbered 6: %q", lines[5])
	assert.Contains(t, lines[5], "{request.claims.length} Claim(s)")
	assert.Equal(t, "9: line 9", lines[8])
}

func TestRun_MarkerAlone(t *testing.T) {
	content := "a\nb\n3 Claim(s)\nc\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusNotFound, outcome.Status)
	assert.Equal(t, content, readTarget(t, root))
	assert.Equal(t, []string{
		"✗ Pattern not found. Trying alternate method...",
		"Found at line 3",
		"1: a",
		"2: b",
		"3: 3 Claim(s)",
		"4: c",
		"5: ",
	}, outputLines(buf))
}

func TestRun_NothingToFind(t *testing.T) {
	content := "export default function Page() {}\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusNotFound, outcome.Status)
	assert.Empty(t, outcome.Excerpts)
	assert.Equal(t, content, readTarget(t, root))
	assert.Equal(t, []string{"✗ Pattern not found. Trying alternate method..."}, outputLines(buf))
}

func TestRun_CRLFTarget(t *testing.T) {
	crlf := func(s string) string { return strings.ReplaceAll(s, "\n", "\r\n") }
	content := "a\r\n" + crlf(recipe.ClaimsSpan) + "\r\nb\r\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusPatched, outcome.Status)
	assert.Equal(t, 1, outcome.MatchCount)
	assert.Equal(t, "a\r\n"+crlf(recipe.ClaimsButton)+"\r\nb\r\n", readTarget(t, root), "line endings should be kept")
	assert.Equal(t, []string{"✓ Successfully replaced span with button!"}, outputLines(buf))
}

func TestRun_CRLFMarkerExcerpt(t *testing.T) {
	content := "a\r\n  3 Claim(s)\r\nb\r\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusNotFound, outcome.Status)
	assert.Equal(t, content, readTarget(t, root), "target should be byte identical")
	assert.NotContains(t, buf.String(), "\r")
	assert.Equal(t, []string{
		"✗ Pattern not found. Trying alternate method...",
		"Found at line 2",
		"1: a",
		"2:   3 Claim(s)",
		"3: b",
		"4: ",
	}, outputLines(buf))
}

func TestRun_ReplacementAlreadyInPlace(t *testing.T) {
	content := "title: Same\n"
	ctx, root, buf, console := createTestEnv(t, content)

	p, err := patch.New(patch.Options{
		Recipe:  &config.Recipe{Target: recipe.ClaimsTarget, Old: "Same", New: "Same", Description: "title", Marker: "title"},
		Root:    root,
		Console: console,
	})
	require.NoError(t, err)

	outcome, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusUnchanged, outcome.Status)
	assert.Equal(t, 1, outcome.MatchCount)
	assert.Empty(t, outcome.Excerpts)
	assert.Equal(t, content, readTarget(t, root))
	assert.NotContains(t, buf.String(), "Pattern not found")
	assert.Equal(t, []string{"✓ Replacement for title is already in place, nothing written"}, outputLines(buf))
}

func TestRun_SecondRunFindsNothing(t *testing.T) {
	ctx, root, _, console := createTestEnv(t, recipe.ClaimsSpan)

	first, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, patch.StatusPatched, first.Status)
	patched := readTarget(t, root)

	second, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, patch.StatusNotFound, second.Status)
	assert.Zero(t, second.MatchCount)
	assert.Equal(t, patched, readTarget(t, root), "second run should not touch the file")
}

func TestRun_AmbiguousMatch(t *testing.T) {
	content := recipe.ClaimsSpan + "\n" + recipe.ClaimsSpan + "\n"
	ctx, root, buf, console := createTestEnv(t, content)

	outcome, err := newPatcher(t, root, console, false).Run(ctx)
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.True(t, errors.Is(err, text.ErrAmbiguousMatch), "error should be ErrAmbiguousMatch, got %v", err)
	assert.Equal(t, content, readTarget(t, root), "ambiguous match should not write")
	assert.Contains(t, buf.String(), "matches more than once")
}

func TestRun_DryRun(t *testing.T) {
	ctx, root, buf, console := createTestEnv(t, recipe.ClaimsSpan)

	outcome, err := newPatcher(t, root, console, true).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, patch.StatusDryRun, outcome.Status)
	assert.Equal(t, recipe.ClaimsSpan, readTarget(t, root), "dry run should not write")
	assert.Contains(t, buf.String(), "--- "+recipe.ClaimsTarget)
	assert.Contains(t, buf.String(), "+                          DOWNLOAD {request.claims.length} CLAIM(S)")
	assert.Contains(t, buf.String(), "-                          {request.claims.length} Claim(s)")
}

func TestRun_PreservesMode(t *testing.T) {
	ctx, root, _, console := createTestEnv(t, recipe.ClaimsSpan)
	target := filepath.Join(root, recipe.ClaimsTarget)
	require.NoError(t, os.Chmod(target, 0600))

	_, err := newPatcher(t, root, console, false).Run(ctx)
	require.NoError(t, err)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRun_MissingTarget(t *testing.T) {
	ctx, _, buf, console := createTestEnv(t, "")

	outcome, err := newPatcher(t, t.TempDir(), console, false).Run(ctx)
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Contains(t, err.Error(), "reading target")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, buf.String(), "fatal errors are not reported on the console")
}

func TestNew(t *testing.T) {
	console := log.New(&bytes.Buffer{}, zerolog.Nop())

	tests := []struct {
		name        string
		opts        patch.Options
		errContains string
	}{
		{
			name:        "missing_recipe",
			opts:        patch.Options{Console: console},
			errContains: "recipe is required",
		},
		{
			name:        "missing_console",
			opts:        patch.Options{Recipe: recipe.ClaimsButtonRecipe()},
			errContains: "console is required",
		},
		{
			name:        "invalid_recipe",
			opts:        patch.Options{Recipe: &config.Recipe{Target: "x"}, Console: console},
			errContains: "compiling recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := patch.New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("absolute_target", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "page.tsx")
		p, err := patch.New(patch.Options{
			Recipe:  &config.Recipe{Target: abs, Old: "x"},
			Root:    "/ignored",
			Console: console,
		})
		require.NoError(t, err)
		assert.Equal(t, abs, p.Path())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "patched", patch.StatusPatched.String())
	assert.Equal(t, "not-found", patch.StatusNotFound.String())
	assert.Equal(t, "dry-run", patch.StatusDryRun.String())
	assert.Equal(t, "unchanged", patch.StatusUnchanged.String())
	assert.Equal(t, "unknown", patch.Status(42).String())
}
