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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexReplacer implements Replacer for a single occurrence of a regular expression
type RegexReplacer struct{}

// NewRegexReplacer creates a new RegexReplacer
func NewRegexReplacer() *RegexReplacer {
	return &RegexReplacer{}
}

// Replace implements Replacer.Replace
func (r *RegexReplacer) Replace(ctx context.Context, content io.Reader, rule Rule) (*Result, error) {
	if rule.Pattern == nil {
		return nil, errors.New("rule has no pattern")
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	locs := rule.Pattern.FindAllIndex(originalContent, -1)
	result.MatchCount = len(locs)

	zerolog.Ctx(ctx).Debug().
		Str("pattern", rule.Pattern.String()).
		Int("matches", result.MatchCount).
		Msg("matched pattern")

	switch len(locs) {
	case 0:
		return result, nil
	case 1:
	default:
		return nil, errors.WithDetails(ErrAmbiguousMatch, "matches", len(locs))
	}

	start, end := locs[0][0], locs[0][1]
	modified := make([]byte, 0, len(originalContent)-(end-start)+len(rule.Replacement))
	modified = append(modified, originalContent[:start]...)
	modified = append(modified, rule.Replacement...)
	modified = append(modified, originalContent[end:]...)

	// a replacement equal to the matched text is not a change
	result.WasModified = string(modified) != string(originalContent)
	result.ModifiedContent = modified
	return result, nil
}
