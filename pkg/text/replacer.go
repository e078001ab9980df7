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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// ErrAmbiguousMatch is returned when a rule's pattern matches more than one
// location in the content. Nothing is replaced in that case.
var ErrAmbiguousMatch = errors.Base("pattern matches more than one location")

// Rule describes a single fragment substitution
type Rule struct {
	// Pattern locates the old fragment, indentation included
	Pattern *regexp.Regexp

	// Replacement is inserted verbatim, "$" is never expanded
	Replacement string

	// Marker is looked up line by line when Pattern does not match
	Marker string

	// Context is the number of lines shown around each marker hit
	Context int
}

// Result contains the results of applying a rule
type Result struct {
	// WasModified indicates the content changed
	WasModified bool

	// MatchCount is the number of locations Pattern matched
	MatchCount int

	// OriginalContent is the content before replacement
	OriginalContent []byte

	// ModifiedContent is the content after replacement
	ModifiedContent []byte
}

// Replacer applies a rule to content
type Replacer interface {
	// Replace applies the rule to the content
	// Returns a Result, the content is never modified on error
	Replace(ctx context.Context, content io.Reader, rule Rule) (*Result, error)
}
