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

package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/fixclaims/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultContext is the number of lines printed on each side of a marker hit
const DefaultContext = 3

// 🔧 Recipe describes a single fragment substitution on a single file
type Recipe struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Target      string `json:"target" yaml:"target" hcl:"target"`
	FileFilter  string `json:"file_filter,omitempty" yaml:"file_filter,omitempty" hcl:"file_filter,optional"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
	Old         string `json:"old,omitempty" yaml:"old,omitempty" hcl:"old,optional"`
	New         string `json:"new" yaml:"new" hcl:"new,optional"`
	Marker      string `json:"marker,omitempty" yaml:"marker,omitempty" hcl:"marker,optional"`
	Context     *int   `json:"context,omitempty" yaml:"context,omitempty" hcl:"context,optional"`

	location string
}

// 🔍 Validate checks if the recipe is usable
func (r *Recipe) Validate() error {
	if r.Target == "" {
		return errors.Errorf("target is required")
	}

	switch {
	case r.Pattern == "" && r.Old == "":
		return errors.Errorf("one of pattern or old is required")
	case r.Pattern != "" && r.Old != "":
		return errors.Errorf("pattern and old are mutually exclusive")
	}

	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return errors.Errorf("compiling pattern: %w", err)
		}
	}

	if r.Context != nil && *r.Context < 0 {
		return errors.Errorf("context must not be negative, got %d", *r.Context)
	}

	if r.FileFilter != "" {
		if !doublestar.ValidatePattern(r.FileFilter) {
			return errors.Errorf("invalid file_filter %q", r.FileFilter)
		}
		ok, err := doublestar.Match(r.FileFilter, filepath.ToSlash(filepath.Clean(r.Target)))
		if err != nil {
			return errors.Errorf("matching file_filter: %w", err)
		}
		if !ok {
			return errors.Errorf("target %q does not match file_filter %q", r.Target, r.FileFilter)
		}
	}

	return nil
}

// 🎯 Rule compiles the recipe into a text.Rule
func (r *Recipe) Rule() (text.Rule, error) {
	if err := r.Validate(); err != nil {
		return text.Rule{}, err
	}

	expr := r.Pattern
	if expr == "" {
		expr = regexp.QuoteMeta(r.Old)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return text.Rule{}, errors.Errorf("compiling pattern: %w", err)
	}

	return text.Rule{
		Pattern:     re,
		Replacement: r.New,
		Marker:      r.Marker,
		Context:     r.ContextLines(),
	}, nil
}

// ContextLines returns the configured context radius or DefaultContext
func (r *Recipe) ContextLines() int {
	if r.Context == nil {
		return DefaultContext
	}
	return *r.Context
}

// Location returns the file the recipe was loaded from, empty for built-in recipes
func (r *Recipe) Location() string {
	return r.location
}

// 📝 String returns a short description of the recipe
func (r *Recipe) String() string {
	name := r.Name
	if name == "" {
		name = "recipe"
	}
	return fmt.Sprintf("%s -> %s", name, r.Target)
}
