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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// LoadRecipe loads a recipe file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func LoadRecipe(ctx context.Context, path string) (*Recipe, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading recipe")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading recipe file: %w", err)
	}

	rcp, err := ParseRecipe(data, path)
	if err != nil {
		return nil, err
	}
	rcp.location = path

	if err := rcp.Validate(); err != nil {
		return nil, errors.Errorf("validating recipe: %w", err)
	}

	return rcp, nil
}

// ParseRecipe decodes recipe data, using filename only to pick the format
func ParseRecipe(data []byte, filename string) (*Recipe, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return loadJSON(data)
	case ".yaml", ".yml":
		return loadYAML(data)
	case ".hcl":
		return loadHCL(data, filename)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
}

// loadJSON loads a recipe from JSON data
func loadJSON(data []byte) (*Recipe, error) {
	var rcp Recipe
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rcp); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &rcp, nil
}

// loadYAML loads a recipe from YAML data
func loadYAML(data []byte) (*Recipe, error) {
	var rcp Recipe
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rcp); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &rcp, nil
}

// loadHCL loads a recipe from HCL data
func loadHCL(data []byte, filename string) (*Recipe, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var rcp Recipe
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &rcp)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &rcp, nil
}
