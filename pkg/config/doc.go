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

/*
Package config loads and validates patch recipes for fixclaims.

	            +-------------+
	            |   Recipe    |
	            | (one patch) |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   HCL    | |   YAML   | |   JSON   |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Describes one fragment substitution on one file
- Rejects unknown fields in every format
- Compiles a recipe into a text.Rule

🔄 Flow:
1. Reads the recipe file
2. Picks a decoder from the file extension
3. Validates the recipe
4. Hands a compiled rule to the patcher

A recipe names the old fragment either as a regular expression (pattern) or
as literal text (old), never both. When file_filter is set the target path
must match it as a doublestar glob.

🔍 Example:

	rcp, err := config.LoadRecipe(ctx, "fix.hcl")
	if err != nil {
		return err
	}
	rule, err := rcp.Rule()
*/
package config
