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

// Package recipe holds the built-in patch recipes.
package recipe

import (
	_ "embed"

	"github.com/walteh/fixclaims/pkg/config"
)

const (
	// ClaimsTarget is the page rendering the purchase request list, relative to the repo root
	ClaimsTarget = "frontend/app/purchase-requests/page.tsx"

	// ClaimsMarker appears in the claims label whatever its indentation
	ClaimsMarker = "Claim(s)"
)

var (
	// ClaimsSpan is the read-only claims count label, indentation included
	//
	//go:embed fragments/claims_span.tsx.frag
	ClaimsSpan string

	// ClaimsButton opens the single claim download or the claims modal
	//
	//go:embed fragments/claims_button.tsx.frag
	ClaimsButton string
)

// ClaimsButtonRecipe swaps the claims count label for the download button
func ClaimsButtonRecipe() *config.Recipe {
	radius := config.DefaultContext
	return &config.Recipe{
		Name:        "claims-button",
		Description: "span with button",
		Target:      ClaimsTarget,
		FileFilter:  "frontend/app/**/page.tsx",
		Old:         ClaimsSpan,
		New:         ClaimsButton,
		Marker:      ClaimsMarker,
		Context:     &radius,
	}
}
