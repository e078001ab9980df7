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

import "strings"

// NumberedLine is a single line of content with its 1-based line number
type NumberedLine struct {
	Number int
	Text   string
}

// Excerpt is the window of lines around a marker hit
type Excerpt struct {
	// Line is the 1-based line number containing the marker
	Line int

	// Lines runs from max(1, Line-radius) to min(total, Line+radius)
	Lines []NumberedLine
}

// ScanMarker returns one excerpt for every line of content containing marker.
// Lines are split on "\n" and a trailing "\r" is dropped from each, so a
// trailing newline yields a final empty line.
func ScanMarker(content, marker string, radius int) []Excerpt {
	if marker == "" {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	lines := strings.Split(content, "\n")

	var excerpts []Excerpt
	for i, line := range lines {
		if !strings.Contains(line, marker) {
			continue
		}

		start := max(0, i-radius)
		end := min(len(lines), i+radius+1)

		excerpt := Excerpt{
			Line:  i + 1,
			Lines: make([]NumberedLine, 0, end-start),
		}
		for j := start; j < end; j++ {
			excerpt.Lines = append(excerpt.Lines, NumberedLine{Number: j + 1, Text: strings.TrimSuffix(lines[j], "\r")})
		}
		excerpts = append(excerpts, excerpt)
	}

	return excerpts
}
