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

import "bytes"

// LineEnding is the newline convention of a piece of content
type LineEnding int

const (
	// LF content uses "\n", or mixes "\n" and "\r\n"
	LF LineEnding = iota
	// CRLF content uses "\r\n" for every newline
	CRLF
)

// NormalizeNewlines rewrites every "\r\n" as "\n". The returned LineEnding is
// CRLF only when no bare "\n" was present, so RestoreNewlines can round trip it.
func NormalizeNewlines(content []byte) ([]byte, LineEnding) {
	crlf := bytes.Count(content, []byte("\r\n"))
	if crlf == 0 {
		return content, LF
	}

	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if crlf == bytes.Count(content, []byte("\n")) {
		return normalized, CRLF
	}
	return normalized, LF
}

// RestoreNewlines converts "\n" back to "\r\n" for CRLF content
func RestoreNewlines(content []byte, ending LineEnding) []byte {
	if ending != CRLF {
		return content
	}
	return bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
}
