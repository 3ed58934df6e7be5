// Copyright 2025 CarePlanGen
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

package careplan

import (
	"regexp"
	"strings"

	"careplan/platform/careplan/docjson"
)

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// ExtractReasoning returns the concatenated contents of all
// <think>...</think> regions in text, joined with blank lines. Returns ""
// when no complete think block is present.
func ExtractReasoning(text string) string {
	matches := thinkBlockRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m[1]
	}
	return strings.Join(parts, "\n\n")
}

// ExtractJSON locates and parses the first balanced top-level JSON object
// in text, after stripping any think regions. When a balanced candidate
// fails to parse, the scan resumes at the next opening brace after the
// failed candidate's start. Returns (empty object, false) when no valid
// object can be found; callers treat that as a recoverable stage failure.
func ExtractJSON(text string) (docjson.Object, bool) {
	cleaned := strings.TrimSpace(thinkBlockRe.ReplaceAllString(text, ""))

	start := strings.IndexByte(cleaned, '{')
	for start != -1 {
		depth := 0
		end := -1
		for i := start; i < len(cleaned); i++ {
			switch cleaned[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				end = i
				break
			}
		}
		if end == -1 {
			// Unbalanced tail, no further complete candidate exists.
			break
		}

		if obj, err := docjson.DecodeObject([]byte(cleaned[start : end+1])); err == nil {
			return obj, true
		}

		next := strings.IndexByte(cleaned[start+1:], '{')
		if next == -1 {
			break
		}
		start = start + 1 + next
	}

	return docjson.Object{}, false
}

// thinkSplitter incrementally separates reasoning from a live delta stream.
// Feed returns the reasoning text contained in the chunk, correctly
// handling <think> and </think> delimiters split across chunk boundaries:
// any trailing bytes that could begin a delimiter are held back until the
// next chunk resolves them.
type thinkSplitter struct {
	inThink bool
	pending string
}

// Feed consumes one delta chunk and returns the reasoning text it is now
// safe to emit.
func (s *thinkSplitter) Feed(chunk string) string {
	buf := s.pending + chunk
	s.pending = ""

	var out strings.Builder
	for {
		if !s.inThink {
			i := strings.Index(buf, thinkOpen)
			if i == -1 {
				s.pending = buf[len(buf)-delimiterHoldback(buf, thinkOpen):]
				return out.String()
			}
			s.inThink = true
			buf = buf[i+len(thinkOpen):]
			continue
		}

		i := strings.Index(buf, thinkClose)
		if i == -1 {
			hold := delimiterHoldback(buf, thinkClose)
			out.WriteString(buf[:len(buf)-hold])
			s.pending = buf[len(buf)-hold:]
			return out.String()
		}
		out.WriteString(buf[:i])
		s.inThink = false
		buf = buf[i+len(thinkClose):]
	}
}

// Flush returns any reasoning text still held back at end of stream. Text
// held while awaiting a possible delimiter inside an unterminated think
// block is reasoning; held text outside a think block is not.
func (s *thinkSplitter) Flush() string {
	held := s.pending
	s.pending = ""
	if s.inThink {
		return held
	}
	return ""
}

// delimiterHoldback returns the length of the longest suffix of s that is a
// proper prefix of delim, i.e. the number of trailing bytes that might turn
// out to start the delimiter once more input arrives.
func delimiterHoldback(s, delim string) int {
	max := len(delim) - 1
	if max > len(s) {
		max = len(s)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(s, delim[:n]) {
			return n
		}
	}
	return 0
}
