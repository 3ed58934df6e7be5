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
	"fmt"
	"regexp"
	"strings"
)

// clinicalKeywords are bolded wherever they appear as whole words,
// case-insensitively. Multi-word entries must precede none here; order only
// matters for overlapping single/multi word forms of the same term.
var clinicalKeywords = []string{
	"ADPIE", "NANDA", "CHF", "Congestive Heart Failure", "Hypertension", "Diabetes",
	"Assessment", "Diagnosis", "Planning", "Implementation", "Evaluation",
	"Goal", "Outcome", "Intervention", "Rationale", "Evidence", "Risk for", "Related to", "As evidenced by",
}

var (
	sectionHeadingRe = regexp.MustCompile(`(?m)^(Assessment|Diagnosis|Planning|Implementation|Evaluation|Conclusion|Summary):$`)
	stepHeadingRe    = regexp.MustCompile(`(?m)^(Step\s*\d+):`)
	subHeadingRe     = regexp.MustCompile(`(?m)^(Rationale|Evidence|Considerations):$`)
	citationRe       = regexp.MustCompile(`(\[\s*(?:S\d+|\d+|[A-Za-z]+)\s*\])`)
	dashBulletRe     = regexp.MustCompile(`(?m)^[ \t]*-[ \t]+(.*)`)
	starBulletRe     = regexp.MustCompile(`(?m)^[ \t]*\*[ \t]+(.*)`)
	numberedItemRe   = regexp.MustCompile(`(?m)^[ \t]*(\d+\.)[ \t]+(.*)`)
	blockquoteRe     = regexp.MustCompile(`(?m)^[ \t]*>[ \t]*(.*)`)
	numberedBlockRe  = regexp.MustCompile(`^\d+\.\s`)

	keywordRes = buildKeywordRes()
)

func buildKeywordRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(clinicalKeywords))
	for i, kw := range clinicalKeywords {
		res[i] = regexp.MustCompile(fmt.Sprintf(`(?i)\b(%s)\b`, regexp.QuoteMeta(kw)))
	}
	return res
}

// FormatReasoning converts the model's raw chain-of-thought prose into
// display-ready markdown: clinical section headings, bolded vocabulary,
// italicized citation markers, normalized bullets and blockquotes, and
// paragraphs reflowed onto single lines. Pure; safe for concurrent use.
func FormatReasoning(raw string) string {
	if raw == "" {
		return ""
	}

	md := strings.ReplaceAll(raw, "\r\n", "\n")

	md = sectionHeadingRe.ReplaceAllString(md, "## ${1}:")
	md = stepHeadingRe.ReplaceAllString(md, "### ${1}:")
	md = subHeadingRe.ReplaceAllString(md, "#### ${1}:")

	for _, re := range keywordRes {
		md = re.ReplaceAllString(md, "**${1}**")
	}

	md = citationRe.ReplaceAllString(md, "*${1}*")

	md = dashBulletRe.ReplaceAllString(md, "* ${1}")
	md = starBulletRe.ReplaceAllString(md, "* ${1}")
	md = numberedItemRe.ReplaceAllString(md, "${1} ${2}")
	md = blockquoteRe.ReplaceAllString(md, "> ${1}")

	// Reflow: plain-prose blocks collapse to one line; lists, headings and
	// quotes keep their line structure.
	blocks := strings.Split(md, "\n\n")
	for i, block := range blocks {
		if !isStructuredBlock(block) {
			block = strings.ReplaceAll(block, "\n", " ")
		}
		blocks[i] = strings.TrimSpace(block)
	}

	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

func isStructuredBlock(block string) bool {
	return strings.HasPrefix(block, "* ") ||
		strings.HasPrefix(block, "#") ||
		strings.HasPrefix(block, ">") ||
		numberedBlockRe.MatchString(block)
}
