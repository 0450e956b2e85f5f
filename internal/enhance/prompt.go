// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"bytes"
	"strings"
	"text/template"
	"unicode"
)

// cleanupPromptTmpl is the instruction sent to every model. It asks for
// repaired text only, with the structure of the input kept intact.
var cleanupPromptTmpl = template.Must(template.New("cleanup").Parse(`Clean up and format this text extracted from a PDF document. Follow these rules strictly:

1. Fix OCR errors and garbled text
2. Fix words that were merged together or split apart by the extraction
3. Preserve the original paragraph structure and line breaks between paragraphs
4. Keep the original meaning, wording, and content order
5. Remove only obvious formatting artifacts (like random line breaks mid-sentence)
6. Ensure proper punctuation and grammar
7. Do NOT add any titles, headers, or introductory text
8. Return ONLY the cleaned original content

Text to process:
{{.Text}}

Return only the cleaned text with no additional commentary or formatting.`))

// renderPrompt executes the cleanup prompt template with the given text.
func renderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := cleanupPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// refusalPhrases mark a response in which the model declined the task
// instead of returning text.
var refusalPhrases = []string{
	"i am unable to",
	"i'm unable to",
	"i cannot fulfill",
	"i cannot help with",
	"i can't help with",
	"i cannot answer",
	"as a large language model",
	"as an ai language model",
}

// refusalWindow is how much of the start of a response is checked for
// refusal phrases. Documents may quote these phrases further in.
const refusalWindow = 200

// isRefusal reports whether the opening of resp reads as a refusal of
// input. A phrase that also occurs in input, ignoring spacing, is document
// content.
func isRefusal(resp, input string) bool {
	head := strings.ToLower(resp)
	if len(head) > refusalWindow {
		head = head[:refusalWindow]
	}
	source := squash(input)
	for _, phrase := range refusalPhrases {
		if strings.Contains(head, phrase) && !strings.Contains(source, squash(phrase)) {
			return true
		}
	}
	return false
}

// squash lowercases s and drops its whitespace, so merged extraction
// output still matches a spaced phrase.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// cleanResponse trims whitespace and removes a code fence wrapping the
// whole response, which some models add despite the instruction.
func cleanResponse(resp string) string {
	s := strings.TrimSpace(resp)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag on the opening fence ("```text", "```markdown").
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], " \t") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
