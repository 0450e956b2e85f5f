// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Rule is a custom regex substitution applied after the built-in rules.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// RulesFile is the on-disk format of an extension rules file.
//
//	merged_words:
//	  inthe: in the
//	lexicon: [invoice, subtotal]
//	rules:
//	  - name: ligature-fi
//	    pattern: "ﬁ"
//	    replace: "fi"
type RulesFile struct {
	MergedWords map[string]string `yaml:"merged_words"`
	Lexicon     []string          `yaml:"lexicon"`
	Rules       []RuleSpec        `yaml:"rules"`
}

// RuleSpec is one regex rule as written in a rules file.
type RuleSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// defaultMergedWords lists merged-word artifacts seen in extracted text.
// Every value is its key with spaces inserted.
var defaultMergedWords = map[string]string{
	"andthe":    "and the",
	"asthe":     "as the",
	"atthe":     "at the",
	"bythe":     "by the",
	"forthe":    "for the",
	"fromthe":   "from the",
	"hasbeen":   "has been",
	"havebeen":  "have been",
	"inthe":     "in the",
	"isthe":     "is the",
	"itis":      "it is",
	"ofthe":     "of the",
	"onthe":     "on the",
	"thatthe":   "that the",
	"thereare":  "there are",
	"thereis":   "there is",
	"tobe":      "to be",
	"tothe":     "to the",
	"willbe":    "will be",
	"withthe":   "with the",
	"wouldbe":   "would be",
	"canbe":     "can be",
	"shouldbe":  "should be",
	"ofthis":    "of this",
	"inorderto": "in order to",
}

// LoadRulesFile reads and parses a YAML rules file.
func LoadRulesFile(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return &rf, nil
}

// compileRules turns rule specs into Rules, rejecting invalid patterns.
func compileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		if s.Pattern == "" {
			return nil, fmt.Errorf("rule %d (%s): empty pattern", i, s.Name)
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, s.Name, err)
		}
		rules = append(rules, Rule{Name: s.Name, Pattern: re, Replace: s.Replace})
	}
	return rules, nil
}

// validateMerged checks that a merged-word entry only inserts spaces.
func validateMerged(merged, split string) error {
	if merged == "" || strings.ContainsAny(merged, " \t") {
		return fmt.Errorf("merged word %q must be a single non-empty word", merged)
	}
	if !asciiLetters.MatchString(merged) {
		return fmt.Errorf("merged word %q must contain only ASCII letters", merged)
	}
	if strings.ReplaceAll(split, " ", "") != merged {
		return fmt.Errorf("merged word %q: replacement %q must only insert spaces", merged, split)
	}
	if strings.Contains(split, "  ") || strings.HasPrefix(split, " ") || strings.HasSuffix(split, " ") {
		return fmt.Errorf("merged word %q: replacement %q has stray spaces", merged, split)
	}
	return nil
}

var asciiLetters = regexp.MustCompile(`^[A-Za-z]+$`)
