// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize repairs spacing artifacts in text extracted from PDFs,
// where glyph runs are often emitted without the spaces between words.
//
// Normalize applies, in order:
//
//	(a) a space between a lowercase letter and a following uppercase letter
//	(b) a space between a letter and a following digit, and vice versa
//	(c) a space after . ! ? (then , ; :) when a letter follows directly
//	(d) whole-word replacement of known merged words ("andthe" -> "and the")
//	(e) lexicon segmentation of letter runs that are not known words
//
// Step (e) is off unless Options.Segment is set: the embedded lexicon is
// small, so real words missing from it ("notable", "forgot") would be split.
//
// Every built-in step only inserts spaces, and never between two characters
// it could later split again, so Normalize is idempotent. Custom regex rules
// run last and are not checked.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdfword/pkg/types"
)

const defaultSegmentMinLength = 4

var (
	camelMerge   = regexp.MustCompile(`([a-z])([A-Z])`)
	letterDigit  = regexp.MustCompile(`([A-Za-z])([0-9])`)
	digitLetter  = regexp.MustCompile(`([0-9])([A-Za-z])`)
	sentenceEnd  = regexp.MustCompile(`([.!?])([A-Za-z])`)
	clausePunct  = regexp.MustCompile(`([,;:])([A-Za-z])`)
	letterRun    = regexp.MustCompile(`[A-Za-z]+`)
	splitPattern = "$1 $2"
)

// Normalizer is a stateless text filter. The zero value is not usable;
// build one with New or Default.
type Normalizer struct {
	merged   map[string]string
	mergedRe *regexp.Regexp
	seg      *segmenter
	rules    []Rule
}

// Options configures a Normalizer beyond the built-in rule set.
type Options struct {
	// MergedWords adds or overrides merged-word entries.
	MergedWords map[string]string

	// Lexicon adds known words for segmentation.
	Lexicon []string

	// Rules are custom regex rules applied after the built-in steps.
	Rules []Rule

	// Segment enables step (e).
	Segment bool

	// SegmentMinLength is the shortest letter run considered by step (e).
	SegmentMinLength int
}

// Default returns a Normalizer with the built-in rules (a) to (d).
func Default() *Normalizer {
	n, err := New(Options{})
	if err != nil {
		// The built-in tables are validated by tests.
		panic(err)
	}
	return n
}

// FromConfig builds a Normalizer from configuration, loading the rules
// file when one is set.
func FromConfig(cfg types.NormalizeConfig) (*Normalizer, error) {
	opts := Options{
		Segment:          cfg.Segment,
		SegmentMinLength: cfg.SegmentMinLength,
	}
	if cfg.RulesFile != "" {
		rf, err := LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules, err := compileRules(rf.Rules)
		if err != nil {
			return nil, fmt.Errorf("rules file %s: %w", cfg.RulesFile, err)
		}
		opts.MergedWords = rf.MergedWords
		opts.Lexicon = rf.Lexicon
		opts.Rules = rules
	}
	return New(opts)
}

// New builds a Normalizer from the built-in tables plus opts.
func New(opts Options) (*Normalizer, error) {
	merged := make(map[string]string, len(defaultMergedWords)+len(opts.MergedWords))
	for k, v := range defaultMergedWords {
		merged[k] = v
	}
	for k, v := range opts.MergedWords {
		merged[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range merged {
		if err := validateMerged(k, v); err != nil {
			return nil, err
		}
		for _, piece := range strings.Fields(v) {
			if _, ok := merged[piece]; ok {
				return nil, fmt.Errorf("merged word %q: piece %q is itself a merged word", k, piece)
			}
		}
	}

	n := &Normalizer{merged: merged, rules: opts.Rules}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Longest first so alternation prefers the longest entry.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	if len(keys) > 0 {
		n.mergedRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(keys, "|") + `)\b`)
	}

	if opts.Segment {
		minLen := opts.SegmentMinLength
		if minLen <= 0 {
			minLen = defaultSegmentMinLength
		}
		seg, err := newSegmenter(minLen, opts.Lexicon, merged)
		if err != nil {
			return nil, err
		}
		n.seg = seg
	}

	return n, nil
}

// Normalize returns text with spacing artifacts repaired. It never fails;
// text without artifacts is returned unchanged apart from NFC composition.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}
	out := norm.NFC.String(text)

	out = camelMerge.ReplaceAllString(out, splitPattern)
	out = letterDigit.ReplaceAllString(out, splitPattern)
	out = digitLetter.ReplaceAllString(out, splitPattern)
	out = sentenceEnd.ReplaceAllString(out, splitPattern)
	out = clausePunct.ReplaceAllString(out, splitPattern)

	if n.mergedRe != nil {
		out = n.mergedRe.ReplaceAllStringFunc(out, func(m string) string {
			return respace(m, n.merged[strings.ToLower(m)])
		})
	}

	if n.seg != nil {
		out = letterRun.ReplaceAllStringFunc(out, n.seg.split)
	}

	for _, r := range n.rules {
		out = r.Pattern.ReplaceAllString(out, r.Replace)
	}
	return out
}

// respace copies the letters of word into the space layout of split,
// keeping the original case.
func respace(word, split string) string {
	if split == "" {
		return word
	}
	src := []rune(word)
	var b strings.Builder
	b.Grow(len(split))
	i := 0
	for _, r := range split {
		if r == ' ' {
			b.WriteByte(' ')
			continue
		}
		if i >= len(src) {
			return word
		}
		b.WriteRune(src[i])
		i++
	}
	if i != len(src) {
		return word
	}
	return b.String()
}
